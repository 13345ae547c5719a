package phone

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// Valid reports whether number is a valid phone number for the given
// ISO 3166-1 alpha-2 region (e.g. "IN", "US").
func Valid(number, region string) bool {
	if number == "" || region == "" {
		return false
	}
	parsed, err := phonenumbers.Parse(number, region)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(parsed)
}

// E164 formats number for the given region in E.164 (+919662062016).
func E164(number, region string) (string, error) {
	parsed, err := phonenumbers.Parse(number, region)
	if err != nil {
		return "", fmt.Errorf("parse phone %q: %w", number, err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("invalid phone %q for region %s", number, region)
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
