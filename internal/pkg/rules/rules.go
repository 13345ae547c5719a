package rules

import (
	"context"
	"fmt"
	"mime/multipart"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"

	"leadcrm/internal/pkg/phone"
)

// Package rules evaluates ordered per-field constraint lists against a raw
// request payload, the way the API's request contracts are written: each
// field carries a list of rules, the first failing rule per field wins, and
// validation always completes before any side effect is attempted.

var validate = playground.New()

// ResolveDomain reports whether an email domain accepts mail. Tests replace
// it to avoid network lookups.
var ResolveDomain = func(domain string) bool {
	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	addrs, err := net.LookupHost(domain)
	return err == nil && len(addrs) > 0
}

// Values is the raw field-to-value mapping decoded from a request. JSON
// bodies produce string/float64/[]any values, multipart forms produce
// strings and []*multipart.FileHeader.
type Values map[string]any

// Present reports whether a field was supplied with a non-empty value.
// An empty string or an empty list counts as absent, matching how optional
// fields arrive from form submissions.
func (v Values) Present(field string) bool {
	val, ok := v[field]
	if !ok || val == nil {
		return false
	}
	switch t := val.(type) {
	case string:
		return strings.TrimSpace(t) != ""
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	}
	return true
}

// Rule is a single named constraint on one field.
type Rule struct {
	Name  string
	Check func(ctx context.Context, v Values, field string) (bool, error)
}

// FieldRules binds a field name to its ordered constraint list.
type FieldRules struct {
	Field string
	Rules []Rule
}

// Result holds per-field failure messages in field declaration order.
type Result struct {
	order    []string
	messages map[string]string
}

func (r *Result) OK() bool { return len(r.messages) == 0 }

// First returns the first failure message in declaration order.
func (r *Result) First() string {
	for _, f := range r.order {
		if msg, ok := r.messages[f]; ok {
			return msg
		}
	}
	return ""
}

func (r *Result) Messages() map[string]string { return r.messages }

// Validate evaluates every field's rules against v. Rules other than the
// required_* family are skipped for absent fields. messages maps
// "<field>.<rule>" to the text returned for that failure; unmapped failures
// get a generic message.
func Validate(ctx context.Context, fields []FieldRules, v Values, messages map[string]string) (*Result, error) {
	res := &Result{messages: make(map[string]string)}
	for _, fr := range fields {
		res.order = append(res.order, fr.Field)
		for _, rule := range fr.Rules {
			if !v.Present(fr.Field) && !isRequiredRule(rule.Name) {
				continue
			}
			ok, err := rule.Check(ctx, v, fr.Field)
			if err != nil {
				return nil, fmt.Errorf("validate %s.%s: %w", fr.Field, rule.Name, err)
			}
			if !ok {
				res.messages[fr.Field] = lookupMessage(messages, fr.Field, rule.Name)
				break
			}
		}
	}
	return res, nil
}

func isRequiredRule(name string) bool {
	return name == "required" || strings.HasPrefix(name, "required_")
}

func lookupMessage(messages map[string]string, field, rule string) string {
	if msg, ok := messages[field+"."+rule]; ok {
		return msg
	}
	return fmt.Sprintf("The %s field is invalid.", field)
}

// ---- coercion helpers ----

// Int coerces ints, JSON numbers and digit strings.
func Int(val any) (int64, bool) {
	switch n := val.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
		return 0, false
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// Str coerces string values; numbers are not silently stringified, matching
// the strict string rule of the request contracts.
func Str(val any) (string, bool) {
	s, ok := val.(string)
	return s, ok
}

func items(val any) ([]any, bool) {
	switch arr := val.(type) {
	case []any:
		return arr, true
	case []string:
		out := make([]any, len(arr))
		for i, s := range arr {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// ---- rule constructors ----

func Required() Rule {
	return Rule{Name: "required", Check: func(_ context.Context, v Values, field string) (bool, error) {
		return v.Present(field), nil
	}}
}

// RequiredWithout fails when neither this field nor other is present.
func RequiredWithout(other string) Rule {
	return Rule{Name: "required_without", Check: func(_ context.Context, v Values, field string) (bool, error) {
		return v.Present(field) || v.Present(other), nil
	}}
}

// RequiredWith fails when other is present but this field is not.
func RequiredWith(other string) Rule {
	return Rule{Name: "required_with", Check: func(_ context.Context, v Values, field string) (bool, error) {
		if !v.Present(other) {
			return true, nil
		}
		return v.Present(field), nil
	}}
}

// RequiredIf fails when other holds value and this field is absent.
func RequiredIf(other string, value int64) Rule {
	return Rule{Name: "required_if", Check: func(_ context.Context, v Values, field string) (bool, error) {
		got, ok := Int(v[other])
		if !ok || got != value {
			return true, nil
		}
		return v.Present(field), nil
	}}
}

func String() Rule {
	return Rule{Name: "string", Check: func(_ context.Context, v Values, field string) (bool, error) {
		_, ok := Str(v[field])
		return ok, nil
	}}
}

func Integer() Rule {
	return Rule{Name: "integer", Check: func(_ context.Context, v Values, field string) (bool, error) {
		_, ok := Int(v[field])
		return ok, nil
	}}
}

// Numeric accepts integers and digit strings; phone numbers arrive this way.
func Numeric() Rule {
	return Rule{Name: "numeric", Check: func(_ context.Context, v Values, field string) (bool, error) {
		switch n := v[field].(type) {
		case float64, int, int64:
			return true, nil
		case string:
			_, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
			return err == nil, nil
		default:
			return false, nil
		}
	}}
}

func Array() Rule {
	return Rule{Name: "array", Check: func(_ context.Context, v Values, field string) (bool, error) {
		_, ok := items(v[field])
		return ok, nil
	}}
}

// Date validates against a Go time layout, e.g. "2006-01-02".
func Date(layout string) Rule {
	return Rule{Name: "date_format", Check: func(_ context.Context, v Values, field string) (bool, error) {
		s, ok := Str(v[field])
		if !ok {
			return false, nil
		}
		_, err := time.Parse(layout, strings.TrimSpace(s))
		return err == nil, nil
	}}
}

// After enforces date ordering against another field. It passes when the
// other field is absent or unparseable; those cases are that field's problem.
func After(other, layout string) Rule {
	return Rule{Name: "after", Check: func(_ context.Context, v Values, field string) (bool, error) {
		s, ok := Str(v[field])
		if !ok {
			return false, nil
		}
		this, err := time.Parse(layout, strings.TrimSpace(s))
		if err != nil {
			return false, nil
		}
		os, ok := Str(v[other])
		if !ok {
			return true, nil
		}
		that, err := time.Parse(layout, strings.TrimSpace(os))
		if err != nil {
			return true, nil
		}
		return this.After(that), nil
	}}
}

// Email checks syntax; with dns it also requires a resolvable domain.
func Email(dns bool) Rule {
	return Rule{Name: "email", Check: func(_ context.Context, v Values, field string) (bool, error) {
		s, ok := Str(v[field])
		if !ok {
			return false, nil
		}
		if err := validate.Var(s, "email"); err != nil {
			return false, nil
		}
		if !dns {
			return true, nil
		}
		at := strings.LastIndex(s, "@")
		return ResolveDomain(s[at+1:]), nil
	}}
}

// Phone validates the number against the region code held by regionField.
// It passes when the region is absent; the required_with rule on the region
// field reports that case.
func Phone(regionField string) Rule {
	return Rule{Name: "phone", Check: func(_ context.Context, v Values, field string) (bool, error) {
		number := fmt.Sprintf("%v", v[field])
		if f, ok := v[field].(float64); ok {
			number = strconv.FormatInt(int64(f), 10)
		}
		region, _ := Str(v[regionField])
		if region == "" {
			return true, nil
		}
		return phone.Valid(number, strings.ToUpper(strings.TrimSpace(region))), nil
	}}
}

// In checks integer membership in a closed set.
func In(allowed ...int64) Rule {
	return Rule{Name: "in", Check: func(_ context.Context, v Values, field string) (bool, error) {
		got, ok := Int(v[field])
		if !ok {
			return false, nil
		}
		for _, a := range allowed {
			if got == a {
				return true, nil
			}
		}
		return false, nil
	}}
}

// ExistsFunc answers whether value matches a live catalog row.
type ExistsFunc func(ctx context.Context, value any) (bool, error)

func Exists(fn ExistsFunc) Rule {
	return Rule{Name: "exists", Check: func(ctx context.Context, v Values, field string) (bool, error) {
		return fn(ctx, v[field])
	}}
}

// UniqueFunc answers whether value is taken by a row other than excludeID.
type UniqueFunc func(ctx context.Context, value any) (bool, error)

func Unique(fn UniqueFunc) Rule {
	return Rule{Name: "unique", Check: func(ctx context.Context, v Values, field string) (bool, error) {
		taken, err := fn(ctx, v[field])
		return !taken, err
	}}
}

// Each applies elem to every member of an array field. Failures surface
// under the "<field>.*.<rule>" message key.
func Each(elem Rule) Rule {
	return Rule{Name: "*." + elem.Name, Check: func(ctx context.Context, v Values, field string) (bool, error) {
		arr, ok := items(v[field])
		if !ok {
			return false, nil
		}
		for _, e := range arr {
			ev := Values{field: e}
			ok, err := elem.Check(ctx, ev, field)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}}
}

// ---- file rules ----

// Files coerces a field holding uploaded parts.
func Files(val any) ([]*multipart.FileHeader, bool) {
	fhs, ok := val.([]*multipart.FileHeader)
	return fhs, ok
}

func File() Rule {
	return Rule{Name: "file", Check: func(_ context.Context, v Values, field string) (bool, error) {
		fhs, ok := Files(v[field])
		return ok && len(fhs) > 0, nil
	}}
}

func MaxFileSize(maxBytes int64) Rule {
	return Rule{Name: "max", Check: func(_ context.Context, v Values, field string) (bool, error) {
		fhs, ok := Files(v[field])
		if !ok {
			return false, nil
		}
		for _, fh := range fhs {
			if fh.Size > maxBytes {
				return false, nil
			}
		}
		return true, nil
	}}
}

// FileMIME sniffs each part's content and checks it against the allowed set.
func FileMIME(allowed map[string]bool) Rule {
	return Rule{Name: "mimes", Check: func(_ context.Context, v Values, field string) (bool, error) {
		fhs, ok := Files(v[field])
		if !ok {
			return false, nil
		}
		for _, fh := range fhs {
			mime, err := sniffMIME(fh)
			if err != nil {
				return false, err
			}
			if !allowed[mime] {
				return false, nil
			}
		}
		return true, nil
	}}
}

func sniffMIME(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, _ := f.Read(buf)
	mime := http.DetectContentType(buf[:n])
	return strings.Split(mime, ";")[0], nil
}
