package lead

import "errors"

var (
	// ErrNotOwner means the acting company user does not own the lead. The
	// response must not reveal whether the lead exists.
	ErrNotOwner = errors.New("lead not owned by acting company user")
	ErrNotFound = errors.New("lead not found")
)

// ValidationError carries the first failing field message of a request.
// It is expected control flow, returned to the caller verbatim.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string { return e.Message }
