package authz

import (
	"errors"
	"fmt"
)

var ErrForbidden = errors.New("permission denied")

// ForbiddenError carries the denied request.
type ForbiddenError struct {
	Request Request
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("authz: %s may not %s in %s", e.Request.Subject, e.Request.Action, e.Request.Domain)
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

func forbiddenError(req Request) error {
	return &ForbiddenError{Request: req}
}

// configError standardizes configuration validation errors.
func configError(msg string, args ...any) error {
	return fmt.Errorf("authz: "+msg, args...)
}
