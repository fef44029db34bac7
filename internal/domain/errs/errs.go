// Package errs holds the error taxonomy shared by every domain package.
// Domain packages wrap these so callers can match either the specific
// error (loan.ErrNotFound) or the category (errs.ErrNotFound).
package errs

import "errors"

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidState       = errors.New("invalid state")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrTooManyRequests    = errors.New("too many requests")
)
