package otp

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"loansaarthi-backend/internal/domain/errs"
)

const (
	CodeLength = 6
	// MaxAttempts is how many verify calls one issued code survives.
	MaxAttempts = 5
	// VerifiedWindow is how long a successful verify vouches for a mobile.
	VerifiedWindow = 15 * time.Minute
)

var (
	ErrInvalidMobile   = fmt.Errorf("%w: mobile must be 10 digits", errs.ErrInvalidArgument)
	ErrMissingCode     = fmt.Errorf("%w: otp is required", errs.ErrInvalidArgument)
	ErrInvalidCode     = fmt.Errorf("%w: invalid otp", errs.ErrInvalidArgument)
	// ErrNotFound covers both never-sent and expired codes.
	ErrNotFound        = fmt.Errorf("otp %w", errs.ErrNotFound)
	ErrTooManyAttempts = fmt.Errorf("%w: too many otp attempts, request a new code", errs.ErrTooManyRequests)
)

var reMobile = regexp.MustCompile(`^[0-9]{10}$`)

func ValidMobile(s string) bool { return reMobile.MatchString(s) }

// Store keeps one live code per mobile number.
type Store interface {
	// Put replaces the live code and resets its attempt counter.
	Put(ctx context.Context, mobile, code string) error
	// Get returns ErrNotFound when no live code exists.
	Get(ctx context.Context, mobile string) (string, error)
	// Delete drops the code and its attempt counter.
	Delete(ctx context.Context, mobile string) error
	// Attempt counts one verify call against the live code.
	Attempt(ctx context.Context, mobile string) (int64, error)

	MarkVerified(ctx context.Context, mobile string) error
	// ConsumeVerified reports whether mobile was verified within
	// VerifiedWindow and clears the mark.
	ConsumeVerified(ctx context.Context, mobile string) (bool, error)
}
