package otp

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	domain "loansaarthi-backend/internal/domain/otp"
	"loansaarthi-backend/pkg/id"
)

type SendResult struct {
	Success bool `json:"success"`
	// OTP is only filled when echoing is enabled (development).
	OTP string `json:"otp,omitempty"`
}

type Usecase struct {
	store  domain.Store
	log    *slog.Logger
	echo   bool
	digits func(n int) (string, error)
}

// NewUsecase: echo puts the code in the response, for environments
// without an SMS gateway.
func NewUsecase(store domain.Store, log *slog.Logger, echo bool) *Usecase {
	return &Usecase{store: store, log: log, echo: echo, digits: id.NewDigits}
}

func (u *Usecase) Send(ctx context.Context, mobile string) (*SendResult, error) {
	mobile = strings.TrimSpace(mobile)
	if !domain.ValidMobile(mobile) {
		return nil, domain.ErrInvalidMobile
	}
	code, err := u.digits(domain.CodeLength)
	if err != nil {
		return nil, err
	}
	if err := u.store.Put(ctx, mobile, code); err != nil {
		return nil, err
	}

	// No SMS provider yet; the log line is the delivery channel.
	u.log.InfoContext(ctx, "otp issued", slog.String("mobile", mobile), slog.String("otp", code))

	res := &SendResult{Success: true}
	if u.echo {
		res.OTP = code
	}
	return res, nil
}

// Verify consumes the code on success and marks the mobile as verified; a
// wrong code leaves it in place until MaxAttempts is spent.
func (u *Usecase) Verify(ctx context.Context, mobile, code string) error {
	mobile = strings.TrimSpace(mobile)
	code = strings.TrimSpace(code)
	if mobile == "" || !domain.ValidMobile(mobile) {
		return domain.ErrInvalidMobile
	}
	if code == "" {
		return domain.ErrMissingCode
	}

	want, err := u.store.Get(ctx, mobile)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidCode
		}
		return err
	}
	n, err := u.store.Attempt(ctx, mobile)
	if err != nil {
		return err
	}
	if n > domain.MaxAttempts {
		if err := u.store.Delete(ctx, mobile); err != nil {
			return err
		}
		u.log.WarnContext(ctx, "otp attempts exhausted", slog.String("mobile", mobile))
		return domain.ErrTooManyAttempts
	}
	if subtle.ConstantTimeCompare([]byte(want), []byte(code)) != 1 {
		return domain.ErrInvalidCode
	}
	if err := u.store.Delete(ctx, mobile); err != nil {
		return err
	}
	return u.store.MarkVerified(ctx, mobile)
}
