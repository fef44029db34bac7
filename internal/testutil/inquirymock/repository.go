package inquirymock

import (
	"context"

	domain "loansaarthi-backend/internal/domain/inquiry"
)

var (
	_ domain.Repository     = (*Repo)(nil)
	_ domain.MobileVerifier = (*Verifier)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, q *domain.Inquiry) error
	SaveFn           func(ctx context.Context, q *domain.Inquiry) error
	GetByInquiryIDFn func(ctx context.Context, inquiryID string) (*domain.Inquiry, error)
	ListFn           func(ctx context.Context, f domain.ListFilter) ([]domain.Inquiry, int64, error)
}

func (m *Repo) Create(ctx context.Context, q *domain.Inquiry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, q)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, q *domain.Inquiry) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, q)
	}
	return nil
}

func (m *Repo) GetByInquiryID(ctx context.Context, inquiryID string) (*domain.Inquiry, error) {
	if m.GetByInquiryIDFn != nil {
		return m.GetByInquiryIDFn(ctx, inquiryID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Inquiry, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, context.Canceled
}

// Verifier answers from a fixed set of verified mobiles, consuming each.
type Verifier struct {
	Verified map[string]bool
	Err      error
}

func (v *Verifier) ConsumeVerified(_ context.Context, mobile string) (bool, error) {
	if v.Err != nil {
		return false, v.Err
	}
	ok := v.Verified[mobile]
	delete(v.Verified, mobile)
	return ok, nil
}
