package documentmock

import (
	"context"

	domain "loansaarthi-backend/internal/domain/document"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                   func(ctx context.Context, d *domain.Document) error
	SaveFn                     func(ctx context.Context, d *domain.Document) error
	GetByDocumentIDFn          func(ctx context.Context, documentID string) (*domain.Document, error)
	GetByDocumentIDForUpdateFn func(ctx context.Context, documentID string) (*domain.Document, error)
	ListByLoanIDFn             func(ctx context.Context, loanNumericID uint64) ([]domain.Document, error)
	ListByLoanIDForUpdateFn    func(ctx context.Context, loanNumericID uint64) ([]domain.Document, error)
	ListByCustomerIDFn         func(ctx context.Context, customerID string) ([]domain.Document, error)
	ListFn                     func(ctx context.Context, f domain.ListFilter) ([]domain.Document, int64, error)
}

func (m *Repo) Create(ctx context.Context, d *domain.Document) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, d *domain.Document) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByDocumentID(ctx context.Context, documentID string) (*domain.Document, error) {
	if m.GetByDocumentIDFn != nil {
		return m.GetByDocumentIDFn(ctx, documentID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByDocumentIDForUpdate(ctx context.Context, documentID string) (*domain.Document, error) {
	if m.GetByDocumentIDForUpdateFn != nil {
		return m.GetByDocumentIDForUpdateFn(ctx, documentID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByLoanID(ctx context.Context, loanNumericID uint64) ([]domain.Document, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanNumericID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByLoanIDForUpdate(ctx context.Context, loanNumericID uint64) ([]domain.Document, error) {
	if m.ListByLoanIDForUpdateFn != nil {
		return m.ListByLoanIDForUpdateFn(ctx, loanNumericID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByCustomerID(ctx context.Context, customerID string) ([]domain.Document, error) {
	if m.ListByCustomerIDFn != nil {
		return m.ListByCustomerIDFn(ctx, customerID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Document, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, context.Canceled
}
