package loan

import "context"

type ListFilter struct {
	CustomerID string
	Status     Status
	Limit      int
	Offset     int
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	GetByID(ctx context.Context, id uint64) (*Loan, error)

	// Row-locking reads; only meaningful inside a UnitOfWork tx.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)

	List(ctx context.Context, f ListFilter) ([]Loan, int64, error)
	CountByCustomer(ctx context.Context, customerID string, statuses ...Status) (int64, error)

	// Soft delete, stamping who removed it.
	Delete(ctx context.Context, l *Loan, deletedBy string) error
}
