package document

import "context"

type ListFilter struct {
	CustomerID string
	Status     Status
	Type       Type
	Limit      int
	Offset     int
}

type Repository interface {
	Create(ctx context.Context, d *Document) error
	Save(ctx context.Context, d *Document) error
	GetByDocumentID(ctx context.Context, documentID string) (*Document, error)
	GetByDocumentIDForUpdate(ctx context.Context, documentID string) (*Document, error)

	// ListByLoanID takes the numeric loan key (loans.id).
	ListByLoanID(ctx context.Context, loanNumericID uint64) ([]Document, error)
	// ListByLoanIDForUpdate locks the rows; for gate checks inside a loan tx.
	ListByLoanIDForUpdate(ctx context.Context, loanNumericID uint64) ([]Document, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]Document, error)
	List(ctx context.Context, f ListFilter) ([]Document, int64, error)
}
