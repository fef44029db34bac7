package uow

import (
	"context"

	"loansaarthi-backend/internal/domain/customer"
	"loansaarthi-backend/internal/domain/document"
	"loansaarthi-backend/internal/domain/loan"
)

// Repos are bound to the surrounding transaction.
type Repos struct {
	Loans     loan.Repository
	Documents document.Repository
	Customers customer.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
