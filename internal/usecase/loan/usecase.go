package loan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"loansaarthi-backend/internal/domain/actor"
	customerDomain "loansaarthi-backend/internal/domain/customer"
	documentDomain "loansaarthi-backend/internal/domain/document"
	"loansaarthi-backend/internal/domain/errs"
	domain "loansaarthi-backend/internal/domain/loan"
	"loansaarthi-backend/internal/domain/uow"
	"loansaarthi-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	loans     domain.Repository
	customers customerDomain.Repository
	uow       uow.UnitOfWork
}

// NewUsecase: reads go straight to the repos, every mutation runs in a UoW tx.
func NewUsecase(loans domain.Repository, customers customerDomain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, customers: customers, uow: tx}
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func requireStaff(a actor.Actor) error {
	if !a.Role.CanDecide() {
		return fmt.Errorf("%w: role %q cannot change loan status", errs.ErrForbidden, a.Role)
	}
	return nil
}

func (u *Usecase) Create(ctx context.Context, a actor.Actor, in CreateLoanInput) (*LoanDTO, error) {
	if strings.TrimSpace(in.CustomerID) == "" {
		return nil, fmt.Errorf("%w: customer_id is required", errs.ErrInvalidArgument)
	}
	typ, ok := domain.ParseType(in.Type)
	if !ok {
		return nil, domain.ErrUnknownType
	}
	purpose := strings.TrimSpace(in.Purpose)
	if purpose == "" {
		return nil, domain.ErrPurposeRequired
	}

	now := time.Now().UTC()
	l := &domain.Loan{
		LoanID:          id.NewID32(),
		CustomerID:      in.CustomerID,
		Type:            typ,
		Purpose:         purpose,
		Status:          domain.StatusPending,
		CreatedBy:       a.ID,
		StatusUpdatedAt: now,
	}
	if err := l.SetTerms(domain.Terms{Amount: in.Amount, InterestRate: in.InterestRate, Tenure: in.Tenure}); err != nil {
		return nil, err
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Customers.GetByCustomerID(ctx, in.CustomerID); err != nil {
			return notFound(err, customerDomain.ErrNotFound)
		}
		return r.Loans.Create(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return toDTO(l), nil
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*ListResult, error) {
	f := domain.ListFilter{CustomerID: in.CustomerID, Limit: in.Limit, Offset: in.Offset}
	if in.Status != "" {
		st, ok := domain.ParseStatus(in.Status)
		if !ok {
			return nil, domain.ErrUnknownStatus
		}
		f.Status = st
	}

	rows, total, err := u.loans.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &ListResult{Items: make([]LoanDTO, 0, len(rows)), Total: total, Limit: in.Limit, Offset: in.Offset}
	for i := range rows {
		out.Items = append(out.Items, *toDTO(&rows[i]))
	}
	return out, nil
}

// ListByCustomer is List scoped to one customer, which must exist.
func (u *Usecase) ListByCustomer(ctx context.Context, customerID string, in ListInput) (*ListResult, error) {
	if _, err := u.customers.GetByCustomerID(ctx, customerID); err != nil {
		return nil, notFound(err, customerDomain.ErrNotFound)
	}
	in.CustomerID = customerID
	return u.List(ctx, in)
}

func (u *Usecase) Update(ctx context.Context, a actor.Actor, loanID string, in UpdateLoanInput) (*LoanDTO, error) {
	var out *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if !l.Editable() {
			return fmt.Errorf("%w (current status: %s)", domain.ErrNotPending, l.Status)
		}

		t := l.Terms()
		if in.Amount != nil {
			t.Amount = *in.Amount
		}
		if in.InterestRate != nil {
			t.InterestRate = *in.InterestRate
		}
		if in.Tenure != nil {
			t.Tenure = *in.Tenure
		}
		if in.Type != nil {
			typ, ok := domain.ParseType(*in.Type)
			if !ok {
				return domain.ErrUnknownType
			}
			l.Type = typ
		}
		if in.Purpose != nil {
			p := strings.TrimSpace(*in.Purpose)
			if p == "" {
				return domain.ErrPurposeRequired
			}
			l.Purpose = p
		}
		if err := l.SetTerms(t); err != nil {
			return err
		}

		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return out, nil
}

// gate evaluates document verification for l inside the current tx.
func gate(ctx context.Context, r uow.Repos, l *domain.Loan) (bool, error) {
	docs, err := r.Documents.ListByLoanIDForUpdate(ctx, l.ID)
	if err != nil {
		return false, err
	}
	return documentDomain.IsFullyVerified(docs), nil
}

func (u *Usecase) Decide(ctx context.Context, a actor.Actor, loanID string, in DecideInput) (*LoanDTO, error) {
	if err := requireStaff(a); err != nil {
		return nil, err
	}
	action := domain.Action(strings.ToUpper(strings.TrimSpace(in.Action)))
	if action != domain.ActionApprove && action != domain.ActionReject {
		return nil, fmt.Errorf("%w: action must be APPROVE or REJECT", errs.ErrInvalidArgument)
	}

	var out *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		verified := false
		if action == domain.ActionApprove && l.Status == domain.StatusPending {
			ok, err := gate(ctx, r, l)
			if err != nil {
				return err
			}
			verified = ok
		}

		if err := l.Decide(action, domain.Transition{
			Actor:         a.ID,
			Comments:      in.Comments,
			FullyVerified: verified,
			At:            time.Now().UTC(),
		}); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return out, nil
}

func (u *Usecase) PatchStatus(ctx context.Context, a actor.Actor, loanID string, in PatchStatusInput) (*LoanDTO, error) {
	if err := requireStaff(a); err != nil {
		return nil, err
	}
	target, ok := domain.ParseStatus(in.Status)
	if !ok {
		return nil, domain.ErrUnknownStatus
	}

	var out *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status == target {
			out = toDTO(l)
			return nil
		}

		verified := false
		if l.Status == domain.StatusPending && target == domain.StatusApproved {
			ok, err := gate(ctx, r, l)
			if err != nil {
				return err
			}
			verified = ok
		}

		if err := l.TransitionTo(target, domain.Transition{
			Actor:         a.ID,
			Comments:      in.Comments,
			DisbursedDate: in.DisbursedDate,
			FullyVerified: verified,
			At:            time.Now().UTC(),
		}); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return out, nil
}

func (u *Usecase) Delete(ctx context.Context, a actor.Actor, loanID string) error {
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if !l.Deletable() {
			return fmt.Errorf("%w (current status: %s)", domain.ErrNotPending, l.Status)
		}
		return r.Loans.Delete(ctx, l, a.ID)
	})
	return notFound(err, domain.ErrNotFound)
}

// Schedule starts from the disbursement date once known, else from creation.
func (u *Usecase) Schedule(ctx context.Context, loanID string) (*ScheduleDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}

	start := l.CreatedAt
	if l.DisbursedDate != nil {
		start = *l.DisbursedDate
	}
	entries, err := domain.BuildSchedule(l.Terms(), start)
	if err != nil {
		return nil, err
	}
	return &ScheduleDTO{
		LoanID:      l.LoanID,
		EMIAmount:   l.EMIAmount,
		TotalAmount: l.TotalAmount,
		StartDate:   start,
		Entries:     entries,
	}, nil
}
