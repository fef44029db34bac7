package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"loansaarthi-backend/internal/domain/actor"
	customerDomain "loansaarthi-backend/internal/domain/customer"
	domain "loansaarthi-backend/internal/domain/document"
	"loansaarthi-backend/internal/domain/errs"
	loanDomain "loansaarthi-backend/internal/domain/loan"
	"loansaarthi-backend/internal/domain/uow"
	"loansaarthi-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	docs      domain.Repository
	loans     loanDomain.Repository
	customers customerDomain.Repository
	uow       uow.UnitOfWork
}

func NewUsecase(docs domain.Repository, loans loanDomain.Repository, customers customerDomain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{docs: docs, loans: loans, customers: customers, uow: tx}
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func toDTO(d *domain.Document, loanID string) DocumentDTO {
	return DocumentDTO{
		DocumentID:           d.DocumentID,
		CustomerID:           d.CustomerID,
		LoanID:               loanID,
		Name:                 d.Name,
		Type:                 string(d.Type),
		URL:                  d.URL,
		StorageKey:           d.StorageKey,
		Status:               string(d.Status),
		VerificationComments: d.VerificationComments,
		VerifiedBy:           d.VerifiedBy,
		VerifiedAt:           d.VerifiedAt,
		UploadedBy:           d.UploadedBy,
		ExpiryDate:           d.ExpiryDate,
		CreatedAt:            d.CreatedAt,
	}
}

// Register records metadata for an already-uploaded file. Attaching to a
// loan takes the loan lock so the gate never misses a new document.
func (u *Usecase) Register(ctx context.Context, a actor.Actor, in RegisterInput) (*DocumentDTO, error) {
	typ, ok := domain.ParseType(in.Type)
	if !ok {
		return nil, domain.ErrUnknownType
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.URL) == "" {
		return nil, domain.ErrNameRequired
	}
	if strings.TrimSpace(in.CustomerID) == "" {
		return nil, fmt.Errorf("%w: customer_id is required", errs.ErrInvalidArgument)
	}

	d := &domain.Document{
		DocumentID: id.NewID32(),
		CustomerID: in.CustomerID,
		Name:       strings.TrimSpace(in.Name),
		Type:       typ,
		URL:        strings.TrimSpace(in.URL),
		StorageKey: in.StorageKey,
		Status:     domain.StatusPending,
		UploadedBy: a.ID,
		ExpiryDate: in.ExpiryDate,
	}

	var err error
	if in.LoanID == "" {
		err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
			if _, err := r.Customers.GetByCustomerID(ctx, in.CustomerID); err != nil {
				return notFound(err, customerDomain.ErrNotFound)
			}
			return r.Documents.Create(ctx, d)
		})
	} else {
		err = u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
			if _, err := r.Customers.GetByCustomerID(ctx, in.CustomerID); err != nil {
				return notFound(err, customerDomain.ErrNotFound)
			}
			if l.CustomerID != in.CustomerID {
				return domain.ErrLoanMismatch
			}
			if l.Status != loanDomain.StatusPending {
				return fmt.Errorf("%w (current status: %s)", loanDomain.ErrNotPending, l.Status)
			}
			d.LoanID = &l.ID
			return r.Documents.Create(ctx, d)
		})
		err = notFound(err, loanDomain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	out := toDTO(d, in.LoanID)
	return &out, nil
}

// publicLoanID resolves the numeric FK back to the public loan id.
func (u *Usecase) publicLoanID(ctx context.Context, d *domain.Document) (string, error) {
	if d.LoanID == nil {
		return "", nil
	}
	l, err := u.loans.GetByID(ctx, *d.LoanID)
	if err != nil {
		return "", notFound(err, loanDomain.ErrNotFound)
	}
	return l.LoanID, nil
}

func (u *Usecase) Get(ctx context.Context, documentID string) (*DocumentDTO, error) {
	d, err := u.docs.GetByDocumentID(ctx, documentID)
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	loanID, err := u.publicLoanID(ctx, d)
	if err != nil {
		return nil, err
	}
	out := toDTO(d, loanID)
	return &out, nil
}

func (u *Usecase) ListByLoan(ctx context.Context, loanID string) ([]DocumentDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, notFound(err, loanDomain.ErrNotFound)
	}
	docs, err := u.docs.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]DocumentDTO, 0, len(docs))
	for i := range docs {
		out = append(out, toDTO(&docs[i], l.LoanID))
	}
	return out, nil
}

func (u *Usecase) ListByCustomer(ctx context.Context, customerID string) ([]DocumentDTO, error) {
	if _, err := u.customers.GetByCustomerID(ctx, customerID); err != nil {
		return nil, notFound(err, customerDomain.ErrNotFound)
	}
	docs, err := u.docs.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return u.toDTOs(ctx, docs)
}

// List pages through every document, newest first.
func (u *Usecase) List(ctx context.Context, in ListInput) (*ListResult, error) {
	f := domain.ListFilter{CustomerID: in.CustomerID, Limit: in.Limit, Offset: in.Offset}
	if in.Status != "" {
		st, ok := domain.ParseStatus(in.Status)
		if !ok {
			return nil, domain.ErrUnknownStatus
		}
		f.Status = st
	}
	if in.Type != "" {
		typ, ok := domain.ParseType(in.Type)
		if !ok {
			return nil, domain.ErrUnknownType
		}
		f.Type = typ
	}

	docs, total, err := u.docs.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items, err := u.toDTOs(ctx, docs)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, Total: total, Limit: in.Limit, Offset: in.Offset}, nil
}

// toDTOs resolves each loan FK once per call.
func (u *Usecase) toDTOs(ctx context.Context, docs []domain.Document) ([]DocumentDTO, error) {
	loanIDs := map[uint64]string{}
	out := make([]DocumentDTO, 0, len(docs))
	for i := range docs {
		var public string
		if n := docs[i].LoanID; n != nil {
			cached, ok := loanIDs[*n]
			if !ok {
				var err error
				if cached, err = u.publicLoanID(ctx, &docs[i]); err != nil {
					return nil, err
				}
				loanIDs[*n] = cached
			}
			public = cached
		}
		out = append(out, toDTO(&docs[i], public))
	}
	return out, nil
}

// Verify applies VERIFY/REJECT to a pending document. When the document is
// attached to a loan, the loan row is locked before the document so that
// concurrent verifications on the same loan serialize, and the gate is
// recomputed from committed state before auto-approving.
func (u *Usecase) Verify(ctx context.Context, a actor.Actor, documentID string, in VerifyInput) (*VerifyResult, error) {
	if !a.Role.CanDecide() {
		return nil, fmt.Errorf("%w: role %q cannot verify documents", errs.ErrForbidden, a.Role)
	}
	action := domain.Action(strings.ToUpper(strings.TrimSpace(in.Action)))
	if action != domain.ActionVerify && action != domain.ActionReject {
		return nil, domain.ErrInvalidAction
	}

	var res *VerifyResult
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		peek, err := r.Documents.GetByDocumentID(ctx, documentID)
		if err != nil {
			return notFound(err, domain.ErrNotFound)
		}

		// lock order: loan, then document
		var l *loanDomain.Loan
		if peek.LoanID != nil {
			if l, err = r.Loans.GetByIDForUpdate(ctx, *peek.LoanID); err != nil {
				return notFound(err, loanDomain.ErrNotFound)
			}
		}
		d, err := r.Documents.GetByDocumentIDForUpdate(ctx, documentID)
		if err != nil {
			return notFound(err, domain.ErrNotFound)
		}

		now := time.Now().UTC()
		if err := d.Verify(action, a.ID, in.Comments, now); err != nil {
			return err
		}
		if err := r.Documents.Save(ctx, d); err != nil {
			return err
		}

		res = &VerifyResult{}
		if l == nil {
			res.Document = toDTO(d, "")
			return nil
		}
		res.Document = toDTO(d, l.LoanID)

		if action == domain.ActionVerify && l.Status == loanDomain.StatusPending {
			docs, err := r.Documents.ListByLoanIDForUpdate(ctx, l.ID)
			if err != nil {
				return err
			}
			if domain.IsFullyVerified(docs) {
				if err := l.TransitionTo(loanDomain.StatusApproved, loanDomain.Transition{
					Actor:         a.ID,
					FullyVerified: true,
					At:            now,
				}); err != nil {
					return err
				}
				if err := r.Loans.Save(ctx, l); err != nil {
					return err
				}
				res.LoanApproved = true
			}
		}
		res.LoanStatus = string(l.Status)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
