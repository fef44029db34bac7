package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"loansaarthi-backend/internal/domain/actor"
	domain "loansaarthi-backend/internal/domain/customer"
	"loansaarthi-backend/internal/domain/errs"
	loanDomain "loansaarthi-backend/internal/domain/loan"
	"loansaarthi-backend/internal/domain/uow"
	"loansaarthi-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	customers domain.Repository
	uow       uow.UnitOfWork
}

func NewUsecase(customers domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{customers: customers, uow: tx}
}

func toDTO(c *domain.Customer) *CustomerDTO {
	return &CustomerDTO{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		City:       c.City,
		State:      c.State,
		Country:    c.Country,
		BranchID:   c.BranchID,
		CreatedBy:  c.CreatedBy,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// profile trims and lowercases the editable fields onto c, then checks
// that none is blank.
func profile(c *domain.Customer, in UpdateCustomerInput) error {
	c.Name = strings.TrimSpace(in.Name)
	c.Email = strings.ToLower(strings.TrimSpace(in.Email))
	c.Phone = strings.TrimSpace(in.Phone)
	c.Address = strings.TrimSpace(in.Address)
	c.City = strings.TrimSpace(in.City)
	c.State = strings.TrimSpace(in.State)
	c.Country = strings.TrimSpace(in.Country)
	c.BranchID = strings.TrimSpace(in.BranchID)
	for _, f := range []struct{ name, v string }{
		{"name", c.Name}, {"email", c.Email}, {"phone", c.Phone}, {"address", c.Address},
		{"city", c.City}, {"state", c.State}, {"country", c.Country}, {"branch_id", c.BranchID},
	} {
		if f.v == "" {
			return fmt.Errorf("%w: %s is required", errs.ErrInvalidArgument, f.name)
		}
	}
	return nil
}

func (u *Usecase) Create(ctx context.Context, a actor.Actor, in CreateCustomerInput) (*CustomerDTO, error) {
	c := &domain.Customer{CustomerID: id.NewID32(), CreatedBy: a.ID}
	if err := profile(c, UpdateCustomerInput(in)); err != nil {
		return nil, err
	}

	if err := u.customers.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return toDTO(c), nil
}

func (u *Usecase) Get(ctx context.Context, customerID string) (*CustomerDTO, error) {
	c, err := u.customers.GetByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(c), nil
}

// Update overwrites the profile of an existing customer.
func (u *Usecase) Update(ctx context.Context, customerID string, in UpdateCustomerInput) (*CustomerDTO, error) {
	var out *CustomerDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Customers.GetByCustomerID(ctx, customerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if err := profile(c, in); err != nil {
			return err
		}
		if err := r.Customers.Save(ctx, c); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrEmailTaken
			}
			return err
		}
		out = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete soft-deletes a customer unless money is still out with them.
func (u *Usecase) Delete(ctx context.Context, a actor.Actor, customerID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Customers.GetByCustomerID(ctx, customerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		n, err := r.Loans.CountByCustomer(ctx, customerID, loanDomain.StatusApproved, loanDomain.StatusActive)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrHasActiveLoans
		}
		return r.Customers.Delete(ctx, c, a.ID)
	})
}
