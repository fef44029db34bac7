package customer

import (
	"fmt"
	"time"

	"loansaarthi-backend/internal/domain/errs"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = fmt.Errorf("customer %w", errs.ErrNotFound)
	ErrHasActiveLoans = fmt.Errorf("%w: customer has approved or active loans", errs.ErrInvalidState)
	ErrEmailTaken     = fmt.Errorf("%w: email already registered", errs.ErrInvalidState)
)

// Table: customers. Loans and documents reference CustomerID.
type Customer struct {
	ID         uint64         `gorm:"primaryKey;column:id" json:"-"`
	CustomerID string         `gorm:"size:32;uniqueIndex:ux_customers_customer_id" json:"customer_id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Email      string         `gorm:"size:255;uniqueIndex:ux_customers_email" json:"email"`
	Phone      string         `gorm:"size:32" json:"phone"`
	Address    string         `gorm:"type:text" json:"address"`
	City       string         `gorm:"size:128" json:"city"`
	State      string         `gorm:"size:128" json:"state"`
	Country    string         `gorm:"size:128" json:"country"`
	BranchID   string         `gorm:"size:64;index" json:"branch_id"`
	CreatedBy  string         `gorm:"size:64" json:"created_by"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy  string         `gorm:"size:64" json:"-"`
}

func (Customer) TableName() string { return "customers" }
