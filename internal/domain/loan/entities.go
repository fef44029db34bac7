package loan

import (
	"fmt"
	"strings"
	"time"

	"loansaarthi-backend/internal/domain/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusActive   Status = "ACTIVE"
	StatusClosed   Status = "CLOSED"
)

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusApproved, StatusRejected, StatusActive, StatusClosed:
		return st, true
	}
	return "", false
}

type Type string

const (
	TypePersonal  Type = "PERSONAL"
	TypeBusiness  Type = "BUSINESS"
	TypeHome      Type = "HOME"
	TypeEducation Type = "EDUCATION"
	TypeVehicle   Type = "VEHICLE"
)

func ParseType(s string) (Type, bool) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case TypePersonal, TypeBusiness, TypeHome, TypeEducation, TypeVehicle:
		return t, true
	}
	return "", false
}

var (
	ErrNotFound              = fmt.Errorf("loan %w", errs.ErrNotFound)
	ErrInvalidTerms          = fmt.Errorf("%w: amount, interest rate and tenure must be positive", errs.ErrInvalidArgument)
	ErrUnknownStatus         = fmt.Errorf("%w: unknown loan status", errs.ErrInvalidArgument)
	ErrUnknownType           = fmt.Errorf("%w: unknown loan type", errs.ErrInvalidArgument)
	ErrPurposeRequired       = fmt.Errorf("%w: purpose is required", errs.ErrInvalidArgument)
	ErrDisbursedDateRequired = fmt.Errorf("%w: disbursed date is required", errs.ErrInvalidArgument)
	ErrNotPending            = fmt.Errorf("%w: loan is not pending", errs.ErrInvalidState)
	ErrRejectedIsFinal       = fmt.Errorf("%w: rejected loan cannot change status", errs.ErrInvalidTransition)
	ErrDocumentsUnverified   = fmt.Errorf("%w: all documents must be verified before approval", errs.ErrPreconditionFailed)
)

// Table: loans
type Loan struct {
	ID               uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID           string          `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	CustomerID       string          `gorm:"size:32;index:idx_loans_customer" json:"customer_id"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	InterestRate     decimal.Decimal `gorm:"type:decimal(6,2)" json:"interest_rate"`
	Tenure           int             `json:"tenure"`
	Type             Type            `gorm:"size:16" json:"type"`
	Purpose          string          `gorm:"type:text" json:"purpose"`
	Status           Status          `gorm:"type:enum('PENDING','APPROVED','REJECTED','ACTIVE','CLOSED');default:'PENDING';index" json:"status"`
	EMIAmount        decimal.Decimal `gorm:"column:emi_amount;type:decimal(18,2)" json:"emi_amount"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_amount"`
	CreatedBy        string          `gorm:"size:64" json:"created_by"`
	ApprovedBy       *string         `gorm:"size:64" json:"approved_by,omitempty"`
	ApprovalDate     *time.Time      `json:"approval_date,omitempty"`
	ApprovalComments string          `gorm:"type:text" json:"approval_comments,omitempty"`
	RejectionReason  string          `gorm:"type:text" json:"rejection_reason,omitempty"`
	RejectionDate    *time.Time      `json:"rejection_date,omitempty"`
	DisbursedDate    *time.Time      `json:"disbursed_date,omitempty"`
	ClosedDate       *time.Time      `json:"closed_date,omitempty"`
	StatusUpdatedAt  time.Time       `json:"status_updated_at"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
	DeletedBy        string          `gorm:"size:64" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Terms are the inputs of the EMI computation.
type Terms struct {
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
	Tenure       int
}

// SetTerms replaces the amount/rate/tenure and recomputes EMI and total in
// one step, so the stored outputs never drift from their inputs.
func (l *Loan) SetTerms(t Terms) error {
	emi, err := ComputeEMI(t.Amount, t.InterestRate, t.Tenure)
	if err != nil {
		return err
	}
	l.Amount = t.Amount
	l.InterestRate = t.InterestRate
	l.Tenure = t.Tenure
	l.EMIAmount = emi.Amount
	l.TotalAmount = emi.Total
	return nil
}

func (l *Loan) Terms() Terms {
	return Terms{Amount: l.Amount, InterestRate: l.InterestRate, Tenure: l.Tenure}
}
