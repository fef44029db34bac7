package loan

import (
	"time"

	domain "loansaarthi-backend/internal/domain/loan"

	"github.com/shopspring/decimal"
)

type CreateLoanInput struct {
	CustomerID   string
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
	Tenure       int
	Type         string
	Purpose      string
}

// UpdateLoanInput is a partial edit; nil fields keep their stored value.
type UpdateLoanInput struct {
	Amount       *decimal.Decimal
	InterestRate *decimal.Decimal
	Tenure       *int
	Type         *string
	Purpose      *string
}

type DecideInput struct {
	Action   string
	Comments string
}

type PatchStatusInput struct {
	Status        string
	DisbursedDate *time.Time
	Comments      string
}

type ListInput struct {
	CustomerID string
	Status     string
	Limit      int
	Offset     int
}

type LoanDTO struct {
	LoanID           string          `json:"loan_id"`
	CustomerID       string          `json:"customer_id"`
	Amount           decimal.Decimal `json:"amount"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	Tenure           int             `json:"tenure"`
	Type             string          `json:"type"`
	Purpose          string          `json:"purpose"`
	Status           string          `json:"status"`
	EMIAmount        decimal.Decimal `json:"emi_amount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	CreatedBy        string          `json:"created_by"`
	ApprovedBy       *string         `json:"approved_by,omitempty"`
	ApprovalDate     *time.Time      `json:"approval_date,omitempty"`
	ApprovalComments string          `json:"approval_comments,omitempty"`
	RejectionReason  string          `json:"rejection_reason,omitempty"`
	RejectionDate    *time.Time      `json:"rejection_date,omitempty"`
	DisbursedDate    *time.Time      `json:"disbursed_date,omitempty"`
	ClosedDate       *time.Time      `json:"closed_date,omitempty"`
	StatusUpdatedAt  time.Time       `json:"status_updated_at"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type ListResult struct {
	Items  []LoanDTO `json:"items"`
	Total  int64     `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

type ScheduleDTO struct {
	LoanID      string                 `json:"loan_id"`
	EMIAmount   decimal.Decimal        `json:"emi_amount"`
	TotalAmount decimal.Decimal        `json:"total_amount"`
	StartDate   time.Time              `json:"start_date"`
	Entries     []domain.ScheduleEntry `json:"entries"`
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:           l.LoanID,
		CustomerID:       l.CustomerID,
		Amount:           l.Amount,
		InterestRate:     l.InterestRate,
		Tenure:           l.Tenure,
		Type:             string(l.Type),
		Purpose:          l.Purpose,
		Status:           string(l.Status),
		EMIAmount:        l.EMIAmount,
		TotalAmount:      l.TotalAmount,
		CreatedBy:        l.CreatedBy,
		ApprovedBy:       l.ApprovedBy,
		ApprovalDate:     l.ApprovalDate,
		ApprovalComments: l.ApprovalComments,
		RejectionReason:  l.RejectionReason,
		RejectionDate:    l.RejectionDate,
		DisbursedDate:    l.DisbursedDate,
		ClosedDate:       l.ClosedDate,
		StatusUpdatedAt:  l.StatusUpdatedAt,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}
