package inquiry

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyInput is the public loan application form.
type ApplyInput struct {
	Name           string
	Gender         string
	DateOfBirth    string // YYYY-MM-DD
	Mobile         string
	Email          string
	PAN            string
	LoanAmount     decimal.Decimal
	EmploymentType string
	CompanyName    string
	MonthlyIncome  decimal.Decimal
	WorkEmail      string
	Address1       string
	Address2       string
	City           string
	State          string
	Pincode        string
}

// PatchInput: nil leaves a field untouched.
type PatchInput struct {
	Status *string
	Notes  *string
}

type ListInput struct {
	Status string
	Limit  int
	Offset int
}

type InquiryDTO struct {
	InquiryID      string          `json:"inquiry_id"`
	Name           string          `json:"name"`
	Gender         string          `json:"gender"`
	DateOfBirth    string          `json:"date_of_birth"`
	Mobile         string          `json:"mobile"`
	Email          string          `json:"email"`
	PAN            string          `json:"pan"`
	LoanAmount     decimal.Decimal `json:"loan_amount"`
	EmploymentType string          `json:"employment_type"`
	CompanyName    string          `json:"company_name"`
	MonthlyIncome  decimal.Decimal `json:"monthly_income"`
	WorkEmail      string          `json:"work_email,omitempty"`
	Address1       string          `json:"address1"`
	Address2       string          `json:"address2,omitempty"`
	City           string          `json:"city"`
	State          string          `json:"state"`
	Pincode        string          `json:"pincode"`
	OTPVerified    bool            `json:"otp_verified"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes,omitempty"`
	ReviewedBy     *string         `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time      `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type ListResult struct {
	Items  []InquiryDTO `json:"items"`
	Total  int64        `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}
