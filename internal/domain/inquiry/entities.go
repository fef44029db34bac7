package inquiry

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"loansaarthi-backend/internal/domain/errs"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusNew       Status = "NEW"
	StatusReviewed  Status = "REVIEWED"
	StatusConverted Status = "CONVERTED"
	StatusArchived  Status = "ARCHIVED"
)

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusNew, StatusReviewed, StatusConverted, StatusArchived:
		return st, true
	}
	return "", false
}

var (
	ErrNotFound         = fmt.Errorf("inquiry %w", errs.ErrNotFound)
	ErrUnknownStatus    = fmt.Errorf("%w: unknown inquiry status", errs.ErrInvalidArgument)
	ErrMobileUnverified = fmt.Errorf("%w: mobile must be verified by otp before applying", errs.ErrPreconditionFailed)
	ErrClosed           = fmt.Errorf("%w: inquiry is already converted or archived", errs.ErrInvalidTransition)
	ErrNothingToPatch   = fmt.Errorf("%w: status or notes is required", errs.ErrInvalidArgument)
)

var (
	rePAN     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	rePincode = regexp.MustCompile(`^[1-9][0-9]{5}$`)
)

// ValidPAN checks the shape of an Indian permanent account number.
func ValidPAN(s string) bool { return rePAN.MatchString(s) }

func ValidPincode(s string) bool { return rePincode.MatchString(s) }

// Table: loan_inquiries. A public lead captured before any customer exists.
type Inquiry struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	InquiryID      string          `gorm:"size:32;uniqueIndex:ux_inquiries_inquiry_id" json:"inquiry_id"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Gender         string          `gorm:"size:16" json:"gender"`
	DateOfBirth    time.Time       `gorm:"type:date" json:"date_of_birth"`
	Mobile         string          `gorm:"size:16;index" json:"mobile"`
	Email          string          `gorm:"size:255" json:"email"`
	PAN            string          `gorm:"column:pan;size:10" json:"pan"`
	LoanAmount     decimal.Decimal `gorm:"type:decimal(18,2)" json:"loan_amount"`
	EmploymentType string          `gorm:"size:32" json:"employment_type"`
	CompanyName    string          `gorm:"size:255" json:"company_name"`
	MonthlyIncome  decimal.Decimal `gorm:"type:decimal(18,2)" json:"monthly_income"`
	WorkEmail      string          `gorm:"size:255" json:"work_email,omitempty"`
	Address1       string          `gorm:"size:255" json:"address1"`
	Address2       string          `gorm:"size:255" json:"address2,omitempty"`
	City           string          `gorm:"size:128" json:"city"`
	State          string          `gorm:"size:128" json:"state"`
	Pincode        string          `gorm:"size:6" json:"pincode"`
	OTPVerified    bool            `gorm:"column:otp_verified" json:"otp_verified"`
	Status         Status          `gorm:"type:enum('NEW','REVIEWED','CONVERTED','ARCHIVED');default:'NEW';index" json:"status"`
	Notes          string          `gorm:"type:text" json:"notes,omitempty"`
	ReviewedBy     *string         `gorm:"size:64" json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time      `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Inquiry) TableName() string { return "loan_inquiries" }

// MoveTo advances the follow-up status.
//
//	NEW      -> REVIEWED | CONVERTED | ARCHIVED
//	REVIEWED -> CONVERTED | ARCHIVED
//
// CONVERTED and ARCHIVED are final. A same-state target is a no-op. The
// first move off NEW stamps who reviewed it.
func (q *Inquiry) MoveTo(target Status, by string, at time.Time) error {
	if _, ok := ParseStatus(string(target)); !ok {
		return ErrUnknownStatus
	}
	if q.Status == target {
		return nil
	}
	switch q.Status {
	case StatusConverted, StatusArchived:
		return ErrClosed
	}
	if target == StatusNew {
		return fmt.Errorf("%w: %s to %s", errs.ErrInvalidTransition, q.Status, target)
	}
	if q.ReviewedBy == nil {
		q.ReviewedBy = &by
		q.ReviewedAt = &at
	}
	q.Status = target
	return nil
}
