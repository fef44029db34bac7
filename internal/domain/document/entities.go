package document

import (
	"fmt"
	"strings"
	"time"

	"loansaarthi-backend/internal/domain/errs"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusVerified Status = "VERIFIED"
	StatusRejected Status = "REJECTED"
	StatusExpired  Status = "EXPIRED"
)

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusVerified, StatusRejected, StatusExpired:
		return st, true
	}
	return "", false
}

type Type string

const (
	TypeIdentity Type = "identity"
	TypeAddress  Type = "address"
	TypeIncome   Type = "income"
	TypeBank     Type = "bank"
	TypeProperty Type = "property"
	TypeOther    Type = "other"
)

func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TypeIdentity, TypeAddress, TypeIncome, TypeBank, TypeProperty, TypeOther:
		return t, true
	}
	return "", false
}

type Action string

const (
	ActionVerify Action = "VERIFY"
	ActionReject Action = "REJECT"
)

var (
	ErrNotFound      = fmt.Errorf("document %w", errs.ErrNotFound)
	ErrNotPending    = fmt.Errorf("%w: document is not in pending status", errs.ErrInvalidState)
	ErrInvalidAction = fmt.Errorf("%w: action must be VERIFY or REJECT", errs.ErrInvalidArgument)
	ErrUnknownType   = fmt.Errorf("%w: unknown document type", errs.ErrInvalidArgument)
	ErrUnknownStatus = fmt.Errorf("%w: unknown document status", errs.ErrInvalidArgument)
	ErrNameRequired  = fmt.Errorf("%w: name and url are required", errs.ErrInvalidArgument)
	ErrLoanMismatch  = fmt.Errorf("%w: loan does not belong to customer", errs.ErrInvalidArgument)
)

// Table: documents. Only metadata lives here; bytes sit in object storage.
type Document struct {
	ID                   uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	DocumentID           string         `gorm:"column:document_id;type:char(32);not null;uniqueIndex:ux_documents_document_id" json:"document_id"`
	CustomerID           string         `gorm:"column:customer_id;type:char(32);not null;index" json:"customer_id"`
	LoanID               *uint64        `gorm:"column:loan_id;index" json:"-"`
	Name                 string         `gorm:"column:name;size:255;not null" json:"name"`
	Type                 Type           `gorm:"column:type;size:16;not null" json:"type"`
	URL                  string         `gorm:"column:url;type:text" json:"url"`
	StorageKey           string         `gorm:"column:storage_key;size:255" json:"storage_key,omitempty"`
	Status               Status         `gorm:"column:status;type:enum('PENDING','VERIFIED','REJECTED','EXPIRED');default:'PENDING'" json:"status"`
	VerificationComments string         `gorm:"column:verification_comments;type:text" json:"verification_comments,omitempty"`
	VerifiedBy           *string        `gorm:"column:verified_by;size:64" json:"verified_by,omitempty"`
	VerifiedAt           *time.Time     `gorm:"column:verified_at" json:"verified_at,omitempty"`
	UploadedBy           string         `gorm:"column:uploaded_by;size:64" json:"uploaded_by"`
	ExpiryDate           *time.Time     `gorm:"column:expiry_date" json:"expiry_date,omitempty"`
	CreatedAt            time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Document) TableName() string { return "documents" }

// Verify applies a one-shot VERIFY/REJECT. A document that already left
// PENDING refuses a second attempt.
func (d *Document) Verify(a Action, by, comments string, at time.Time) error {
	if d.Status != StatusPending {
		return ErrNotPending
	}
	switch a {
	case ActionVerify:
		d.Status = StatusVerified
	case ActionReject:
		d.Status = StatusRejected
	default:
		return ErrInvalidAction
	}
	d.VerifiedBy = &by
	d.VerifiedAt = &at
	d.VerificationComments = comments
	return nil
}

// IsFullyVerified is the approval gate: every document must be VERIFIED.
// An empty set counts as verified.
func IsFullyVerified(docs []Document) bool {
	for _, d := range docs {
		if d.Status != StatusVerified {
			return false
		}
	}
	return true
}
