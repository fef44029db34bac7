package document

import "time"

type RegisterInput struct {
	CustomerID string
	// LoanID is the public loan id; empty for customer-level documents.
	LoanID     string
	Name       string
	Type       string
	URL        string
	StorageKey string
	ExpiryDate *time.Time
}

type VerifyInput struct {
	Action   string
	Comments string
}

type ListInput struct {
	CustomerID string
	Status     string
	Type       string
	Limit      int
	Offset     int
}

type DocumentDTO struct {
	DocumentID           string     `json:"document_id"`
	CustomerID           string     `json:"customer_id"`
	LoanID               string     `json:"loan_id,omitempty"`
	Name                 string     `json:"name"`
	Type                 string     `json:"type"`
	URL                  string     `json:"url"`
	StorageKey           string     `json:"storage_key,omitempty"`
	Status               string     `json:"status"`
	VerificationComments string     `json:"verification_comments,omitempty"`
	VerifiedBy           *string    `json:"verified_by,omitempty"`
	VerifiedAt           *time.Time `json:"verified_at,omitempty"`
	UploadedBy           string     `json:"uploaded_by"`
	ExpiryDate           *time.Time `json:"expiry_date,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

// VerifyResult reports the document plus the loan status after the gate ran.
type VerifyResult struct {
	Document     DocumentDTO `json:"document"`
	LoanStatus   string      `json:"loan_status,omitempty"`
	LoanApproved bool        `json:"loan_approved"`
}

type ListResult struct {
	Items  []DocumentDTO `json:"items"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}
