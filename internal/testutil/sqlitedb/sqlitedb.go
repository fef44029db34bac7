// Package sqlitedb opens throwaway sqlite databases carrying a sqlite-safe
// copy of the production schema (no ENUM columns), for repository and
// usecase tests.
package sqlitedb

import (
	"fmt"
	"testing"
	"time"

	"loansaarthi-backend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type LoanRow struct {
	ID               uint64         `gorm:"primaryKey;column:id"`
	LoanID           string         `gorm:"size:32;uniqueIndex;column:loan_id"`
	CustomerID       string         `gorm:"size:32;column:customer_id"`
	Amount           float64        `gorm:"column:amount"`
	InterestRate     float64        `gorm:"column:interest_rate"`
	Tenure           int            `gorm:"column:tenure"`
	Type             string         `gorm:"column:type"`
	Purpose          string         `gorm:"column:purpose"`
	Status           string         `gorm:"type:text;default:'PENDING';column:status"` // no enum
	EMIAmount        float64        `gorm:"column:emi_amount"`
	TotalAmount      float64        `gorm:"column:total_amount"`
	CreatedBy        string         `gorm:"column:created_by"`
	ApprovedBy       *string        `gorm:"column:approved_by"`
	ApprovalDate     *time.Time     `gorm:"column:approval_date"`
	ApprovalComments string         `gorm:"column:approval_comments"`
	RejectionReason  string         `gorm:"column:rejection_reason"`
	RejectionDate    *time.Time     `gorm:"column:rejection_date"`
	DisbursedDate    *time.Time     `gorm:"column:disbursed_date"`
	ClosedDate       *time.Time     `gorm:"column:closed_date"`
	StatusUpdatedAt  time.Time      `gorm:"column:status_updated_at"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at"`
	DeletedBy        string         `gorm:"column:deleted_by"`
}

func (LoanRow) TableName() string { return "loans" }

type DocumentRow struct {
	ID                   uint64         `gorm:"primaryKey;column:id"`
	DocumentID           string         `gorm:"size:32;uniqueIndex;column:document_id"`
	CustomerID           string         `gorm:"size:32;column:customer_id"`
	LoanID               *uint64        `gorm:"column:loan_id"`
	Name                 string         `gorm:"column:name"`
	Type                 string         `gorm:"column:type"`
	URL                  string         `gorm:"column:url"`
	StorageKey           string         `gorm:"column:storage_key"`
	Status               string         `gorm:"type:text;default:'PENDING';column:status"` // no enum
	VerificationComments string         `gorm:"column:verification_comments"`
	VerifiedBy           *string        `gorm:"column:verified_by"`
	VerifiedAt           *time.Time     `gorm:"column:verified_at"`
	UploadedBy           string         `gorm:"column:uploaded_by"`
	ExpiryDate           *time.Time     `gorm:"column:expiry_date"`
	CreatedAt            time.Time      `gorm:"column:created_at"`
	UpdatedAt            time.Time      `gorm:"column:updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (DocumentRow) TableName() string { return "documents" }

type CustomerRow struct {
	ID         uint64         `gorm:"primaryKey;column:id"`
	CustomerID string         `gorm:"size:32;uniqueIndex;column:customer_id"`
	Name       string         `gorm:"column:name"`
	Email      string         `gorm:"uniqueIndex;column:email"`
	Phone      string         `gorm:"column:phone"`
	Address    string         `gorm:"column:address"`
	City       string         `gorm:"column:city"`
	State      string         `gorm:"column:state"`
	Country    string         `gorm:"column:country"`
	BranchID   string         `gorm:"column:branch_id"`
	CreatedBy  string         `gorm:"column:created_by"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at"`
	DeletedBy  string         `gorm:"column:deleted_by"`
}

func (CustomerRow) TableName() string { return "customers" }

type InquiryRow struct {
	ID             uint64     `gorm:"primaryKey;column:id"`
	InquiryID      string     `gorm:"size:32;uniqueIndex;column:inquiry_id"`
	Name           string     `gorm:"column:name"`
	Gender         string     `gorm:"column:gender"`
	DateOfBirth    time.Time  `gorm:"column:date_of_birth"`
	Mobile         string     `gorm:"column:mobile"`
	Email          string     `gorm:"column:email"`
	PAN            string     `gorm:"column:pan"`
	LoanAmount     float64    `gorm:"column:loan_amount"`
	EmploymentType string     `gorm:"column:employment_type"`
	CompanyName    string     `gorm:"column:company_name"`
	MonthlyIncome  float64    `gorm:"column:monthly_income"`
	WorkEmail      string     `gorm:"column:work_email"`
	Address1       string     `gorm:"column:address1"`
	Address2       string     `gorm:"column:address2"`
	City           string     `gorm:"column:city"`
	State          string     `gorm:"column:state"`
	Pincode        string     `gorm:"column:pincode"`
	OTPVerified    bool       `gorm:"column:otp_verified"`
	Status         string     `gorm:"type:text;default:'NEW';column:status"` // no enum
	Notes          string     `gorm:"column:notes"`
	ReviewedBy     *string    `gorm:"column:reviewed_by"`
	ReviewedAt     *time.Time `gorm:"column:reviewed_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (InquiryRow) TableName() string { return "loan_inquiries" }

// Open creates a private in-memory database and migrates the sqlite-safe
// schema, NOT the domain models. The pool is pinned to one connection so
// concurrent transactions serialize the way row locks do on MySQL.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", id.NewID32())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&CustomerRow{}, &LoanRow{}, &DocumentRow{}, &InquiryRow{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
