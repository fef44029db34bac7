package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	documentDomain "loansaarthi-backend/internal/domain/document"
	"loansaarthi-backend/internal/testutil/sqlitedb"
	"loansaarthi-backend/pkg/id"

	"gorm.io/gorm"
)

func makeDocument(customerID string, loanNumericID *uint64) *documentDomain.Document {
	return &documentDomain.Document{
		DocumentID: id.NewID32(),
		CustomerID: customerID,
		LoanID:     loanNumericID,
		Name:       "pan-card.pdf",
		Type:       documentDomain.TypeIdentity,
		URL:        "https://files.example.com/pan-card.pdf",
		Status:     documentDomain.StatusPending,
		UploadedBy: "officer-1",
	}
}

func TestDocument_CreateGetSave(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	d := makeDocument(id.NewID32(), nil)
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	if err := d.Verify(documentDomain.ActionVerify, "officer-2", "looks good", time.Now().UTC()); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if err := repo.Save(ctx, d); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByDocumentIDForUpdate(ctx, d.DocumentID)
	if err != nil {
		t.Fatalf("GetByDocumentIDForUpdate: %v", err)
	}
	if got.Status != documentDomain.StatusVerified {
		t.Fatalf("status = %s, want VERIFIED", got.Status)
	}
	if got.VerifiedBy == nil || *got.VerifiedBy != "officer-2" || got.VerifiedAt == nil {
		t.Fatalf("verification not stamped: %+v", got)
	}
}

func TestDocument_GetByDocumentID_NotFound(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewDocumentRepository(db)

	_, err := repo.GetByDocumentID(context.Background(), "ffffffffffffffffffffffffffffffff")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDocument_ListByLoanAndCustomer(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	customer := id.NewID32()
	loanA, loanB := uint64(7), uint64(8)

	docs := []*documentDomain.Document{
		makeDocument(customer, &loanA),
		makeDocument(customer, &loanA),
		makeDocument(customer, &loanB),
		makeDocument(customer, nil),
		makeDocument(id.NewID32(), nil),
	}
	for _, d := range docs {
		if err := repo.Create(ctx, d); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	onA, err := repo.ListByLoanID(ctx, loanA)
	if err != nil {
		t.Fatalf("ListByLoanID: %v", err)
	}
	if len(onA) != 2 || onA[0].DocumentID != docs[0].DocumentID || onA[1].DocumentID != docs[1].DocumentID {
		t.Fatalf("ListByLoanID = %+v", onA)
	}

	locked, err := repo.ListByLoanIDForUpdate(ctx, loanA)
	if err != nil || len(locked) != 2 || locked[0].DocumentID != docs[0].DocumentID {
		t.Fatalf("ListByLoanIDForUpdate = %+v, %v", locked, err)
	}

	none, err := repo.ListByLoanID(ctx, 99)
	if err != nil || len(none) != 0 {
		t.Fatalf("ListByLoanID(99) = %v, %v; want empty", none, err)
	}

	mine, err := repo.ListByCustomerID(ctx, customer)
	if err != nil {
		t.Fatalf("ListByCustomerID: %v", err)
	}
	if len(mine) != 4 {
		t.Fatalf("ListByCustomerID len = %d, want 4", len(mine))
	}
}

func TestDocument_ListFiltersAndPages(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	customer := id.NewID32()
	base := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)
	var docs []*documentDomain.Document
	for i := 0; i < 4; i++ {
		d := makeDocument(customer, nil)
		if i%2 == 1 {
			d.Type = documentDomain.TypeIncome
			d.Status = documentDomain.StatusVerified
		}
		d.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if err := repo.Create(ctx, d); err != nil {
			t.Fatalf("Create: %v", err)
		}
		docs = append(docs, d)
	}
	other := makeDocument(id.NewID32(), nil)
	other.CreatedAt = base.Add(-time.Hour)
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create: %v", err)
	}

	page, total, err := repo.List(ctx, documentDomain.ListFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 5 || len(page) != 2 || page[0].DocumentID != docs[2].DocumentID {
		t.Fatalf("List page = %d items, total %d", len(page), total)
	}

	verified, total, err := repo.List(ctx, documentDomain.ListFilter{Status: documentDomain.StatusVerified})
	if err != nil || total != 2 || len(verified) != 2 || verified[0].DocumentID != docs[3].DocumentID {
		t.Fatalf("status filter: total %d, err %v", total, err)
	}

	_, total, err = repo.List(ctx, documentDomain.ListFilter{CustomerID: customer, Type: documentDomain.TypeIdentity})
	if err != nil || total != 2 {
		t.Fatalf("customer+type filter: total %d, err %v", total, err)
	}
}
