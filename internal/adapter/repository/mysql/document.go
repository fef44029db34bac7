package mysql

import (
	"context"

	documentDomain "loansaarthi-backend/internal/domain/document"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentRepository struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) *DocumentRepository { return &DocumentRepository{db: db} }

func (r *DocumentRepository) Create(ctx context.Context, d *documentDomain.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DocumentRepository) Save(ctx context.Context, d *documentDomain.Document) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DocumentRepository) GetByDocumentID(ctx context.Context, documentID string) (*documentDomain.Document, error) {
	var out documentDomain.Document
	res := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		First(&out)
	return &out, res.Error
}

func (r *DocumentRepository) GetByDocumentIDForUpdate(ctx context.Context, documentID string) (*documentDomain.Document, error) {
	var out documentDomain.Document
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("document_id = ?", documentID).
		First(&out)
	return &out, res.Error
}

func (r *DocumentRepository) ListByLoanID(ctx context.Context, loanNumericID uint64) ([]documentDomain.Document, error) {
	var out []documentDomain.Document
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

// ListByLoanIDForUpdate locks the rows it reads, so a gate check inside a
// loan tx always sees the latest committed statuses.
func (r *DocumentRepository) ListByLoanIDForUpdate(ctx context.Context, loanNumericID uint64) ([]documentDomain.Document, error) {
	var out []documentDomain.Document
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanNumericID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *DocumentRepository) ListByCustomerID(ctx context.Context, customerID string) ([]documentDomain.Document, error) {
	var out []documentDomain.Document
	res := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *DocumentRepository) filtered(ctx context.Context, f documentDomain.ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&documentDomain.Document{})
	if f.CustomerID != "" {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	return q
}

func (r *DocumentRepository) List(ctx context.Context, f documentDomain.ListFilter) ([]documentDomain.Document, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.filtered(ctx, f).Order("created_at DESC, id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var out []documentDomain.Document
	if err := q.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
