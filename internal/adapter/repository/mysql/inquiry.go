package mysql

import (
	"context"

	inquiryDomain "loansaarthi-backend/internal/domain/inquiry"

	"gorm.io/gorm"
)

type InquiryRepository struct{ db *gorm.DB }

func NewInquiryRepository(db *gorm.DB) *InquiryRepository { return &InquiryRepository{db: db} }

func (r *InquiryRepository) Create(ctx context.Context, q *inquiryDomain.Inquiry) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *InquiryRepository) Save(ctx context.Context, q *inquiryDomain.Inquiry) error {
	return r.db.WithContext(ctx).Save(q).Error
}

func (r *InquiryRepository) GetByInquiryID(ctx context.Context, inquiryID string) (*inquiryDomain.Inquiry, error) {
	var out inquiryDomain.Inquiry
	res := r.db.WithContext(ctx).Where("inquiry_id = ?", inquiryID).First(&out)
	return &out, res.Error
}

func (r *InquiryRepository) filtered(ctx context.Context, f inquiryDomain.ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&inquiryDomain.Inquiry{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (r *InquiryRepository) List(ctx context.Context, f inquiryDomain.ListFilter) ([]inquiryDomain.Inquiry, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.filtered(ctx, f).Order("created_at DESC, id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var out []inquiryDomain.Inquiry
	if err := q.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
