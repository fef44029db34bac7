package mysql

import (
	"context"

	customerDomain "loansaarthi-backend/internal/domain/customer"

	"gorm.io/gorm"
)

type CustomerRepository struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) *CustomerRepository { return &CustomerRepository{db: db} }

func (r *CustomerRepository) Create(ctx context.Context, c *customerDomain.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CustomerRepository) Save(ctx context.Context, c *customerDomain.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CustomerRepository) GetByCustomerID(ctx context.Context, customerID string) (*customerDomain.Customer, error) {
	var out customerDomain.Customer
	res := r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&out)
	return &out, res.Error
}

func (r *CustomerRepository) Delete(ctx context.Context, c *customerDomain.Customer, deletedBy string) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(c).Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	c.DeletedBy = deletedBy
	return db.Delete(c).Error
}
