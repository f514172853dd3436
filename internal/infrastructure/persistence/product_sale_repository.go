package persistence

import (
	"context"
	"errors"

	"github.com/clinic/backend/internal/domain/billing"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormProductSaleRepository implements billing.ProductSaleRepository using GORM
type GormProductSaleRepository struct {
	db *gorm.DB
}

// NewGormProductSaleRepository creates a new GormProductSaleRepository
func NewGormProductSaleRepository(db *gorm.DB) *GormProductSaleRepository {
	return &GormProductSaleRepository{db: db}
}

// Insert stores a new sale
func (r *GormProductSaleRepository) Insert(ctx context.Context, sale *billing.ProductSale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// FindByID finds a sale by its ID
func (r *GormProductSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.ProductSale, error) {
	var sale billing.ProductSale
	if err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByPatient lists a patient's sales, newest first
func (r *GormProductSaleRepository) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]billing.ProductSale, error) {
	var sales []billing.ProductSale
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// IncrementPaid atomically adds amount to the sale's paid amount
func (r *GormProductSaleRepository) IncrementPaid(ctx context.Context, patientID, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	return incrementPaid(r.db.WithContext(ctx), &billing.ProductSale{}, patientID, id, amount)
}

// Totals aggregates the patient's sale totals and paid amounts
func (r *GormProductSaleRepository) Totals(ctx context.Context, patientID uuid.UUID) (billing.CategoryTotals, error) {
	return categoryTotals(r.db.WithContext(ctx), &billing.ProductSale{}, "total_price", patientID)
}

// Ensure GormProductSaleRepository implements ProductSaleRepository
var _ billing.ProductSaleRepository = (*GormProductSaleRepository)(nil)
