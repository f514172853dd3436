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

// GormVisitRepository implements billing.VisitRepository using GORM
type GormVisitRepository struct {
	db *gorm.DB
}

// NewGormVisitRepository creates a new GormVisitRepository
func NewGormVisitRepository(db *gorm.DB) *GormVisitRepository {
	return &GormVisitRepository{db: db}
}

// Insert stores a new visit
func (r *GormVisitRepository) Insert(ctx context.Context, visit *billing.Visit) error {
	return r.db.WithContext(ctx).Create(visit).Error
}

// FindByID finds a visit by its ID
func (r *GormVisitRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Visit, error) {
	var visit billing.Visit
	if err := r.db.WithContext(ctx).First(&visit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &visit, nil
}

// FindByPatient lists a patient's visits, most recent visit first
func (r *GormVisitRepository) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]billing.Visit, error) {
	var visits []billing.Visit
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("visit_date DESC").
		Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}

// FindBillableByPatient lists visits with a positive cost, most recent first
func (r *GormVisitRepository) FindBillableByPatient(ctx context.Context, patientID uuid.UUID) ([]billing.Visit, error) {
	var visits []billing.Visit
	if err := r.db.WithContext(ctx).
		Where("patient_id = ? AND cost > 0", patientID).
		Order("visit_date DESC").
		Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}

// IncrementPaid atomically adds amount to the visit's paid amount
func (r *GormVisitRepository) IncrementPaid(ctx context.Context, patientID, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	return incrementPaid(r.db.WithContext(ctx), &billing.Visit{}, patientID, id, amount)
}

// Totals aggregates the patient's visit costs and paid amounts
func (r *GormVisitRepository) Totals(ctx context.Context, patientID uuid.UUID) (billing.CategoryTotals, error) {
	return categoryTotals(r.db.WithContext(ctx), &billing.Visit{}, "cost", patientID)
}

// Ensure GormVisitRepository implements VisitRepository
var _ billing.VisitRepository = (*GormVisitRepository)(nil)
