package persistence

import (
	"context"
	"errors"

	"github.com/clinic/backend/internal/domain/billing"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormTreatmentChargeRepository implements billing.TreatmentChargeRepository using GORM
type GormTreatmentChargeRepository struct {
	db *gorm.DB
}

// NewGormTreatmentChargeRepository creates a new GormTreatmentChargeRepository
func NewGormTreatmentChargeRepository(db *gorm.DB) *GormTreatmentChargeRepository {
	return &GormTreatmentChargeRepository{db: db}
}

// Insert stores a new charge. Hitting the unique charge index leaves the
// existing row untouched and reports created=false.
func (r *GormTreatmentChargeRepository) Insert(ctx context.Context, charge *billing.TreatmentCharge) (bool, error) {
	if err := r.db.WithContext(ctx).Create(charge).Error; err != nil {
		if isDuplicateKey(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// FindByID finds a charge by its ID
func (r *GormTreatmentChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.TreatmentCharge, error) {
	var charge billing.TreatmentCharge
	if err := r.db.WithContext(ctx).First(&charge, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &charge, nil
}

// FindByPatient lists a patient's charges, newest first
func (r *GormTreatmentChargeRepository) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]billing.TreatmentCharge, error) {
	var charges []billing.TreatmentCharge
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&charges).Error; err != nil {
		return nil, err
	}
	return charges, nil
}

// IncrementPaid atomically adds amount to the charge's paid amount
func (r *GormTreatmentChargeRepository) IncrementPaid(ctx context.Context, patientID, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	return incrementPaid(r.db.WithContext(ctx), &billing.TreatmentCharge{}, patientID, id, amount)
}

// Totals aggregates the patient's charge amounts and paid amounts
func (r *GormTreatmentChargeRepository) Totals(ctx context.Context, patientID uuid.UUID) (billing.CategoryTotals, error) {
	return categoryTotals(r.db.WithContext(ctx), &billing.TreatmentCharge{}, "amount", patientID)
}

// isDuplicateKey reports whether err is a unique constraint violation.
// TranslateError maps these to gorm.ErrDuplicatedKey; the pq code is
// checked as well for raw SQL paths.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// incrementPaid applies an atomic paid_amount update on the given model.
// The row must belong to the patient; returns false when no row matches.
func incrementPaid(db *gorm.DB, model interface{}, patientID, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	result := db.Model(model).
		Where("id = ? AND patient_id = ?", id, patientID).
		Update("paid_amount", gorm.Expr("paid_amount + ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// categoryTotals sums the cost column and paid_amount for one patient,
// coalescing missing rows to zero.
func categoryTotals(db *gorm.DB, model interface{}, costColumn string, patientID uuid.UUID) (billing.CategoryTotals, error) {
	var row struct {
		Total decimal.Decimal
		Paid  decimal.Decimal
	}
	if err := db.Model(model).
		Select("COALESCE(SUM("+costColumn+"), 0) AS total, COALESCE(SUM(paid_amount), 0) AS paid").
		Where("patient_id = ?", patientID).
		Scan(&row).Error; err != nil {
		return billing.CategoryTotals{}, err
	}
	return billing.CategoryTotals{Total: row.Total, Paid: row.Paid}, nil
}

// Ensure GormTreatmentChargeRepository implements TreatmentChargeRepository
var _ billing.TreatmentChargeRepository = (*GormTreatmentChargeRepository)(nil)
