package persistence

import (
	"context"
	"errors"

	"github.com/clinic/backend/internal/domain/clinicplan"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPlanRepository implements clinicplan.PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// FindByID finds a plan by ID with its treatment instances
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*clinicplan.TreatmentPlan, error) {
	var plan clinicplan.TreatmentPlan
	if err := r.db.WithContext(ctx).
		Preload("Treatments", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindActiveByPatient finds the patient's current active plan
func (r *GormPlanRepository) FindActiveByPatient(ctx context.Context, patientID uuid.UUID) (*clinicplan.TreatmentPlan, error) {
	var plan clinicplan.TreatmentPlan
	if err := r.db.WithContext(ctx).
		Preload("Treatments", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Where("patient_id = ? AND active = ?", patientID, true).
		Order("created_at DESC").
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindActiveInstances lists the treatment instances of the patient's active plan
func (r *GormPlanRepository) FindActiveInstances(ctx context.Context, patientID uuid.UUID) ([]clinicplan.PlanTreatment, error) {
	activePlanIDs := r.db.Model(&clinicplan.TreatmentPlan{}).
		Select("id").
		Where("patient_id = ? AND active = ?", patientID, true)

	var instances []clinicplan.PlanTreatment
	if err := r.db.WithContext(ctx).
		Where("plan_id IN (?)", activePlanIDs).
		Order("position ASC, created_at ASC").
		Find(&instances).Error; err != nil {
		return nil, err
	}
	return instances, nil
}

// ReplaceActivePlan deactivates any prior active plan for the patient and
// stores the new one in a single transaction
func (r *GormPlanRepository) ReplaceActivePlan(ctx context.Context, plan *clinicplan.TreatmentPlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&clinicplan.TreatmentPlan{}).
			Where("patient_id = ? AND active = ?", plan.PatientID, true).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Create(plan).Error
	})
}

// FindTreatmentByID finds a single plan treatment instance
func (r *GormPlanRepository) FindTreatmentByID(ctx context.Context, id uuid.UUID) (*clinicplan.PlanTreatment, error) {
	var instance clinicplan.PlanTreatment
	if err := r.db.WithContext(ctx).First(&instance, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &instance, nil
}

// SaveTreatment persists changes to a single instance
func (r *GormPlanRepository) SaveTreatment(ctx context.Context, treatment *clinicplan.PlanTreatment) error {
	return r.db.WithContext(ctx).Save(treatment).Error
}

// DeleteTreatment removes a single instance from its plan
func (r *GormPlanRepository) DeleteTreatment(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&clinicplan.PlanTreatment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteAllForPatient removes all plans and instances of a patient
func (r *GormPlanRepository) DeleteAllForPatient(ctx context.Context, patientID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", patientID).
			Delete(&clinicplan.PlanTreatment{}).Error; err != nil {
			return err
		}
		return tx.Where("patient_id = ?", patientID).
			Delete(&clinicplan.TreatmentPlan{}).Error
	})
}

// Ensure GormPlanRepository implements PlanRepository
var _ clinicplan.PlanRepository = (*GormPlanRepository)(nil)
