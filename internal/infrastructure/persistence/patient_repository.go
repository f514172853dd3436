package persistence

import (
	"context"
	"errors"

	"github.com/clinic/backend/internal/domain/patient"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPatientRepository implements patient.Repository using GORM
type GormPatientRepository struct {
	db *gorm.DB
}

// NewGormPatientRepository creates a new GormPatientRepository
func NewGormPatientRepository(db *gorm.DB) *GormPatientRepository {
	return &GormPatientRepository{db: db}
}

// FindByID finds a patient by ID
func (r *GormPatientRepository) FindByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	var p patient.Patient
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindAll lists patients matching the filter
func (r *GormPatientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]patient.Patient, error) {
	var patients []patient.Patient
	query := r.applyPagination(r.db.WithContext(ctx).Model(&patient.Patient{}), filter).
		Order("last_name ASC, first_name ASC")

	if err := query.Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

// Search lists active patients whose name matches the query
func (r *GormPatientRepository) Search(ctx context.Context, search string, filter shared.Filter) ([]patient.Patient, error) {
	var patients []patient.Patient
	searchPattern := "%" + search + "%"
	query := r.applyPagination(r.db.WithContext(ctx).Model(&patient.Patient{}), filter).
		Where("active = ?", true).
		Where("first_name ILIKE ? OR last_name ILIKE ?", searchPattern, searchPattern).
		Order("last_name ASC, first_name ASC")

	if err := query.Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

// Exists reports whether a patient with the given ID exists
func (r *GormPatientRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&patient.Patient{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a patient
func (r *GormPatientRepository) Save(ctx context.Context, p *patient.Patient) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Count counts patients matching the filter
func (r *GormPatientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&patient.Patient{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPatientRepository) applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// Ensure GormPatientRepository implements Repository
var _ patient.Repository = (*GormPatientRepository)(nil)
