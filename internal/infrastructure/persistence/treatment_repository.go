package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/clinic/backend/internal/domain/catalog"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTreatmentRepository implements catalog.TreatmentRepository using GORM
type GormTreatmentRepository struct {
	db *gorm.DB
}

// NewGormTreatmentRepository creates a new GormTreatmentRepository
func NewGormTreatmentRepository(db *gorm.DB) *GormTreatmentRepository {
	return &GormTreatmentRepository{db: db}
}

// FindByID finds a treatment by its ID
func (r *GormTreatmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Treatment, error) {
	var treatment catalog.Treatment
	if err := r.db.WithContext(ctx).First(&treatment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &treatment, nil
}

// FindByName finds a treatment by exact name, active or not
func (r *GormTreatmentRepository) FindByName(ctx context.Context, name string) (*catalog.Treatment, error) {
	var treatment catalog.Treatment
	if err := r.db.WithContext(ctx).First(&treatment, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &treatment, nil
}

// FindActiveByName finds an active treatment by exact name
func (r *GormTreatmentRepository) FindActiveByName(ctx context.Context, name string) (*catalog.Treatment, error) {
	var treatment catalog.Treatment
	if err := r.db.WithContext(ctx).
		Where("name = ? AND active = ?", name, true).
		First(&treatment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &treatment, nil
}

// FindAllActive lists active treatments ordered by name ascending
func (r *GormTreatmentRepository) FindAllActive(ctx context.Context) ([]catalog.Treatment, error) {
	var treatments []catalog.Treatment
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&treatments).Error; err != nil {
		return nil, err
	}
	return treatments, nil
}

// FindAll lists treatments matching the filter
func (r *GormTreatmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Treatment, error) {
	var treatments []catalog.Treatment
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Treatment{}), filter)

	if err := query.Find(&treatments).Error; err != nil {
		return nil, err
	}
	return treatments, nil
}

// Save creates or updates a treatment
func (r *GormTreatmentRepository) Save(ctx context.Context, treatment *catalog.Treatment) error {
	return r.db.WithContext(ctx).Save(treatment).Error
}

// ExistsByName checks whether any treatment carries the given name
func (r *GormTreatmentRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Treatment{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts treatments matching the filter
func (r *GormTreatmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Treatment{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// sortableTreatmentColumns lists the columns FindAll accepts in
// OrderBy. Anything else falls back to the name ordering.
var sortableTreatmentColumns = map[string]bool{
	"name":          true,
	"type":          true,
	"default_price": true,
	"created_at":    true,
	"updated_at":    true,
}

// applyFilter applies filter options to the query
func (r *GormTreatmentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if sortableTreatmentColumns[filter.OrderBy] {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTreatmentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		}
	}

	return query
}

// Ensure GormTreatmentRepository implements TreatmentRepository
var _ catalog.TreatmentRepository = (*GormTreatmentRepository)(nil)
