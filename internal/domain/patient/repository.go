package patient

import (
	"context"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for patient persistence
type Repository interface {
	// FindByID finds a patient by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	// FindAll lists patients matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Patient, error)

	// Search lists active patients whose name matches the query
	Search(ctx context.Context, query string, filter shared.Filter) ([]Patient, error)

	// Exists reports whether a patient with the given ID exists
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Save creates or updates a patient
	Save(ctx context.Context, p *Patient) error

	// Count counts patients matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
