package catalog

import (
	"context"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TreatmentRepository defines the interface for catalog persistence
type TreatmentRepository interface {
	// FindByID finds a treatment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Treatment, error)

	// FindByName finds a treatment by exact name, active or not
	FindByName(ctx context.Context, name string) (*Treatment, error)

	// FindActiveByName finds an active treatment by exact name
	FindActiveByName(ctx context.Context, name string) (*Treatment, error)

	// FindAllActive lists active treatments ordered by name ascending
	FindAllActive(ctx context.Context) ([]Treatment, error)

	// FindAll lists treatments matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Treatment, error)

	// Save creates or updates a treatment
	Save(ctx context.Context, treatment *Treatment) error

	// ExistsByName checks whether any treatment, active or inactive,
	// carries the given name (exact, case-sensitive)
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Count counts treatments matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
