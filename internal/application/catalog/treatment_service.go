package catalog

import (
	"context"

	"github.com/clinic/backend/internal/domain/catalog"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TreatmentService handles catalog business operations
type TreatmentService struct {
	treatmentRepo catalog.TreatmentRepository
}

// NewTreatmentService creates a new TreatmentService
func NewTreatmentService(treatmentRepo catalog.TreatmentRepository) *TreatmentService {
	return &TreatmentService{
		treatmentRepo: treatmentRepo,
	}
}

// Create adds a new catalog entry. Names are unique across active and
// inactive entries.
func (s *TreatmentService) Create(ctx context.Context, req CreateTreatmentRequest) (*TreatmentResponse, error) {
	exists, err := s.treatmentRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_NAME", "Treatment with this name already exists")
	}

	treatment, err := catalog.NewTreatment(req.Name, catalog.TreatmentType(req.Type), req.DefaultPrice, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.treatmentRepo.Save(ctx, treatment); err != nil {
		return nil, err
	}

	return ToTreatmentResponse(treatment), nil
}

// GetByID retrieves a catalog entry by ID
func (s *TreatmentService) GetByID(ctx context.Context, id uuid.UUID) (*TreatmentResponse, error) {
	treatment, err := s.treatmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToTreatmentResponse(treatment), nil
}

// ListActive lists active catalog entries ordered by name
func (s *TreatmentService) ListActive(ctx context.Context) ([]TreatmentResponse, error) {
	treatments, err := s.treatmentRepo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]TreatmentResponse, 0, len(treatments))
	for i := range treatments {
		responses = append(responses, *ToTreatmentResponse(&treatments[i]))
	}

	return responses, nil
}

// List lists catalog entries matching the filter
func (s *TreatmentService) List(ctx context.Context, filter TreatmentListFilter) ([]TreatmentResponse, int64, error) {
	domainFilter := shared.Filter{
		Filters: make(map[string]interface{}),
	}

	if filter.Search != "" {
		domainFilter.Search = filter.Search
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}

	treatments, err := s.treatmentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.treatmentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TreatmentResponse, 0, len(treatments))
	for i := range treatments {
		responses = append(responses, *ToTreatmentResponse(&treatments[i]))
	}

	return responses, total, nil
}

// Update applies a partial update to a catalog entry. A renamed entry
// must not collide with another entry's name.
func (s *TreatmentService) Update(ctx context.Context, id uuid.UUID, req UpdateTreatmentRequest) (*TreatmentResponse, error) {
	treatment, err := s.treatmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != treatment.Name {
		exists, err := s.treatmentRepo.ExistsByName(ctx, *req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("DUPLICATE_NAME", "Treatment with this name already exists")
		}
	}

	var treatmentType *catalog.TreatmentType
	if req.Type != nil {
		t := catalog.TreatmentType(*req.Type)
		treatmentType = &t
	}

	if err := treatment.Update(req.Name, treatmentType, req.DefaultPrice, req.Description); err != nil {
		return nil, err
	}

	if err := s.treatmentRepo.Save(ctx, treatment); err != nil {
		return nil, err
	}

	return ToTreatmentResponse(treatment), nil
}

// Deactivate hides a catalog entry from pricing and active listings.
// Entries are never deleted: past ledger lines keep their amounts.
func (s *TreatmentService) Deactivate(ctx context.Context, id uuid.UUID) error {
	treatment, err := s.treatmentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := treatment.Deactivate(); err != nil {
		return err
	}

	return s.treatmentRepo.Save(ctx, treatment)
}

// LookupPrice returns the active catalog price for an exact name
func (s *TreatmentService) LookupPrice(ctx context.Context, name string) (*PriceResponse, error) {
	treatment, err := s.treatmentRepo.FindActiveByName(ctx, name)
	if err != nil {
		return nil, err
	}

	return &PriceResponse{Name: treatment.Name, Price: treatment.DefaultPrice}, nil
}
