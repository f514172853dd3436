package patient

import (
	"context"

	"github.com/clinic/backend/internal/domain/patient"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PatientService handles patient directory operations
type PatientService struct {
	patientRepo patient.Repository
}

// NewPatientService creates a new PatientService
func NewPatientService(patientRepo patient.Repository) *PatientService {
	return &PatientService{
		patientRepo: patientRepo,
	}
}

// Create registers a patient
func (s *PatientService) Create(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
	p, err := patient.NewPatient(req.FirstName, req.LastName, req.Phone, req.Email, req.DateOfBirth, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.patientRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	return ToPatientResponse(p), nil
}

// GetByID retrieves a patient by ID
func (s *PatientService) GetByID(ctx context.Context, id uuid.UUID) (*PatientResponse, error) {
	p, err := s.patientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToPatientResponse(p), nil
}

// List lists patients matching the filter
func (s *PatientService) List(ctx context.Context, filter PatientListFilter) ([]PatientResponse, int64, error) {
	domainFilter := shared.Filter{
		Filters: make(map[string]interface{}),
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}

	var (
		patients []patient.Patient
		err      error
	)
	if filter.Search != "" {
		patients, err = s.patientRepo.Search(ctx, filter.Search, domainFilter)
	} else {
		patients, err = s.patientRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.patientRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, *ToPatientResponse(&patients[i]))
	}

	return responses, total, nil
}

// Update applies a partial update to a patient
func (s *PatientService) Update(ctx context.Context, id uuid.UUID, req UpdatePatientRequest) (*PatientResponse, error) {
	p, err := s.patientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.Update(req.FirstName, req.LastName, req.Phone, req.Email, req.Notes, req.DateOfBirth); err != nil {
		return nil, err
	}

	if err := s.patientRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	return ToPatientResponse(p), nil
}

// Deactivate hides a patient from active listings. Ledger and plan
// rows keep referencing the patient.
func (s *PatientService) Deactivate(ctx context.Context, id uuid.UUID) error {
	p, err := s.patientRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	p.Deactivate()

	return s.patientRepo.Save(ctx, p)
}
