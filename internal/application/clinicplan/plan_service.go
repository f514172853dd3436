package clinicplan

import (
	"context"

	"github.com/clinic/backend/internal/domain/catalog"
	"github.com/clinic/backend/internal/domain/clinicplan"
	"github.com/google/uuid"
)

// PlanService handles treatment plan business operations
type PlanService struct {
	planRepo clinicplan.PlanRepository
}

// NewPlanService creates a new PlanService
func NewPlanService(planRepo clinicplan.PlanRepository) *PlanService {
	return &PlanService{
		planRepo: planRepo,
	}
}

// SavePlan stores a new plan for the patient, replacing any prior
// active plan. Treatment positions follow the request order.
func (s *PlanService) SavePlan(ctx context.Context, patientID uuid.UUID, req SavePlanRequest) (*PlanResponse, error) {
	plan, err := clinicplan.NewTreatmentPlan(patientID, req.Notes)
	if err != nil {
		return nil, err
	}

	for _, input := range req.Treatments {
		if _, err := plan.AddTreatment(
			input.Name,
			catalog.TreatmentType(input.Type),
			input.Quantity,
			input.Status,
			input.ScheduledDate,
			input.Notes,
		); err != nil {
			return nil, err
		}
	}

	if err := s.planRepo.ReplaceActivePlan(ctx, plan); err != nil {
		return nil, err
	}

	return ToPlanResponse(plan), nil
}

// GetActivePlan retrieves the patient's current active plan
func (s *PlanService) GetActivePlan(ctx context.Context, patientID uuid.UUID) (*PlanResponse, error) {
	plan, err := s.planRepo.FindActiveByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	return ToPlanResponse(plan), nil
}

// GetActiveInstances lists the patient's active plan treatments,
// ordered by position then creation time
func (s *PlanService) GetActiveInstances(ctx context.Context, patientID uuid.UUID) ([]PlanTreatmentResponse, error) {
	instances, err := s.planRepo.FindActiveInstances(ctx, patientID)
	if err != nil {
		return nil, err
	}

	responses := make([]PlanTreatmentResponse, 0, len(instances))
	for i := range instances {
		responses = append(responses, *ToPlanTreatmentResponse(&instances[i]))
	}

	return responses, nil
}

// UpdateStatus moves a plan treatment to a new status. Re-applying the
// current status leaves the history untouched.
func (s *PlanService) UpdateStatus(ctx context.Context, treatmentID uuid.UUID, req UpdateStatusRequest) (*PlanTreatmentResponse, error) {
	instance, err := s.planRepo.FindTreatmentByID(ctx, treatmentID)
	if err != nil {
		return nil, err
	}

	if instance.ApplyStatus(req.Status) {
		if err := s.planRepo.SaveTreatment(ctx, instance); err != nil {
			return nil, err
		}
	}

	return ToPlanTreatmentResponse(instance), nil
}

// DeleteTreatment removes a single instance from its plan
func (s *PlanService) DeleteTreatment(ctx context.Context, treatmentID uuid.UUID) error {
	return s.planRepo.DeleteTreatment(ctx, treatmentID)
}

// DeleteAllForPatient removes all plans and instances of a patient
func (s *PlanService) DeleteAllForPatient(ctx context.Context, patientID uuid.UUID) error {
	return s.planRepo.DeleteAllForPatient(ctx, patientID)
}
