package clinicplan

import (
	"context"

	"github.com/google/uuid"
)

// PlanRepository defines the interface for treatment plan persistence
type PlanRepository interface {
	// FindByID finds a plan by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*TreatmentPlan, error)

	// FindActiveByPatient finds the patient's current active plan
	FindActiveByPatient(ctx context.Context, patientID uuid.UUID) (*TreatmentPlan, error)

	// FindActiveInstances lists the treatment instances of the patient's
	// active plan, ordered by position then creation time
	FindActiveInstances(ctx context.Context, patientID uuid.UUID) ([]PlanTreatment, error)

	// ReplaceActivePlan deactivates any prior active plan for the patient
	// and stores the new one, in a single transaction
	ReplaceActivePlan(ctx context.Context, plan *TreatmentPlan) error

	// FindTreatmentByID finds a single plan treatment instance
	FindTreatmentByID(ctx context.Context, id uuid.UUID) (*PlanTreatment, error)

	// SaveTreatment persists changes to a single instance
	SaveTreatment(ctx context.Context, treatment *PlanTreatment) error

	// DeleteTreatment removes a single instance from its plan
	DeleteTreatment(ctx context.Context, id uuid.UUID) error

	// DeleteAllForPatient removes all plans and instances of a patient
	DeleteAllForPatient(ctx context.Context, patientID uuid.UUID) error
}
