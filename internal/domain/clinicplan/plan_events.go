package clinicplan

import (
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeTreatmentPlan = "TreatmentPlan"

// Event type constants
const (
	EventTypePlanCreated            = "TreatmentPlanCreated"
	EventTypePlanReplaced           = "TreatmentPlanReplaced"
	EventTypeTreatmentStatusChanged = "PlanTreatmentStatusChanged"
)

// PlanCreatedEvent is published when a patient receives a new plan
type PlanCreatedEvent struct {
	shared.BaseDomainEvent
	PlanID    uuid.UUID `json:"plan_id"`
	PatientID uuid.UUID `json:"patient_id"`
}

// NewPlanCreatedEvent creates a new PlanCreatedEvent
func NewPlanCreatedEvent(p *TreatmentPlan) *PlanCreatedEvent {
	return &PlanCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanCreated, AggregateTypeTreatmentPlan, p.ID),
		PlanID:          p.ID,
		PatientID:       p.PatientID,
	}
}

// PlanReplacedEvent is published when saving a plan supersedes a prior
// active plan for the same patient
type PlanReplacedEvent struct {
	shared.BaseDomainEvent
	PlanID     uuid.UUID `json:"plan_id"`
	PatientID  uuid.UUID `json:"patient_id"`
	ReplacedID uuid.UUID `json:"replaced_id"`
}

// NewPlanReplacedEvent creates a new PlanReplacedEvent
func NewPlanReplacedEvent(p *TreatmentPlan, replacedID uuid.UUID) *PlanReplacedEvent {
	return &PlanReplacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanReplaced, AggregateTypeTreatmentPlan, p.ID),
		PlanID:          p.ID,
		PatientID:       p.PatientID,
		ReplacedID:      replacedID,
	}
}

// TreatmentStatusChangedEvent is published when a plan treatment moves
// to a different status
type TreatmentStatusChangedEvent struct {
	shared.BaseDomainEvent
	TreatmentID uuid.UUID `json:"treatment_id"`
	PatientID   uuid.UUID `json:"patient_id"`
	From        string    `json:"from"`
	To          string    `json:"to"`
}

// NewTreatmentStatusChangedEvent creates a new TreatmentStatusChangedEvent
func NewTreatmentStatusChangedEvent(pt *PlanTreatment, from string) *TreatmentStatusChangedEvent {
	return &TreatmentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTreatmentStatusChanged, AggregateTypeTreatmentPlan, pt.PlanID),
		TreatmentID:     pt.ID,
		PatientID:       pt.PatientID,
		From:            from,
		To:              pt.Status,
	}
}
