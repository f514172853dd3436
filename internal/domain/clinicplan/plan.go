package clinicplan

import (
	"time"

	"github.com/clinic/backend/internal/domain/catalog"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Plan treatment statuses. The list is advisory: transitions are not
// restricted and callers may introduce their own states.
const (
	StatusTodo       = "todo"
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
	StatusCancelled  = "cancelled"
)

// TreatmentPlan is a patient's active course of treatments. A patient
// has at most one active plan; saving a new plan replaces the old one.
type TreatmentPlan struct {
	shared.BaseAggregateRoot
	PatientID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Active     bool            `gorm:"not null;default:true"`
	Notes      string          `gorm:"type:text"`
	Treatments []PlanTreatment `gorm:"foreignKey:PlanID"`
}

// TableName returns the table name for GORM
func (TreatmentPlan) TableName() string {
	return "clinic_treatment_plans"
}

// PlanTreatment is a single planned treatment instance inside a plan
type PlanTreatment struct {
	shared.BaseEntity
	PlanID         uuid.UUID             `gorm:"type:uuid;not null;index"`
	PatientID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	TreatmentName  string                `gorm:"type:varchar(200);not null"`
	TreatmentType  catalog.TreatmentType `gorm:"type:varchar(50);not null"`
	Quantity       int                   `gorm:"not null;default:1"`
	CompletedCount int                   `gorm:"not null;default:0"`
	Status         string                `gorm:"type:varchar(50);not null;default:'todo'"`
	ScheduledDate  *time.Time
	CompletedDate  *time.Time
	Notes          string        `gorm:"type:text"`
	Position       int           `gorm:"not null;default:0"`
	History        StatusHistory `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (PlanTreatment) TableName() string {
	return "clinic_treatments"
}

// NewTreatmentPlan creates a new active plan for a patient
func NewTreatmentPlan(patientID uuid.UUID, notes string) (*TreatmentPlan, error) {
	if patientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PATIENT", "Patient ID is required")
	}

	plan := &TreatmentPlan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PatientID:         patientID,
		Active:            true,
		Notes:             notes,
	}

	plan.AddDomainEvent(NewPlanCreatedEvent(plan))

	return plan, nil
}

// AddTreatment appends a treatment instance at the end of the plan.
// An empty status defaults to todo; quantity below one is coerced to one.
func (p *TreatmentPlan) AddTreatment(name string, treatmentType catalog.TreatmentType, quantity int, status string, scheduledDate *time.Time, notes string) (*PlanTreatment, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Treatment name cannot be empty")
	}
	if treatmentType == "" {
		treatmentType = catalog.TreatmentTypeOther
	}
	if quantity < 1 {
		quantity = 1
	}
	if status == "" {
		status = StatusTodo
	}

	instance := &PlanTreatment{
		BaseEntity:    shared.NewBaseEntity(),
		PlanID:        p.ID,
		PatientID:     p.PatientID,
		TreatmentName: name,
		TreatmentType: treatmentType,
		Quantity:      quantity,
		Status:        status,
		ScheduledDate: scheduledDate,
		Notes:         notes,
		Position:      len(p.Treatments),
		History:       StatusHistory{},
	}

	p.Treatments = append(p.Treatments, *instance)
	p.UpdatedAt = time.Now()

	return instance, nil
}

// Deactivate marks the plan as superseded
func (p *TreatmentPlan) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// ApplyStatus moves the instance to a new status. A transition is
// recorded in the history only when the status actually changes;
// setting the current status again is a no-op.
func (pt *PlanTreatment) ApplyStatus(newStatus string) bool {
	if newStatus == "" {
		newStatus = StatusTodo
	}
	if newStatus == pt.Status {
		return false
	}

	now := time.Now()
	pt.History = append(pt.History, StatusChange{
		From:      pt.Status,
		To:        newStatus,
		ChangedAt: now,
	})
	pt.Status = newStatus
	pt.UpdatedAt = now

	if newStatus == StatusDone {
		pt.CompletedDate = &now
		if pt.CompletedCount < pt.Quantity {
			pt.CompletedCount++
		}
	}

	return true
}

// IsDone returns true once the instance reached the done status
func (pt *PlanTreatment) IsDone() bool {
	return pt.Status == StatusDone
}
