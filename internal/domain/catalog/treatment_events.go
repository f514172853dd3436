package catalog

import (
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeTreatment = "Treatment"

// Event type constants
const (
	EventTypeTreatmentAdded       = "TreatmentAdded"
	EventTypeTreatmentUpdated     = "TreatmentUpdated"
	EventTypeTreatmentDeactivated = "TreatmentDeactivated"
)

// TreatmentAddedEvent is published when a catalog entry is created
type TreatmentAddedEvent struct {
	shared.BaseDomainEvent
	TreatmentID  uuid.UUID       `json:"treatment_id"`
	Name         string          `json:"name"`
	Type         TreatmentType   `json:"type"`
	DefaultPrice decimal.Decimal `json:"default_price"`
}

// NewTreatmentAddedEvent creates a new TreatmentAddedEvent
func NewTreatmentAddedEvent(t *Treatment) *TreatmentAddedEvent {
	return &TreatmentAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTreatmentAdded, AggregateTypeTreatment, t.ID),
		TreatmentID:     t.ID,
		Name:            t.Name,
		Type:            t.Type,
		DefaultPrice:    t.DefaultPrice,
	}
}

// TreatmentUpdatedEvent is published when a catalog entry is updated
type TreatmentUpdatedEvent struct {
	shared.BaseDomainEvent
	TreatmentID  uuid.UUID       `json:"treatment_id"`
	Name         string          `json:"name"`
	DefaultPrice decimal.Decimal `json:"default_price"`
}

// NewTreatmentUpdatedEvent creates a new TreatmentUpdatedEvent
func NewTreatmentUpdatedEvent(t *Treatment) *TreatmentUpdatedEvent {
	return &TreatmentUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTreatmentUpdated, AggregateTypeTreatment, t.ID),
		TreatmentID:     t.ID,
		Name:            t.Name,
		DefaultPrice:    t.DefaultPrice,
	}
}

// TreatmentDeactivatedEvent is published when a catalog entry is deactivated
type TreatmentDeactivatedEvent struct {
	shared.BaseDomainEvent
	TreatmentID uuid.UUID `json:"treatment_id"`
	Name        string    `json:"name"`
}

// NewTreatmentDeactivatedEvent creates a new TreatmentDeactivatedEvent
func NewTreatmentDeactivatedEvent(t *Treatment) *TreatmentDeactivatedEvent {
	return &TreatmentDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTreatmentDeactivated, AggregateTypeTreatment, t.ID),
		TreatmentID:     t.ID,
		Name:            t.Name,
	}
}
