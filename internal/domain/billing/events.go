package billing

import (
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeTreatmentCharge = "TreatmentCharge"
	AggregateTypePayment         = "PaymentRecord"
)

// Event type constants
const (
	EventTypeChargeRecorded  = "TreatmentChargeRecorded"
	EventTypePaymentRecorded = "PaymentRecorded"
)

// ChargeRecordedEvent is published when a plan instance is priced into
// the ledger
type ChargeRecordedEvent struct {
	shared.BaseDomainEvent
	ChargeID      uuid.UUID       `json:"charge_id"`
	PatientID     uuid.UUID       `json:"patient_id"`
	TreatmentName string          `json:"treatment_name"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewChargeRecordedEvent creates a new ChargeRecordedEvent
func NewChargeRecordedEvent(c *TreatmentCharge) *ChargeRecordedEvent {
	return &ChargeRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeChargeRecorded, AggregateTypeTreatmentCharge, c.ID),
		ChargeID:        c.ID,
		PatientID:       c.PatientID,
		TreatmentName:   c.TreatmentName,
		Amount:          c.Amount,
	}
}

// PaymentRecordedEvent is published when a payment is received
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID       `json:"payment_id"`
	PatientID uuid.UUID       `json:"patient_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(p *PaymentRecord) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRecorded, AggregateTypePayment, p.ID),
		PaymentID:       p.ID,
		PatientID:       p.PatientID,
		Amount:          p.Amount,
		Method:          p.Method,
	}
}
