package billing

import (
	"time"

	"github.com/clinic/backend/internal/domain/catalog"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TreatmentCharge is one priced treatment line in a patient's ledger.
// Each plan instance produces at most one charge: the combination of
// patient, reference, treatment name and type is unique in storage,
// so re-running synchronization never duplicates a line.
type TreatmentCharge struct {
	shared.BaseAggregateRoot
	PatientID     uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_charge_instance"`
	ReferenceID   uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_charge_instance"`
	TreatmentName string                `gorm:"type:varchar(200);not null;uniqueIndex:idx_charge_instance"`
	TreatmentType catalog.TreatmentType `gorm:"type:varchar(50);not null;uniqueIndex:idx_charge_instance"`
	Amount        decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	PaidAmount    decimal.Decimal       `gorm:"type:decimal(12,2);not null;default:0"`
	ChargedAt     time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TreatmentCharge) TableName() string {
	return "treatment_pricing"
}

// NewTreatmentCharge prices a plan instance into a ledger line
func NewTreatmentCharge(patientID, referenceID uuid.UUID, treatmentName string, treatmentType catalog.TreatmentType, amount decimal.Decimal) (*TreatmentCharge, error) {
	if patientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PATIENT", "Patient ID is required")
	}
	if referenceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Reference ID is required")
	}
	if treatmentName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Treatment name cannot be empty")
	}
	if treatmentType == "" {
		treatmentType = catalog.TreatmentTypeOther
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Charge amount cannot be negative")
	}

	charge := &TreatmentCharge{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PatientID:         patientID,
		ReferenceID:       referenceID,
		TreatmentName:     treatmentName,
		TreatmentType:     treatmentType,
		Amount:            amount,
		PaidAmount:        decimal.Zero,
		ChargedAt:         time.Now(),
	}

	charge.AddDomainEvent(NewChargeRecordedEvent(charge))

	return charge, nil
}

// Outstanding returns the unpaid remainder. Overpayment is allowed, so
// the result can go negative.
func (c *TreatmentCharge) Outstanding() decimal.Decimal {
	return c.Amount.Sub(c.PaidAmount)
}

// IsSettled returns true when payments cover the charge
func (c *TreatmentCharge) IsSettled() bool {
	return !c.Outstanding().IsPositive()
}
