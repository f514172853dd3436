package billing

import (
	"time"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Visit payment statuses as reported by the billing view
const (
	VisitPaymentStatusPaid   = "paid"
	VisitPaymentStatusUnpaid = "unpaid"
)

// Visit is a clinic visit carrying its own cost and running paid amount
type Visit struct {
	shared.BaseAggregateRoot
	PatientID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	VisitDate  time.Time       `gorm:"not null;index"`
	VisitType  string          `gorm:"type:varchar(50)"`
	Purpose    string          `gorm:"type:text"`
	Cost       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaidAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Notes      string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Visit) TableName() string {
	return "visits"
}

// NewVisit records a clinic visit
func NewVisit(patientID uuid.UUID, visitDate time.Time, visitType, purpose string, cost decimal.Decimal, notes string) (*Visit, error) {
	if patientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PATIENT", "Patient ID is required")
	}
	if cost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Visit cost cannot be negative")
	}
	if visitDate.IsZero() {
		visitDate = time.Now()
	}

	return &Visit{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PatientID:         patientID,
		VisitDate:         visitDate,
		VisitType:         visitType,
		Purpose:           purpose,
		Cost:              cost,
		PaidAmount:        decimal.Zero,
		Notes:             notes,
	}, nil
}

// Outstanding returns the unpaid remainder, which can go negative on
// overpayment
func (v *Visit) Outstanding() decimal.Decimal {
	return v.Cost.Sub(v.PaidAmount)
}

// PaymentStatus reports paid once payments cover the cost
func (v *Visit) PaymentStatus() string {
	if !v.Outstanding().IsPositive() {
		return VisitPaymentStatusPaid
	}
	return VisitPaymentStatusUnpaid
}

// IsBillable reports whether the visit appears in the billing view
func (v *Visit) IsBillable() bool {
	return v.Cost.IsPositive()
}
