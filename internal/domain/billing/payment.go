package billing

import (
	"time"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment statuses. Only payments in the paid status count toward a
// patient's balance.
const (
	PaymentStatusPaid     = "paid"
	PaymentStatusPending  = "pending"
	PaymentStatusRefunded = "refunded"
)

// Payment methods
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

// ReferenceKind names the ledger line category a payment allocates to
type ReferenceKind string

const (
	ReferenceTreatment ReferenceKind = "treatment"
	ReferenceVisit     ReferenceKind = "visit"
	ReferenceProduct   ReferenceKind = "product"
)

// IsValid reports whether the kind is one of the known categories
func (k ReferenceKind) IsValid() bool {
	switch k {
	case ReferenceTreatment, ReferenceVisit, ReferenceProduct:
		return true
	}
	return false
}

// PaymentReference points a payment at a single ledger line
type PaymentReference struct {
	Kind ReferenceKind
	ID   uuid.UUID
}

// PaymentRecord is a payment received from a patient
type PaymentRecord struct {
	shared.BaseAggregateRoot
	PatientID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentType   string          `gorm:"type:varchar(50)"`
	Method        string          `gorm:"type:varchar(50);not null;default:'cash'"`
	Status        string          `gorm:"type:varchar(50);not null;default:'paid'"`
	PaymentDate   time.Time       `gorm:"not null"`
	Description   string          `gorm:"type:text"`
	Notes         string          `gorm:"type:text"`
	ReferenceKind *ReferenceKind  `gorm:"type:varchar(50)"`
	ReferenceID   *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (PaymentRecord) TableName() string {
	return "payments"
}

// NewPaymentRecord records a received payment. The reference is
// optional: unreferenced payments still count toward the balance.
func NewPaymentRecord(patientID uuid.UUID, amount decimal.Decimal, paymentType, method, description, notes string, reference *PaymentReference) (*PaymentRecord, error) {
	if patientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PATIENT", "Patient ID is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if method == "" {
		method = PaymentMethodCash
	}

	payment := &PaymentRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PatientID:         patientID,
		Amount:            amount,
		PaymentType:       paymentType,
		Method:            method,
		Status:            PaymentStatusPaid,
		PaymentDate:       time.Now(),
		Description:       description,
		Notes:             notes,
	}

	if reference != nil {
		if !reference.Kind.IsValid() {
			return nil, shared.NewDomainError("INVALID_REFERENCE", "Unknown payment reference kind")
		}
		if reference.ID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_REFERENCE", "Payment reference ID is required")
		}
		kind := reference.Kind
		id := reference.ID
		payment.ReferenceKind = &kind
		payment.ReferenceID = &id
	}

	payment.AddDomainEvent(NewPaymentRecordedEvent(payment))

	return payment, nil
}

// Reference returns the allocation target, if any
func (p *PaymentRecord) Reference() *PaymentReference {
	if p.ReferenceKind == nil || p.ReferenceID == nil {
		return nil
	}
	return &PaymentReference{Kind: *p.ReferenceKind, ID: *p.ReferenceID}
}

// CountsTowardBalance reports whether the payment contributes to the
// patient's total paid amount
func (p *PaymentRecord) CountsTowardBalance() bool {
	return p.Status == PaymentStatusPaid
}
