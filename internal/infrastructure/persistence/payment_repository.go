package persistence

import (
	"context"

	"github.com/clinic/backend/internal/domain/billing"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements billing.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Insert stores a payment without touching any ledger line
func (r *GormPaymentRepository) Insert(ctx context.Context, payment *billing.PaymentRecord) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// InsertWithAllocation stores the payment and increments the paid amount
// of its referenced ledger line in a single transaction. The payment is
// not stored when the line does not exist or belongs to another patient.
func (r *GormPaymentRepository) InsertWithAllocation(ctx context.Context, payment *billing.PaymentRecord) (bool, error) {
	ref := payment.Reference()
	if ref == nil {
		return false, shared.NewDomainError("INVALID_REFERENCE", "Payment carries no reference to allocate")
	}

	allocated := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model interface{}
		switch ref.Kind {
		case billing.ReferenceTreatment:
			model = &billing.TreatmentCharge{}
		case billing.ReferenceVisit:
			model = &billing.Visit{}
		case billing.ReferenceProduct:
			model = &billing.ProductSale{}
		default:
			return shared.NewDomainError("INVALID_REFERENCE", "Unknown payment reference kind")
		}

		result := tx.Model(model).
			Where("id = ? AND patient_id = ?", ref.ID, payment.PatientID).
			Update("paid_amount", gorm.Expr("paid_amount + ?", payment.Amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		allocated = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return allocated, nil
}

// FindByPatient lists a patient's payments, newest first
func (r *GormPaymentRepository) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]billing.PaymentRecord, error) {
	var payments []billing.PaymentRecord
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("payment_date DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// TotalPaid sums the patient's payments in the paid status
func (r *GormPaymentRepository) TotalPaid(ctx context.Context, patientID uuid.UUID) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&billing.PaymentRecord{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("patient_id = ? AND status = ?", patientID, billing.PaymentStatusPaid).
		Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)
