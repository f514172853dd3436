package billing

import (
	"context"

	"github.com/clinic/backend/internal/domain/billing"
	"github.com/clinic/backend/internal/domain/patient"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentService handles payment recording and allocation
type PaymentService struct {
	paymentRepo billing.PaymentRepository
	chargeRepo  billing.TreatmentChargeRepository
	visitRepo   billing.VisitRepository
	saleRepo    billing.ProductSaleRepository
	patientRepo patient.Repository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo billing.PaymentRepository,
	chargeRepo billing.TreatmentChargeRepository,
	visitRepo billing.VisitRepository,
	saleRepo billing.ProductSaleRepository,
	patientRepo patient.Repository,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		chargeRepo:  chargeRepo,
		visitRepo:   visitRepo,
		saleRepo:    saleRepo,
		patientRepo: patientRepo,
	}
}

// AddPayment records a payment. A referenced payment is stored and
// allocated to its ledger line in a single transaction: when the line
// does not exist, nothing is stored.
func (s *PaymentService) AddPayment(ctx context.Context, patientID uuid.UUID, req AddPaymentRequest) (*PaymentResponse, error) {
	if err := ensurePatientExists(ctx, s.patientRepo, patientID); err != nil {
		return nil, err
	}

	var reference *billing.PaymentReference
	if req.ReferenceKind != "" || req.ReferenceID != nil {
		if req.ReferenceKind == "" || req.ReferenceID == nil {
			return nil, shared.NewDomainError("INVALID_REFERENCE", "Payment reference needs both kind and ID")
		}
		reference = &billing.PaymentReference{
			Kind: billing.ReferenceKind(req.ReferenceKind),
			ID:   *req.ReferenceID,
		}
	}

	payment, err := billing.NewPaymentRecord(patientID, req.Amount, req.PaymentType, req.Method, req.Description, req.Notes, reference)
	if err != nil {
		return nil, err
	}

	if reference == nil {
		if err := s.paymentRepo.Insert(ctx, payment); err != nil {
			return nil, err
		}
		return ToPaymentResponse(payment), nil
	}

	allocated, err := s.paymentRepo.InsertWithAllocation(ctx, payment)
	if err != nil {
		return nil, err
	}
	if !allocated {
		return nil, shared.NewDomainError("REFERENCE_NOT_FOUND", "Referenced ledger line does not exist")
	}

	return ToPaymentResponse(payment), nil
}

// UpdatePaymentForItem adds amount to the paid amount of a single
// ledger line without recording a payment. The line must belong to the
// patient; returns false when it does not resolve. Overpayment is
// allowed.
func (s *PaymentService) UpdatePaymentForItem(ctx context.Context, patientID uuid.UUID, kind billing.ReferenceKind, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	if !amount.IsPositive() {
		return false, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if err := ensurePatientExists(ctx, s.patientRepo, patientID); err != nil {
		return false, err
	}

	switch kind {
	case billing.ReferenceTreatment:
		return s.chargeRepo.IncrementPaid(ctx, patientID, id, amount)
	case billing.ReferenceVisit:
		return s.visitRepo.IncrementPaid(ctx, patientID, id, amount)
	case billing.ReferenceProduct:
		return s.saleRepo.IncrementPaid(ctx, patientID, id, amount)
	default:
		return false, shared.NewDomainError("INVALID_REFERENCE", "Unknown payment reference kind")
	}
}

// GetPatientPayments lists a patient's payments, newest first
func (s *PaymentService) GetPatientPayments(ctx context.Context, patientID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, *ToPaymentResponse(&payments[i]))
	}

	return responses, nil
}
