package billing

import (
	"context"

	"github.com/clinic/backend/internal/domain/billing"
	"github.com/clinic/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// SummaryService aggregates a patient's financial position
type SummaryService struct {
	chargeRepo  billing.TreatmentChargeRepository
	visitRepo   billing.VisitRepository
	saleRepo    billing.ProductSaleRepository
	paymentRepo billing.PaymentRepository
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(
	chargeRepo billing.TreatmentChargeRepository,
	visitRepo billing.VisitRepository,
	saleRepo billing.ProductSaleRepository,
	paymentRepo billing.PaymentRepository,
) *SummaryService {
	return &SummaryService{
		chargeRepo:  chargeRepo,
		visitRepo:   visitRepo,
		saleRepo:    saleRepo,
		paymentRepo: paymentRepo,
	}
}

// GetPatientSummary computes the patient's summary across all ledger
// categories. A patient with no ledger rows summarizes to all zeros.
// Balance is total payments received minus total due: positive means
// the patient is in credit.
func (s *SummaryService) GetPatientSummary(ctx context.Context, patientID uuid.UUID) (*SummaryResponse, error) {
	charges, err := s.chargeRepo.Totals(ctx, patientID)
	if err != nil {
		return nil, err
	}

	visits, err := s.visitRepo.Totals(ctx, patientID)
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.Totals(ctx, patientID)
	if err != nil {
		return nil, err
	}

	totalPaid, err := s.paymentRepo.TotalPaid(ctx, patientID)
	if err != nil {
		return nil, err
	}

	totalDue := charges.Total.Add(visits.Total).Add(sales.Total)
	balance := totalPaid.Sub(totalDue)

	return &SummaryResponse{
		PatientID:      patientID,
		Treatments:     toCategorySummary(charges),
		Visits:         toCategorySummary(visits),
		Products:       toCategorySummary(sales),
		TotalDue:       totalDue,
		TotalPaid:      totalPaid,
		Balance:        balance,
		BalanceDisplay: valueobject.NewMoneyPLN(balance).String(),
	}, nil
}

func toCategorySummary(totals billing.CategoryTotals) CategorySummary {
	return CategorySummary{
		Total:       totals.Total,
		Paid:        totals.Paid,
		Outstanding: totals.Outstanding(),
	}
}
