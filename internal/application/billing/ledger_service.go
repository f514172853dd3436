package billing

import (
	"context"
	"time"

	"github.com/clinic/backend/internal/domain/billing"
	"github.com/clinic/backend/internal/domain/catalog"
	"github.com/clinic/backend/internal/domain/patient"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LedgerService handles visit, charge and product sale operations
type LedgerService struct {
	chargeRepo  billing.TreatmentChargeRepository
	visitRepo   billing.VisitRepository
	saleRepo    billing.ProductSaleRepository
	patientRepo patient.Repository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	chargeRepo billing.TreatmentChargeRepository,
	visitRepo billing.VisitRepository,
	saleRepo billing.ProductSaleRepository,
	patientRepo patient.Repository,
) *LedgerService {
	return &LedgerService{
		chargeRepo:  chargeRepo,
		visitRepo:   visitRepo,
		saleRepo:    saleRepo,
		patientRepo: patientRepo,
	}
}

// ensurePatientExists guards write operations against charges for
// patients the directory does not know.
func ensurePatientExists(ctx context.Context, repo patient.Repository, id uuid.UUID) error {
	exists, err := repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError("NOT_FOUND", "Patient not found")
	}
	return nil
}

// AddVisit records a clinic visit
func (s *LedgerService) AddVisit(ctx context.Context, patientID uuid.UUID, req AddVisitRequest) (*VisitResponse, error) {
	if err := ensurePatientExists(ctx, s.patientRepo, patientID); err != nil {
		return nil, err
	}

	visitDate := time.Now()
	if req.VisitDate != nil {
		visitDate = *req.VisitDate
	}

	visit, err := billing.NewVisit(patientID, visitDate, req.VisitType, req.Purpose, req.Cost, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.visitRepo.Insert(ctx, visit); err != nil {
		return nil, err
	}

	return ToVisitResponse(visit), nil
}

// GetPatientVisits lists a patient's visits, most recent first
func (s *LedgerService) GetPatientVisits(ctx context.Context, patientID uuid.UUID) ([]VisitResponse, error) {
	visits, err := s.visitRepo.FindByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	responses := make([]VisitResponse, 0, len(visits))
	for i := range visits {
		responses = append(responses, *ToVisitResponse(&visits[i]))
	}

	return responses, nil
}

// GetVisitBilling lists the patient's billable visits with their
// balances, most recent visit first
func (s *LedgerService) GetVisitBilling(ctx context.Context, patientID uuid.UUID) ([]VisitBillingLine, error) {
	visits, err := s.visitRepo.FindBillableByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	lines := make([]VisitBillingLine, 0, len(visits))
	for i := range visits {
		lines = append(lines, *ToVisitBillingLine(&visits[i]))
	}

	return lines, nil
}

// AddCharge manually prices a plan instance into the ledger. A charge
// already present for the same instance is returned unchanged.
func (s *LedgerService) AddCharge(ctx context.Context, patientID uuid.UUID, req AddChargeRequest) (*ChargeResponse, error) {
	if err := ensurePatientExists(ctx, s.patientRepo, patientID); err != nil {
		return nil, err
	}

	charge, err := billing.NewTreatmentCharge(
		patientID,
		req.ReferenceID,
		req.TreatmentName,
		catalog.TreatmentType(req.TreatmentType),
		req.Amount,
	)
	if err != nil {
		return nil, err
	}

	created, err := s.chargeRepo.Insert(ctx, charge)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, shared.ErrAlreadyExists
	}

	return ToChargeResponse(charge), nil
}

// GetPatientCharges lists a patient's treatment charges, newest first
func (s *LedgerService) GetPatientCharges(ctx context.Context, patientID uuid.UUID) ([]ChargeResponse, error) {
	charges, err := s.chargeRepo.FindByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	responses := make([]ChargeResponse, 0, len(charges))
	for i := range charges {
		responses = append(responses, *ToChargeResponse(&charges[i]))
	}

	return responses, nil
}

// AddProductSale records a retail sale
func (s *LedgerService) AddProductSale(ctx context.Context, patientID uuid.UUID, req AddProductSaleRequest) (*ProductSaleResponse, error) {
	if err := ensurePatientExists(ctx, s.patientRepo, patientID); err != nil {
		return nil, err
	}

	saleDate := time.Now()
	if req.SaleDate != nil {
		saleDate = *req.SaleDate
	}

	sale, err := billing.NewProductSale(patientID, req.ProductName, req.Quantity, req.UnitPrice, saleDate)
	if err != nil {
		return nil, err
	}

	if err := s.saleRepo.Insert(ctx, sale); err != nil {
		return nil, err
	}

	return ToProductSaleResponse(sale), nil
}

// GetPatientProductSales lists a patient's sales, newest first
func (s *LedgerService) GetPatientProductSales(ctx context.Context, patientID uuid.UUID) ([]ProductSaleResponse, error) {
	sales, err := s.saleRepo.FindByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductSaleResponse, 0, len(sales))
	for i := range sales {
		responses = append(responses, *ToProductSaleResponse(&sales[i]))
	}

	return responses, nil
}
