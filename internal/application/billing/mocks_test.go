package billing

import (
	"context"

	"github.com/clinic/backend/internal/domain/billing"
	"github.com/clinic/backend/internal/domain/catalog"
	"github.com/clinic/backend/internal/domain/clinicplan"
	"github.com/clinic/backend/internal/domain/patient"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockTreatmentChargeRepository is a mock implementation of billing.TreatmentChargeRepository
type MockTreatmentChargeRepository struct {
	mock.Mock
}

func (m *MockTreatmentChargeRepository) Insert(ctx context.Context, charge *billing.TreatmentCharge) (bool, error) {
	args := m.Called(ctx, charge)
	return args.Bool(0), args.Error(1)
}

func (m *MockTreatmentChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.TreatmentCharge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.TreatmentCharge), args.Error(1)
}

func (m *MockTreatmentChargeRepository) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]billing.TreatmentCharge, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.TreatmentCharge), args.Error(1)
}

func (m *MockTreatmentChargeRepository) IncrementPaid(ctx context.Context, patientID, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, patientID, id, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockTreatmentChargeRepository) Totals(ctx context.Context, patientID uuid.UUID) (billing.CategoryTotals, error) {
	args := m.Called(ctx, patientID)
	return args.Get(0).(billing.CategoryTotals), args.Error(1)
}

// MockVisitRepository is a mock implementation of billing.VisitRepository
type MockVisitRepository struct {
	mock.Mock
}

func (m *MockVisitRepository) Insert(ctx context.Context, visit *billing.Visit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *MockVisitRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Visit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Visit), args.Error(1)
}

func (m *MockVisitRepository) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]billing.Visit, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Visit), args.Error(1)
}

func (m *MockVisitRepository) FindBillableByPatient(ctx context.Context, patientID uuid.UUID) ([]billing.Visit, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Visit), args.Error(1)
}

func (m *MockVisitRepository) IncrementPaid(ctx context.Context, patientID, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, patientID, id, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockVisitRepository) Totals(ctx context.Context, patientID uuid.UUID) (billing.CategoryTotals, error) {
	args := m.Called(ctx, patientID)
	return args.Get(0).(billing.CategoryTotals), args.Error(1)
}

// MockProductSaleRepository is a mock implementation of billing.ProductSaleRepository
type MockProductSaleRepository struct {
	mock.Mock
}

func (m *MockProductSaleRepository) Insert(ctx context.Context, sale *billing.ProductSale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockProductSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.ProductSale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.ProductSale), args.Error(1)
}

func (m *MockProductSaleRepository) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]billing.ProductSale, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.ProductSale), args.Error(1)
}

func (m *MockProductSaleRepository) IncrementPaid(ctx context.Context, patientID, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, patientID, id, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductSaleRepository) Totals(ctx context.Context, patientID uuid.UUID) (billing.CategoryTotals, error) {
	args := m.Called(ctx, patientID)
	return args.Get(0).(billing.CategoryTotals), args.Error(1)
}

// MockPaymentRepository is a mock implementation of billing.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Insert(ctx context.Context, payment *billing.PaymentRecord) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) InsertWithAllocation(ctx context.Context, payment *billing.PaymentRecord) (bool, error) {
	args := m.Called(ctx, payment)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]billing.PaymentRecord, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) TotalPaid(ctx context.Context, patientID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, patientID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockPatientRepository is a mock implementation of patient.Repository
type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) FindByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*patient.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]patient.Patient, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]patient.Patient), args.Error(1)
}

func (m *MockPatientRepository) Search(ctx context.Context, query string, filter shared.Filter) ([]patient.Patient, error) {
	args := m.Called(ctx, query, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]patient.Patient), args.Error(1)
}

func (m *MockPatientRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPatientRepository) Save(ctx context.Context, p *patient.Patient) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPatientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockPlanRepository is a mock implementation of clinicplan.PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*clinicplan.TreatmentPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clinicplan.TreatmentPlan), args.Error(1)
}

func (m *MockPlanRepository) FindActiveByPatient(ctx context.Context, patientID uuid.UUID) (*clinicplan.TreatmentPlan, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clinicplan.TreatmentPlan), args.Error(1)
}

func (m *MockPlanRepository) FindActiveInstances(ctx context.Context, patientID uuid.UUID) ([]clinicplan.PlanTreatment, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]clinicplan.PlanTreatment), args.Error(1)
}

func (m *MockPlanRepository) ReplaceActivePlan(ctx context.Context, plan *clinicplan.TreatmentPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) FindTreatmentByID(ctx context.Context, id uuid.UUID) (*clinicplan.PlanTreatment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clinicplan.PlanTreatment), args.Error(1)
}

func (m *MockPlanRepository) SaveTreatment(ctx context.Context, treatment *clinicplan.PlanTreatment) error {
	args := m.Called(ctx, treatment)
	return args.Error(0)
}

func (m *MockPlanRepository) DeleteTreatment(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlanRepository) DeleteAllForPatient(ctx context.Context, patientID uuid.UUID) error {
	args := m.Called(ctx, patientID)
	return args.Error(0)
}

// MockCatalogRepository is a mock implementation of catalog.TreatmentRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Treatment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Treatment), args.Error(1)
}

func (m *MockCatalogRepository) FindByName(ctx context.Context, name string) (*catalog.Treatment, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Treatment), args.Error(1)
}

func (m *MockCatalogRepository) FindActiveByName(ctx context.Context, name string) (*catalog.Treatment, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Treatment), args.Error(1)
}

func (m *MockCatalogRepository) FindAllActive(ctx context.Context) ([]catalog.Treatment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Treatment), args.Error(1)
}

func (m *MockCatalogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Treatment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Treatment), args.Error(1)
}

func (m *MockCatalogRepository) Save(ctx context.Context, treatment *catalog.Treatment) error {
	args := m.Called(ctx, treatment)
	return args.Error(0)
}

func (m *MockCatalogRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
