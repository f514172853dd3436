package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	billingapp "github.com/clinic/backend/internal/application/billing"
	"github.com/clinic/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockChargeRepository implements billing.TreatmentChargeRepository for testing
type MockChargeRepository struct {
	mock.Mock
}

func (m *MockChargeRepository) Insert(ctx context.Context, charge *billing.TreatmentCharge) (bool, error) {
	args := m.Called(ctx, charge)
	return args.Bool(0), args.Error(1)
}

func (m *MockChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.TreatmentCharge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.TreatmentCharge), args.Error(1)
}

func (m *MockChargeRepository) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]billing.TreatmentCharge, error) {
	args := m.Called(ctx, patientID)
	return args.Get(0).([]billing.TreatmentCharge), args.Error(1)
}

func (m *MockChargeRepository) IncrementPaid(ctx context.Context, patientID, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, patientID, id, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockChargeRepository) Totals(ctx context.Context, patientID uuid.UUID) (billing.CategoryTotals, error) {
	args := m.Called(ctx, patientID)
	return args.Get(0).(billing.CategoryTotals), args.Error(1)
}

// MockVisitRepository implements billing.VisitRepository for testing
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
	return args.Get(0).([]billing.Visit), args.Error(1)
}

func (m *MockVisitRepository) FindBillableByPatient(ctx context.Context, patientID uuid.UUID) ([]billing.Visit, error) {
	args := m.Called(ctx, patientID)
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

// MockProductSaleRepository implements billing.ProductSaleRepository for testing
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

// MockPaymentRepository implements billing.PaymentRepository for testing
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
	return args.Get(0).([]billing.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) TotalPaid(ctx context.Context, patientID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, patientID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func setupBillingHandler(
	chargeRepo *MockChargeRepository,
	visitRepo *MockVisitRepository,
	saleRepo *MockProductSaleRepository,
	paymentRepo *MockPaymentRepository,
	planRepo *MockPlanRepository,
	treatmentRepo *MockTreatmentRepository,
) *BillingHandler {
	// Ledger writes check the patient directory first; handler tests
	// assume a known patient.
	patientRepo := new(MockPatientRepository)
	patientRepo.On("Exists", mock.Anything, mock.Anything).Return(true, nil)

	return NewBillingHandler(
		billingapp.NewLedgerService(chargeRepo, visitRepo, saleRepo, patientRepo),
		billingapp.NewSyncService(chargeRepo, planRepo, treatmentRepo, zap.NewNop()),
		billingapp.NewSummaryService(chargeRepo, visitRepo, saleRepo, paymentRepo),
	)
}

func createTestVisit(t *testing.T, patientID uuid.UUID, cost int64) *billing.Visit {
	visit, err := billing.NewVisit(patientID, time.Now(), "kontrolna", "kontrola", decimal.NewFromInt(cost), "")
	require.NoError(t, err)
	return visit
}

// Tests

func TestBillingHandler_AddVisit_Success(t *testing.T) {
	chargeRepo := new(MockChargeRepository)
	visitRepo := new(MockVisitRepository)
	saleRepo := new(MockProductSaleRepository)
	handler := setupBillingHandler(chargeRepo, visitRepo, saleRepo, new(MockPaymentRepository), new(MockPlanRepository), new(MockTreatmentRepository))

	patientID := uuid.New()
	visitRepo.On("Insert", mock.Anything, mock.AnythingOfType("*billing.Visit")).Return(nil)

	router := setupTestRouter()
	router.POST("/patients/:id/visits", handler.AddVisit)

	body, _ := json.Marshal(billingapp.AddVisitRequest{
		VisitType: "kontrolna",
		Purpose:   "kontrola skóry głowy",
		Cost:      decimal.NewFromInt(150),
	})

	req := httptest.NewRequest(http.MethodPost, "/patients/"+patientID.String()+"/visits", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "kontrola")
	visitRepo.AssertExpectations(t)
}

func TestBillingHandler_AddVisit_NegativeCost(t *testing.T) {
	visitRepo := new(MockVisitRepository)
	handler := setupBillingHandler(new(MockChargeRepository), visitRepo, new(MockProductSaleRepository), new(MockPaymentRepository), new(MockPlanRepository), new(MockTreatmentRepository))

	router := setupTestRouter()
	router.POST("/patients/:id/visits", handler.AddVisit)

	req := httptest.NewRequest(http.MethodPost, "/patients/"+uuid.NewString()+"/visits",
		bytes.NewBufferString(`{"cost":"-10"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	visitRepo.AssertNotCalled(t, "Insert")
}

func TestBillingHandler_GetPatientVisits(t *testing.T) {
	visitRepo := new(MockVisitRepository)
	handler := setupBillingHandler(new(MockChargeRepository), visitRepo, new(MockProductSaleRepository), new(MockPaymentRepository), new(MockPlanRepository), new(MockTreatmentRepository))

	patientID := uuid.New()
	visitRepo.On("FindByPatient", mock.Anything, patientID).
		Return([]billing.Visit{*createTestVisit(t, patientID, 150)}, nil)

	router := setupTestRouter()
	router.GET("/patients/:id/visits", handler.GetPatientVisits)

	req := httptest.NewRequest(http.MethodGet, "/patients/"+patientID.String()+"/visits", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "150")
}

func TestBillingHandler_GetVisitBilling(t *testing.T) {
	visitRepo := new(MockVisitRepository)
	handler := setupBillingHandler(new(MockChargeRepository), visitRepo, new(MockProductSaleRepository), new(MockPaymentRepository), new(MockPlanRepository), new(MockTreatmentRepository))

	patientID := uuid.New()
	visitRepo.On("FindBillableByPatient", mock.Anything, patientID).
		Return([]billing.Visit{*createTestVisit(t, patientID, 200)}, nil)

	router := setupTestRouter()
	router.GET("/patients/:id/visit-billing", handler.GetVisitBilling)

	req := httptest.NewRequest(http.MethodGet, "/patients/"+patientID.String()+"/visit-billing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "outstanding")
	assert.Contains(t, w.Body.String(), "unpaid")
}

func TestBillingHandler_AddCharge_Success(t *testing.T) {
	chargeRepo := new(MockChargeRepository)
	handler := setupBillingHandler(chargeRepo, new(MockVisitRepository), new(MockProductSaleRepository), new(MockPaymentRepository), new(MockPlanRepository), new(MockTreatmentRepository))

	patientID := uuid.New()
	chargeRepo.On("Insert", mock.Anything, mock.AnythingOfType("*billing.TreatmentCharge")).Return(true, nil)

	router := setupTestRouter()
	router.POST("/patients/:id/charges", handler.AddCharge)

	body, _ := json.Marshal(billingapp.AddChargeRequest{
		ReferenceID:   uuid.New(),
		TreatmentName: "Mezoterapia mikroigłowa",
		TreatmentType: "mesotherapy",
		Amount:        decimal.NewFromInt(300),
	})

	req := httptest.NewRequest(http.MethodPost, "/patients/"+patientID.String()+"/charges", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Mezoterapia mikroigłowa")
	chargeRepo.AssertExpectations(t)
}

func TestBillingHandler_SyncCharges(t *testing.T) {
	chargeRepo := new(MockChargeRepository)
	planRepo := new(MockPlanRepository)
	treatmentRepo := new(MockTreatmentRepository)
	handler := setupBillingHandler(chargeRepo, new(MockVisitRepository), new(MockProductSaleRepository), new(MockPaymentRepository), planRepo, treatmentRepo)

	patientID := uuid.New()
	plan := createTestPlan(t, patientID)
	planRepo.On("FindActiveInstances", mock.Anything, patientID).Return(plan.Treatments, nil)
	treatmentRepo.On("FindActiveByName", mock.Anything, "Mezoterapia mikroigłowa").
		Return(createCatalogTreatment("Mezoterapia mikroigłowa", 300), nil)
	treatmentRepo.On("FindActiveByName", mock.Anything, "Terapia LED").
		Return(createCatalogTreatment("Terapia LED", 100), nil)
	chargeRepo.On("Insert", mock.Anything, mock.AnythingOfType("*billing.TreatmentCharge")).
		Return(true, nil).Once()
	chargeRepo.On("Insert", mock.Anything, mock.AnythingOfType("*billing.TreatmentCharge")).
		Return(false, nil).Once()

	router := setupTestRouter()
	router.POST("/patients/:id/charges/sync", handler.SyncCharges)

	req := httptest.NewRequest(http.MethodPost, "/patients/"+patientID.String()+"/charges/sync", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data billingapp.SyncResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Created)
}

func TestBillingHandler_AddProductSale_Success(t *testing.T) {
	saleRepo := new(MockProductSaleRepository)
	handler := setupBillingHandler(new(MockChargeRepository), new(MockVisitRepository), saleRepo, new(MockPaymentRepository), new(MockPlanRepository), new(MockTreatmentRepository))

	patientID := uuid.New()
	saleRepo.On("Insert", mock.Anything, mock.AnythingOfType("*billing.ProductSale")).Return(nil)

	router := setupTestRouter()
	router.POST("/patients/:id/products", handler.AddProductSale)

	body, _ := json.Marshal(billingapp.AddProductSaleRequest{
		ProductName: "Szampon trychologiczny",
		Quantity:    2,
		UnitPrice:   decimal.NewFromInt(45),
	})

	req := httptest.NewRequest(http.MethodPost, "/patients/"+patientID.String()+"/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data billingapp.ProductSaleResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Szampon trychologiczny", resp.Data.ProductName)
	assert.True(t, decimal.NewFromInt(90).Equal(resp.Data.TotalPrice))
}

func TestBillingHandler_GetPatientSummary(t *testing.T) {
	chargeRepo := new(MockChargeRepository)
	visitRepo := new(MockVisitRepository)
	saleRepo := new(MockProductSaleRepository)
	paymentRepo := new(MockPaymentRepository)
	handler := setupBillingHandler(chargeRepo, visitRepo, saleRepo, paymentRepo, new(MockPlanRepository), new(MockTreatmentRepository))

	patientID := uuid.New()
	chargeRepo.On("Totals", mock.Anything, patientID).
		Return(billing.CategoryTotals{Total: decimal.NewFromInt(600), Paid: decimal.NewFromInt(200)}, nil)
	visitRepo.On("Totals", mock.Anything, patientID).
		Return(billing.CategoryTotals{Total: decimal.NewFromInt(300), Paid: decimal.NewFromInt(300)}, nil)
	saleRepo.On("Totals", mock.Anything, patientID).
		Return(billing.CategoryTotals{Total: decimal.NewFromInt(90), Paid: decimal.Zero}, nil)
	paymentRepo.On("TotalPaid", mock.Anything, patientID).
		Return(decimal.NewFromInt(500), nil)

	router := setupTestRouter()
	router.GET("/patients/:id/summary", handler.GetPatientSummary)

	req := httptest.NewRequest(http.MethodGet, "/patients/"+patientID.String()+"/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data billingapp.SummaryResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, decimal.NewFromInt(990).Equal(resp.Data.TotalDue))
	assert.True(t, decimal.NewFromInt(500).Equal(resp.Data.TotalPaid))
	assert.True(t, decimal.NewFromInt(-490).Equal(resp.Data.Balance))
	assert.True(t, decimal.NewFromInt(400).Equal(resp.Data.Treatments.Outstanding))
}

func TestBillingHandler_InvalidPatientID(t *testing.T) {
	handler := setupBillingHandler(new(MockChargeRepository), new(MockVisitRepository), new(MockProductSaleRepository), new(MockPaymentRepository), new(MockPlanRepository), new(MockTreatmentRepository))

	router := setupTestRouter()
	router.GET("/patients/:id/summary", handler.GetPatientSummary)

	req := httptest.NewRequest(http.MethodGet, "/patients/not-a-uuid/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
