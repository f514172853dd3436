package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogapp "github.com/clinic/backend/internal/application/catalog"
	"github.com/clinic/backend/internal/domain/catalog"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTreatmentRepository implements catalog.TreatmentRepository for testing
type MockTreatmentRepository struct {
	mock.Mock
}

func (m *MockTreatmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Treatment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Treatment), args.Error(1)
}

func (m *MockTreatmentRepository) FindByName(ctx context.Context, name string) (*catalog.Treatment, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Treatment), args.Error(1)
}

func (m *MockTreatmentRepository) FindActiveByName(ctx context.Context, name string) (*catalog.Treatment, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Treatment), args.Error(1)
}

func (m *MockTreatmentRepository) FindAllActive(ctx context.Context) ([]catalog.Treatment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Treatment), args.Error(1)
}

func (m *MockTreatmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Treatment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Treatment), args.Error(1)
}

func (m *MockTreatmentRepository) Save(ctx context.Context, treatment *catalog.Treatment) error {
	args := m.Called(ctx, treatment)
	return args.Error(0)
}

func (m *MockTreatmentRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockTreatmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func setupCatalogHandler(repo *MockTreatmentRepository) *TreatmentCatalogHandler {
	return NewTreatmentCatalogHandler(catalogapp.NewTreatmentService(repo))
}

func createCatalogTreatment(name string, price int64) *catalog.Treatment {
	treatment, _ := catalog.NewTreatment(name, catalog.TreatmentTypeLaser, decimal.NewFromInt(price), "")
	return treatment
}

// Tests

func TestTreatmentCatalogHandler_Create_Success(t *testing.T) {
	repo := new(MockTreatmentRepository)
	handler := setupCatalogHandler(repo)

	repo.On("ExistsByName", mock.Anything, "Terapia laserowa").Return(false, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Treatment")).Return(nil)

	router := setupTestRouter()
	router.POST("/treatments", handler.Create)

	body, _ := json.Marshal(catalogapp.CreateTreatmentRequest{
		Name:         "Terapia laserowa",
		Type:         "laser",
		DefaultPrice: decimal.NewFromInt(200),
	})

	req := httptest.NewRequest(http.MethodPost, "/treatments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Terapia laserowa")
	repo.AssertExpectations(t)
}

func TestTreatmentCatalogHandler_Create_DuplicateName(t *testing.T) {
	repo := new(MockTreatmentRepository)
	handler := setupCatalogHandler(repo)

	repo.On("ExistsByName", mock.Anything, "Terapia laserowa").Return(true, nil)

	router := setupTestRouter()
	router.POST("/treatments", handler.Create)

	body, _ := json.Marshal(catalogapp.CreateTreatmentRequest{
		Name: "Terapia laserowa",
		Type: "laser",
	})

	req := httptest.NewRequest(http.MethodPost, "/treatments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_ALREADY_EXISTS")
	repo.AssertNotCalled(t, "Save")
}

func TestTreatmentCatalogHandler_GetByID_NotFound(t *testing.T) {
	repo := new(MockTreatmentRepository)
	handler := setupCatalogHandler(repo)

	missing := uuid.New()
	repo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

	router := setupTestRouter()
	router.GET("/treatments/:id", handler.GetByID)

	req := httptest.NewRequest(http.MethodGet, "/treatments/"+missing.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTreatmentCatalogHandler_ListActive(t *testing.T) {
	repo := new(MockTreatmentRepository)
	handler := setupCatalogHandler(repo)

	repo.On("FindAllActive", mock.Anything).Return([]catalog.Treatment{
		*createCatalogTreatment("Karboksyterapia", 180),
		*createCatalogTreatment("Terapia laserowa", 200),
	}, nil)

	router := setupTestRouter()
	router.GET("/treatments/active", handler.ListActive)

	req := httptest.NewRequest(http.MethodGet, "/treatments/active", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Karboksyterapia")
	assert.Contains(t, w.Body.String(), "Terapia laserowa")
}

func TestTreatmentCatalogHandler_List_WithFilter(t *testing.T) {
	repo := new(MockTreatmentRepository)
	handler := setupCatalogHandler(repo)

	repo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).
		Return([]catalog.Treatment{*createCatalogTreatment("Terapia laserowa", 200)}, nil)
	repo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).
		Return(int64(1), nil)

	router := setupTestRouter()
	router.GET("/treatments", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/treatments?search=laser&active=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Meta struct {
			Total int64 `json:"total"`
			Page  int   `json:"page"`
		} `json:"meta"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Meta.Total)
	assert.Equal(t, 1, resp.Meta.Page)
}

func TestTreatmentCatalogHandler_Update_Success(t *testing.T) {
	repo := new(MockTreatmentRepository)
	handler := setupCatalogHandler(repo)

	existing := createCatalogTreatment("Terapia laserowa", 200)
	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Treatment")).Return(nil)

	router := setupTestRouter()
	router.PATCH("/treatments/:id", handler.Update)

	req := httptest.NewRequest(http.MethodPatch, "/treatments/"+existing.ID.String(),
		bytes.NewBufferString(`{"default_price":"250"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "250")
}

func TestTreatmentCatalogHandler_Deactivate_Success(t *testing.T) {
	repo := new(MockTreatmentRepository)
	handler := setupCatalogHandler(repo)

	existing := createCatalogTreatment("Terapia laserowa", 200)
	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Treatment")).Return(nil)

	router := setupTestRouter()
	router.POST("/treatments/:id/deactivate", handler.Deactivate)

	req := httptest.NewRequest(http.MethodPost, "/treatments/"+existing.ID.String()+"/deactivate", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, existing.Active)
}

func TestTreatmentCatalogHandler_LookupPrice(t *testing.T) {
	t.Run("returns active catalog price", func(t *testing.T) {
		repo := new(MockTreatmentRepository)
		handler := setupCatalogHandler(repo)

		repo.On("FindActiveByName", mock.Anything, "Terapia PRP").
			Return(createCatalogTreatment("Terapia PRP", 400), nil)

		router := setupTestRouter()
		router.GET("/treatments/price", handler.LookupPrice)

		req := httptest.NewRequest(http.MethodGet, "/treatments/price?name=Terapia+PRP", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "400")
	})

	t.Run("rejects missing name parameter", func(t *testing.T) {
		repo := new(MockTreatmentRepository)
		handler := setupCatalogHandler(repo)

		router := setupTestRouter()
		router.GET("/treatments/price", handler.LookupPrice)

		req := httptest.NewRequest(http.MethodGet, "/treatments/price", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "FindActiveByName")
	})

	t.Run("reports unknown treatment as not found", func(t *testing.T) {
		repo := new(MockTreatmentRepository)
		handler := setupCatalogHandler(repo)

		repo.On("FindActiveByName", mock.Anything, "Nieznany zabieg").
			Return(nil, shared.ErrNotFound)

		router := setupTestRouter()
		router.GET("/treatments/price", handler.LookupPrice)

		req := httptest.NewRequest(http.MethodGet, "/treatments/price?name=Nieznany+zabieg", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
