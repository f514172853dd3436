package handler

import (
	catalogapp "github.com/clinic/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TreatmentCatalogHandler handles treatment catalog API endpoints
type TreatmentCatalogHandler struct {
	BaseHandler
	treatmentService *catalogapp.TreatmentService
}

// NewTreatmentCatalogHandler creates a new TreatmentCatalogHandler
func NewTreatmentCatalogHandler(treatmentService *catalogapp.TreatmentService) *TreatmentCatalogHandler {
	return &TreatmentCatalogHandler{
		treatmentService: treatmentService,
	}
}

// Create adds a treatment to the catalog
func (h *TreatmentCatalogHandler) Create(c *gin.Context) {
	var req catalogapp.CreateTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	treatment, err := h.treatmentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, treatment)
}

// GetByID retrieves a catalog entry by ID
func (h *TreatmentCatalogHandler) GetByID(c *gin.Context) {
	treatmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid treatment ID format")
		return
	}

	treatment, err := h.treatmentService.GetByID(c.Request.Context(), treatmentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, treatment)
}

// ListActive retrieves all active catalog entries ordered by name
func (h *TreatmentCatalogHandler) ListActive(c *gin.Context) {
	treatments, err := h.treatmentService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, treatments)
}

// List retrieves a paginated, filtered list of catalog entries
func (h *TreatmentCatalogHandler) List(c *gin.Context) {
	var filter catalogapp.TreatmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	treatments, total, err := h.treatmentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, treatments, total, filter.Page, filter.PageSize)
}

// Update partially updates a catalog entry
func (h *TreatmentCatalogHandler) Update(c *gin.Context) {
	treatmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid treatment ID format")
		return
	}

	var req catalogapp.UpdateTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	treatment, err := h.treatmentService.Update(c.Request.Context(), treatmentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, treatment)
}

// Deactivate hides a catalog entry from active listings and pricing
func (h *TreatmentCatalogHandler) Deactivate(c *gin.Context) {
	treatmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid treatment ID format")
		return
	}

	if err := h.treatmentService.Deactivate(c.Request.Context(), treatmentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// LookupPrice resolves the current price of an active treatment by name
func (h *TreatmentCatalogHandler) LookupPrice(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		h.BadRequest(c, "Query parameter 'name' is required")
		return
	}

	price, err := h.treatmentService.LookupPrice(c.Request.Context(), name)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, price)
}
