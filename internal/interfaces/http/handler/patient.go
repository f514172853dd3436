package handler

import (
	patientapp "github.com/clinic/backend/internal/application/patient"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PatientHandler handles patient-related API endpoints
type PatientHandler struct {
	BaseHandler
	patientService *patientapp.PatientService
}

// NewPatientHandler creates a new PatientHandler
func NewPatientHandler(patientService *patientapp.PatientService) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
	}
}

// Create registers a new patient
func (h *PatientHandler) Create(c *gin.Context) {
	var req patientapp.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	patient, err := h.patientService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, patient)
}

// GetByID retrieves a patient by ID
func (h *PatientHandler) GetByID(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	patient, err := h.patientService.GetByID(c.Request.Context(), patientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, patient)
}

// List retrieves a paginated list of patients, optionally filtered by
// a name search
func (h *PatientHandler) List(c *gin.Context) {
	var filter patientapp.PatientListFilter
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

	patients, total, err := h.patientService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, patients, total, filter.Page, filter.PageSize)
}

// Update partially updates a patient's information
func (h *PatientHandler) Update(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	var req patientapp.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	patient, err := h.patientService.Update(c.Request.Context(), patientID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, patient)
}

// Deactivate marks a patient as inactive
func (h *PatientHandler) Deactivate(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	if err := h.patientService.Deactivate(c.Request.Context(), patientID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
