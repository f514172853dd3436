package handler

import (
	clinicplanapp "github.com/clinic/backend/internal/application/clinicplan"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PlanHandler handles treatment plan API endpoints
type PlanHandler struct {
	BaseHandler
	planService *clinicplanapp.PlanService
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(planService *clinicplanapp.PlanService) *PlanHandler {
	return &PlanHandler{
		planService: planService,
	}
}

// SavePlan replaces the patient's active plan with a new one
func (h *PlanHandler) SavePlan(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	var req clinicplanapp.SavePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.planService.SavePlan(c.Request.Context(), patientID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, plan)
}

// GetActivePlan retrieves the patient's active plan with its treatments
func (h *PlanHandler) GetActivePlan(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	plan, err := h.planService.GetActivePlan(c.Request.Context(), patientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, plan)
}

// GetActiveInstances lists the treatment instances of the patient's active plan
func (h *PlanHandler) GetActiveInstances(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	instances, err := h.planService.GetActiveInstances(c.Request.Context(), patientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, instances)
}

// UpdateStatus moves a plan treatment to a new status
func (h *PlanHandler) UpdateStatus(c *gin.Context) {
	treatmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid treatment ID format")
		return
	}

	var req clinicplanapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	treatment, err := h.planService.UpdateStatus(c.Request.Context(), treatmentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, treatment)
}

// DeleteTreatment removes a single treatment from a plan
func (h *PlanHandler) DeleteTreatment(c *gin.Context) {
	treatmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid treatment ID format")
		return
	}

	if err := h.planService.DeleteTreatment(c.Request.Context(), treatmentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// DeleteAllForPatient removes all plans and plan treatments for a patient
func (h *PlanHandler) DeleteAllForPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	if err := h.planService.DeleteAllForPatient(c.Request.Context(), patientID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
