package handler

import (
	billingapp "github.com/clinic/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BillingHandler handles ledger API endpoints: visits, treatment
// charges, product sales, sync and the patient summary
type BillingHandler struct {
	BaseHandler
	ledgerService  *billingapp.LedgerService
	syncService    *billingapp.SyncService
	summaryService *billingapp.SummaryService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(
	ledgerService *billingapp.LedgerService,
	syncService *billingapp.SyncService,
	summaryService *billingapp.SummaryService,
) *BillingHandler {
	return &BillingHandler{
		ledgerService:  ledgerService,
		syncService:    syncService,
		summaryService: summaryService,
	}
}

// AddVisit records a visit on the patient's ledger
func (h *BillingHandler) AddVisit(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	var req billingapp.AddVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	visit, err := h.ledgerService.AddVisit(c.Request.Context(), patientID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, visit)
}

// GetPatientVisits lists all of a patient's visits, newest first
func (h *BillingHandler) GetPatientVisits(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	visits, err := h.ledgerService.GetPatientVisits(c.Request.Context(), patientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, visits)
}

// GetVisitBilling lists the patient's billable visits as ledger lines
func (h *BillingHandler) GetVisitBilling(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	lines, err := h.ledgerService.GetVisitBilling(c.Request.Context(), patientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, lines)
}

// AddCharge manually prices a plan treatment into the ledger
func (h *BillingHandler) AddCharge(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	var req billingapp.AddChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	charge, err := h.ledgerService.AddCharge(c.Request.Context(), patientID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, charge)
}

// GetPatientCharges lists the patient's treatment charges
func (h *BillingHandler) GetPatientCharges(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	charges, err := h.ledgerService.GetPatientCharges(c.Request.Context(), patientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, charges)
}

// SyncCharges reconciles the patient's active plan treatments into
// priced ledger charges
func (h *BillingHandler) SyncCharges(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	result, err := h.syncService.SyncPatientCharges(c.Request.Context(), patientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// AddProductSale records a retail product sale on the patient's ledger
func (h *BillingHandler) AddProductSale(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	var req billingapp.AddProductSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.ledgerService.AddProductSale(c.Request.Context(), patientID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, sale)
}

// GetPatientProductSales lists the patient's product sales
func (h *BillingHandler) GetPatientProductSales(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	sales, err := h.ledgerService.GetPatientProductSales(c.Request.Context(), patientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sales)
}

// GetPatientSummary returns per-category totals and the patient balance
func (h *BillingHandler) GetPatientSummary(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	summary, err := h.summaryService.GetPatientSummary(c.Request.Context(), patientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
