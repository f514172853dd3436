package handler

import (
	billingapp "github.com/clinic/backend/internal/application/billing"
	"github.com/clinic/backend/internal/domain/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler handles payment API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// AddPayment records a payment, optionally allocated to a ledger line
func (h *PaymentHandler) AddPayment(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	var req billingapp.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentService.AddPayment(c.Request.Context(), patientID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, payment)
}

// RecordItemPayment adds to the paid amount of one ledger line. The
// combined AddPayment with a reference is the supported path; this
// endpoint is kept for clients that settle a line without a payment row.
func (h *PaymentHandler) RecordItemPayment(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid ledger item ID format")
		return
	}

	var req billingapp.ItemPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	updated, err := h.paymentService.UpdatePaymentForItem(c.Request.Context(), patientID, billing.ReferenceKind(req.Kind), itemID, req.Amount)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	if !updated {
		h.NotFound(c, "Ledger line not found")
		return
	}

	h.Success(c, billingapp.ItemPaymentResponse{
		ItemID:  itemID,
		Kind:    req.Kind,
		Amount:  req.Amount,
		Updated: true,
	})
}

// GetPatientPayments lists the patient's payments, newest first
func (h *PaymentHandler) GetPatientPayments(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	payments, err := h.paymentService.GetPatientPayments(c.Request.Context(), patientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payments)
}
