package billing

import (
	"time"

	"github.com/clinic/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddVisitRequest records a clinic visit
type AddVisitRequest struct {
	VisitDate *time.Time      `json:"visit_date"`
	VisitType string          `json:"visit_type"`
	Purpose   string          `json:"purpose"`
	Cost      decimal.Decimal `json:"cost"`
	Notes     string          `json:"notes"`
}

// AddChargeRequest manually prices a plan instance into the ledger
type AddChargeRequest struct {
	ReferenceID   uuid.UUID       `json:"reference_id" binding:"required"`
	TreatmentName string          `json:"treatment_name" binding:"required"`
	TreatmentType string          `json:"treatment_type"`
	Amount        decimal.Decimal `json:"amount"`
}

// AddProductSaleRequest records a retail sale
type AddProductSaleRequest struct {
	ProductName string          `json:"product_name" binding:"required"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	SaleDate    *time.Time      `json:"sale_date"`
}

// AddPaymentRequest records a payment, optionally allocated to a
// single ledger line
type AddPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentType   string          `json:"payment_type"`
	Method        string          `json:"method"`
	Description   string          `json:"description"`
	Notes         string          `json:"notes"`
	ReferenceKind string          `json:"reference_kind"`
	ReferenceID   *uuid.UUID      `json:"reference_id"`
}

// ItemPaymentRequest applies a paid-amount increment to a single
// ledger line without recording a payment row
type ItemPaymentRequest struct {
	Kind   string          `json:"kind" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ItemPaymentResponse reports the outcome of a ledger line increment
type ItemPaymentResponse struct {
	ItemID  uuid.UUID       `json:"item_id"`
	Kind    string          `json:"kind"`
	Amount  decimal.Decimal `json:"amount"`
	Updated bool            `json:"updated"`
}

// ChargeResponse is the treatment charge representation returned to clients
type ChargeResponse struct {
	ID            uuid.UUID       `json:"id"`
	PatientID     uuid.UUID       `json:"patient_id"`
	ReferenceID   uuid.UUID       `json:"reference_id"`
	TreatmentName string          `json:"treatment_name"`
	TreatmentType string          `json:"treatment_type"`
	Amount        decimal.Decimal `json:"amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	ChargedAt     time.Time       `json:"charged_at"`
}

// VisitResponse is the visit representation returned to clients
type VisitResponse struct {
	ID         uuid.UUID       `json:"id"`
	PatientID  uuid.UUID       `json:"patient_id"`
	VisitDate  time.Time       `json:"visit_date"`
	VisitType  string          `json:"visit_type"`
	Purpose    string          `json:"purpose"`
	Cost       decimal.Decimal `json:"cost"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
	Notes      string          `json:"notes"`
}

// VisitBillingLine is one row of the visit billing view: billable
// visits only, with their outstanding balance and payment status
type VisitBillingLine struct {
	VisitID     uuid.UUID       `json:"visit_id"`
	VisitDate   time.Time       `json:"visit_date"`
	VisitType   string          `json:"visit_type"`
	Purpose     string          `json:"purpose"`
	Cost        decimal.Decimal `json:"cost"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Status      string          `json:"status"`
}

// ProductSaleResponse is the sale representation returned to clients
type ProductSaleResponse struct {
	ID          uuid.UUID       `json:"id"`
	PatientID   uuid.UUID       `json:"patient_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	SaleDate    time.Time       `json:"sale_date"`
}

// PaymentResponse is the payment representation returned to clients
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	PatientID     uuid.UUID       `json:"patient_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentType   string          `json:"payment_type,omitempty"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	PaymentDate   time.Time       `json:"payment_date"`
	Description   string          `json:"description"`
	Notes         string          `json:"notes,omitempty"`
	ReferenceKind string          `json:"reference_kind,omitempty"`
	ReferenceID   *uuid.UUID      `json:"reference_id,omitempty"`
}

// SyncResponse reports how many new charges a synchronization created
type SyncResponse struct {
	PatientID uuid.UUID `json:"patient_id"`
	Created   int       `json:"created"`
}

// CategorySummary aggregates one ledger category
type CategorySummary struct {
	Total       decimal.Decimal `json:"total"`
	Paid        decimal.Decimal `json:"paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// SummaryResponse is the patient's full financial summary. Balance is
// total payments received minus total due: positive means credit.
type SummaryResponse struct {
	PatientID  uuid.UUID       `json:"patient_id"`
	Treatments CategorySummary `json:"treatments"`
	Visits     CategorySummary `json:"visits"`
	Products   CategorySummary `json:"products"`
	TotalDue   decimal.Decimal `json:"total_due"`
	TotalPaid  decimal.Decimal `json:"total_paid"`
	Balance    decimal.Decimal `json:"balance"`
	// BalanceDisplay renders the balance with its currency, e.g. "-490.00 PLN".
	BalanceDisplay string `json:"balance_display"`
}

// ToChargeResponse converts a domain charge to its response form
func ToChargeResponse(c *billing.TreatmentCharge) *ChargeResponse {
	return &ChargeResponse{
		ID:            c.ID,
		PatientID:     c.PatientID,
		ReferenceID:   c.ReferenceID,
		TreatmentName: c.TreatmentName,
		TreatmentType: string(c.TreatmentType),
		Amount:        c.Amount,
		PaidAmount:    c.PaidAmount,
		Outstanding:   c.Outstanding(),
		ChargedAt:     c.ChargedAt,
	}
}

// ToVisitResponse converts a domain visit to its response form
func ToVisitResponse(v *billing.Visit) *VisitResponse {
	return &VisitResponse{
		ID:         v.ID,
		PatientID:  v.PatientID,
		VisitDate:  v.VisitDate,
		VisitType:  v.VisitType,
		Purpose:    v.Purpose,
		Cost:       v.Cost,
		PaidAmount: v.PaidAmount,
		Notes:      v.Notes,
	}
}

// ToVisitBillingLine converts a billable visit to a billing view row
func ToVisitBillingLine(v *billing.Visit) *VisitBillingLine {
	return &VisitBillingLine{
		VisitID:     v.ID,
		VisitDate:   v.VisitDate,
		VisitType:   v.VisitType,
		Purpose:     v.Purpose,
		Cost:        v.Cost,
		PaidAmount:  v.PaidAmount,
		Outstanding: v.Outstanding(),
		Status:      v.PaymentStatus(),
	}
}

// ToProductSaleResponse converts a domain sale to its response form
func ToProductSaleResponse(s *billing.ProductSale) *ProductSaleResponse {
	return &ProductSaleResponse{
		ID:          s.ID,
		PatientID:   s.PatientID,
		ProductName: s.ProductName,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		TotalPrice:  s.TotalPrice,
		PaidAmount:  s.PaidAmount,
		SaleDate:    s.SaleDate,
	}
}

// ToPaymentResponse converts a domain payment to its response form
func ToPaymentResponse(p *billing.PaymentRecord) *PaymentResponse {
	resp := &PaymentResponse{
		ID:          p.ID,
		PatientID:   p.PatientID,
		Amount:      p.Amount,
		PaymentType: p.PaymentType,
		Method:      p.Method,
		Status:      p.Status,
		PaymentDate: p.PaymentDate,
		Description: p.Description,
		Notes:       p.Notes,
		ReferenceID: p.ReferenceID,
	}
	if p.ReferenceKind != nil {
		resp.ReferenceKind = string(*p.ReferenceKind)
	}
	return resp
}
