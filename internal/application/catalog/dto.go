package catalog

import (
	"time"

	"github.com/clinic/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTreatmentRequest is the request to add a catalog entry
type CreateTreatmentRequest struct {
	Name         string          `json:"name" binding:"required"`
	Type         string          `json:"type"`
	DefaultPrice decimal.Decimal `json:"default_price"`
	Description  string          `json:"description"`
}

// UpdateTreatmentRequest is the request to partially update a catalog
// entry. Omitted fields are left untouched.
type UpdateTreatmentRequest struct {
	Name         *string          `json:"name"`
	Type         *string          `json:"type"`
	DefaultPrice *decimal.Decimal `json:"default_price"`
	Description  *string          `json:"description"`
}

// TreatmentListFilter carries list query parameters
type TreatmentListFilter struct {
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// TreatmentResponse is the catalog entry representation returned to clients
type TreatmentResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	DefaultPrice decimal.Decimal `json:"default_price"`
	Description  string          `json:"description"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PriceResponse is the result of a price lookup
type PriceResponse struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ToTreatmentResponse converts a domain treatment to its response form
func ToTreatmentResponse(t *catalog.Treatment) *TreatmentResponse {
	return &TreatmentResponse{
		ID:           t.ID,
		Name:         t.Name,
		Type:         string(t.Type),
		DefaultPrice: t.DefaultPrice,
		Description:  t.Description,
		Active:       t.Active,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
