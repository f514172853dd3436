package billing

import (
	"time"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSale is a retail sale (shampoos, supplements) in the ledger
type ProductSale struct {
	shared.BaseAggregateRoot
	PatientID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null;default:1"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaidAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SaleDate    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductSale) TableName() string {
	return "product_sales"
}

// NewProductSale records a retail sale. Total price is derived from
// quantity and unit price.
func NewProductSale(patientID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal, saleDate time.Time) (*ProductSale, error) {
	if patientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PATIENT", "Patient ID is required")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least one")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Unit price cannot be negative")
	}
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	return &ProductSale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PatientID:         patientID,
		ProductName:       productName,
		Quantity:          quantity,
		UnitPrice:         unitPrice,
		TotalPrice:        unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		PaidAmount:        decimal.Zero,
		SaleDate:          saleDate,
	}, nil
}

// Outstanding returns the unpaid remainder
func (s *ProductSale) Outstanding() decimal.Decimal {
	return s.TotalPrice.Sub(s.PaidAmount)
}
