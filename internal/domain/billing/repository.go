package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryTotals aggregates cost and paid amounts for one ledger
// category. Missing rows aggregate to zero, never to NULL.
type CategoryTotals struct {
	Total decimal.Decimal
	Paid  decimal.Decimal
}

// Outstanding returns the unpaid remainder for the category
func (t CategoryTotals) Outstanding() decimal.Decimal {
	return t.Total.Sub(t.Paid)
}

// TreatmentChargeRepository defines the interface for treatment charge persistence
type TreatmentChargeRepository interface {
	// Insert stores a new charge. A charge for the same patient,
	// reference, name and type already in storage is left untouched and
	// reported as not created.
	Insert(ctx context.Context, charge *TreatmentCharge) (created bool, err error)

	// FindByID finds a charge by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*TreatmentCharge, error)

	// FindByPatient lists a patient's charges, newest first
	FindByPatient(ctx context.Context, patientID uuid.UUID) ([]TreatmentCharge, error)

	// IncrementPaid atomically adds amount to the charge's paid amount.
	// Returns false when the patient has no charge with the ID.
	IncrementPaid(ctx context.Context, patientID, id uuid.UUID, amount decimal.Decimal) (bool, error)

	// Totals aggregates the patient's charge amounts and paid amounts
	Totals(ctx context.Context, patientID uuid.UUID) (CategoryTotals, error)
}

// VisitRepository defines the interface for visit persistence
type VisitRepository interface {
	// Insert stores a new visit
	Insert(ctx context.Context, visit *Visit) error

	// FindByID finds a visit by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Visit, error)

	// FindByPatient lists a patient's visits, most recent visit first
	FindByPatient(ctx context.Context, patientID uuid.UUID) ([]Visit, error)

	// FindBillableByPatient lists visits with a positive cost, most
	// recent visit first
	FindBillableByPatient(ctx context.Context, patientID uuid.UUID) ([]Visit, error)

	// IncrementPaid atomically adds amount to the visit's paid amount.
	// Returns false when the patient has no visit with the ID.
	IncrementPaid(ctx context.Context, patientID, id uuid.UUID, amount decimal.Decimal) (bool, error)

	// Totals aggregates the patient's visit costs and paid amounts
	Totals(ctx context.Context, patientID uuid.UUID) (CategoryTotals, error)
}

// ProductSaleRepository defines the interface for product sale persistence
type ProductSaleRepository interface {
	// Insert stores a new sale
	Insert(ctx context.Context, sale *ProductSale) error

	// FindByID finds a sale by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductSale, error)

	// FindByPatient lists a patient's sales, newest first
	FindByPatient(ctx context.Context, patientID uuid.UUID) ([]ProductSale, error)

	// IncrementPaid atomically adds amount to the sale's paid amount.
	// Returns false when the patient has no sale with the ID.
	IncrementPaid(ctx context.Context, patientID, id uuid.UUID, amount decimal.Decimal) (bool, error)

	// Totals aggregates the patient's sale totals and paid amounts
	Totals(ctx context.Context, patientID uuid.UUID) (CategoryTotals, error)
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// Insert stores a payment without touching any ledger line
	Insert(ctx context.Context, payment *PaymentRecord) error

	// InsertWithAllocation stores the payment and increments the paid
	// amount of its referenced ledger line in a single transaction. The
	// line must belong to the paying patient; returns false when it does
	// not resolve, in which case nothing is stored.
	InsertWithAllocation(ctx context.Context, payment *PaymentRecord) (bool, error)

	// FindByPatient lists a patient's payments, newest first
	FindByPatient(ctx context.Context, patientID uuid.UUID) ([]PaymentRecord, error)

	// TotalPaid sums the patient's payments in the paid status
	TotalPaid(ctx context.Context, patientID uuid.UUID) (decimal.Decimal, error)
}
