package catalog

import (
	"time"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TreatmentType classifies a treatment for pricing fallbacks and reporting
type TreatmentType string

const (
	TreatmentTypeInjection      TreatmentType = "injection"
	TreatmentTypeLaser          TreatmentType = "laser"
	TreatmentTypeMassage        TreatmentType = "massage"
	TreatmentTypeMesotherapy    TreatmentType = "mesotherapy"
	TreatmentTypeLED            TreatmentType = "led"
	TreatmentTypeMicroneedling  TreatmentType = "microneedling"
	TreatmentTypePRP            TreatmentType = "prp"
	TreatmentTypeCarboxytherapy TreatmentType = "carboxytherapy"
	TreatmentTypePeeling        TreatmentType = "peeling"
	TreatmentTypeConsultation   TreatmentType = "consultation"
	TreatmentTypeOther          TreatmentType = "other"
)

// Treatment represents an entry in the clinic's treatment catalog.
// Entries are never hard-deleted; deactivation hides them from pricing
// and listing while existing billing lines keep their captured amounts.
type Treatment struct {
	shared.BaseAggregateRoot
	Name         string          `gorm:"type:varchar(200);not null;uniqueIndex:idx_treatments_name"`
	Type         TreatmentType   `gorm:"type:varchar(50);not null"`
	DefaultPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description  string          `gorm:"type:text"`
	Active       bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Treatment) TableName() string {
	return "available_treatments"
}

// NewTreatment creates a new active catalog entry
func NewTreatment(name string, treatmentType TreatmentType, defaultPrice decimal.Decimal, description string) (*Treatment, error) {
	if err := validateTreatmentName(name); err != nil {
		return nil, err
	}
	if treatmentType == "" {
		treatmentType = TreatmentTypeOther
	}
	if defaultPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Default price cannot be negative")
	}

	treatment := &Treatment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Type:              treatmentType,
		DefaultPrice:      defaultPrice,
		Description:       description,
		Active:            true,
	}

	treatment.AddDomainEvent(NewTreatmentAddedEvent(treatment))

	return treatment, nil
}

// Update applies a partial update. Nil fields are left untouched.
func (t *Treatment) Update(name *string, treatmentType *TreatmentType, defaultPrice *decimal.Decimal, description *string) error {
	if name != nil {
		if err := validateTreatmentName(*name); err != nil {
			return err
		}
		t.Name = *name
	}
	if treatmentType != nil && *treatmentType != "" {
		t.Type = *treatmentType
	}
	if defaultPrice != nil {
		if defaultPrice.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Default price cannot be negative")
		}
		t.DefaultPrice = *defaultPrice
	}
	if description != nil {
		t.Description = *description
	}

	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTreatmentUpdatedEvent(t))

	return nil
}

// Deactivate hides the treatment from pricing and active listings
func (t *Treatment) Deactivate() error {
	if !t.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "Treatment is already inactive")
	}

	t.Active = false
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTreatmentDeactivatedEvent(t))

	return nil
}

// Activate restores a deactivated treatment
func (t *Treatment) Activate() error {
	if t.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "Treatment is already active")
	}

	t.Active = true
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// IsActive returns true if the treatment can be priced and listed
func (t *Treatment) IsActive() bool {
	return t.Active
}

// fallbackPrices maps treatment types to prices used when a plan
// instance names a treatment absent from the active catalog
var fallbackPrices = map[TreatmentType]decimal.Decimal{
	TreatmentTypeInjection:      decimal.NewFromInt(350),
	TreatmentTypeLaser:          decimal.NewFromInt(200),
	TreatmentTypeMassage:        decimal.NewFromInt(150),
	TreatmentTypeMesotherapy:    decimal.NewFromInt(300),
	TreatmentTypeLED:            decimal.NewFromInt(100),
	TreatmentTypeMicroneedling:  decimal.NewFromInt(250),
	TreatmentTypePRP:            decimal.NewFromInt(400),
	TreatmentTypeCarboxytherapy: decimal.NewFromInt(180),
	TreatmentTypePeeling:        decimal.NewFromInt(120),
	TreatmentTypeConsultation:   decimal.NewFromInt(80),
	TreatmentTypeOther:          decimal.NewFromInt(100),
}

// FallbackPrice returns the default unit price for a treatment type.
// Unknown types price at the "other" rate of 100.
func FallbackPrice(treatmentType TreatmentType) decimal.Decimal {
	if price, ok := fallbackPrices[treatmentType]; ok {
		return price
	}
	return fallbackPrices[TreatmentTypeOther]
}

// validateTreatmentName validates the catalog entry name
func validateTreatmentName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Treatment name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Treatment name cannot exceed 200 characters")
	}
	return nil
}
