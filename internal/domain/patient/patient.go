package patient

import (
	"strings"
	"time"

	"github.com/clinic/backend/internal/domain/shared"
)

// Patient is a clinic patient. The directory stays intentionally
// small: billing and plans reference patients by ID only.
type Patient struct {
	shared.BaseAggregateRoot
	FirstName   string `gorm:"type:varchar(100);not null"`
	LastName    string `gorm:"type:varchar(100);not null"`
	Phone       string `gorm:"type:varchar(50)"`
	Email       string `gorm:"type:varchar(255)"`
	DateOfBirth *time.Time
	Notes       string `gorm:"type:text"`
	Active      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Patient) TableName() string {
	return "patients"
}

// NewPatient registers a patient in the directory
func NewPatient(firstName, lastName, phone, email string, dateOfBirth *time.Time, notes string) (*Patient, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First and last name are required")
	}

	return &Patient{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         firstName,
		LastName:          lastName,
		Phone:             phone,
		Email:             email,
		DateOfBirth:       dateOfBirth,
		Notes:             notes,
		Active:            true,
	}, nil
}

// Update applies a partial update. Nil fields are left untouched.
func (p *Patient) Update(firstName, lastName, phone, email, notes *string, dateOfBirth *time.Time) error {
	if firstName != nil {
		name := strings.TrimSpace(*firstName)
		if name == "" {
			return shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
		}
		p.FirstName = name
	}
	if lastName != nil {
		name := strings.TrimSpace(*lastName)
		if name == "" {
			return shared.NewDomainError("INVALID_NAME", "Last name cannot be empty")
		}
		p.LastName = name
	}
	if phone != nil {
		p.Phone = *phone
	}
	if email != nil {
		p.Email = *email
	}
	if notes != nil {
		p.Notes = *notes
	}
	if dateOfBirth != nil {
		p.DateOfBirth = dateOfBirth
	}

	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// FullName returns the display name
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Deactivate hides the patient from active listings
func (p *Patient) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
