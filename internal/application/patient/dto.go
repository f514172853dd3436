package patient

import (
	"time"

	"github.com/clinic/backend/internal/domain/patient"
	"github.com/google/uuid"
)

// CreatePatientRequest registers a patient
type CreatePatientRequest struct {
	FirstName   string     `json:"first_name" binding:"required"`
	LastName    string     `json:"last_name" binding:"required"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email" binding:"omitempty,email"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Notes       string     `json:"notes"`
}

// UpdatePatientRequest partially updates a patient. Omitted fields are
// left untouched.
type UpdatePatientRequest struct {
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	Phone       *string    `json:"phone"`
	Email       *string    `json:"email"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Notes       *string    `json:"notes"`
}

// PatientListFilter carries list query parameters
type PatientListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// PatientResponse is the patient representation returned to clients
type PatientResponse struct {
	ID          uuid.UUID  `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	FullName    string     `json:"full_name"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Notes       string     `json:"notes"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToPatientResponse converts a domain patient to its response form
func ToPatientResponse(p *patient.Patient) *PatientResponse {
	return &PatientResponse{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		FullName:    p.FullName(),
		Phone:       p.Phone,
		Email:       p.Email,
		DateOfBirth: p.DateOfBirth,
		Notes:       p.Notes,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}
