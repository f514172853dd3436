package clinicplan

import (
	"time"

	"github.com/clinic/backend/internal/domain/clinicplan"
	"github.com/google/uuid"
)

// PlanTreatmentInput is one treatment row in a plan save request
type PlanTreatmentInput struct {
	Name          string     `json:"name" binding:"required"`
	Type          string     `json:"type"`
	Quantity      int        `json:"quantity"`
	Status        string     `json:"status"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Notes         string     `json:"notes"`
}

// SavePlanRequest replaces the patient's active plan
type SavePlanRequest struct {
	Notes      string               `json:"notes"`
	Treatments []PlanTreatmentInput `json:"treatments" binding:"required"`
}

// UpdateStatusRequest moves a plan treatment to a new status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// StatusChangeResponse is a single recorded transition
type StatusChangeResponse struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

// PlanTreatmentResponse is the plan treatment representation returned to clients
type PlanTreatmentResponse struct {
	ID             uuid.UUID              `json:"id"`
	PlanID         uuid.UUID              `json:"plan_id"`
	PatientID      uuid.UUID              `json:"patient_id"`
	TreatmentName  string                 `json:"treatment_name"`
	TreatmentType  string                 `json:"treatment_type"`
	Quantity       int                    `json:"quantity"`
	CompletedCount int                    `json:"completed_count"`
	Status         string                 `json:"status"`
	ScheduledDate  *time.Time             `json:"scheduled_date"`
	CompletedDate  *time.Time             `json:"completed_date"`
	Notes          string                 `json:"notes"`
	Position       int                    `json:"position"`
	History        []StatusChangeResponse `json:"history"`
	CreatedAt      time.Time              `json:"created_at"`
}

// PlanResponse is the plan representation returned to clients
type PlanResponse struct {
	ID         uuid.UUID               `json:"id"`
	PatientID  uuid.UUID               `json:"patient_id"`
	Active     bool                    `json:"active"`
	Notes      string                  `json:"notes"`
	Treatments []PlanTreatmentResponse `json:"treatments"`
	CreatedAt  time.Time               `json:"created_at"`
}

// ToPlanTreatmentResponse converts a domain instance to its response form
func ToPlanTreatmentResponse(pt *clinicplan.PlanTreatment) *PlanTreatmentResponse {
	history := make([]StatusChangeResponse, 0, len(pt.History))
	for _, change := range pt.History {
		history = append(history, StatusChangeResponse{
			From:      change.From,
			To:        change.To,
			ChangedAt: change.ChangedAt,
		})
	}

	return &PlanTreatmentResponse{
		ID:             pt.ID,
		PlanID:         pt.PlanID,
		PatientID:      pt.PatientID,
		TreatmentName:  pt.TreatmentName,
		TreatmentType:  string(pt.TreatmentType),
		Quantity:       pt.Quantity,
		CompletedCount: pt.CompletedCount,
		Status:         pt.Status,
		ScheduledDate:  pt.ScheduledDate,
		CompletedDate:  pt.CompletedDate,
		Notes:          pt.Notes,
		Position:       pt.Position,
		History:        history,
		CreatedAt:      pt.CreatedAt,
	}
}

// ToPlanResponse converts a domain plan to its response form
func ToPlanResponse(p *clinicplan.TreatmentPlan) *PlanResponse {
	treatments := make([]PlanTreatmentResponse, 0, len(p.Treatments))
	for i := range p.Treatments {
		treatments = append(treatments, *ToPlanTreatmentResponse(&p.Treatments[i]))
	}

	return &PlanResponse{
		ID:         p.ID,
		PatientID:  p.PatientID,
		Active:     p.Active,
		Notes:      p.Notes,
		Treatments: treatments,
		CreatedAt:  p.CreatedAt,
	}
}
