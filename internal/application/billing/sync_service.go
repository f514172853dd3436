package billing

import (
	"context"
	"errors"

	"github.com/clinic/backend/internal/domain/billing"
	"github.com/clinic/backend/internal/domain/catalog"
	"github.com/clinic/backend/internal/domain/clinicplan"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SyncService derives treatment charges from a patient's active plan.
// Synchronization is idempotent: charges already in the ledger are
// skipped, so repeated runs never duplicate a line.
type SyncService struct {
	chargeRepo    billing.TreatmentChargeRepository
	planRepo      clinicplan.PlanRepository
	treatmentRepo catalog.TreatmentRepository
	log           *zap.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(
	chargeRepo billing.TreatmentChargeRepository,
	planRepo clinicplan.PlanRepository,
	treatmentRepo catalog.TreatmentRepository,
	log *zap.Logger,
) *SyncService {
	return &SyncService{
		chargeRepo:    chargeRepo,
		planRepo:      planRepo,
		treatmentRepo: treatmentRepo,
		log:           log,
	}
}

// SyncPatientCharges prices every active plan instance into the ledger
// and reports how many new charges were created. A mid-batch failure
// leaves the charges created so far in place; the failure is logged
// and the count reflects the actual inserts.
func (s *SyncService) SyncPatientCharges(ctx context.Context, patientID uuid.UUID) (*SyncResponse, error) {
	instances, err := s.planRepo.FindActiveInstances(ctx, patientID)
	if err != nil {
		return nil, err
	}

	created := 0
	for i := range instances {
		instance := &instances[i]

		charge, err := s.chargeFor(ctx, patientID, instance)
		if err != nil {
			s.log.Error("Charge sync stopped mid-batch",
				zap.String("patient_id", patientID.String()),
				zap.String("treatment", instance.TreatmentName),
				zap.Int("created", created),
				zap.Error(err),
			)
			return &SyncResponse{PatientID: patientID, Created: created}, nil
		}

		inserted, err := s.chargeRepo.Insert(ctx, charge)
		if err != nil {
			s.log.Error("Charge sync stopped mid-batch",
				zap.String("patient_id", patientID.String()),
				zap.String("treatment", instance.TreatmentName),
				zap.Int("created", created),
				zap.Error(err),
			)
			return &SyncResponse{PatientID: patientID, Created: created}, nil
		}
		if inserted {
			created++
		}
	}

	return &SyncResponse{PatientID: patientID, Created: created}, nil
}

// chargeFor builds the ledger charge for one plan instance: unit price
// times the planned quantity.
func (s *SyncService) chargeFor(ctx context.Context, patientID uuid.UUID, instance *clinicplan.PlanTreatment) (*billing.TreatmentCharge, error) {
	unit, err := s.priceFor(ctx, instance)
	if err != nil {
		return nil, err
	}

	amount := unit.Mul(decimal.NewFromInt(int64(instance.Quantity)))

	return billing.NewTreatmentCharge(
		patientID,
		instance.ID,
		instance.TreatmentName,
		instance.TreatmentType,
		amount,
	)
}

// priceFor resolves the unit price: the active catalog price for an
// exact name match, otherwise the type's fallback price
func (s *SyncService) priceFor(ctx context.Context, instance *clinicplan.PlanTreatment) (decimal.Decimal, error) {
	treatment, err := s.treatmentRepo.FindActiveByName(ctx, instance.TreatmentName)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return catalog.FallbackPrice(instance.TreatmentType), nil
		}
		return decimal.Zero, err
	}

	return treatment.DefaultPrice, nil
}
