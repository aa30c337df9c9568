package services

import (
	"context"
	"errors"
	"time"

	"referralnet/internal/common"
	"referralnet/internal/models"
	"referralnet/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReferralService is the referral ledger: it opens referrals with
// distance snapshots and drives each detail's lifecycle. Every
// multi-row mutation runs in a single transaction at the repository.
type ReferralService interface {
	CreateReferral(ctx context.Context, input *models.CreateReferralInput) (uuid.UUID, error)
	UpdateDetailStatus(ctx context.Context, detailID uuid.UUID, upd *models.DetailStatusUpdate) error
	SelectContractor(ctx context.Context, referralID, contractorID uuid.UUID, workStartDate *time.Time) error
	CompleteWork(ctx context.Context, detailID uuid.UUID, workCompletedDate *time.Time) error
	GetReferralStatus(ctx context.Context, referralID uuid.UUID) (*models.ReferralSnapshot, error)
	ListReferrals(ctx context.Context, filter *models.ReferralSearchFilter) ([]*models.Referral, error)
	UpdateReferral(ctx context.Context, referral *models.Referral) error
	DeleteReferral(ctx context.Context, referralID uuid.UUID) error
}

type referralService struct {
	referralRepo   repositories.ReferralRepository
	contractorRepo repositories.ContractorRepository
	geoService     GeospatialService
}

func NewReferralService(referralRepo repositories.ReferralRepository, contractorRepo repositories.ContractorRepository, geoService GeospatialService) ReferralService {
	return &referralService{
		referralRepo:   referralRepo,
		contractorRepo: contractorRepo,
		geoService:     geoService,
	}
}

// CreateReferral validates input, snapshots the haversine distance to
// each contractor's home ZIP, and persists the referral plus all
// detail rows atomically. An unknown contractor aborts the whole
// referral with nothing committed.
func (s *referralService) CreateReferral(ctx context.Context, input *models.CreateReferralInput) (uuid.UUID, error) {
	base, err := common.ValidateZipFormat(input.CustomerZip)
	if err != nil {
		return uuid.Nil, common.InvalidInputf("customer zip: %v", err)
	}
	if len(input.ContractorIDs) == 0 {
		return uuid.Nil, common.InvalidInputf("at least one contractor is required")
	}

	status := models.ReferralPending
	if input.InitialStatus != nil {
		if !input.InitialStatus.Valid() {
			return uuid.Nil, common.InvalidInputf("unknown referral status %q", *input.InitialStatus)
		}
		status = *input.InitialStatus
	}

	origin, err := s.geoService.ResolveZip(ctx, base)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return uuid.Nil, common.InvalidInputf("unknown zip code %s", base)
		}
		return uuid.Nil, err
	}
	if !origin.Active {
		return uuid.Nil, common.InvalidInputf("zip code %s is inactive", base)
	}

	referral := &models.Referral{
		ID:            uuid.New(),
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		CustomerZip:   base,
		ServiceType:   input.ServiceType,
		RequestDate:   time.Now(),
		Status:        status,
		Notes:         input.Notes,
		CreatedBy:     input.CreatedBy,
	}

	details := make([]*models.ReferralDetail, 0, len(input.ContractorIDs))
	for i, contractorID := range input.ContractorIDs {
		contractor, err := s.contractorRepo.GetWithLocation(ctx, contractorID)
		if err != nil {
			// NotFound propagates; nothing has been written yet.
			return uuid.Nil, err
		}
		details = append(details, &models.ReferralDetail{
			ID:              uuid.New(),
			ReferralID:      referral.ID,
			ContractorID:    contractor.ID,
			DistanceMiles:   Haversine(origin.Latitude, origin.Longitude, contractor.Latitude, contractor.Longitude),
			Position:        i + 1,
			Status:          models.DetailReferred,
			ContactedDate:   input.ContactedDate,
			AppointmentDate: input.AppointmentDate,
		})
	}

	if err := s.referralRepo.CreateWithDetails(ctx, referral, details); err != nil {
		return uuid.Nil, err
	}

	zap.L().Info("referral created",
		zap.String("referral_id", referral.ID.String()),
		zap.String("customer_zip", base),
		zap.Int("contractors", len(details)))
	return referral.ID, nil
}

// UpdateDetailStatus applies a lifecycle update to one detail after
// validating the transition against the forward-only table. The
// distance snapshot is never touched.
func (s *referralService) UpdateDetailStatus(ctx context.Context, detailID uuid.UUID, upd *models.DetailStatusUpdate) error {
	if !upd.Status.Valid() {
		return common.InvalidInputf("unknown detail status %q", upd.Status)
	}

	detail, err := s.referralRepo.GetDetailByID(ctx, detailID)
	if err != nil {
		return err
	}

	if !detail.Status.CanTransitionTo(upd.Status) {
		zap.L().Warn("rejected out-of-order detail transition",
			zap.String("detail_id", detailID.String()),
			zap.String("from", string(detail.Status)),
			zap.String("to", string(upd.Status)))
		return common.InvalidInputf("cannot move detail from %s to %s", detail.Status, upd.Status)
	}

	return s.referralRepo.UpdateDetailStatus(ctx, detailID, upd)
}

// SelectContractor records the customer's choice: exactly one detail
// ends up selected, the rest are forced false, and the parent referral
// moves to In Progress, all in one transaction.
func (s *referralService) SelectContractor(ctx context.Context, referralID, contractorID uuid.UUID, workStartDate *time.Time) error {
	return s.referralRepo.SelectContractor(ctx, referralID, contractorID, workStartDate)
}

// CompleteWork closes out a detail; when it is the selected one the
// parent referral completes with it.
func (s *referralService) CompleteWork(ctx context.Context, detailID uuid.UUID, workCompletedDate *time.Time) error {
	completedAt := time.Now()
	if workCompletedDate != nil {
		completedAt = *workCompletedDate
	}

	selected, err := s.referralRepo.CompleteWork(ctx, detailID, completedAt)
	if err != nil {
		return err
	}

	zap.L().Info("work completed",
		zap.String("detail_id", detailID.String()),
		zap.Bool("selected_contractor", selected))
	return nil
}

func (s *referralService) GetReferralStatus(ctx context.Context, referralID uuid.UUID) (*models.ReferralSnapshot, error) {
	referral, err := s.referralRepo.GetByID(ctx, referralID)
	if err != nil {
		return nil, err
	}
	details, err := s.referralRepo.ListDetails(ctx, referralID)
	if err != nil {
		return nil, err
	}
	return &models.ReferralSnapshot{Referral: *referral, Details: details}, nil
}

func (s *referralService) ListReferrals(ctx context.Context, filter *models.ReferralSearchFilter) ([]*models.Referral, error) {
	if filter == nil {
		filter = &models.ReferralSearchFilter{}
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, common.InvalidInputf("unknown referral status %q", *filter.Status)
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.referralRepo.List(ctx, filter)
}

func (s *referralService) UpdateReferral(ctx context.Context, referral *models.Referral) error {
	if !referral.Status.Valid() {
		return common.InvalidInputf("unknown referral status %q", referral.Status)
	}

	current, err := s.referralRepo.GetByID(ctx, referral.ID)
	if err != nil {
		return err
	}
	if !current.Status.CanTransitionTo(referral.Status) {
		zap.L().Warn("rejected out-of-order referral transition",
			zap.String("referral_id", referral.ID.String()),
			zap.String("from", string(current.Status)),
			zap.String("to", string(referral.Status)))
		return common.InvalidInputf("cannot move referral from %s to %s", current.Status, referral.Status)
	}

	return s.referralRepo.Update(ctx, referral)
}

func (s *referralService) DeleteReferral(ctx context.Context, referralID uuid.UUID) error {
	return s.referralRepo.Delete(ctx, referralID)
}
