package services

import (
	"context"
	"errors"

	"referralnet/internal/common"
	"referralnet/internal/models"
	"referralnet/internal/repositories"

	"github.com/google/uuid"
)

type ContractorService interface {
	Register(ctx context.Context, contractor *models.Contractor) error
	Approve(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Update(ctx context.Context, contractor *models.Contractor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Contractor, error)
	GetByPhone(ctx context.Context, phone string) (*models.Contractor, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]*models.Contractor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type contractorService struct {
	contractorRepo repositories.ContractorRepository
	zipRepo        repositories.ZipCodeRepository
}

func NewContractorService(contractorRepo repositories.ContractorRepository, zipRepo repositories.ZipCodeRepository) ContractorService {
	return &contractorService{
		contractorRepo: contractorRepo,
		zipRepo:        zipRepo,
	}
}

// Register creates a contractor in the pending state. Admin approval
// flips Active later; until then the matcher never sees the company.
func (s *contractorService) Register(ctx context.Context, contractor *models.Contractor) error {
	if contractor.CompanyName == "" {
		return common.InvalidInputf("company name is required")
	}
	if contractor.Phone == "" {
		return common.InvalidInputf("phone is required")
	}
	if contractor.Rating < 0 || contractor.Rating > 5 {
		return common.InvalidInputf("rating must be between 0.00 and 5.00")
	}

	base, err := common.ValidateZipFormat(contractor.ZipCode)
	if err != nil {
		return common.InvalidInputf("zip code: %v", err)
	}
	if _, err := s.zipRepo.GetByCode(ctx, base); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.InvalidInputf("unknown zip code %s", base)
		}
		return err
	}
	contractor.ZipCode = base

	// Phone doubles as the lookup key, so registrations must not
	// collide on it.
	existing, err := s.contractorRepo.GetByPhone(ctx, contractor.Phone)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return err
	}
	if existing != nil {
		return common.InvalidInputf("a contractor with phone %s already exists", contractor.Phone)
	}

	if contractor.ID == uuid.Nil {
		contractor.ID = uuid.New()
	}
	if contractor.ServiceRadiusMiles <= 0 {
		contractor.ServiceRadiusMiles = models.DefaultServiceRadiusMiles
	}
	contractor.Active = false

	return s.contractorRepo.Create(ctx, contractor)
}

func (s *contractorService) Approve(ctx context.Context, id uuid.UUID) error {
	return s.contractorRepo.SetActive(ctx, id, true)
}

func (s *contractorService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.contractorRepo.SetActive(ctx, id, active)
}

func (s *contractorService) Update(ctx context.Context, contractor *models.Contractor) error {
	if contractor.CompanyName == "" {
		return common.InvalidInputf("company name is required")
	}
	if contractor.Rating < 0 || contractor.Rating > 5 {
		return common.InvalidInputf("rating must be between 0.00 and 5.00")
	}
	if contractor.ServiceRadiusMiles <= 0 {
		return common.InvalidInputf("service radius must be greater than 0")
	}

	base, err := common.ValidateZipFormat(contractor.ZipCode)
	if err != nil {
		return common.InvalidInputf("zip code: %v", err)
	}
	contractor.ZipCode = base

	return s.contractorRepo.Update(ctx, contractor)
}

func (s *contractorService) GetByID(ctx context.Context, id uuid.UUID) (*models.Contractor, error) {
	return s.contractorRepo.GetByID(ctx, id)
}

func (s *contractorService) GetByPhone(ctx context.Context, phone string) (*models.Contractor, error) {
	return s.contractorRepo.GetByPhone(ctx, phone)
}

func (s *contractorService) List(ctx context.Context, activeOnly bool, limit, offset int) ([]*models.Contractor, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.contractorRepo.List(ctx, activeOnly, limit, offset)
}

func (s *contractorService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.contractorRepo.Delete(ctx, id)
}
