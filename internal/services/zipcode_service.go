package services

import (
	"context"

	"referralnet/internal/caching"
	"referralnet/internal/common"
	"referralnet/internal/models"
	"referralnet/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ZipCodeService manages the coordinate table. ZIPs are loaded once,
// never mutated, and retired by deactivation only.
type ZipCodeService interface {
	Load(ctx context.Context, zip *models.ZipCode) error
	GetByCode(ctx context.Context, code string) (*models.ZipCode, error)
	List(ctx context.Context, limit, offset int) ([]*models.ZipCode, error)
	Deactivate(ctx context.Context, code string) error
}

type zipCodeService struct {
	zipRepo repositories.ZipCodeRepository
	cache   caching.CacheService
}

func NewZipCodeService(zipRepo repositories.ZipCodeRepository, cache caching.CacheService) ZipCodeService {
	return &zipCodeService{zipRepo: zipRepo, cache: cache}
}

func (s *zipCodeService) Load(ctx context.Context, zip *models.ZipCode) error {
	base, err := common.ValidateZipFormat(zip.Code)
	if err != nil {
		return common.InvalidInputf("zip code: %v", err)
	}
	zip.Code = base
	if zip.City == "" || zip.State == "" {
		return common.InvalidInputf("city and state are required")
	}
	if zip.ID == uuid.Nil {
		zip.ID = uuid.New()
	}
	zip.Active = true
	return s.zipRepo.Create(ctx, zip)
}

func (s *zipCodeService) GetByCode(ctx context.Context, code string) (*models.ZipCode, error) {
	base, err := common.ValidateZipFormat(code)
	if err != nil {
		return nil, common.InvalidInputf("zip code: %v", err)
	}
	return s.zipRepo.GetByCode(ctx, base)
}

func (s *zipCodeService) List(ctx context.Context, limit, offset int) ([]*models.ZipCode, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.zipRepo.List(ctx, limit, offset)
}

// Deactivate retires a ZIP and drops its cache entry so the matcher
// stops resolving it ahead of the TTL.
func (s *zipCodeService) Deactivate(ctx context.Context, code string) error {
	if err := s.zipRepo.Deactivate(ctx, code); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.DeleteZipCode(ctx, code); err != nil {
			zap.L().Warn("zipcodes: cache invalidation failed", zap.String("code", code), zap.Error(err))
		}
	}
	return nil
}
