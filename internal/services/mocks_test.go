package services

import (
	"context"
	"time"

	"referralnet/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock repositories shared across the service tests.

type MockZipCodeRepository struct {
	mock.Mock
}

func (m *MockZipCodeRepository) Create(ctx context.Context, zip *models.ZipCode) error {
	args := m.Called(ctx, zip)
	return args.Error(0)
}

func (m *MockZipCodeRepository) GetByCode(ctx context.Context, code string) (*models.ZipCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ZipCode), args.Error(1)
}

func (m *MockZipCodeRepository) List(ctx context.Context, limit, offset int) ([]*models.ZipCode, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.ZipCode), args.Error(1)
}

func (m *MockZipCodeRepository) Deactivate(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

type MockContractorRepository struct {
	mock.Mock
}

func (m *MockContractorRepository) Create(ctx context.Context, contractor *models.Contractor) error {
	args := m.Called(ctx, contractor)
	return args.Error(0)
}

func (m *MockContractorRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Contractor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contractor), args.Error(1)
}

func (m *MockContractorRepository) GetByPhone(ctx context.Context, phone string) (*models.Contractor, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contractor), args.Error(1)
}

func (m *MockContractorRepository) GetWithLocation(ctx context.Context, id uuid.UUID) (*models.ContractorWithLocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContractorWithLocation), args.Error(1)
}

func (m *MockContractorRepository) Update(ctx context.Context, contractor *models.Contractor) error {
	args := m.Called(ctx, contractor)
	return args.Error(0)
}

func (m *MockContractorRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockContractorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContractorRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]*models.Contractor, error) {
	args := m.Called(ctx, activeOnly, limit, offset)
	return args.Get(0).([]*models.Contractor), args.Error(1)
}

func (m *MockContractorRepository) ListActiveWithLocations(ctx context.Context) ([]*models.ContractorWithLocation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.ContractorWithLocation), args.Error(1)
}

type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) CreateWithDetails(ctx context.Context, referral *models.Referral, details []*models.ReferralDetail) error {
	args := m.Called(ctx, referral, details)
	return args.Error(0)
}

func (m *MockReferralRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Referral, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Referral), args.Error(1)
}

func (m *MockReferralRepository) ListDetails(ctx context.Context, referralID uuid.UUID) ([]*models.ReferralDetailView, error) {
	args := m.Called(ctx, referralID)
	return args.Get(0).([]*models.ReferralDetailView), args.Error(1)
}

func (m *MockReferralRepository) GetDetailByID(ctx context.Context, detailID uuid.UUID) (*models.ReferralDetail, error) {
	args := m.Called(ctx, detailID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReferralDetail), args.Error(1)
}

func (m *MockReferralRepository) UpdateDetailStatus(ctx context.Context, detailID uuid.UUID, upd *models.DetailStatusUpdate) error {
	args := m.Called(ctx, detailID, upd)
	return args.Error(0)
}

func (m *MockReferralRepository) SelectContractor(ctx context.Context, referralID, contractorID uuid.UUID, workStartDate *time.Time) error {
	args := m.Called(ctx, referralID, contractorID, workStartDate)
	return args.Error(0)
}

func (m *MockReferralRepository) CompleteWork(ctx context.Context, detailID uuid.UUID, completedAt time.Time) (bool, error) {
	args := m.Called(ctx, detailID, completedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockReferralRepository) List(ctx context.Context, filter *models.ReferralSearchFilter) ([]*models.Referral, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Referral), args.Error(1)
}

func (m *MockReferralRepository) Update(ctx context.Context, referral *models.Referral) error {
	args := m.Called(ctx, referral)
	return args.Error(0)
}

func (m *MockReferralRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetZipCode(ctx context.Context, code string) (*models.ZipCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ZipCode), args.Error(1)
}

func (m *MockCacheService) SetZipCode(ctx context.Context, zip *models.ZipCode, ttl time.Duration) error {
	args := m.Called(ctx, zip, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteZipCode(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
