package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"referralnet/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ZipCoordinateTTL bounds how long a geocoded ZIP stays cached.
// Coordinates are immutable once geocoded, so the TTL only exists to
// let deactivations propagate without an explicit invalidation.
const ZipCoordinateTTL = 24 * time.Hour

// CacheService caches ZIP-code coordinate lookups. Contractor and
// referral reads are never cached: the matcher must see current
// active flags and ratings.
type CacheService interface {
	GetZipCode(ctx context.Context, code string) (*models.ZipCode, error)
	SetZipCode(ctx context.Context, zip *models.ZipCode, ttl time.Duration) error
	DeleteZipCode(ctx context.Context, code string) error
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Tolerate redis:// and rediss:// prefixed addresses.
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		zap.L().Warn("redis ping failed on initialization", zap.String("addr", parsedAddr), zap.Error(err))
	}

	return &redisCacheService{client: client}
}

func zipKey(code string) string {
	return fmt.Sprintf("zip:%s", code)
}

// GetZipCode returns the cached ZIP or (nil, nil) on a miss.
func (s *redisCacheService) GetZipCode(ctx context.Context, code string) (*models.ZipCode, error) {
	data, err := s.client.Get(ctx, zipKey(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var zip models.ZipCode
	if err := json.Unmarshal([]byte(data), &zip); err != nil {
		// A corrupt entry is treated as a miss.
		zap.L().Warn("cache: dropping corrupt zip entry", zap.String("code", code), zap.Error(err))
		_ = s.client.Del(ctx, zipKey(code)).Err()
		return nil, nil
	}
	return &zip, nil
}

func (s *redisCacheService) SetZipCode(ctx context.Context, zip *models.ZipCode, ttl time.Duration) error {
	data, err := json.Marshal(zip)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, zipKey(zip.Code), data, ttl).Err()
}

func (s *redisCacheService) DeleteZipCode(ctx context.Context, code string) error {
	return s.client.Del(ctx, zipKey(code)).Err()
}

func (s *redisCacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
