package services

import (
	"context"
	"errors"
	"math"
	"sort"

	"referralnet/internal/caching"
	"referralnet/internal/common"
	"referralnet/internal/models"
	"referralnet/internal/repositories"

	"go.uber.org/zap"
)

// EarthRadiusMiles is the mean Earth radius used by the haversine
// computation.
const EarthRadiusMiles = 3959.0

// Matcher defaults, applied when a caller passes zero values.
const (
	DefaultMaxDistanceMiles = 25.0
	DefaultMaxResults       = 3
)

// Haversine returns the great-circle distance in miles between two
// decimal-degree coordinates. It is symmetric, deterministic, and
// returns 0 for identical points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

// GeospatialService resolves ZIPs to coordinates and runs the
// contractor matcher.
type GeospatialService interface {
	ResolveZip(ctx context.Context, code string) (*models.ZipCode, error)
	ValidateZip(ctx context.Context, code string) (bool, error)
	FindContractors(ctx context.Context, customerZip, serviceType string, maxDistanceMiles float64, maxResults int) ([]*models.ContractorMatch, error)
}

type geospatialService struct {
	zipRepo        repositories.ZipCodeRepository
	contractorRepo repositories.ContractorRepository
	cache          caching.CacheService
}

func NewGeospatialService(zipRepo repositories.ZipCodeRepository, contractorRepo repositories.ContractorRepository, cache caching.CacheService) GeospatialService {
	return &geospatialService{
		zipRepo:        zipRepo,
		contractorRepo: contractorRepo,
		cache:          cache,
	}
}

// ResolveZip looks a ZIP up through the coordinate cache, falling back
// to the store on a miss. Cache failures degrade to a direct read.
func (s *geospatialService) ResolveZip(ctx context.Context, code string) (*models.ZipCode, error) {
	if s.cache != nil {
		cached, err := s.cache.GetZipCode(ctx, code)
		if err != nil {
			zap.L().Warn("geo: zip cache read failed", zap.String("code", code), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	zip, err := s.zipRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetZipCode(ctx, zip, caching.ZipCoordinateTTL); err != nil {
			zap.L().Warn("geo: zip cache write failed", zap.String("code", code), zap.Error(err))
		}
	}
	return zip, nil
}

// ValidateZip reports whether a ZIP string is syntactically valid,
// known, and active.
func (s *geospatialService) ValidateZip(ctx context.Context, code string) (bool, error) {
	base, err := common.ValidateZipFormat(code)
	if err != nil {
		return false, nil
	}
	zip, err := s.ResolveZip(ctx, base)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return zip.Active, nil
}

// FindContractors ranks active contractors around a customer ZIP.
// Unknown or inactive ZIPs yield an empty result rather than an error;
// callers validate ZIP existence separately when they need to reject.
func (s *geospatialService) FindContractors(ctx context.Context, customerZip, serviceType string, maxDistanceMiles float64, maxResults int) ([]*models.ContractorMatch, error) {
	if maxDistanceMiles == 0 {
		maxDistanceMiles = DefaultMaxDistanceMiles
	}
	if maxResults == 0 {
		maxResults = DefaultMaxResults
	}

	origin, err := s.ResolveZip(ctx, customerZip)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return []*models.ContractorMatch{}, nil
		}
		return nil, err
	}
	if !origin.Active {
		return []*models.ContractorMatch{}, nil
	}

	candidates, err := s.contractorRepo.ListActiveWithLocations(ctx)
	if err != nil {
		return nil, err
	}

	type scored struct {
		contractor *models.ContractorWithLocation
		distance   float64
	}
	var survivors []scored
	for _, c := range candidates {
		d := Haversine(origin.Latitude, origin.Longitude, c.Latitude, c.Longitude)
		if d > maxDistanceMiles {
			continue
		}
		// Contractors with no tags serve any request.
		if serviceType != "" && !models.HasServiceType(c.ServiceTypes, serviceType) {
			continue
		}
		survivors = append(survivors, scored{contractor: c, distance: d})
	}

	sort.Slice(survivors, func(i, j int) bool {
		if survivors[i].distance != survivors[j].distance {
			return survivors[i].distance < survivors[j].distance
		}
		return survivors[i].contractor.Rating > survivors[j].contractor.Rating
	})

	if len(survivors) > maxResults {
		survivors = survivors[:maxResults]
	}

	matches := make([]*models.ContractorMatch, 0, len(survivors))
	for _, sc := range survivors {
		c := sc.contractor
		matches = append(matches, &models.ContractorMatch{
			ContractorID:  c.ID,
			CompanyName:   c.CompanyName,
			ContactName:   c.ContactName,
			Phone:         c.Phone,
			Email:         c.Email,
			Address:       c.Address,
			ZipCode:       c.ZipCode,
			City:          c.City,
			DistanceMiles: math.Round(sc.distance*10) / 10,
			Rating:        c.Rating,
			ServiceTypes:  models.FormatServiceTypes(c.ServiceTypes),
		})
	}
	return matches, nil
}
