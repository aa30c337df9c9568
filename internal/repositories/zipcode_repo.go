package repositories

import (
	"context"
	"errors"

	"referralnet/internal/common"
	"referralnet/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
)

type ZipCodeRepository interface {
	Create(ctx context.Context, zip *models.ZipCode) error
	GetByCode(ctx context.Context, code string) (*models.ZipCode, error)
	List(ctx context.Context, limit, offset int) ([]*models.ZipCode, error)
	Deactivate(ctx context.Context, code string) error
}

type zipCodeRepo struct {
	db Database
}

func NewZipCodeRepo(db Database) ZipCodeRepository {
	return &zipCodeRepo{db: db}
}

func (r *zipCodeRepo) Create(ctx context.Context, zip *models.ZipCode) error {
	query := `
		INSERT INTO zip_codes (id, code, city, county, state, latitude, longitude, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (code) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, zip.ID, zip.Code, zip.City, zip.County, zip.State, zip.Latitude, zip.Longitude, zip.Active)
	if err != nil {
		return eris.Wrap(err, "zipcodes: create")
	}
	return nil
}

func (r *zipCodeRepo) GetByCode(ctx context.Context, code string) (*models.ZipCode, error) {
	zip := &models.ZipCode{}
	query := `
		SELECT id, code, city, county, state, latitude, longitude, active, created_at
		FROM zip_codes
		WHERE code = $1
	`
	err := r.db.QueryRow(ctx, query, code).Scan(&zip.ID, &zip.Code, &zip.City, &zip.County, &zip.State, &zip.Latitude, &zip.Longitude, &zip.Active, &zip.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NotFoundf("zip code %s", code)
		}
		return nil, eris.Wrap(err, "zipcodes: get by code")
	}
	return zip, nil
}

func (r *zipCodeRepo) List(ctx context.Context, limit, offset int) ([]*models.ZipCode, error) {
	query := `
		SELECT id, code, city, county, state, latitude, longitude, active, created_at
		FROM zip_codes
		ORDER BY code
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, eris.Wrap(err, "zipcodes: list")
	}
	defer rows.Close()

	var zips []*models.ZipCode
	for rows.Next() {
		zip := &models.ZipCode{}
		if err := rows.Scan(&zip.ID, &zip.Code, &zip.City, &zip.County, &zip.State, &zip.Latitude, &zip.Longitude, &zip.Active, &zip.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "zipcodes: scan row")
		}
		zips = append(zips, zip)
	}
	return zips, nil
}

// Deactivate retires a ZIP without deleting it; contractors and
// referrals keep their foreign keys.
func (r *zipCodeRepo) Deactivate(ctx context.Context, code string) error {
	tag, err := r.db.Exec(ctx, `UPDATE zip_codes SET active = false WHERE code = $1`, code)
	if err != nil {
		return eris.Wrap(err, "zipcodes: deactivate")
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("zip code %s", code)
	}
	return nil
}
