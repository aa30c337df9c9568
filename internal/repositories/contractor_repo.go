package repositories

import (
	"context"
	"errors"

	"referralnet/internal/common"
	"referralnet/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotisserie/eris"
)

const fkViolation = "23503"

type ContractorRepository interface {
	Create(ctx context.Context, contractor *models.Contractor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Contractor, error)
	GetByPhone(ctx context.Context, phone string) (*models.Contractor, error)
	GetWithLocation(ctx context.Context, id uuid.UUID) (*models.ContractorWithLocation, error)
	Update(ctx context.Context, contractor *models.Contractor) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]*models.Contractor, error)
	ListActiveWithLocations(ctx context.Context) ([]*models.ContractorWithLocation, error)
}

type contractorRepo struct {
	db Database
}

func NewContractorRepo(db Database) ContractorRepository {
	return &contractorRepo{db: db}
}

const contractorColumns = `id, company_name, contact_name, phone, email, address, zip_code, service_radius_miles, service_types, rating, active, created_at, updated_at`

func scanContractor(row pgx.Row, c *models.Contractor) error {
	return row.Scan(&c.ID, &c.CompanyName, &c.ContactName, &c.Phone, &c.Email, &c.Address, &c.ZipCode, &c.ServiceRadiusMiles, &c.ServiceTypes, &c.Rating, &c.Active, &c.CreatedAt, &c.UpdatedAt)
}

func (r *contractorRepo) Create(ctx context.Context, contractor *models.Contractor) error {
	query := `
		INSERT INTO contractors (id, company_name, contact_name, phone, email, address, zip_code, service_radius_miles, service_types, rating, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, contractor.ID, contractor.CompanyName, contractor.ContactName, contractor.Phone, contractor.Email, contractor.Address, contractor.ZipCode, contractor.ServiceRadiusMiles, contractor.ServiceTypes, contractor.Rating, contractor.Active)
	if err != nil {
		return eris.Wrap(err, "contractors: create")
	}
	return nil
}

func (r *contractorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Contractor, error) {
	contractor := &models.Contractor{}
	query := `SELECT ` + contractorColumns + ` FROM contractors WHERE id = $1`
	if err := scanContractor(r.db.QueryRow(ctx, query, id), contractor); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NotFoundf("contractor %s", id)
		}
		return nil, eris.Wrap(err, "contractors: get by id")
	}
	return contractor, nil
}

// GetByPhone looks a contractor up by its phone number, the lookup key
// call-center agents use.
func (r *contractorRepo) GetByPhone(ctx context.Context, phone string) (*models.Contractor, error) {
	contractor := &models.Contractor{}
	query := `SELECT ` + contractorColumns + ` FROM contractors WHERE phone = $1`
	if err := scanContractor(r.db.QueryRow(ctx, query, phone), contractor); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NotFoundf("contractor with phone %s", phone)
		}
		return nil, eris.Wrap(err, "contractors: get by phone")
	}
	return contractor, nil
}

func (r *contractorRepo) GetWithLocation(ctx context.Context, id uuid.UUID) (*models.ContractorWithLocation, error) {
	cw := &models.ContractorWithLocation{}
	query := `
		SELECT c.id, c.company_name, c.contact_name, c.phone, c.email, c.address, c.zip_code, c.service_radius_miles, c.service_types, c.rating, c.active, c.created_at, c.updated_at,
		       z.city, z.latitude, z.longitude
		FROM contractors c
		JOIN zip_codes z ON z.code = c.zip_code
		WHERE c.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&cw.ID, &cw.CompanyName, &cw.ContactName, &cw.Phone, &cw.Email, &cw.Address, &cw.ZipCode, &cw.ServiceRadiusMiles, &cw.ServiceTypes, &cw.Rating, &cw.Active, &cw.CreatedAt, &cw.UpdatedAt, &cw.City, &cw.Latitude, &cw.Longitude)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NotFoundf("contractor %s", id)
		}
		return nil, eris.Wrap(err, "contractors: get with location")
	}
	return cw, nil
}

func (r *contractorRepo) Update(ctx context.Context, contractor *models.Contractor) error {
	query := `
		UPDATE contractors
		SET company_name = $1, contact_name = $2, phone = $3, email = $4, address = $5, zip_code = $6, service_radius_miles = $7, service_types = $8, rating = $9, active = $10, updated_at = NOW()
		WHERE id = $11
	`
	tag, err := r.db.Exec(ctx, query, contractor.CompanyName, contractor.ContactName, contractor.Phone, contractor.Email, contractor.Address, contractor.ZipCode, contractor.ServiceRadiusMiles, contractor.ServiceTypes, contractor.Rating, contractor.Active, contractor.ID)
	if err != nil {
		return eris.Wrap(err, "contractors: update")
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("contractor %s", contractor.ID)
	}
	return nil
}

// SetActive flips the approval/suspension flag without touching the
// rest of the profile.
func (r *contractorRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE contractors SET active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return eris.Wrap(err, "contractors: set active")
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("contractor %s", id)
	}
	return nil
}

// Delete removes a contractor outright. The referral_details FK is ON
// DELETE RESTRICT, so a contractor with referral history cannot be
// deleted; that surfaces as a conflict rather than a driver error.
func (r *contractorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contractors WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
			return eris.Wrap(common.ErrConflict, "contractor has referral history and cannot be deleted")
		}
		return eris.Wrap(err, "contractors: delete")
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("contractor %s", id)
	}
	return nil
}

func (r *contractorRepo) List(ctx context.Context, activeOnly bool, limit, offset int) ([]*models.Contractor, error) {
	query := `SELECT ` + contractorColumns + ` FROM contractors`
	if activeOnly {
		query += ` WHERE active = true`
	}
	query += ` ORDER BY company_name LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, eris.Wrap(err, "contractors: list")
	}
	defer rows.Close()

	var contractors []*models.Contractor
	for rows.Next() {
		contractor := &models.Contractor{}
		if err := scanContractor(rows, contractor); err != nil {
			return nil, eris.Wrap(err, "contractors: scan row")
		}
		contractors = append(contractors, contractor)
	}
	return contractors, nil
}

// ListActiveWithLocations returns every approved contractor whose home
// ZIP is still active, joined with that ZIP's coordinates. This is the
// matcher's candidate set; it is read fresh on every call so
// active-flag and rating changes take effect immediately.
func (r *contractorRepo) ListActiveWithLocations(ctx context.Context) ([]*models.ContractorWithLocation, error) {
	query := `
		SELECT c.id, c.company_name, c.contact_name, c.phone, c.email, c.address, c.zip_code, c.service_radius_miles, c.service_types, c.rating, c.active, c.created_at, c.updated_at,
		       z.city, z.latitude, z.longitude
		FROM contractors c
		JOIN zip_codes z ON z.code = c.zip_code
		WHERE c.active = true AND z.active = true
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "contractors: list active with locations")
	}
	defer rows.Close()

	var contractors []*models.ContractorWithLocation
	for rows.Next() {
		cw := &models.ContractorWithLocation{}
		if err := rows.Scan(&cw.ID, &cw.CompanyName, &cw.ContactName, &cw.Phone, &cw.Email, &cw.Address, &cw.ZipCode, &cw.ServiceRadiusMiles, &cw.ServiceTypes, &cw.Rating, &cw.Active, &cw.CreatedAt, &cw.UpdatedAt, &cw.City, &cw.Latitude, &cw.Longitude); err != nil {
			return nil, eris.Wrap(err, "contractors: scan row")
		}
		contractors = append(contractors, cw)
	}
	return contractors, nil
}
