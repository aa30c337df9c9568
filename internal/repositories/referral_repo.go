package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"referralnet/internal/common"
	"referralnet/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
)

type ReferralRepository interface {
	CreateWithDetails(ctx context.Context, referral *models.Referral, details []*models.ReferralDetail) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Referral, error)
	ListDetails(ctx context.Context, referralID uuid.UUID) ([]*models.ReferralDetailView, error)
	GetDetailByID(ctx context.Context, detailID uuid.UUID) (*models.ReferralDetail, error)
	UpdateDetailStatus(ctx context.Context, detailID uuid.UUID, upd *models.DetailStatusUpdate) error
	SelectContractor(ctx context.Context, referralID, contractorID uuid.UUID, workStartDate *time.Time) error
	CompleteWork(ctx context.Context, detailID uuid.UUID, completedAt time.Time) (selected bool, err error)
	List(ctx context.Context, filter *models.ReferralSearchFilter) ([]*models.Referral, error)
	Update(ctx context.Context, referral *models.Referral) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type referralRepo struct {
	db Database
}

func NewReferralRepo(db Database) ReferralRepository {
	return &referralRepo{db: db}
}

const referralColumns = `id, customer_name, customer_phone, customer_zip, service_type, request_date, status, notes, created_by, created_at`

func scanReferral(row pgx.Row, ref *models.Referral) error {
	return row.Scan(&ref.ID, &ref.CustomerName, &ref.CustomerPhone, &ref.CustomerZip, &ref.ServiceType, &ref.RequestDate, &ref.Status, &ref.Notes, &ref.CreatedBy, &ref.CreatedAt)
}

const detailColumns = `id, referral_id, contractor_id, distance_miles, position, status, contacted_date, appointment_date, work_start_date, work_completed_date, estimate_amount, estimate_notes, selected_by_customer, created_at, updated_at`

func scanDetail(row pgx.Row, d *models.ReferralDetail) error {
	return row.Scan(&d.ID, &d.ReferralID, &d.ContractorID, &d.DistanceMiles, &d.Position, &d.Status, &d.ContactedDate, &d.AppointmentDate, &d.WorkStartDate, &d.WorkCompletedDate, &d.EstimateAmount, &d.EstimateNotes, &d.SelectedByCustomer, &d.CreatedAt, &d.UpdatedAt)
}

// CreateWithDetails writes the referral row and all of its detail rows
// in one transaction. Either everything commits or nothing does; a bad
// contractor reference aborts the whole referral.
func (r *referralRepo) CreateWithDetails(ctx context.Context, referral *models.Referral, details []*models.ReferralDetail) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "referrals: begin create")
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO referrals (id, customer_name, customer_phone, customer_zip, service_type, request_date, status, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`, referral.ID, referral.CustomerName, referral.CustomerPhone, referral.CustomerZip, referral.ServiceType, referral.RequestDate, referral.Status, referral.Notes, referral.CreatedBy)
	if err != nil {
		return eris.Wrap(err, "referrals: insert referral")
	}

	for _, d := range details {
		_, err = tx.Exec(ctx, `
			INSERT INTO referral_details (id, referral_id, contractor_id, distance_miles, position, status, contacted_date, appointment_date, selected_by_customer, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, NOW(), NOW())
		`, d.ID, d.ReferralID, d.ContractorID, d.DistanceMiles, d.Position, d.Status, d.ContactedDate, d.AppointmentDate)
		if err != nil {
			return eris.Wrap(err, fmt.Sprintf("referrals: insert detail position %d", d.Position))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return eris.Wrap(err, "referrals: commit create")
	}
	return nil
}

func (r *referralRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Referral, error) {
	referral := &models.Referral{}
	query := `SELECT ` + referralColumns + ` FROM referrals WHERE id = $1`
	if err := scanReferral(r.db.QueryRow(ctx, query, id), referral); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NotFoundf("referral %s", id)
		}
		return nil, eris.Wrap(err, "referrals: get by id")
	}
	return referral, nil
}

func (r *referralRepo) ListDetails(ctx context.Context, referralID uuid.UUID) ([]*models.ReferralDetailView, error) {
	query := `
		SELECT d.id, d.referral_id, d.contractor_id, d.distance_miles, d.position, d.status, d.contacted_date, d.appointment_date, d.work_start_date, d.work_completed_date, d.estimate_amount, d.estimate_notes, d.selected_by_customer, d.created_at, d.updated_at,
		       c.company_name, c.phone, c.contact_name
		FROM referral_details d
		JOIN contractors c ON c.id = d.contractor_id
		WHERE d.referral_id = $1
		ORDER BY d.position
	`
	rows, err := r.db.Query(ctx, query, referralID)
	if err != nil {
		return nil, eris.Wrap(err, "referrals: list details")
	}
	defer rows.Close()

	var details []*models.ReferralDetailView
	for rows.Next() {
		v := &models.ReferralDetailView{}
		if err := rows.Scan(&v.ID, &v.ReferralID, &v.ContractorID, &v.DistanceMiles, &v.Position, &v.Status, &v.ContactedDate, &v.AppointmentDate, &v.WorkStartDate, &v.WorkCompletedDate, &v.EstimateAmount, &v.EstimateNotes, &v.SelectedByCustomer, &v.CreatedAt, &v.UpdatedAt, &v.CompanyName, &v.ContractorPhone, &v.ContactName); err != nil {
			return nil, eris.Wrap(err, "referrals: scan detail row")
		}
		details = append(details, v)
	}
	return details, nil
}

func (r *referralRepo) GetDetailByID(ctx context.Context, detailID uuid.UUID) (*models.ReferralDetail, error) {
	detail := &models.ReferralDetail{}
	query := `SELECT ` + detailColumns + ` FROM referral_details WHERE id = $1`
	if err := scanDetail(r.db.QueryRow(ctx, query, detailID), detail); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NotFoundf("referral detail %s", detailID)
		}
		return nil, eris.Wrap(err, "referrals: get detail by id")
	}
	return detail, nil
}

// UpdateDetailStatus overwrites the lifecycle fields on one detail.
// Nil fields keep their current value; the distance snapshot and
// position are deliberately absent from the statement.
func (r *referralRepo) UpdateDetailStatus(ctx context.Context, detailID uuid.UUID, upd *models.DetailStatusUpdate) error {
	query := `
		UPDATE referral_details
		SET status = $1,
		    contacted_date = COALESCE($2, contacted_date),
		    appointment_date = COALESCE($3, appointment_date),
		    estimate_amount = COALESCE($4, estimate_amount),
		    estimate_notes = COALESCE($5, estimate_notes),
		    updated_at = NOW()
		WHERE id = $6
	`
	tag, err := r.db.Exec(ctx, query, upd.Status, upd.ContactedDate, upd.AppointmentDate, upd.EstimateAmount, upd.EstimateNotes, detailID)
	if err != nil {
		return eris.Wrap(err, "referrals: update detail status")
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("referral detail %s", detailID)
	}
	return nil
}

// SelectContractor marks exactly one detail as the customer's choice.
// All three writes happen in one transaction: every detail under the
// referral gets selected_by_customer recomputed, the chosen detail
// moves to Selected, and the parent referral moves to In Progress.
func (r *referralRepo) SelectContractor(ctx context.Context, referralID, contractorID uuid.UUID, workStartDate *time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "referrals: begin select contractor")
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	tag, err := tx.Exec(ctx, `
		UPDATE referral_details
		SET selected_by_customer = (contractor_id = $2), updated_at = NOW()
		WHERE referral_id = $1
	`, referralID, contractorID)
	if err != nil {
		return eris.Wrap(err, "referrals: clear selections")
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("referral %s has no details", referralID)
	}

	tag, err = tx.Exec(ctx, `
		UPDATE referral_details
		SET status = $3, work_start_date = COALESCE($4, work_start_date), updated_at = NOW()
		WHERE referral_id = $1 AND contractor_id = $2
	`, referralID, contractorID, models.DetailSelected, workStartDate)
	if err != nil {
		return eris.Wrap(err, "referrals: mark selected detail")
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("contractor %s on referral %s", contractorID, referralID)
	}

	_, err = tx.Exec(ctx, `UPDATE referrals SET status = $2 WHERE id = $1`, referralID, models.ReferralInProgress)
	if err != nil {
		return eris.Wrap(err, "referrals: update referral status")
	}

	if err := tx.Commit(ctx); err != nil {
		return eris.Wrap(err, "referrals: commit select contractor")
	}
	return nil
}

// CompleteWork closes out one detail and, only when that detail is the
// customer-selected one, the parent referral as well. Returns whether
// the detail was the selected one.
func (r *referralRepo) CompleteWork(ctx context.Context, detailID uuid.UUID, completedAt time.Time) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, eris.Wrap(err, "referrals: begin complete work")
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	var referralID uuid.UUID
	var selected bool
	err = tx.QueryRow(ctx, `
		UPDATE referral_details
		SET status = $2, work_completed_date = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING referral_id, selected_by_customer
	`, detailID, models.DetailCompleted, completedAt).Scan(&referralID, &selected)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, common.NotFoundf("referral detail %s", detailID)
		}
		return false, eris.Wrap(err, "referrals: complete detail")
	}

	if selected {
		_, err = tx.Exec(ctx, `UPDATE referrals SET status = $2 WHERE id = $1`, referralID, models.ReferralCompleted)
		if err != nil {
			return false, eris.Wrap(err, "referrals: complete referral")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, eris.Wrap(err, "referrals: commit complete work")
	}
	return selected, nil
}

func (r *referralRepo) List(ctx context.Context, filter *models.ReferralSearchFilter) ([]*models.Referral, error) {
	query := `SELECT ` + referralColumns + ` FROM referrals WHERE 1=1`
	args := []any{}
	n := 0

	if filter.Status != nil {
		n++
		query += fmt.Sprintf(` AND status = $%d`, n)
		args = append(args, *filter.Status)
	}
	if filter.From != nil {
		n++
		query += fmt.Sprintf(` AND request_date >= $%d`, n)
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		n++
		query += fmt.Sprintf(` AND request_date <= $%d`, n)
		args = append(args, *filter.To)
	}

	query += ` ORDER BY request_date DESC`
	n++
	query += fmt.Sprintf(` LIMIT $%d`, n)
	args = append(args, filter.Limit)
	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(` OFFSET $%d`, n)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "referrals: list")
	}
	defer rows.Close()

	var referrals []*models.Referral
	for rows.Next() {
		referral := &models.Referral{}
		if err := scanReferral(rows, referral); err != nil {
			return nil, eris.Wrap(err, "referrals: scan row")
		}
		referrals = append(referrals, referral)
	}
	return referrals, nil
}

func (r *referralRepo) Update(ctx context.Context, referral *models.Referral) error {
	query := `
		UPDATE referrals
		SET customer_name = $1, customer_phone = $2, service_type = $3, status = $4, notes = $5
		WHERE id = $6
	`
	tag, err := r.db.Exec(ctx, query, referral.CustomerName, referral.CustomerPhone, referral.ServiceType, referral.Status, referral.Notes, referral.ID)
	if err != nil {
		return eris.Wrap(err, "referrals: update")
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("referral %s", referral.ID)
	}
	return nil
}

// Delete removes a referral and its details in one transaction.
func (r *referralRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "referrals: begin delete")
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	if _, err := tx.Exec(ctx, `DELETE FROM referral_details WHERE referral_id = $1`, id); err != nil {
		return eris.Wrap(err, "referrals: delete details")
	}

	tag, err := tx.Exec(ctx, `DELETE FROM referrals WHERE id = $1`, id)
	if err != nil {
		return eris.Wrap(err, "referrals: delete referral")
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("referral %s", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return eris.Wrap(err, "referrals: commit delete")
	}
	return nil
}
