package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"referralnet/internal/common"
	"referralnet/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ReferralRepoTestSuite struct {
	suite.Suite
	mock  pgxmock.PgxPoolIface
	repo  ReferralRepository
	ctx   context.Context
	refID uuid.UUID
	conID uuid.UUID
	detID uuid.UUID
}

func (suite *ReferralRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewReferralRepo(mock)
	suite.ctx = context.Background()
	suite.refID = uuid.New()
	suite.conID = uuid.New()
	suite.detID = uuid.New()
}

func (suite *ReferralRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestReferralRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ReferralRepoTestSuite))
}

func (suite *ReferralRepoTestSuite) referralAndDetails(n int) (*models.Referral, []*models.ReferralDetail) {
	referral := &models.Referral{
		ID:          suite.refID,
		CustomerZip: "90210",
		RequestDate: time.Now(),
		Status:      models.ReferralPending,
	}
	var details []*models.ReferralDetail
	for i := 0; i < n; i++ {
		details = append(details, &models.ReferralDetail{
			ID:            uuid.New(),
			ReferralID:    suite.refID,
			ContractorID:  uuid.New(),
			DistanceMiles: float64(i) + 1.5,
			Position:      i + 1,
			Status:        models.DetailReferred,
		})
	}
	return referral, details
}

func (suite *ReferralRepoTestSuite) TestCreateWithDetails_CommitsAllRows() {
	referral, details := suite.referralAndDetails(3)

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO referrals`).
		WithArgs(referral.ID, referral.CustomerName, referral.CustomerPhone, referral.CustomerZip, referral.ServiceType, referral.RequestDate, referral.Status, referral.Notes, referral.CreatedBy).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for _, d := range details {
		suite.mock.ExpectExec(`INSERT INTO referral_details`).
			WithArgs(d.ID, d.ReferralID, d.ContractorID, d.DistanceMiles, d.Position, d.Status, d.ContactedDate, d.AppointmentDate).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	suite.mock.ExpectCommit()

	err := suite.repo.CreateWithDetails(suite.ctx, referral, details)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReferralRepoTestSuite) TestCreateWithDetails_RollsBackOnDetailFailure() {
	referral, details := suite.referralAndDetails(2)

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO referrals`).
		WithArgs(referral.ID, referral.CustomerName, referral.CustomerPhone, referral.CustomerZip, referral.ServiceType, referral.RequestDate, referral.Status, referral.Notes, referral.CreatedBy).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO referral_details`).
		WithArgs(details[0].ID, details[0].ReferralID, details[0].ContractorID, details[0].DistanceMiles, details[0].Position, details[0].Status, details[0].ContactedDate, details[0].AppointmentDate).
		WillReturnError(errors.New("foreign key violation"))
	suite.mock.ExpectRollback()

	err := suite.repo.CreateWithDetails(suite.ctx, referral, details)
	assert.Error(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReferralRepoTestSuite) TestSelectContractor_ExclusiveSelection() {
	workStart := time.Now()

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`UPDATE referral_details`).
		WithArgs(suite.refID, suite.conID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))
	suite.mock.ExpectExec(`UPDATE referral_details`).
		WithArgs(suite.refID, suite.conID, models.DetailSelected, &workStart).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`UPDATE referrals`).
		WithArgs(suite.refID, models.ReferralInProgress).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	err := suite.repo.SelectContractor(suite.ctx, suite.refID, suite.conID, &workStart)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReferralRepoTestSuite) TestSelectContractor_NoDetails() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`UPDATE referral_details`).
		WithArgs(suite.refID, suite.conID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	suite.mock.ExpectRollback()

	err := suite.repo.SelectContractor(suite.ctx, suite.refID, suite.conID, nil)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReferralRepoTestSuite) TestSelectContractor_ContractorNotOnReferral() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`UPDATE referral_details`).
		WithArgs(suite.refID, suite.conID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))
	suite.mock.ExpectExec(`UPDATE referral_details`).
		WithArgs(suite.refID, suite.conID, models.DetailSelected, (*time.Time)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	suite.mock.ExpectRollback()

	err := suite.repo.SelectContractor(suite.ctx, suite.refID, suite.conID, nil)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReferralRepoTestSuite) TestCompleteWork_SelectedDetailCompletesReferral() {
	completedAt := time.Now()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`UPDATE referral_details`).
		WithArgs(suite.detID, models.DetailCompleted, completedAt).
		WillReturnRows(pgxmock.NewRows([]string{"referral_id", "selected_by_customer"}).AddRow(suite.refID, true))
	suite.mock.ExpectExec(`UPDATE referrals`).
		WithArgs(suite.refID, models.ReferralCompleted).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	selected, err := suite.repo.CompleteWork(suite.ctx, suite.detID, completedAt)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), selected)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReferralRepoTestSuite) TestCompleteWork_NonSelectedDetailLeavesReferral() {
	completedAt := time.Now()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`UPDATE referral_details`).
		WithArgs(suite.detID, models.DetailCompleted, completedAt).
		WillReturnRows(pgxmock.NewRows([]string{"referral_id", "selected_by_customer"}).AddRow(suite.refID, false))
	suite.mock.ExpectCommit()

	selected, err := suite.repo.CompleteWork(suite.ctx, suite.detID, completedAt)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), selected)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReferralRepoTestSuite) TestCompleteWork_NotFound() {
	completedAt := time.Now()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`UPDATE referral_details`).
		WithArgs(suite.detID, models.DetailCompleted, completedAt).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectRollback()

	_, err := suite.repo.CompleteWork(suite.ctx, suite.detID, completedAt)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReferralRepoTestSuite) TestUpdateDetailStatus_NeverTouchesDistance() {
	amount := 1200.50
	upd := &models.DetailStatusUpdate{
		Status:         models.DetailEstimated,
		EstimateAmount: &amount,
	}

	// The statement carries only lifecycle columns; distance_miles and
	// position are not among the arguments.
	suite.mock.ExpectExec(`UPDATE referral_details`).
		WithArgs(upd.Status, upd.ContactedDate, upd.AppointmentDate, upd.EstimateAmount, upd.EstimateNotes, suite.detID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.UpdateDetailStatus(suite.ctx, suite.detID, upd)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReferralRepoTestSuite) TestUpdateDetailStatus_NotFound() {
	upd := &models.DetailStatusUpdate{Status: models.DetailContacted}

	suite.mock.ExpectExec(`UPDATE referral_details`).
		WithArgs(upd.Status, upd.ContactedDate, upd.AppointmentDate, upd.EstimateAmount, upd.EstimateNotes, suite.detID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.UpdateDetailStatus(suite.ctx, suite.detID, upd)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *ReferralRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM referrals`).
		WithArgs(suite.refID).
		WillReturnError(pgx.ErrNoRows)

	_, err := suite.repo.GetByID(suite.ctx, suite.refID)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *ReferralRepoTestSuite) TestDelete_CascadesInOneTransaction() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`DELETE FROM referral_details`).
		WithArgs(suite.refID).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	suite.mock.ExpectExec(`DELETE FROM referrals`).
		WithArgs(suite.refID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectCommit()

	err := suite.repo.Delete(suite.ctx, suite.refID)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReferralRepoTestSuite) TestDelete_NotFound() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`DELETE FROM referral_details`).
		WithArgs(suite.refID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	suite.mock.ExpectExec(`DELETE FROM referrals`).
		WithArgs(suite.refID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	suite.mock.ExpectRollback()

	err := suite.repo.Delete(suite.ctx, suite.refID)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReferralRepoTestSuite) TestList_StatusAndDateFilter() {
	status := models.ReferralPending
	from := time.Now().Add(-48 * time.Hour)
	to := time.Now()
	filter := &models.ReferralSearchFilter{Status: &status, From: &from, To: &to, Limit: 10}

	rows := pgxmock.NewRows([]string{"id", "customer_name", "customer_phone", "customer_zip", "service_type", "request_date", "status", "notes", "created_by", "created_at"}).
		AddRow(suite.refID, (*string)(nil), (*string)(nil), "90210", (*string)(nil), time.Now(), models.ReferralPending, (*string)(nil), (*string)(nil), time.Now())
	suite.mock.ExpectQuery(`SELECT (.+) FROM referrals`).
		WithArgs(status, from, to, 10).
		WillReturnRows(rows)

	referrals, err := suite.repo.List(suite.ctx, filter)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), referrals, 1)
	assert.Equal(suite.T(), models.ReferralPending, referrals[0].Status)
}
