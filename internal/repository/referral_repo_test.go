package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"referral_tracker/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referralRowColumns = []string{
	"id", "candidate_name", "candidate_email", "candidate_phone", "resume_url",
	"position", "experience", "status", "referred_by", "submitted_at", "last_updated",
}

func referralRow(mock pgxmock.PgxPoolIface, id int64, owner int, status string) *pgxmock.Rows {
	now := time.Now()
	return mock.NewRows(referralRowColumns).
		AddRow(id, "Jane Doe", "jane@x.com", nil, nil, "Engineer", 3, status, owner, now, now)
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestReferralRepository_FindByID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewReferralRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+referralColumns+` FROM referrals WHERE id = $1`)).
		WithArgs(int64(10)).
		WillReturnRows(referralRow(mock, 10, 1, model.StatusSubmitted))

	ref, err := repo.FindByID(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, int64(10), ref.ID)
	assert.Equal(t, 1, ref.ReferredBy)
	assert.Nil(t, ref.CandidatePhone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferralRepository_FindByID_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewReferralRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+referralColumns+` FROM referrals WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	ref, err := repo.FindByID(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, ref)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferralRepository_FindByIDAndOwner_ScopesQuery(t *testing.T) {
	mock := newMockPool(t)
	repo := NewReferralRepository(mock)

	// Wrong owner comes back as no rows, not as an error
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+referralColumns+` FROM referrals WHERE id = $1 AND referred_by = $2`)).
		WithArgs(int64(10), 2).
		WillReturnError(pgx.ErrNoRows)

	ref, err := repo.FindByIDAndOwner(context.Background(), 10, 2)
	assert.NoError(t, err)
	assert.Nil(t, ref)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferralRepository_FindAllByOwner(t *testing.T) {
	mock := newMockPool(t)
	repo := NewReferralRepository(mock)

	now := time.Now()
	rows := mock.NewRows(referralRowColumns).
		AddRow(int64(1), "Jane Doe", "jane@x.com", nil, nil, "Engineer", 3, model.StatusSubmitted, 1, now, now).
		AddRow(int64(2), "John Roe", "john@x.com", nil, nil, "Analyst", 5, model.StatusScreening, 1, now, now)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM referrals WHERE referred_by = $1`)).
		WithArgs(1).
		WillReturnRows(rows)

	refs, err := repo.FindAllByOwner(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, refs, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferralRepository_UpdateStatus(t *testing.T) {
	mock := newMockPool(t)
	repo := NewReferralRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE referrals SET status = $1, last_updated = NOW() WHERE id = $2 RETURNING `+referralColumns)).
		WithArgs(model.StatusScreening, int64(10)).
		WillReturnRows(referralRow(mock, 10, 1, model.StatusScreening))

	ref, err := repo.UpdateStatus(context.Background(), 10, model.StatusScreening)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, model.StatusScreening, ref.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferralRepository_Delete(t *testing.T) {
	mock := newMockPool(t)
	repo := NewReferralRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM referrals WHERE id = $1`)).
		WithArgs(int64(10)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), 10)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferralRepository_Delete_NoRows(t *testing.T) {
	mock := newMockPool(t)
	repo := NewReferralRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM referrals WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 99)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
