package repository

import (
	"context"
	"errors"
	"fmt"

	"referral_tracker/internal/model"

	"github.com/jackc/pgx/v5"
)

const referralColumns = `id, candidate_name, candidate_email, candidate_phone, resume_url, position, experience, status, referred_by, submitted_at, last_updated`

// ReferralRepository defines operations for referral data
type ReferralRepository interface {
	Create(ctx context.Context, referral *model.Referral) error
	FindByID(ctx context.Context, id int64) (*model.Referral, error)
	FindByIDAndOwner(ctx context.Context, id int64, ownerID int) (*model.Referral, error)
	FindAllByOwner(ctx context.Context, ownerID int) ([]model.Referral, error)
	FindAll(ctx context.Context) ([]model.Referral, error)
	Update(ctx context.Context, referral *model.Referral) error
	UpdateStatus(ctx context.Context, id int64, status string) (*model.Referral, error)
	Delete(ctx context.Context, id int64) error
}

type referralRepository struct {
	db DB
}

// NewReferralRepository creates a new ReferralRepository
func NewReferralRepository(db DB) ReferralRepository {
	return &referralRepository{db: db}
}

func scanReferral(row pgx.Row, ref *model.Referral) error {
	return row.Scan(
		&ref.ID, &ref.CandidateName, &ref.CandidateEmail, &ref.CandidatePhone, &ref.ResumeURL,
		&ref.Position, &ref.Experience, &ref.Status, &ref.ReferredBy, &ref.SubmittedAt, &ref.LastUpdated,
	)
}

// Create inserts a new referral into the database
func (r *referralRepository) Create(ctx context.Context, ref *model.Referral) error {
	sql := `INSERT INTO referrals (candidate_name, candidate_email, candidate_phone, resume_url, position, experience, status, referred_by, submitted_at, last_updated)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, submitted_at, last_updated`
	err := r.db.QueryRow(ctx, sql,
		ref.CandidateName, ref.CandidateEmail, ref.CandidatePhone, ref.ResumeURL,
		ref.Position, ref.Experience, ref.Status, ref.ReferredBy, ref.SubmittedAt, ref.LastUpdated,
	).Scan(&ref.ID, &ref.SubmittedAt, &ref.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to create referral: %w", err)
	}
	return nil
}

// FindByID retrieves a referral by its ID regardless of owner
func (r *referralRepository) FindByID(ctx context.Context, id int64) (*model.Referral, error) {
	ref := &model.Referral{}
	sql := `SELECT ` + referralColumns + ` FROM referrals WHERE id = $1`
	if err := scanReferral(r.db.QueryRow(ctx, sql, id), ref); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find referral by ID: %w", err)
	}
	return ref, nil
}

// FindByIDAndOwner retrieves a referral only if it was referred by ownerID.
// A non-owner's lookup comes back empty, indistinguishable from a missing
// record, which is what keeps the ownership check leak-free.
func (r *referralRepository) FindByIDAndOwner(ctx context.Context, id int64, ownerID int) (*model.Referral, error) {
	ref := &model.Referral{}
	sql := `SELECT ` + referralColumns + ` FROM referrals WHERE id = $1 AND referred_by = $2`
	if err := scanReferral(r.db.QueryRow(ctx, sql, id, ownerID), ref); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found or not owned
		}
		return nil, fmt.Errorf("failed to find referral by ID and owner: %w", err)
	}
	return ref, nil
}

// FindAllByOwner retrieves every referral submitted by ownerID
func (r *referralRepository) FindAllByOwner(ctx context.Context, ownerID int) ([]model.Referral, error) {
	sql := `SELECT ` + referralColumns + ` FROM referrals WHERE referred_by = $1 ORDER BY submitted_at DESC`
	rows, err := r.db.Query(ctx, sql, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query referrals by owner: %w", err)
	}
	return collectReferrals(rows)
}

// FindAll retrieves every referral in the store
func (r *referralRepository) FindAll(ctx context.Context) ([]model.Referral, error) {
	sql := `SELECT ` + referralColumns + ` FROM referrals ORDER BY submitted_at DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query referrals: %w", err)
	}
	return collectReferrals(rows)
}

func collectReferrals(rows pgx.Rows) ([]model.Referral, error) {
	defer rows.Close()
	var referrals []model.Referral
	for rows.Next() {
		var ref model.Referral
		if err := scanReferral(rows, &ref); err != nil {
			return nil, fmt.Errorf("failed to scan referral row: %w", err)
		}
		referrals = append(referrals, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating referral rows: %w", err)
	}
	return referrals, nil
}

// Update persists edited candidate details. The WHERE clause pins both id
// and referred_by so ownership cannot change mid-flight.
func (r *referralRepository) Update(ctx context.Context, ref *model.Referral) error {
	sql := `UPDATE referrals
            SET candidate_name = $1, candidate_email = $2, candidate_phone = $3, position = $4, experience = $5, last_updated = NOW()
            WHERE id = $6 AND referred_by = $7 RETURNING last_updated`
	err := r.db.QueryRow(ctx, sql,
		ref.CandidateName, ref.CandidateEmail, ref.CandidatePhone, ref.Position, ref.Experience,
		ref.ID, ref.ReferredBy,
	).Scan(&ref.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("referral not found or not owned by user for update")
		}
		return fmt.Errorf("failed to update referral: %w", err)
	}
	return nil
}

// UpdateStatus transitions the hiring status and returns the updated record
func (r *referralRepository) UpdateStatus(ctx context.Context, id int64, status string) (*model.Referral, error) {
	ref := &model.Referral{}
	sql := `UPDATE referrals SET status = $1, last_updated = NOW() WHERE id = $2 RETURNING ` + referralColumns
	if err := scanReferral(r.db.QueryRow(ctx, sql, status, id), ref); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to update referral status: %w", err)
	}
	return ref, nil
}

// Delete removes a referral from the database
func (r *referralRepository) Delete(ctx context.Context, id int64) error {
	sql := `DELETE FROM referrals WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete referral: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("referral not found for deletion")
	}
	return nil
}
