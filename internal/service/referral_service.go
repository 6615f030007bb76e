package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"referral_tracker/internal/model"
	"referral_tracker/internal/policy"
	"referral_tracker/internal/repository"
)

var (
	ErrReferralNotFound = errors.New("referral not found")
	ErrForbidden        = errors.New("forbidden: user does not have permission for this action")
	ErrInvalidStatus    = errors.New("invalid status. Allowed values are: submitted, screening, interviewing, offered, hired, rejected")
)

// ReferralService orchestrates the referral lifecycle: it applies the access
// policy, enforces field-mutability rules and performs read-modify-write
// against the repository. Each operation issues at most one fetch and one
// write; the database provides per-record atomicity and concurrent updates
// are last-write-wins.
type ReferralService interface {
	CreateReferral(ctx context.Context, requester policy.Requester, req model.CreateReferralRequest) (*model.Referral, error)
	GetReferrals(ctx context.Context, requester policy.Requester) ([]model.Referral, error)
	GetReferralByID(ctx context.Context, requester policy.Requester, referralID int64) (*model.Referral, error)
	UpdateReferralStatus(ctx context.Context, requester policy.Requester, referralID int64, status string) (*model.Referral, error)
	UpdateReferral(ctx context.Context, requester policy.Requester, referralID int64, req model.UpdateReferralRequest) (*model.Referral, error)
	DeleteReferral(ctx context.Context, requester policy.Requester, referralID int64) (*model.Referral, error)
}

type referralService struct {
	repo repository.ReferralRepository
}

// NewReferralService creates a new ReferralService
func NewReferralService(repo repository.ReferralRepository) ReferralService {
	return &referralService{repo: repo}
}

// CreateReferral submits a new referral on behalf of the requester. The
// record always starts at status "submitted" with the requester as owner.
func (s *referralService) CreateReferral(ctx context.Context, requester policy.Requester, req model.CreateReferralRequest) (*model.Referral, error) {
	now := time.Now()
	referral := &model.Referral{
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		CandidatePhone: req.CandidatePhone,
		ResumeURL:      req.ResumeURL,
		Position:       req.Position,
		Experience:     *req.Experience,
		Status:         model.StatusSubmitted,
		ReferredBy:     requester.ID,
		SubmittedAt:    now,
		LastUpdated:    now,
	}

	if err := s.repo.Create(ctx, referral); err != nil {
		return nil, fmt.Errorf("failed to create referral in repo: %w", err)
	}
	return referral, nil
}

// GetReferrals lists referrals visible to the requester: hr sees all
// records, everyone else sees only their own submissions.
func (s *referralService) GetReferrals(ctx context.Context, requester policy.Requester) ([]model.Referral, error) {
	var (
		referrals []model.Referral
		err       error
	)
	if policy.ReadScope(requester) == policy.ScopeAll {
		referrals, err = s.repo.FindAll(ctx)
	} else {
		referrals, err = s.repo.FindAllByOwner(ctx, requester.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get referrals from repo: %w", err)
	}
	return referrals, nil
}

// GetReferralByID fetches a single referral. Non-hr requesters go through
// the ownership-scoped lookup, so a referral owned by someone else is
// reported as not found rather than forbidden.
func (s *referralService) GetReferralByID(ctx context.Context, requester policy.Requester, referralID int64) (*model.Referral, error) {
	var (
		referral *model.Referral
		err      error
	)
	if policy.ReadScope(requester) == policy.ScopeAll {
		referral, err = s.repo.FindByID(ctx, referralID)
	} else {
		referral, err = s.repo.FindByIDAndOwner(ctx, referralID, requester.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find referral by ID: %w", err)
	}
	if referral == nil {
		return nil, ErrReferralNotFound
	}
	return referral, nil
}

// UpdateReferralStatus transitions the hiring status. The record is fetched
// by id alone, so a denial here is an explicit 403 rather than a masked 404.
func (s *referralService) UpdateReferralStatus(ctx context.Context, requester policy.Requester, referralID int64, status string) (*model.Referral, error) {
	existing, err := s.repo.FindByID(ctx, referralID)
	if err != nil {
		return nil, fmt.Errorf("failed to find referral for status update: %w", err)
	}
	if existing == nil {
		return nil, ErrReferralNotFound
	}

	// Enum membership is checked before authorization, so even hr gets a
	// validation error for an unknown status.
	if !model.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	if !policy.CanUpdateStatus(requester) {
		return nil, ErrForbidden
	}

	updated, err := s.repo.UpdateStatus(ctx, referralID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update referral status in repo: %w", err)
	}
	if updated == nil {
		return nil, ErrReferralNotFound
	}
	return updated, nil
}

// UpdateReferral applies a partial update of candidate details. The lookup
// is scoped to the requester, so "does not exist" and "not the owner" are
// indistinguishable. Status and referred_by cannot change through this path.
func (s *referralService) UpdateReferral(ctx context.Context, requester policy.Requester, referralID int64, req model.UpdateReferralRequest) (*model.Referral, error) {
	existing, err := s.repo.FindByIDAndOwner(ctx, referralID, requester.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find referral for update: %w", err)
	}
	if existing == nil {
		return nil, ErrReferralNotFound
	}

	// Apply only fields that are present and non-empty
	if req.CandidateName != nil && *req.CandidateName != "" {
		existing.CandidateName = *req.CandidateName
	}
	if req.CandidateEmail != nil && *req.CandidateEmail != "" {
		existing.CandidateEmail = *req.CandidateEmail
	}
	if req.CandidatePhone != nil && *req.CandidatePhone != "" {
		existing.CandidatePhone = req.CandidatePhone
	}
	if req.Position != nil && *req.Position != "" {
		existing.Position = *req.Position
	}
	if req.Experience != nil {
		existing.Experience = *req.Experience
	}
	existing.LastUpdated = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update referral in repo: %w", err)
	}
	return existing, nil
}

// DeleteReferral permanently removes a referral. Only the owner may delete;
// hr can see every record but has no delete rights, so a non-owner gets an
// explicit forbidden against an existing record. The removed record is
// returned as the confirmation payload.
func (s *referralService) DeleteReferral(ctx context.Context, requester policy.Requester, referralID int64) (*model.Referral, error) {
	existing, err := s.repo.FindByID(ctx, referralID)
	if err != nil {
		return nil, fmt.Errorf("failed to find referral for deletion: %w", err)
	}
	if existing == nil {
		return nil, ErrReferralNotFound
	}

	if !policy.CanDelete(requester, existing) {
		return nil, ErrForbidden
	}
	if err := s.repo.Delete(ctx, referralID); err != nil {
		return nil, fmt.Errorf("failed to delete referral in repo: %w", err)
	}
	return existing, nil
}
