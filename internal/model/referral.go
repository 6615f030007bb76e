package model

import "time"

const (
	StatusSubmitted    = "submitted"
	StatusScreening    = "screening"
	StatusInterviewing = "interviewing"
	StatusOffered      = "offered"
	StatusHired        = "hired"
	StatusRejected     = "rejected"
)

// Statuses lists the allowed hiring stages in lifecycle order.
var Statuses = []string{
	StatusSubmitted,
	StatusScreening,
	StatusInterviewing,
	StatusOffered,
	StatusHired,
	StatusRejected,
}

// ValidStatus reports whether s is a member of the status enum. Any value
// is reachable from any other; only membership is enforced.
func ValidStatus(s string) bool {
	for _, allowed := range Statuses {
		if s == allowed {
			return true
		}
	}
	return false
}

// Referral represents a job-candidate referral submitted by an employee
type Referral struct {
	ID             int64     `json:"id"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	CandidatePhone *string   `json:"candidate_phone,omitempty"` // Pointer for optional field
	ResumeURL      *string   `json:"resume_url,omitempty"`      // Pointer for optional field
	Position       string    `json:"position"`
	Experience     int       `json:"experience"` // Years
	Status         string    `json:"status"`
	ReferredBy     int       `json:"referred_by"` // Immutable after creation
	SubmittedAt    time.Time `json:"submitted_at"`
	LastUpdated    time.Time `json:"last_updated"`
}

// CreateReferralRequest is used for submitting a new referral
type CreateReferralRequest struct {
	CandidateName  string  `json:"candidate_name" binding:"required"`
	CandidateEmail string  `json:"candidate_email" binding:"required"`
	CandidatePhone *string `json:"candidate_phone"`
	ResumeURL      *string `json:"resume_url"`
	Position       string  `json:"position" binding:"required"`
	Experience     *int    `json:"experience" binding:"required,gte=0"`
}

// UpdateReferralRequest carries a partial update of candidate details.
// Status and referred_by are never mutable through this path.
type UpdateReferralRequest struct {
	CandidateName  *string `json:"candidate_name,omitempty"` // Pointers to allow partial updates
	CandidateEmail *string `json:"candidate_email,omitempty"`
	CandidatePhone *string `json:"candidate_phone,omitempty"`
	Position       *string `json:"position,omitempty"`
	Experience     *int    `json:"experience,omitempty" binding:"omitempty,gte=0"`
}

// UpdateStatusRequest carries a hiring-status transition
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
