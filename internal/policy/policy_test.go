package policy

import (
	"testing"

	"referral_tracker/internal/model"

	"github.com/stretchr/testify/assert"
)

var (
	owner    = Requester{ID: 1, Role: model.RoleEmployee}
	other    = Requester{ID: 2, Role: model.RoleEmployee}
	hr       = Requester{ID: 3, Role: model.RoleHR}
	referral = &model.Referral{ID: 10, ReferredBy: 1, Status: model.StatusSubmitted}
)

func TestReadScope(t *testing.T) {
	assert.Equal(t, ScopeAll, ReadScope(hr))
	assert.Equal(t, ScopeOwn, ReadScope(owner))
	assert.Equal(t, ScopeOwn, ReadScope(other))
}

func TestCanRead(t *testing.T) {
	assert.True(t, CanRead(owner, referral))
	assert.True(t, CanRead(hr, referral), "hr can read regardless of ownership")
	assert.False(t, CanRead(other, referral))
}

func TestCanUpdateFields(t *testing.T) {
	assert.True(t, CanUpdateFields(owner, referral))
	assert.False(t, CanUpdateFields(other, referral))
	// hr has full visibility but no edit rights over candidate details
	assert.False(t, CanUpdateFields(hr, referral))
}

func TestCanUpdateStatus(t *testing.T) {
	assert.True(t, CanUpdateStatus(hr))
	// Ownership does not grant status-change rights
	assert.False(t, CanUpdateStatus(owner))
	assert.False(t, CanUpdateStatus(other))
}

func TestCanDelete(t *testing.T) {
	assert.True(t, CanDelete(owner, referral))
	assert.False(t, CanDelete(other, referral))
	// Deletion is owner-only; hr cannot delete other people's referrals
	assert.False(t, CanDelete(hr, referral))
}
