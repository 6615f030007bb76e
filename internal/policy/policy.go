// Package policy holds the pure access decisions for referral records.
// Nothing here touches the database: callers pass the requester identity
// (and, where relevant, the already-fetched record) and get back either a
// boolean decision or a query scope.
//
// Two denial styles coexist on purpose. Read and detail-update paths are
// answered through an ownership-scoped lookup (ScopeOwn), so a non-owner's
// request surfaces as "no matching record" (404) and never reveals that the
// referral exists. Delete and status-update fetch by id alone and then check
// authorization explicitly, so a denied requester gets 403 against a record
// that is known to exist. Collapsing the two styles would change the
// externally observable status codes.
package policy

import "referral_tracker/internal/model"

// Requester is the authenticated identity making a request.
type Requester struct {
	ID   int
	Role string
}

// Scope selects which query a lookup should use.
type Scope int

const (
	// ScopeOwn restricts the query to records where referred_by = requester.
	ScopeOwn Scope = iota
	// ScopeAll places no ownership restriction on the query.
	ScopeAll
)

// ReadScope returns the visibility scope for list and get-by-id lookups.
// HR sees every referral; everyone else sees only their own.
func ReadScope(req Requester) Scope {
	if req.Role == model.RoleHR {
		return ScopeAll
	}
	return ScopeOwn
}

// CanRead reports whether req may view the given referral.
func CanRead(req Requester, ref *model.Referral) bool {
	return req.Role == model.RoleHR || ref.ReferredBy == req.ID
}

// CanUpdateFields reports whether req may edit candidate details.
// Only the owning referrer can; HR status does not grant edit rights.
func CanUpdateFields(req Requester, ref *model.Referral) bool {
	return ref.ReferredBy == req.ID
}

// CanUpdateStatus reports whether req may transition the hiring status.
// Status changes are an HR-only action regardless of ownership.
func CanUpdateStatus(req Requester) bool {
	return req.Role == model.RoleHR
}

// CanDelete reports whether req may delete the referral. Deletion is
// reserved for the owner; HR cannot delete records referred by others.
func CanDelete(req Requester, ref *model.Referral) bool {
	return ref.ReferredBy == req.ID
}
