// Package policy is the single authorization point for network access.
package policy

import "netsketch/app/models"

type Intent int

const (
	View Intent = iota
	Edit
	ManageAccess
)

type Decision int

const (
	Deny Decision = iota
	Allow
)

const (
	RoleAdmin    = "admin"
	RoleUser     = "user"
	RoleReadonly = "readonly"
)

const (
	AccessPublic  = "public"
	AccessPrivate = "private"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser || role == RoleReadonly
}

// Decide resolves whether the caller may act on the network with the given
// intent. Admins pass everything; readonly callers only ever view; owners
// hold every intent on their own networks; everyone else needs a grant, and
// any matching grant (public or targeted private) covers both view and edit.
// A private grant without a user id marks owner-only access and matches
// nobody but the owner.
func Decide(role, callerID string, network *models.Network, grants []models.AccessGrant, intent Intent) Decision {
	if role == RoleAdmin {
		return Allow
	}
	if role == RoleReadonly && intent != View {
		return Deny
	}
	if network.OwnerID == callerID {
		return Allow
	}
	if intent == ManageAccess {
		return Deny
	}
	if granted(callerID, grants) {
		return Allow
	}
	return Deny
}

func granted(callerID string, grants []models.AccessGrant) bool {
	for _, g := range grants {
		if g.AccessType == AccessPublic {
			return true
		}
		if g.AccessType == AccessPrivate && g.UserID != nil && *g.UserID == callerID {
			return true
		}
	}
	return false
}
