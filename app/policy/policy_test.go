package policy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"netsketch/app/models"
)

const (
	ownerID    = "owner-1"
	strangerID = "user-2"
)

func network() *models.Network {
	return &models.Network{ID: "net-1", Name: "Office", OwnerID: ownerID}
}

func publicGrant() models.AccessGrant {
	return models.AccessGrant{ID: "g1", NetworkID: "net-1", AccessType: AccessPublic}
}

func privateGrantFor(userID string) models.AccessGrant {
	return models.AccessGrant{ID: "g2", NetworkID: "net-1", AccessType: AccessPrivate, UserID: &userID}
}

func ownerOnlyGrant() models.AccessGrant {
	return models.AccessGrant{ID: "g3", NetworkID: "net-1", AccessType: AccessPrivate}
}

var allIntents = []Intent{View, Edit, ManageAccess}

func TestDecideTable(t *testing.T) {
	grantSets := map[string][]models.AccessGrant{
		"none":       nil,
		"ownerOnly":  {ownerOnlyGrant()},
		"public":     {publicGrant()},
		"sharedWith": {privateGrantFor(strangerID)},
		"sharedElse": {privateGrantFor("someone-else")},
	}

	tests := []struct {
		name     string
		role     string
		callerID string
		grants   string
		intent   Intent
		want     Decision
	}{
		// owner with role=user holds everything regardless of grants
		{"owner view", RoleUser, ownerID, "none", View, Allow},
		{"owner edit", RoleUser, ownerID, "none", Edit, Allow},
		{"owner manage", RoleUser, ownerID, "none", ManageAccess, Allow},
		{"owner manage with public grant", RoleUser, ownerID, "public", ManageAccess, Allow},

		// stranger with no grants gets nothing
		{"stranger view no grants", RoleUser, strangerID, "none", View, Deny},
		{"stranger edit no grants", RoleUser, strangerID, "none", Edit, Deny},
		{"stranger manage no grants", RoleUser, strangerID, "none", ManageAccess, Deny},

		// the owner-only marker grant matches nobody but the owner
		{"stranger view owner-only grant", RoleUser, strangerID, "ownerOnly", View, Deny},
		{"stranger edit owner-only grant", RoleUser, strangerID, "ownerOnly", Edit, Deny},

		// public grant opens view and edit, never manage
		{"stranger view public", RoleUser, strangerID, "public", View, Allow},
		{"stranger edit public", RoleUser, strangerID, "public", Edit, Allow},
		{"stranger manage public", RoleUser, strangerID, "public", ManageAccess, Deny},

		// targeted private grant behaves like public for its target only
		{"target view shared", RoleUser, strangerID, "sharedWith", View, Allow},
		{"target edit shared", RoleUser, strangerID, "sharedWith", Edit, Allow},
		{"target manage shared", RoleUser, strangerID, "sharedWith", ManageAccess, Deny},
		{"non-target view shared", RoleUser, strangerID, "sharedElse", View, Deny},
		{"non-target edit shared", RoleUser, strangerID, "sharedElse", Edit, Deny},

		// readonly only ever views, even on owned networks
		{"readonly owner view", RoleReadonly, ownerID, "none", View, Allow},
		{"readonly owner edit", RoleReadonly, ownerID, "none", Edit, Deny},
		{"readonly owner manage", RoleReadonly, ownerID, "none", ManageAccess, Deny},
		{"readonly stranger view public", RoleReadonly, strangerID, "public", View, Allow},
		{"readonly stranger edit public", RoleReadonly, strangerID, "public", Edit, Deny},
		{"readonly stranger view no grants", RoleReadonly, strangerID, "none", View, Deny},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Decide(tc.role, tc.callerID, network(), grantSets[tc.grants], tc.intent)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestDecideAdminAlwaysAllows(t *testing.T) {
	grantSets := [][]models.AccessGrant{nil, {ownerOnlyGrant()}, {publicGrant()}, {privateGrantFor("someone-else")}}
	for _, grants := range grantSets {
		for _, intent := range allIntents {
			require.Equal(t, Allow, Decide(RoleAdmin, "admin-1", network(), grants, intent))
		}
	}
}

func TestDecideDeterministic(t *testing.T) {
	grants := []models.AccessGrant{publicGrant(), privateGrantFor(strangerID)}
	for i := 0; i < 10; i++ {
		require.Equal(t, Allow, Decide(RoleUser, strangerID, network(), grants, Edit))
	}
}

func TestValidRole(t *testing.T) {
	require.True(t, ValidRole(RoleAdmin))
	require.True(t, ValidRole(RoleUser))
	require.True(t, ValidRole(RoleReadonly))
	require.False(t, ValidRole(""))
	require.False(t, ValidRole("superuser"))
}
