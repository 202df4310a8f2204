package laundry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/models"
)

func TestRoleOf(t *testing.T) {
	assert.Equal(t, RoleAnonymous, RoleOf(nil))
	assert.Equal(t, RoleUser, RoleOf(&models.User{}))
	assert.Equal(t, RoleStaff, RoleOf(&models.User{Bolsista: true}))
}

func TestAuthorize(t *testing.T) {
	userCaps := []Capability{CapViewSlots, CapBook, CapManageOwnReservations, CapViewProfile}
	staffCaps := []Capability{CapManageWashers, CapManageSlots, CapManageUsers, CapAdministerReservations, CapViewAuditLogs}

	for _, c := range append(userCaps, staffCaps...) {
		assert.Equal(t, Deny(DenyUnauthenticated), Authorize(RoleAnonymous, c), "anonymous %s", c)
		assert.True(t, Authorize(RoleStaff, c).Allowed, "staff %s", c)
	}

	for _, c := range userCaps {
		assert.True(t, Authorize(RoleUser, c).Allowed, "user %s", c)
	}
	for _, c := range staffCaps {
		assert.Equal(t, Deny(DenyForbidden), Authorize(RoleUser, c), "user %s", c)
	}
}
