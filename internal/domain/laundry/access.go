package laundry

import "github.com/BruksfildServices01/lavanderia-scheduler/internal/models"

type Role int

const (
	RoleAnonymous Role = iota
	RoleUser
	RoleStaff
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleStaff:
		return "staff"
	}
	return "anonymous"
}

// RoleOf classifies a caller; nil means not authenticated.
func RoleOf(u *models.User) Role {
	switch {
	case u == nil:
		return RoleAnonymous
	case u.Bolsista:
		return RoleStaff
	}
	return RoleUser
}

type Capability string

const (
	CapViewSlots             Capability = "view_slots"
	CapBook                  Capability = "book"
	CapManageOwnReservations Capability = "manage_own_reservations"
	CapViewProfile           Capability = "view_profile"

	CapManageWashers          Capability = "manage_washers"
	CapManageSlots            Capability = "manage_slots"
	CapManageUsers            Capability = "manage_users"
	CapAdministerReservations Capability = "administer_reservations"
	CapViewAuditLogs          Capability = "view_audit_logs"
)

var staffOnly = map[Capability]bool{
	CapManageWashers:          true,
	CapManageSlots:            true,
	CapManageUsers:            true,
	CapAdministerReservations: true,
	CapViewAuditLogs:          true,
}

type DenyReason string

const (
	DenyUnauthenticated DenyReason = "unauthenticated"
	DenyForbidden       DenyReason = "forbidden"
)

// Decision is the outcome of an access check: Allowed, or denied with a reason.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// Authorize decides whether role may use capability.
func Authorize(role Role, capability Capability) Decision {
	if role == RoleAnonymous {
		return Deny(DenyUnauthenticated)
	}
	if staffOnly[capability] && role != RoleStaff {
		return Deny(DenyForbidden)
	}
	return Allow()
}
