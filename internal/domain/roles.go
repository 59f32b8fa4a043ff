package domain

type Role string

const (
	// Client is the default role for self-registered users.
	RoleClient Role = "client"
	// Staff can manage inventory stock.
	RoleStaff Role = "staff"
	// Manager can additionally manage products and view the audit trail.
	RoleManager Role = "manager"
	// Admin has full user management privileges, including unlock/removal.
	RoleAdmin Role = "admin"
)

func IsValidRole(r string) bool {
	switch Role(r) {
	case RoleClient, RoleStaff, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// RoleRank: bigger => higher privilege. Unknown roles rank below everything.
func RoleRank(r Role) int {
	switch r {
	case RoleClient:
		return 1
	case RoleStaff:
		return 2
	case RoleManager:
		return 3
	case RoleAdmin:
		return 4
	default:
		return 0
	}
}

// Level is the numeric privilege level persisted in the accounts table.
// The values match the legacy role codes (client=2 .. admin=5).
func (r Role) Level() int {
	switch r {
	case RoleClient:
		return 2
	case RoleStaff:
		return 3
	case RoleManager:
		return 4
	case RoleAdmin:
		return 5
	default:
		return 0
	}
}

// RoleFromLevel maps a stored privilege level back to a Role.
// Unknown levels come back as RoleClient so a bad row cannot grant privilege.
func RoleFromLevel(level int) Role {
	switch level {
	case 2:
		return RoleClient
	case 3:
		return RoleStaff
	case 4:
		return RoleManager
	case 5:
		return RoleAdmin
	default:
		return RoleClient
	}
}
