package auth

// Role is the "role" claim carried by access tokens issued by the HRIS
// authentication service.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// CanManageSnapshots reports whether the role may create or refresh stats
// snapshots.
func (r Role) CanManageSnapshots() bool {
	return r == RoleOwner || r == RoleManager
}

// TokenTypeAccess is the only token type accepted by this service.
const TokenTypeAccess = "access"
