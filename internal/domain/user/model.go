package user

// Role is the coarse permission tier assigned by the account service.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleCoach  Role = "coach"
	RoleViewer Role = "viewer"
)

// Principal identifies an authenticated caller.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}

// CanManageLineups reports whether the caller may create or mutate lineups
// and their members.
func (p Principal) CanManageLineups() bool {
	return p.Role == RoleAdmin || p.Role == RoleCoach
}

// IsAdmin reports whether the caller may perform destructive and
// category-level operations.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
