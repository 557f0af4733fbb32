package domain

// Role роль пользователя, выданная внешней системой аутентификации
type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
)

// IsValid returns true for a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleManager, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// Actor the authenticated user performing an action
type Actor struct {
	UserID int64
	Role   Role
}

// CanManage returns true if the actor has rights over the pitch's reservations.
// Admin manages every pitch; owner and managers only their own.
func (a Actor) CanManage(p *Pitch) bool {
	if a.Role == RoleAdmin {
		return true
	}
	if a.Role != RoleOwner && a.Role != RoleManager {
		return false
	}
	return p.CanManage(a.UserID)
}
