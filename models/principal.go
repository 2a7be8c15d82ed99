package models

// Principal is the authenticated caller, resolved once per request and passed explicitly.
type Principal struct {
	UserID      string
	Role        Role
	Permissions PermissionSet
	SessionID   string
}

func (p Principal) IsSuperAdmin() bool {
	return p.UserID == SuperAdminID && p.Role == RoleSuperAdmin
}

// Can reports whether the caller holds a capability, either granted or implied by role.
func (p Principal) Can(perm Permission) bool {
	return p.Permissions.Has(perm) || p.Role.Grants().Has(perm)
}

// Scope is the visibility policy shared by every owner-bound entity.
//
//	public      -> active rows of every owner
//	owner       -> rows where owner_id = OwnerID
//	super-admin -> every row
//
// List operations add an active-only filter unless IncludeInactive is set.
type Scope struct {
	OwnerID         string
	All             bool
	IncludeInactive bool
}

func PublicScope() Scope {
	return Scope{}
}

// ScopeFor returns the scope for a caller; nil means an anonymous visitor.
func ScopeFor(p *Principal) Scope {
	if p == nil || p.UserID == "" {
		return PublicScope()
	}
	return Scope{OwnerID: p.UserID, All: p.IsSuperAdmin()}
}

func (s Scope) IsPublic() bool {
	return s.OwnerID == ""
}

func (s Scope) WithInactive(include bool) Scope {
	s.IncludeInactive = include
	return s
}
