package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

type Role string

const (
	RoleUser       Role = "user"
	RoleSeller     Role = "seller"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// SuperAdminID is the id of the single super-admin account.
const SuperAdminID = "mohit"

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrorValidation{Message: fmt.Sprintf("unknown role %q", s)}
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleSeller, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Grants returns the capabilities a role carries without an explicit grant.
func (r Role) Grants() PermissionSet {
	switch r {
	case RoleSuperAdmin, RoleAdmin:
		return AllPermissions()
	case RoleSeller:
		return NewPermissionSet(PermManageProducts, PermManageVideos)
	}
	return PermissionSet{}
}

type User struct {
	ID               string         `json:"id" gorm:"primaryKey;size:128"`
	Username         *string        `json:"username,omitempty" gorm:"uniqueIndex;size:100"`
	Email            *string        `json:"email,omitempty" gorm:"uniqueIndex;size:255"`
	PasswordHash     string         `json:"-" gorm:"column:password_hash"`
	DisplayName      string         `json:"displayName" gorm:"size:255"`
	PhotoURL         string         `json:"photoURL" gorm:"column:photo_url"`
	Role             Role           `json:"role" gorm:"size:20;not null;default:'user'"`
	StoreName        string         `json:"storeName" gorm:"size:255"`
	StoreDescription string         `json:"storeDescription" gorm:"type:text"`
	IsVerified       bool           `json:"isVerified" gorm:"default:false"`
	Permissions      pq.StringArray `json:"permissions" gorm:"type:text[]"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// PermissionSet returns the stored grants, dropping values no longer known.
func (u *User) PermissionSet() PermissionSet {
	set := PermissionSet{}
	for _, p := range u.Permissions {
		if perm := Permission(p); perm.Valid() {
			set[perm] = struct{}{}
		}
	}
	return set
}

func (u *User) IsSuperAdmin() bool {
	return u.ID == SuperAdminID && u.Role == RoleSuperAdmin
}

func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
