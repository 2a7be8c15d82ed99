package models

import (
	"fmt"
	"sort"
	"strings"
)

type Permission string

const (
	PermManageProducts Permission = "manage_products"
	PermManageVideos   Permission = "manage_videos"
	PermManageMessages Permission = "manage_messages"
	PermViewAnalytics  Permission = "view_analytics"
)

var knownPermissions = []Permission{
	PermManageProducts,
	PermManageVideos,
	PermManageMessages,
	PermViewAnalytics,
}

func (p Permission) Valid() bool {
	for _, known := range knownPermissions {
		if p == known {
			return true
		}
	}
	return false
}

type PermissionSet map[Permission]struct{}

func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

func AllPermissions() PermissionSet {
	return NewPermissionSet(knownPermissions...)
}

// ParsePermissions validates raw capability strings. Duplicates collapse.
func ParsePermissions(raw []string) (PermissionSet, error) {
	set := make(PermissionSet, len(raw))
	var unknown []string
	for _, r := range raw {
		p := Permission(strings.ToLower(strings.TrimSpace(r)))
		if !p.Valid() {
			unknown = append(unknown, r)
			continue
		}
		set[p] = struct{}{}
	}
	if len(unknown) > 0 {
		return nil, ErrorValidation{Message: fmt.Sprintf("unknown permissions: %s", strings.Join(unknown, ", "))}
	}
	return set, nil
}

func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Strings returns the set sorted, ready to persist.
func (s PermissionSet) Strings() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, string(p))
	}
	sort.Strings(out)
	return out
}
