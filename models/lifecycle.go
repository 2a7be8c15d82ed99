package models

import "fmt"

// LifecycleStatus replaces a bare is_active flag so later states fit without a schema change.
type LifecycleStatus string

const (
	StatusActive   LifecycleStatus = "active"
	StatusInactive LifecycleStatus = "inactive"
)

func ParseLifecycleStatus(s string) (LifecycleStatus, error) {
	switch st := LifecycleStatus(s); st {
	case StatusActive, StatusInactive:
		return st, nil
	}
	return "", ErrorValidation{Message: fmt.Sprintf("unknown status %q", s)}
}

func (s LifecycleStatus) IsActive() bool {
	return s == StatusActive
}
