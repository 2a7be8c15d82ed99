package services

import (
	"errors"

	"phantoms-store/models"
)

func isNotFound(err error) bool {
	var notFound models.ErrorNotFound
	return errors.As(err, &notFound)
}

func requireSuperAdmin(principal models.Principal) error {
	if !principal.IsSuperAdmin() {
		return models.ErrorForbidden{Message: "super admin access required"}
	}
	return nil
}

func requirePermission(principal models.Principal, perm models.Permission) error {
	if !principal.Can(perm) {
		return models.ErrorForbidden{Message: "missing permission " + string(perm)}
	}
	return nil
}
