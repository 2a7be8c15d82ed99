package repositories

import (
	"phantoms-store/models"

	"gorm.io/gorm"
)

// withScope applies the visibility policy. For list queries an inactive row is
// only returned to an authenticated caller that asked for it.
func withScope(scope models.Scope, list bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if scope.IsPublic() {
			return db.Where("status = ?", models.StatusActive)
		}
		if !scope.All {
			db = db.Where("owner_id = ?", scope.OwnerID)
		}
		if list && !scope.IncludeInactive {
			db = db.Where("status = ?", models.StatusActive)
		}
		return db
	}
}
