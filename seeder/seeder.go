package seeder

import (
	"context"
	"errors"
	"fmt"

	"phantoms-store/logger"
	"phantoms-store/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSuperAdmin makes sure the reserved account exists with its role and full grants.
func SeedSuperAdmin(ctx context.Context, db *gorm.DB, email, password string) error {
	var user models.User
	err := db.WithContext(ctx).Where("id = ?", models.SuperAdminID).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("load super admin: %w", err)
	}
	created := errors.Is(err, gorm.ErrRecordNotFound)

	user.ID = models.SuperAdminID
	user.Username = models.StringPtr(models.SuperAdminID)
	if email != "" {
		user.Email = models.StringPtr(email)
	}
	if user.DisplayName == "" {
		user.DisplayName = "Mohit"
	}
	user.Role = models.RoleSuperAdmin
	user.IsVerified = true
	user.Permissions = models.AllPermissions().Strings()

	if password != "" && bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash super admin password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := db.WithContext(ctx).Save(&user).Error; err != nil {
		return fmt.Errorf("save super admin: %w", err)
	}

	if created {
		logger.Info(ctx, "super admin seeded", zap.String("user_id", user.ID))
	}
	if user.PasswordHash == "" {
		logger.Warn(ctx, "super admin has no local password, set SUPER_ADMIN_PASSWORD to enable /api/login")
	}
	return nil
}

const syncSequencesSQL = `INSERT INTO product_sequences (prefix, last_value)
SELECT split_part(product_id, '-', 1), MAX(CAST(split_part(product_id, '-', 2) AS BIGINT))
FROM products
WHERE product_id ~ '^[A-Z]{3}-[0-9]+$'
GROUP BY split_part(product_id, '-', 1)
ON CONFLICT (prefix) DO UPDATE SET last_value = GREATEST(product_sequences.last_value, EXCLUDED.last_value)`

// SyncProductSequences raises every counter to the highest suffix already in use,
// so rows created before the counter existed are never collided with.
func SyncProductSequences(ctx context.Context, db *gorm.DB) error {
	res := db.WithContext(ctx).Exec(syncSequencesSQL)
	if res.Error != nil {
		return fmt.Errorf("sync product sequences: %w", res.Error)
	}
	logger.Info(ctx, "product sequences synced", zap.Int64("prefixes", res.RowsAffected))
	return nil
}
