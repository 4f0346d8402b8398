package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/turret-landing/internal/domain"
)

// CreateAdminUser inserts u and returns ErrDuplicate when the username is taken.
func CreateAdminUser(ctx context.Context, db *gorm.DB, u *domain.AdminUser) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetAdminUserByUsername fetches an operator by username, or ErrNotFound.
func GetAdminUserByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.AdminUser, error) {
	var u domain.AdminUser
	if err := db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// AdminUserExists reports whether an operator with username exists.
func AdminUserExists(ctx context.Context, db *gorm.DB, username string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.AdminUser{}).Where("username = ?", username).Count(&n).Error
	return n > 0, err
}
