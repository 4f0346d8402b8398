// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the singleton accessors for
// SiteSettings and SoftwarePlatform.
//
// Both tables hold at most one row, pinned to domain.SingletonID. First
// access inserts the default row with INSERT … ON CONFLICT DO NOTHING and
// then reads it back, so concurrent first readers all observe the same row
// and the primary key guarantees that no second row can appear.
package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/turret-landing/internal/domain"
)

// GetOrCreateSiteSettings returns the settings row, creating it with defaults
// on first access.
func GetOrCreateSiteSettings(ctx context.Context, db *gorm.DB) (*domain.SiteSettings, error) {
	def := domain.DefaultSiteSettings()
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&def).Error; err != nil {
		return nil, err
	}
	var s domain.SiteSettings
	if err := db.WithContext(ctx).First(&s, domain.SingletonID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveSiteSettings upserts s as the singleton row. Whatever ID the caller
// set is replaced with domain.SingletonID.
func SaveSiteSettings(ctx context.Context, db *gorm.DB, s *domain.SiteSettings) error {
	s.ID = domain.SingletonID
	return db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(s).Error
}

// GetOrCreatePlatform returns the software platform row, creating it with
// defaults on first access.
func GetOrCreatePlatform(ctx context.Context, db *gorm.DB) (*domain.SoftwarePlatform, error) {
	def := domain.DefaultSoftwarePlatform()
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&def).Error; err != nil {
		return nil, err
	}
	var p domain.SoftwarePlatform
	if err := db.WithContext(ctx).First(&p, domain.SingletonID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// SavePlatform upserts p as the singleton row pinned to domain.SingletonID.
func SavePlatform(ctx context.Context, db *gorm.DB, p *domain.SoftwarePlatform) error {
	p.ID = domain.SingletonID
	return db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(p).Error
}

// SiteSettingsExists reports whether the settings row has been created.
func SiteSettingsExists(ctx context.Context, db *gorm.DB) (bool, error) {
	return singletonExists[domain.SiteSettings](ctx, db)
}

// PlatformExists reports whether the software platform row has been created.
func PlatformExists(ctx context.Context, db *gorm.DB) (bool, error) {
	return singletonExists[domain.SoftwarePlatform](ctx, db)
}

func singletonExists[T any](ctx context.Context, db *gorm.DB) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(new(T)).Where("id = ?", domain.SingletonID).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
