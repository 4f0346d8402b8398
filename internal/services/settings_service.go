// Package services – SettingsService
//
// SettingsService is the accessor for the two singleton configuration rows,
// SiteSettings and SoftwarePlatform. The first read creates the default row;
// reads are served from a small expirable LRU cache that every save purges.
package services

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"gorm.io/gorm"

	"github.com/tbourn/turret-landing/internal/domain"
	"github.com/tbourn/turret-landing/internal/observability"
	"github.com/tbourn/turret-landing/internal/repo"
)

// SettingsService reads and writes the singleton rows.
type SettingsService struct {
	DB *gorm.DB

	site     *expirable.LRU[uint, domain.SiteSettings]
	platform *expirable.LRU[uint, domain.SoftwarePlatform]
}

// NewSettingsService returns a service caching reads for ttl. A ttl <= 0
// disables caching so every read hits the database.
func NewSettingsService(db *gorm.DB, ttl time.Duration) *SettingsService {
	s := &SettingsService{DB: db}
	if ttl > 0 {
		s.site = expirable.NewLRU[uint, domain.SiteSettings](1, nil, ttl)
		s.platform = expirable.NewLRU[uint, domain.SoftwarePlatform](1, nil, ttl)
	}
	return s
}

// Settings returns the site settings, creating the default row on first use.
func (s *SettingsService) Settings(ctx context.Context) (*domain.SiteSettings, error) {
	if s.site != nil {
		if v, ok := s.site.Get(domain.SingletonID); ok {
			return &v, nil
		}
	}
	ctx, span := observability.Tracer("services/SettingsService").Start(ctx, "Settings")
	defer span.End()

	v, err := repo.GetOrCreateSiteSettings(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	if s.site != nil {
		s.site.Add(domain.SingletonID, *v)
	}
	return v, nil
}

// SaveSettings stores v as the singleton row and drops the cached copy.
func (s *SettingsService) SaveSettings(ctx context.Context, v *domain.SiteSettings) error {
	ctx, span := observability.Tracer("services/SettingsService").Start(ctx, "SaveSettings")
	defer span.End()

	if err := repo.SaveSiteSettings(ctx, s.DB, v); err != nil {
		return err
	}
	if s.site != nil {
		s.site.Purge()
	}
	return nil
}

// Platform returns the software platform row, creating the default on first use.
func (s *SettingsService) Platform(ctx context.Context) (*domain.SoftwarePlatform, error) {
	if s.platform != nil {
		if v, ok := s.platform.Get(domain.SingletonID); ok {
			return &v, nil
		}
	}
	ctx, span := observability.Tracer("services/SettingsService").Start(ctx, "Platform")
	defer span.End()

	v, err := repo.GetOrCreatePlatform(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	if s.platform != nil {
		s.platform.Add(domain.SingletonID, *v)
	}
	return v, nil
}

// SavePlatform stores v as the singleton row and drops the cached copy.
func (s *SettingsService) SavePlatform(ctx context.Context, v *domain.SoftwarePlatform) error {
	ctx, span := observability.Tracer("services/SettingsService").Start(ctx, "SavePlatform")
	defer span.End()

	if err := repo.SavePlatform(ctx, s.DB, v); err != nil {
		return err
	}
	if s.platform != nil {
		s.platform.Purge()
	}
	return nil
}
