// Package services – CatalogService
//
// CatalogService assembles the read-only content shown on the landing page.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/turret-landing/internal/domain"
	"github.com/tbourn/turret-landing/internal/observability"
	"github.com/tbourn/turret-landing/internal/repo"
)

// LandingPage is everything the index page renders.
type LandingPage struct {
	Settings           *domain.SiteSettings
	Features           []domain.Feature
	SpecGroups         []domain.SpecificationGroup
	DocumentCategories []domain.DocumentCategory
	Gallery            []domain.GalleryImage
	Platform           *domain.SoftwarePlatform
	SoftwareModules    []domain.SoftwareModule
	HardwareInterfaces []domain.HardwareInterface
	DevelopmentPlans   []domain.DevelopmentPlan
}

// CatalogService reads landing page content.
type CatalogService struct {
	DB       *gorm.DB
	Settings *SettingsService
}

// Landing loads the full index page aggregate. Only active items are
// included and document categories without active documents are skipped.
func (s *CatalogService) Landing(ctx context.Context) (*LandingPage, error) {
	ctx, span := observability.Tracer("services/CatalogService").Start(ctx, "Landing")
	defer span.End()

	var (
		p   LandingPage
		err error
	)
	if p.Settings, err = s.Settings.Settings(ctx); err != nil {
		return nil, err
	}
	if p.Platform, err = s.Settings.Platform(ctx); err != nil {
		return nil, err
	}
	if p.Features, err = repo.ListActiveFeatures(ctx, s.DB); err != nil {
		return nil, err
	}
	if p.SpecGroups, err = repo.ListSpecificationGroups(ctx, s.DB); err != nil {
		return nil, err
	}
	if p.DocumentCategories, err = repo.ListDocumentCategoriesWithActiveDocuments(ctx, s.DB); err != nil {
		return nil, err
	}
	if p.Gallery, err = repo.ListActiveGallery(ctx, s.DB); err != nil {
		return nil, err
	}
	if p.SoftwareModules, err = repo.ListActiveSoftwareModules(ctx, s.DB); err != nil {
		return nil, err
	}
	if p.HardwareInterfaces, err = repo.ListActiveHardwareInterfaces(ctx, s.DB); err != nil {
		return nil, err
	}
	if p.DevelopmentPlans, err = repo.ListActiveDevelopmentPlans(ctx, s.DB); err != nil {
		return nil, err
	}
	return &p, nil
}

// Categories lists every document category, used by the back-office.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.DocumentCategory, error) {
	return repo.ListDocumentCategories(ctx, s.DB)
}
