// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides read queries for the landing page
// catalog and idempotent seeding helpers used by the management commands.
//
// Every list is ordered by the authored sort_order column (ties broken by id
// so results are stable) and, where the entity has an IsActive flag, only
// active rows are returned.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/turret-landing/internal/domain"
)

// ListActiveFeatures returns active features ordered by sort order.
func ListActiveFeatures(ctx context.Context, db *gorm.DB) ([]domain.Feature, error) {
	var out []domain.Feature
	err := db.WithContext(ctx).Where("is_active = ?", true).Order("sort_order ASC, id ASC").Find(&out).Error
	return out, err
}

// ListSpecificationGroups returns every group with its specifications
// preloaded, both ordered by sort order.
func ListSpecificationGroups(ctx context.Context, db *gorm.DB) ([]domain.SpecificationGroup, error) {
	var out []domain.SpecificationGroup
	err := db.WithContext(ctx).
		Preload("Specifications", func(tx *gorm.DB) *gorm.DB { return tx.Order("sort_order ASC, id ASC") }).
		Order("sort_order ASC, id ASC").
		Find(&out).Error
	return out, err
}

// ListActiveGallery returns active gallery images ordered by sort order.
func ListActiveGallery(ctx context.Context, db *gorm.DB) ([]domain.GalleryImage, error) {
	var out []domain.GalleryImage
	err := db.WithContext(ctx).Where("is_active = ?", true).Order("sort_order ASC, id ASC").Find(&out).Error
	return out, err
}

// ListActiveSoftwareModules returns active software modules ordered by sort order.
func ListActiveSoftwareModules(ctx context.Context, db *gorm.DB) ([]domain.SoftwareModule, error) {
	var out []domain.SoftwareModule
	err := db.WithContext(ctx).Where("is_active = ?", true).Order("sort_order ASC, id ASC").Find(&out).Error
	return out, err
}

// ListActiveHardwareInterfaces returns active hardware interfaces ordered by sort order.
func ListActiveHardwareInterfaces(ctx context.Context, db *gorm.DB) ([]domain.HardwareInterface, error) {
	var out []domain.HardwareInterface
	err := db.WithContext(ctx).Where("is_active = ?", true).Order("sort_order ASC, id ASC").Find(&out).Error
	return out, err
}

// ListActiveDevelopmentPlans returns active roadmap items ordered by sort order.
func ListActiveDevelopmentPlans(ctx context.Context, db *gorm.DB) ([]domain.DevelopmentPlan, error) {
	var out []domain.DevelopmentPlan
	err := db.WithContext(ctx).Where("is_active = ?", true).Order("sort_order ASC, id ASC").Find(&out).Error
	return out, err
}

// ListDocumentCategoriesWithActiveDocuments returns categories that own at
// least one active document, ordered by (sort order, name). Only active
// documents are preloaded, newest first.
func ListDocumentCategoriesWithActiveDocuments(ctx context.Context, db *gorm.DB) ([]domain.DocumentCategory, error) {
	var out []domain.DocumentCategory
	active := db.WithContext(ctx).Model(&domain.Document{}).
		Select("1").
		Where("documents.category_id = document_categories.id AND documents.is_active = ?", true)
	err := db.WithContext(ctx).
		Where("EXISTS (?)", active).
		Preload("Documents", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("is_active = ?", true).Order("uploaded_at DESC, id DESC")
		}).
		Order("sort_order ASC, name ASC").
		Find(&out).Error
	return out, err
}

// ListDocumentCategories returns all categories ordered by (sort order, name).
func ListDocumentCategories(ctx context.Context, db *gorm.DB) ([]domain.DocumentCategory, error) {
	var out []domain.DocumentCategory
	err := db.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&out).Error
	return out, err
}

// GetDocumentCategory fetches a category by id, or ErrNotFound.
func GetDocumentCategory(ctx context.Context, db *gorm.DB, id uint) (*domain.DocumentCategory, error) {
	var c domain.DocumentCategory
	if err := db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ---- seeding ----

// firstOrCreate looks a row up by a single natural-key column and inserts
// val when absent. It reports whether a row was inserted.
func firstOrCreate[T any](ctx context.Context, db *gorm.DB, column string, key any, val *T) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(new(T)).Where(column+" = ?", key).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := db.WithContext(ctx).Create(val).Error; err != nil {
		return false, err
	}
	return true, nil
}

// SeedFeature inserts f unless a feature with the same title exists.
func SeedFeature(ctx context.Context, db *gorm.DB, f *domain.Feature) (bool, error) {
	return firstOrCreate(ctx, db, "title", f.Title, f)
}

// SeedSpecificationGroup inserts g (with its specifications) unless a group
// with the same name exists.
func SeedSpecificationGroup(ctx context.Context, db *gorm.DB, g *domain.SpecificationGroup) (bool, error) {
	return firstOrCreate(ctx, db, "name", g.Name, g)
}

// SeedDocumentCategory inserts c unless a category with the same slug exists.
func SeedDocumentCategory(ctx context.Context, db *gorm.DB, c *domain.DocumentCategory) (bool, error) {
	return firstOrCreate(ctx, db, "slug", c.Slug, c)
}

// SeedSoftwareModule inserts m unless a module with the same title exists.
func SeedSoftwareModule(ctx context.Context, db *gorm.DB, m *domain.SoftwareModule) (bool, error) {
	return firstOrCreate(ctx, db, "title", m.Title, m)
}

// SeedHardwareInterface inserts h unless an interface with the same name exists.
func SeedHardwareInterface(ctx context.Context, db *gorm.DB, h *domain.HardwareInterface) (bool, error) {
	return firstOrCreate(ctx, db, "name", h.Name, h)
}

// SeedDevelopmentPlan inserts p unless a plan with the same title exists.
func SeedDevelopmentPlan(ctx context.Context, db *gorm.DB, p *domain.DevelopmentPlan) (bool, error) {
	return firstOrCreate(ctx, db, "title", p.Title, p)
}

// CreateGalleryImage inserts a gallery image.
func CreateGalleryImage(ctx context.Context, db *gorm.DB, g *domain.GalleryImage) error {
	return db.WithContext(ctx).Create(g).Error
}
