// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for Document.
//
// The download counter is only ever changed through IncrementDownloadCount,
// which issues a single-column UPDATE evaluated by the database
// (download_count = download_count + 1). Concurrent downloads therefore
// never lose increments and never overwrite other columns.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/turret-landing/internal/domain"
)

// GetActiveDocument fetches an active document by id, or ErrNotFound when it
// does not exist or is inactive.
func GetActiveDocument(ctx context.Context, db *gorm.DB, id uint) (*domain.Document, error) {
	var d domain.Document
	if err := db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// GetDocument fetches a document by id regardless of its active flag.
func GetDocument(ctx context.Context, db *gorm.DB, id uint) (*domain.Document, error) {
	var d domain.Document
	if err := db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// IncrementDownloadCount atomically adds one to the document's download
// counter. It returns ErrNotFound when no row matched.
func IncrementDownloadCount(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).
		Model(&domain.Document{}).
		Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateDocument inserts d. UploadedAt defaults to now (UTC) when unset.
func CreateDocument(ctx context.Context, db *gorm.DB, d *domain.Document) error {
	if d.UploadedAt.IsZero() {
		d.UploadedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(d).Error
}

// ListDocuments returns all documents, newest first.
func ListDocuments(ctx context.Context, db *gorm.DB) ([]domain.Document, error) {
	var out []domain.Document
	err := db.WithContext(ctx).Order("uploaded_at DESC, id DESC").Find(&out).Error
	return out, err
}

// SetDocumentActive toggles the active flag. It returns ErrNotFound when no
// row matched.
func SetDocumentActive(ctx context.Context, db *gorm.DB, id uint, active bool) error {
	res := db.WithContext(ctx).
		Model(&domain.Document{}).
		Where("id = ?", id).
		UpdateColumn("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
