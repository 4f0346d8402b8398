// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for ContactRequest.
//
// Contact requests are append-only from the public side. The only mutation
// is UpdateContactRequestTriage, used by the back-office to mark a lead as
// processed and keep notes.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/turret-landing/internal/domain"
)

// CreateContactRequest inserts c. CreatedAt defaults to now (UTC) when unset.
func CreateContactRequest(ctx context.Context, db *gorm.DB, c *domain.ContactRequest) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(c).Error
}

// GetContactRequest fetches a contact request by id, or ErrNotFound.
func GetContactRequest(ctx context.Context, db *gorm.DB, id uint) (*domain.ContactRequest, error) {
	var c domain.ContactRequest
	if err := db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CountContactRequests returns the total number of stored requests.
func CountContactRequests(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.ContactRequest{}).Count(&n).Error
	return n, err
}

// ListContactRequestsPage returns a page of requests, newest first.
func ListContactRequestsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.ContactRequest, error) {
	var out []domain.ContactRequest
	err := db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpdateContactRequestTriage sets the processed flag and notes. It returns
// ErrNotFound when no row matched.
func UpdateContactRequestTriage(ctx context.Context, db *gorm.DB, id uint, processed bool, notes string) error {
	res := db.WithContext(ctx).
		Model(&domain.ContactRequest{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{"is_processed": processed, "notes": notes})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
