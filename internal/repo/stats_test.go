package repo

import (
	"context"
	"testing"
	"time"

	"github.com/tbourn/turret-landing/internal/domain"
)

func TestContactRequestsStats_CountError_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	if _, _, err := ContactRequestsStats(context.Background(), db); err == nil {
		t.Fatalf("expected error due to missing table")
	}
}

func TestContactRequestsStats_Empty(t *testing.T) {
	db := newTestDB(t, &domain.ContactRequest{})
	n, max, err := ContactRequestsStats(context.Background(), db)
	if err != nil || n != 0 || max != nil {
		t.Fatalf("expected (0, nil, nil), got (%d, %v, %v)", n, max, err)
	}
}

func TestContactRequestsStats_CountAndMax(t *testing.T) {
	db := newTestDB(t, &domain.ContactRequest{})
	ctx := context.Background()

	t1 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(3 * time.Hour)
	for _, ts := range []time.Time{t2, t1} {
		c := &domain.ContactRequest{Name: "n", Email: "e@x.io", Message: "m", CreatedAt: ts, ConsentGiven: true, ConsentDate: ts}
		if err := db.Create(c).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	n, max, err := ContactRequestsStats(ctx, db)
	if err != nil {
		t.Fatalf("ContactRequestsStats: %v", err)
	}
	if n != 2 || max == nil || !max.Equal(t2) {
		t.Fatalf("expected (2, %v), got (%d, %v)", t2, n, max)
	}
}

func TestDocumentDownloadsTotal_Empty(t *testing.T) {
	db := newTestDB(t, &domain.DocumentCategory{}, &domain.Document{})
	total, err := DocumentDownloadsTotal(context.Background(), db)
	if err != nil || total != 0 {
		t.Fatalf("expected 0, got %d (err=%v)", total, err)
	}
}
