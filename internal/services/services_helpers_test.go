package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/turret-landing/internal/domain"
	"github.com/tbourn/turret-landing/internal/repo"
	"github.com/tbourn/turret-landing/internal/storage"
)

// newTestDB opens a private in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// fakeVerifier answers CAPTCHA checks with a fixed result.
type fakeVerifier struct {
	ok    bool
	err   error
	calls int
	token string
	ip    string
}

func (f *fakeVerifier) Verify(_ context.Context, token, ip string) (bool, error) {
	f.calls++
	f.token, f.ip = token, ip
	return f.ok, f.err
}

// recordingNotifier captures ContactReceived calls.
type recordingNotifier struct {
	mu   sync.Mutex
	seen []domain.ContactRequest
}

func (r *recordingNotifier) ContactReceived(_ context.Context, c *domain.ContactRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, *c)
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}

// memStore is an in-memory storage.Store.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	saveErr error
}

func newMemStore() *memStore { return &memStore{objects: map[string][]byte{}} }

func (m *memStore) Open(_ context.Context, key string) (*storage.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrNotExist
	}
	return &storage.Object{
		Body:        io.NopCloser(bytes.NewReader(b)),
		Size:        int64(len(b)),
		ModTime:     time.Unix(0, 0).UTC(),
		ContentType: "application/pdf",
	}, nil
}

func (m *memStore) Save(_ context.Context, key string, r io.Reader, _ string) (int64, error) {
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = b
	return int64(len(b)), nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func fixedClock(ts time.Time) func() time.Time { return func() time.Time { return ts } }
