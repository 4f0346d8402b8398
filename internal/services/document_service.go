// Package services – DocumentService
//
// DocumentService serves downloadable documents and lets the back-office
// upload and toggle them. A download is counted only once the backing file
// has been opened, so a missing file never inflates the counter.
package services

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/turret-landing/internal/domain"
	"github.com/tbourn/turret-landing/internal/observability"
	"github.com/tbourn/turret-landing/internal/repo"
	"github.com/tbourn/turret-landing/internal/storage"
)

// documentsDir is the storage prefix for uploaded documents.
const documentsDir = "documents"

// Download is an opened document ready to be streamed. Callers must close Body.
type Download struct {
	Body        io.ReadCloser
	FileName    string
	Size        int64
	ModTime     time.Time
	ContentType string
}

// UploadDocument describes a back-office upload.
type UploadDocument struct {
	CategoryID  uint
	Title       string
	Description string
	FileName    string
	ContentType string
	Body        io.Reader
	Inactive    bool
}

// DocumentService coordinates document metadata and file storage.
type DocumentService struct {
	DB    *gorm.DB
	Store storage.Store

	// Now is a clock seam for tests; nil means time.Now.
	Now func() time.Time
}

// Open resolves an active document, opens its file and counts the download.
// Unknown or inactive documents and missing files yield ErrDocumentNotFound.
func (s *DocumentService) Open(ctx context.Context, id uint) (*Download, error) {
	ctx, span := observability.Tracer("services/DocumentService").Start(ctx, "Open",
		trace.WithAttributes(attribute.Int("document.id", int(id))),
	)
	defer span.End()

	doc, err := repo.GetActiveDocument(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}

	obj, err := s.Store.Open(ctx, doc.FilePath)
	if errors.Is(err, storage.ErrNotExist) || errors.Is(err, storage.ErrInvalidKey) {
		zerolog.Ctx(ctx).Warn().Uint("document_id", id).Str("key", doc.FilePath).Msg("document file missing")
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := repo.IncrementDownloadCount(ctx, s.DB, id); err != nil {
		_ = obj.Body.Close()
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	observability.DocumentDownloaded()

	name := doc.FileName
	if name == "" {
		name = path.Base(doc.FilePath)
	}
	return &Download{
		Body:        obj.Body,
		FileName:    name,
		Size:        obj.Size,
		ModTime:     obj.ModTime,
		ContentType: obj.ContentType,
	}, nil
}

// Upload stores the file and inserts the document row. The stored object is
// removed again when the row cannot be written.
func (s *DocumentService) Upload(ctx context.Context, in UploadDocument) (*domain.Document, error) {
	ctx, span := observability.Tracer("services/DocumentService").Start(ctx, "Upload",
		trace.WithAttributes(
			attribute.Int("category.id", int(in.CategoryID)),
			attribute.String("file.name", in.FileName),
		),
	)
	defer span.End()

	name := path.Base(strings.ReplaceAll(strings.TrimSpace(in.FileName), "\\", "/"))
	if !domain.IsAllowedDocumentExtension(path.Ext(name)) {
		return nil, ErrUnsupportedFileType
	}
	title := normalizeText(in.Title)
	if title == "" {
		ve := &ValidationError{}
		ve.add("title", MsgRequired)
		return nil, ve
	}
	if _, err := repo.GetDocumentCategory(ctx, s.DB, in.CategoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	now := s.now()
	key := storage.NewKey(documentsDir, name, now)
	size, err := s.Store.Save(ctx, key, in.Body, in.ContentType)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		CategoryID:  in.CategoryID,
		Title:       title,
		Description: normalizeText(in.Description),
		FilePath:    key,
		FileName:    name,
		FileSize:    size,
		UploadedAt:  now,
		IsActive:    !in.Inactive,
	}
	if err := repo.CreateDocument(ctx, s.DB, doc); err != nil {
		if derr := s.Store.Delete(ctx, key); derr != nil {
			zerolog.Ctx(ctx).Warn().Err(derr).Str("key", key).Msg("orphaned document file")
		}
		return nil, err
	}
	return doc, nil
}

// List returns every document, newest first.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return repo.ListDocuments(ctx, s.DB)
}

// SetActive shows or hides a document.
func (s *DocumentService) SetActive(ctx context.Context, id uint, active bool) (*domain.Document, error) {
	err := repo.SetDocumentActive(ctx, s.DB, id, active)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return repo.GetDocument(ctx, s.DB, id)
}

// DownloadsTotal sums the download counters of all documents.
func (s *DocumentService) DownloadsTotal(ctx context.Context) (int64, error) {
	return repo.DocumentDownloadsTotal(ctx, s.DB)
}

func (s *DocumentService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
