package handlers

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/turret-landing/internal/domain"
	"github.com/tbourn/turret-landing/internal/services"
	"github.com/tbourn/turret-landing/internal/web"
)

// ---------- stubs ----------

type stubCatalog struct {
	landing func(ctx context.Context) (*services.LandingPage, error)
}

func (s stubCatalog) Landing(ctx context.Context) (*services.LandingPage, error) {
	return s.landing(ctx)
}

type stubSettings struct {
	get func(ctx context.Context) (*domain.SiteSettings, error)
}

func (s stubSettings) Settings(ctx context.Context) (*domain.SiteSettings, error) {
	return s.get(ctx)
}

type stubContacts struct {
	submit func(ctx context.Context, in services.ContactSubmission) (*domain.ContactRequest, error)
}

func (s stubContacts) Submit(ctx context.Context, in services.ContactSubmission) (*domain.ContactRequest, error) {
	return s.submit(ctx, in)
}

type stubDocs struct {
	open func(ctx context.Context, id uint) (*services.Download, error)
}

func (s stubDocs) Open(ctx context.Context, id uint) (*services.Download, error) {
	return s.open(ctx, id)
}

// closeTracker records whether the download body was closed.
type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error { c.closed = true; return nil }

// ---------- fixtures ----------

func testSettings() *domain.SiteSettings {
	s := domain.DefaultSiteSettings()
	return &s
}

func testLanding() *services.LandingPage {
	platform := domain.DefaultSoftwarePlatform()
	return &services.LandingPage{
		Settings: testSettings(),
		Features: []domain.Feature{{ID: 1, Title: "Автономность", Description: "Работа без оператора", Icon: "cpu", IsActive: true}},
		SpecGroups: []domain.SpecificationGroup{{
			ID: 1, Name: "Основные",
			Specifications: []domain.Specification{{ID: 1, GroupID: 1, Name: "Дальность", Value: "до 1500 м"}},
		}},
		DocumentCategories: []domain.DocumentCategory{{
			ID: 1, Name: "Паспорта", Slug: "passports", Icon: "file-text",
			Documents: []domain.Document{{ID: 7, CategoryID: 1, Title: "Паспорт изделия", FilePath: "documents/passport.pdf", FileName: "passport.pdf", FileSize: 2048, IsActive: true}},
		}},
		Platform: &platform,
	}
}

// siteDeps returns working stubs for every public service.
func siteDeps() (stubCatalog, stubSettings, stubContacts, stubDocs) {
	return stubCatalog{landing: func(context.Context) (*services.LandingPage, error) { return testLanding(), nil }},
		stubSettings{get: func(context.Context) (*domain.SiteSettings, error) { return testSettings(), nil }},
		stubContacts{submit: func(context.Context, services.ContactSubmission) (*domain.ContactRequest, error) {
			return &domain.ContactRequest{ID: 1}, nil
		}},
		stubDocs{open: func(context.Context, uint) (*services.Download, error) {
			return nil, services.ErrDocumentNotFound
		}}
}

// newSiteRouter mounts h on a bare engine with the embedded templates.
func newSiteRouter(h *Handlers, contactMW ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(web.MustTemplates())
	h.Register(r, contactMW...)
	return r
}

var errBoom = errors.New("boom")

var fixedTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
