// Public site HTTP handlers.
//
// This file wires the handlers of the public landing site:
//   - GET  /                          landing page
//   - GET  /privacy/, /cookies/       policy pages
//   - POST /contact/                  contact form intake
//   - GET  /contact/thanks/           confirmation page after a form post
//   - GET  /document/{id}/download/   document download with counter
//
// Handlers are transport-thin: they parse input, call application services,
// and translate results into HTML or JSON responses.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/turret-landing/internal/domain"
	"github.com/tbourn/turret-landing/internal/services"
)

//
// Service contracts (context-aware)
//

// CatalogService assembles landing page content.
type CatalogService interface {
	Landing(ctx context.Context) (*services.LandingPage, error)
}

// SettingsReader returns the site settings singleton.
type SettingsReader interface {
	Settings(ctx context.Context) (*domain.SiteSettings, error)
}

// ContactSubmitter runs a contact form post through the intake pipeline.
type ContactSubmitter interface {
	Submit(ctx context.Context, in services.ContactSubmission) (*domain.ContactRequest, error)
}

// DocumentOpener opens an active document for download and counts it.
type DocumentOpener interface {
	Open(ctx context.Context, id uint) (*services.Download, error)
}

//
// Handler wiring
//

// Options carries presentation settings of the public pages.
type Options struct {
	// CaptchaClientKey is rendered into the contact form; empty hides the widget.
	CaptchaClientKey string
	// MediaURL prefixes gallery and settings image keys, e.g. "/media".
	MediaURL string
}

// Handlers groups the public site endpoints.
type Handlers struct {
	catalog  CatalogService
	settings SettingsReader
	contacts ContactSubmitter
	docs     DocumentOpener
	opts     Options
}

// New constructs the public site handlers bound to the given services.
func New(catalog CatalogService, settings SettingsReader, contacts ContactSubmitter, docs DocumentOpener, opts Options) *Handlers {
	return &Handlers{catalog: catalog, settings: settings, contacts: contacts, docs: docs, opts: opts}
}

// Register mounts the public routes on r.
func (h *Handlers) Register(r gin.IRoutes, contactMW ...gin.HandlerFunc) {
	r.GET("/", h.Index)
	r.GET("/privacy/", h.Privacy)
	r.GET("/cookies/", h.Cookies)
	r.GET("/contact/thanks/", h.Thanks)
	r.GET("/document/:id/download/", h.DownloadDocument)
	r.POST("/contact/", append(contactMW, h.SubmitContact)...)
}
