// Back-office HTTP handlers.
//
// This file exposes the JSON API used by site operators. All routes sit
// behind HTTP Basic authentication (middleware.AdminAuth):
//   - GET  /contacts                 (list, paginated, ETag support)
//   - GET  /contacts/{id}            (single lead)
//   - PUT  /contacts/{id}/triage     (processed flag + notes)
//   - GET  /settings, PUT /settings  (site settings singleton)
//   - GET  /platform, PUT /platform  (software platform singleton)
//   - GET  /categories               (document categories)
//   - GET  /documents, POST /documents, PUT /documents/{id}/active
//   - GET  /stats                    (lead and download totals)
package handlers

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/turret-landing/internal/domain"
	"github.com/tbourn/turret-landing/internal/services"
	"github.com/tbourn/turret-landing/internal/sysutil"
	"github.com/tbourn/turret-landing/internal/utils"
)

//
// Service contracts (context-aware)
//

// ContactAdmin exposes stored leads to operators.
type ContactAdmin interface {
	ListPage(ctx context.Context, page, pageSize int) ([]domain.ContactRequest, int64, error)
	Get(ctx context.Context, id uint) (*domain.ContactRequest, error)
	Triage(ctx context.Context, id uint, processed bool, notes string) (*domain.ContactRequest, error)
	Stats(ctx context.Context) (int64, *time.Time, error)
}

// SettingsAdmin reads and replaces the singleton configuration rows.
type SettingsAdmin interface {
	Settings(ctx context.Context) (*domain.SiteSettings, error)
	SaveSettings(ctx context.Context, v *domain.SiteSettings) error
	Platform(ctx context.Context) (*domain.SoftwarePlatform, error)
	SavePlatform(ctx context.Context, v *domain.SoftwarePlatform) error
}

// DocumentAdmin manages downloadable documents.
type DocumentAdmin interface {
	List(ctx context.Context) ([]domain.Document, error)
	Upload(ctx context.Context, in services.UploadDocument) (*domain.Document, error)
	SetActive(ctx context.Context, id uint, active bool) (*domain.Document, error)
	DownloadsTotal(ctx context.Context) (int64, error)
}

// CategoryLister lists document categories.
type CategoryLister interface {
	Categories(ctx context.Context) ([]domain.DocumentCategory, error)
}

// Admin groups the back-office endpoints.
type Admin struct {
	contacts   ContactAdmin
	settings   SettingsAdmin
	docs       DocumentAdmin
	categories CategoryLister
}

// NewAdmin constructs the back-office handlers.
func NewAdmin(contacts ContactAdmin, settings SettingsAdmin, docs DocumentAdmin, categories CategoryLister) *Admin {
	return &Admin{contacts: contacts, settings: settings, docs: docs, categories: categories}
}

// Register mounts the back-office routes on g.
func (a *Admin) Register(g gin.IRoutes) {
	g.GET("/contacts", a.ListContacts)
	g.GET("/contacts/:id", a.GetContact)
	g.PUT("/contacts/:id/triage", a.TriageContact)
	g.GET("/settings", a.GetSettings)
	g.PUT("/settings", a.UpdateSettings)
	g.GET("/platform", a.GetPlatform)
	g.PUT("/platform", a.UpdatePlatform)
	g.GET("/categories", a.ListCategories)
	g.GET("/documents", a.ListDocuments)
	g.POST("/documents", a.UploadDocument)
	g.PUT("/documents/:id/active", a.SetDocumentActive)
	g.GET("/stats", a.Stats)
}

//
// DTOs
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListContactsResponse wraps a page of leads and pagination information.
type ListContactsResponse struct {
	Contacts   []domain.ContactRequest `json:"contacts"`
	Pagination Pagination              `json:"pagination"`
}

// TriageRequest is the JSON payload for triaging a lead.
type TriageRequest struct {
	IsProcessed *bool  `json:"is_processed" binding:"required" example:"true"`
	Notes       string `json:"notes" binding:"max=5000" example:"Перезвонили, выслали КП"`
}

// SettingsRequest is the JSON payload replacing the site settings.
type SettingsRequest struct {
	SiteTitle       string `json:"site_title"       binding:"required,max=200"`
	SiteDescription string `json:"site_description" binding:"required"`
	HeroTitle       string `json:"hero_title"       binding:"required,max=200"`
	HeroSubtitle    string `json:"hero_subtitle"    binding:"required"`
	AboutText       string `json:"about_text"`
	TurretImage     string `json:"turret_image"     binding:"max=255"`
	ContactEmail    string `json:"contact_email"    binding:"required,email,max=254"`
	ContactPhone    string `json:"contact_phone"    binding:"required,max=30"`
	ContactAddress  string `json:"contact_address"  binding:"required"`
}

// PlatformRequest is the JSON payload replacing the software platform.
type PlatformRequest struct {
	IntroText    string `json:"intro_text"    binding:"required"`
	PlatformName string `json:"platform_name" binding:"required,max=100"`
	Hardware     string `json:"hardware"      binding:"required,max=200"`
	AppType      string `json:"app_type"      binding:"required,max=100"`
	Languages    string `json:"languages"     binding:"required,max=200"`
}

// ActiveRequest toggles document visibility.
type ActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required" example:"false"`
}

// StatsResponse summarizes lead and download activity.
type StatsResponse struct {
	ContactsTotal  int64      `json:"contacts_total"`
	LastContactAt  *time.Time `json:"last_contact_at"`
	DownloadsTotal int64      `json:"downloads_total"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params.
func clampPagination(c *gin.Context) (page, pageSize int) {
	return utils.ParsePage(c.Query("page"), c.Query("page_size"))
}

// contactsETag derives a weak ETag from the total and the page rows.
func contactsETag(total int64, page, pageSize int, items []domain.ContactRequest) string {
	h := fnv.New64a()
	for _, it := range items {
		fmt.Fprintf(h, "%d|%t|%s\n", it.ID, it.IsProcessed, it.Notes)
	}
	return fmt.Sprintf(`W/"contacts:%d:%d:%d:%x"`, total, page, pageSize, h.Sum64())
}

// idParam parses a positive numeric path id.
func idParam(c *gin.Context) (uint, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid id")
	}
	return id, ok
}

//
// Handlers
//

// ListContacts godoc
// @ID          listContacts
// @Summary     List contact requests (paginated)
// @Description Returns leads newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Admin
// @Produce     json
// @Security    BasicAuth
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
// @Param       page           query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object} handlers.ListContactsResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     401  {object} handlers.ErrorResponse
// @Failure     500  {object} handlers.ErrorResponse
// @Router      /admin/api/contacts [get]
func (a *Admin) ListContacts(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	items, total, err := a.contacts.ListPage(ctx, page, pageSize)
	if err != nil {
		failInternal(c, ErrCodeListFailed, err)
		return
	}

	// Triage edits rows in place, so the tag covers the page contents too.
	etag := contactsETag(total, page, pageSize, items)
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListContactsResponse{
		Contacts: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// GetContact godoc
// @ID          getContact
// @Summary     Get a contact request
// @Tags        Admin
// @Produce     json
// @Security    BasicAuth
// @Param       id   path      int  true  "Contact request ID"
// @Success     200  {object}  domain.ContactRequest
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /admin/api/contacts/{id} [get]
func (a *Admin) GetContact(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	cr, err := a.contacts.Get(c.Request.Context(), id)
	switch {
	case errors.Is(err, services.ErrContactNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "contact request not found")
	case err != nil:
		failInternal(c, ErrCodeInternal, err)
	default:
		ok(c, http.StatusOK, cr)
	}
}

// TriageContact godoc
// @ID          triageContact
// @Summary     Triage a contact request
// @Description Sets the processed flag and replaces the operator notes.
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BasicAuth
// @Param       id    path  int                      true  "Contact request ID"
// @Param       body  body  handlers.TriageRequest   true  "Triage payload"
// @Success     200  {object}  domain.ContactRequest
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /admin/api/contacts/{id}/triage [put]
func (a *Admin) TriageContact(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var req TriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "is_processed is required")
		return
	}
	cr, err := a.contacts.Triage(c.Request.Context(), id, *req.IsProcessed, req.Notes)
	switch {
	case errors.Is(err, services.ErrContactNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "contact request not found")
	case err != nil:
		failInternal(c, ErrCodeUpdateFailed, err)
	default:
		ok(c, http.StatusOK, cr)
	}
}

// GetSettings godoc
// @ID          getSettings
// @Summary     Get site settings
// @Tags        Admin
// @Produce     json
// @Security    BasicAuth
// @Success     200  {object}  domain.SiteSettings
// @Router      /admin/api/settings [get]
func (a *Admin) GetSettings(c *gin.Context) {
	s, err := a.settings.Settings(c.Request.Context())
	if err != nil {
		failInternal(c, ErrCodeInternal, err)
		return
	}
	ok(c, http.StatusOK, s)
}

// UpdateSettings godoc
// @ID          updateSettings
// @Summary     Replace site settings
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BasicAuth
// @Param       body  body  handlers.SettingsRequest  true  "Site settings"
// @Success     200  {object}  domain.SiteSettings
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /admin/api/settings [put]
func (a *Admin) UpdateSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "invalid settings payload")
		return
	}
	s := &domain.SiteSettings{
		SiteTitle:       strings.TrimSpace(req.SiteTitle),
		SiteDescription: strings.TrimSpace(req.SiteDescription),
		HeroTitle:       strings.TrimSpace(req.HeroTitle),
		HeroSubtitle:    strings.TrimSpace(req.HeroSubtitle),
		AboutText:       strings.TrimSpace(req.AboutText),
		TurretImage:     strings.TrimSpace(req.TurretImage),
		ContactEmail:    strings.TrimSpace(req.ContactEmail),
		ContactPhone:    strings.TrimSpace(req.ContactPhone),
		ContactAddress:  strings.TrimSpace(req.ContactAddress),
	}
	if err := a.settings.SaveSettings(c.Request.Context(), s); err != nil {
		failInternal(c, ErrCodeUpdateFailed, err)
		return
	}
	a.GetSettings(c)
}

// GetPlatform godoc
// @ID          getPlatform
// @Summary     Get software platform description
// @Tags        Admin
// @Produce     json
// @Security    BasicAuth
// @Success     200  {object}  domain.SoftwarePlatform
// @Router      /admin/api/platform [get]
func (a *Admin) GetPlatform(c *gin.Context) {
	p, err := a.settings.Platform(c.Request.Context())
	if err != nil {
		failInternal(c, ErrCodeInternal, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// UpdatePlatform godoc
// @ID          updatePlatform
// @Summary     Replace software platform description
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BasicAuth
// @Param       body  body  handlers.PlatformRequest  true  "Platform"
// @Success     200  {object}  domain.SoftwarePlatform
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /admin/api/platform [put]
func (a *Admin) UpdatePlatform(c *gin.Context) {
	var req PlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "invalid platform payload")
		return
	}
	p := &domain.SoftwarePlatform{
		IntroText:    strings.TrimSpace(req.IntroText),
		PlatformName: strings.TrimSpace(req.PlatformName),
		Hardware:     strings.TrimSpace(req.Hardware),
		AppType:      strings.TrimSpace(req.AppType),
		Languages:    strings.TrimSpace(req.Languages),
	}
	if err := a.settings.SavePlatform(c.Request.Context(), p); err != nil {
		failInternal(c, ErrCodeUpdateFailed, err)
		return
	}
	a.GetPlatform(c)
}

// ListCategories godoc
// @ID          listCategories
// @Summary     List document categories
// @Tags        Admin
// @Produce     json
// @Security    BasicAuth
// @Success     200  {array}  domain.DocumentCategory
// @Router      /admin/api/categories [get]
func (a *Admin) ListCategories(c *gin.Context) {
	cats, err := a.categories.Categories(c.Request.Context())
	if err != nil {
		failInternal(c, ErrCodeListFailed, err)
		return
	}
	ok(c, http.StatusOK, cats)
}

// ListDocuments godoc
// @ID          listDocuments
// @Summary     List documents
// @Tags        Admin
// @Produce     json
// @Security    BasicAuth
// @Success     200  {array}  domain.Document
// @Router      /admin/api/documents [get]
func (a *Admin) ListDocuments(c *gin.Context) {
	docs, err := a.docs.List(c.Request.Context())
	if err != nil {
		failInternal(c, ErrCodeListFailed, err)
		return
	}
	ok(c, http.StatusOK, docs)
}

// UploadDocument godoc
// @ID          uploadDocument
// @Summary     Upload a document
// @Description Accepts pdf, doc, docx, xls and xlsx files.
// @Tags        Admin
// @Accept      multipart/form-data
// @Produce     json
// @Security    BasicAuth
// @Param       file         formData  file    true   "Document file"
// @Param       category_id  formData  int     true   "Category ID"
// @Param       title        formData  string  true   "Title"
// @Param       description  formData  string  false  "Description"
// @Param       is_active    formData  bool    false  "Visible on the site (default true)"
// @Success     201  {object}  domain.Document
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     413  {object}  handlers.ErrorResponse
// @Failure     415  {object}  handlers.ErrorResponse
// @Router      /admin/api/documents [post]
func (a *Admin) UploadDocument(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, http.StatusRequestEntityTooLarge, ErrCodeTooLarge, "file too large")
			return
		}
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "file is required")
		return
	}
	catID, idOK := utils.ParseID(c.PostForm("category_id"))
	if !idOK {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "category_id is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "cannot read file")
		return
	}
	defer f.Close()

	inactive := false
	if v, present := c.GetPostForm("is_active"); present {
		inactive = !sysutil.IsTruthy(v)
	}
	doc, err := a.docs.Upload(c.Request.Context(), services.UploadDocument{
		CategoryID:  catID,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
		Inactive:    inactive,
	})

	var ve *services.ValidationError
	switch {
	case err == nil:
		ok(c, http.StatusCreated, doc)
	case errors.Is(err, services.ErrUnsupportedFileType):
		fail(c, http.StatusUnsupportedMediaType, ErrCodeUnsupportedFile, "allowed types: "+strings.Join(domain.AllowedDocumentExtensions, ", "))
	case errors.Is(err, services.ErrCategoryNotFound):
		fail(c, http.StatusBadRequest, ErrCodeValidation, "category not found")
	case errors.As(err, &ve):
		fail(c, http.StatusBadRequest, ErrCodeValidation, ve.Error())
	default:
		failInternal(c, ErrCodeUploadFailed, err)
	}
}

// SetDocumentActive godoc
// @ID          setDocumentActive
// @Summary     Show or hide a document
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BasicAuth
// @Param       id    path  int                     true  "Document ID"
// @Param       body  body  handlers.ActiveRequest  true  "Visibility"
// @Success     200  {object}  domain.Document
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /admin/api/documents/{id}/active [put]
func (a *Admin) SetDocumentActive(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var req ActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "is_active is required")
		return
	}
	doc, err := a.docs.SetActive(c.Request.Context(), id, *req.IsActive)
	switch {
	case errors.Is(err, services.ErrDocumentNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "document not found")
	case err != nil:
		failInternal(c, ErrCodeUpdateFailed, err)
	default:
		ok(c, http.StatusOK, doc)
	}
}

// Stats godoc
// @ID          adminStats
// @Summary     Lead and download totals
// @Tags        Admin
// @Produce     json
// @Security    BasicAuth
// @Success     200  {object}  handlers.StatsResponse
// @Router      /admin/api/stats [get]
func (a *Admin) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	count, last, err := a.contacts.Stats(ctx)
	if err != nil {
		failInternal(c, ErrCodeInternal, err)
		return
	}
	downloads, err := a.docs.DownloadsTotal(ctx)
	if err != nil {
		failInternal(c, ErrCodeInternal, err)
		return
	}
	ok(c, http.StatusOK, StatsResponse{ContactsTotal: count, LastContactAt: last, DownloadsTotal: downloads})
}
