package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/turret-landing/internal/domain"
	"github.com/tbourn/turret-landing/internal/services"
)

// ContactFormValues echoes submitted values back into the form.
type ContactFormValues struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Message string
	Consent bool
}

// landingView is the view model of index.html.
type landingView struct {
	*services.LandingPage
	Form             ContactFormValues
	Errors           map[string][]string
	CaptchaClientKey string
	MediaURL         string
}

// simpleView is the view model of the policy and thank-you pages.
type simpleView struct {
	Settings *domain.SiteSettings
	MediaURL string
}

// Index godoc
// @ID          index
// @Summary     Landing page
// @Description Renders the landing page with active catalog content and the contact form.
// @Tags        Site
// @Produce     html
// @Success     200  {string}  string  "HTML page"
// @Failure     500  {string}  string  "HTML error page"
// @Router      / [get]
func (h *Handlers) Index(c *gin.Context) {
	h.renderLanding(c, http.StatusOK, ContactFormValues{}, nil)
}

// renderLanding renders index.html, optionally with submitted values and
// field errors after a rejected non-AJAX form post.
func (h *Handlers) renderLanding(c *gin.Context, status int, form ContactFormValues, errs map[string][]string) {
	page, err := h.catalog.Landing(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		failPage(c, http.StatusInternalServerError, ErrCodeInternal, "Не удалось загрузить страницу")
		return
	}
	c.HTML(status, "index.html", landingView{
		LandingPage:      page,
		Form:             form,
		Errors:           errs,
		CaptchaClientKey: h.opts.CaptchaClientKey,
		MediaURL:         h.opts.MediaURL,
	})
}

// Privacy godoc
// @ID          privacyPolicy
// @Summary     Personal data processing policy
// @Tags        Site
// @Produce     html
// @Success     200  {string}  string  "HTML page"
// @Router      /privacy/ [get]
func (h *Handlers) Privacy(c *gin.Context) { h.renderSimple(c, "privacy.html") }

// Cookies godoc
// @ID          cookiePolicy
// @Summary     Cookie policy
// @Tags        Site
// @Produce     html
// @Success     200  {string}  string  "HTML page"
// @Router      /cookies/ [get]
func (h *Handlers) Cookies(c *gin.Context) { h.renderSimple(c, "cookies.html") }

// Thanks godoc
// @ID          contactThanks
// @Summary     Contact form confirmation
// @Description Target of the 303 redirect after a successful non-AJAX form post.
// @Tags        Site
// @Produce     html
// @Success     200  {string}  string  "HTML page"
// @Router      /contact/thanks/ [get]
func (h *Handlers) Thanks(c *gin.Context) { h.renderSimple(c, "thanks.html") }

func (h *Handlers) renderSimple(c *gin.Context, name string) {
	s, err := h.settings.Settings(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		failPage(c, http.StatusInternalServerError, ErrCodeInternal, "Не удалось загрузить страницу")
		return
	}
	c.HTML(http.StatusOK, name, simpleView{Settings: s, MediaURL: h.opts.MediaURL})
}
