package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/tbourn/turret-landing/internal/http/middleware"
	"github.com/tbourn/turret-landing/internal/services"
	"github.com/tbourn/turret-landing/internal/sysutil"
)

// Messages of the contact endpoint.
const (
	MsgContactAccepted = "Спасибо! Ваша заявка отправлена. Мы свяжемся с вами в ближайшее время."
	MsgHoneypot        = "Спасибо!"
	MsgContactFailed   = "Не удалось отправить заявку. Попробуйте позже."
	MsgBodyTooLarge    = "Слишком большой объём данных формы."
)

// nonFieldErrors is the errors key for problems not tied to a form field.
const nonFieldErrors = "__all__"

// ContactForm is the form-encoded body of POST /contact/.
type ContactForm struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Phone   string `form:"phone"`
	Company string `form:"company"`
	Message string `form:"message"`
	// Consent is a checkbox: "on", "true", "1"… mean given.
	Consent string `form:"consent"`
	// Website is the honeypot; the field is hidden from humans.
	Website string `form:"website"`
	// SmartToken is filled by the SmartCaptcha widget.
	SmartToken string `form:"smart-token"`
}

// ContactResponse is the JSON reply of POST /contact/.
type ContactResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty" example:"Спасибо! Ваша заявка отправлена. Мы свяжемся с вами в ближайшее время."`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// SubmitContact godoc
// @ID          submitContact
// @Summary     Submit the contact form
// @Description Stores a lead after honeypot, SmartCaptcha and field checks, then notifies the operator.
// @Description JSON is returned for X-Requested-With: XMLHttpRequest or Accept: application/json;
// @Description browsers get a 303 redirect to /contact/thanks/ or the page re-rendered with errors.
// @Tags        Site
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       Idempotency-Key  header    string  false  "Deduplicates retried submissions"
// @Param       name             formData  string  true   "Name (max 100)"
// @Param       email            formData  string  true   "E-mail (max 254)"
// @Param       phone            formData  string  false  "Phone (max 30)"
// @Param       company          formData  string  false  "Company (max 200)"
// @Param       message          formData  string  true   "Message"
// @Param       consent          formData  string  true   "Personal data consent checkbox"
// @Param       smart-token      formData  string  false  "SmartCaptcha token"
// @Success     200  {object}  handlers.ContactResponse
// @Success     303  {string}  string                   "Redirect to /contact/thanks/"
// @Failure     400  {object}  handlers.ContactResponse
// @Failure     413  {object}  handlers.ErrorResponse
// @Failure     429  {object}  handlers.ErrorResponse
// @Failure     500  {object}  handlers.ContactResponse
// @Router      /contact/ [post]
func (h *Handlers) SubmitContact(c *gin.Context) {
	var f ContactForm
	if err := c.ShouldBindWith(&f, binding.Form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, http.StatusRequestEntityTooLarge, ErrCodeTooLarge, MsgBodyTooLarge)
			return
		}
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid form body")
		return
	}

	in := services.ContactSubmission{
		Name:         f.Name,
		Email:        f.Email,
		Phone:        f.Phone,
		Company:      f.Company,
		Message:      f.Message,
		Consent:      sysutil.IsTruthy(f.Consent),
		Honeypot:     f.Website,
		CaptchaToken: f.SmartToken,
		IP:           c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	}
	if key, ok := middleware.GetIdempotencyKey(c); ok {
		in.IdempotencyKey = key
	}
	values := ContactFormValues{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Company: f.Company,
		Message: f.Message,
		Consent: in.Consent,
	}

	_, err := h.contacts.Submit(c.Request.Context(), in)
	asJSON := wantsJSON(c)

	var ve *services.ValidationError
	switch {
	case err == nil:
		h.contactAccepted(c, asJSON, MsgContactAccepted)
	case errors.Is(err, services.ErrBotDetected):
		h.contactAccepted(c, asJSON, MsgHoneypot)
	case errors.Is(err, services.ErrCaptchaRejected):
		h.contactRejected(c, asJSON, values, map[string][]string{"captcha": {services.MsgCaptcha}})
	case errors.As(err, &ve):
		h.contactRejected(c, asJSON, values, ve.Fields)
	default:
		_ = c.Error(err)
		if asJSON {
			c.JSON(http.StatusInternalServerError, ContactResponse{
				Success: false,
				Errors:  map[string][]string{nonFieldErrors: {MsgContactFailed}},
			})
			return
		}
		failPage(c, http.StatusInternalServerError, ErrCodeInternal, MsgContactFailed)
	}
}

func (h *Handlers) contactAccepted(c *gin.Context, asJSON bool, msg string) {
	if asJSON {
		ok(c, http.StatusOK, ContactResponse{Success: true, Message: msg})
		return
	}
	c.Redirect(http.StatusSeeOther, "/contact/thanks/")
}

func (h *Handlers) contactRejected(c *gin.Context, asJSON bool, values ContactFormValues, errs map[string][]string) {
	if asJSON {
		c.JSON(http.StatusBadRequest, ContactResponse{Success: false, Errors: errs})
		return
	}
	h.renderLanding(c, http.StatusBadRequest, values, errs)
}
