// Package services – ContactService
//
// This file implements the contact intake pipeline: bot screening, form
// validation, persistence of the lead together with its idempotency record,
// and a single best-effort operator notification. It also exposes the
// back-office operations over stored leads (paging, triage, stats).
//
// Observability: Submit is OpenTelemetry-instrumented and every terminal
// outcome is counted in contact_submissions_total.
package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/tbourn/turret-landing/internal/domain"
	"github.com/tbourn/turret-landing/internal/observability"
	"github.com/tbourn/turret-landing/internal/repo"
	"github.com/tbourn/turret-landing/internal/utils"
)

// Field limits of the contact form, in runes.
const (
	MaxNameLen    = 100
	MaxEmailLen   = 254
	MaxPhoneLen   = 30
	MaxCompanyLen = 200
)

// Validation messages shown next to form fields.
const (
	MsgRequired      = "Обязательное поле."
	MsgInvalidEmail  = "Введите правильный адрес электронной почты."
	MsgConsent       = "Необходимо дать согласие на обработку персональных данных"
	MsgCaptcha       = "Пожалуйста, пройдите проверку капчи"
	msgMaxLenPattern = "Убедитесь, что это значение содержит не более %s символов (сейчас %d)."
)

// idempotencyAccepted is the status stored with idempotency records and
// replayed to retrying clients.
const idempotencyAccepted = 200

// ContactNotifier is told about every newly stored contact request. It must
// not block on retries; notify.Dispatcher is the production implementation.
type ContactNotifier interface {
	ContactReceived(ctx context.Context, c *domain.ContactRequest)
}

// ContactSubmission is the raw input of one contact form post.
type ContactSubmission struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Message string
	Consent bool

	// Honeypot is the hidden "website" field; humans leave it empty.
	Honeypot string
	// CaptchaToken is the "smart-token" field filled by the CAPTCHA widget.
	CaptchaToken string

	IP             string
	UserAgent      string
	IdempotencyKey string
}

// contactForm is the normalized form checked by the validator.
type contactForm struct {
	Name    string `form:"name"    validate:"required,max=100"`
	Email   string `form:"email"   validate:"required,max=254,email"`
	Phone   string `form:"phone"   validate:"max=30"`
	Company string `form:"company" validate:"max=200"`
	Message string `form:"message" validate:"required"`
	Consent bool   `form:"consent" validate:"required"`
}

// formFields fixes the order in which failing fields are reported.
var formFields = []string{"name", "email", "phone", "company", "message", "consent"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

// ContactService coordinates contact intake and lead back-office operations.
type ContactService struct {
	DB       *gorm.DB
	Gate     *BotGate
	Notifier ContactNotifier

	// IdempotencyTTL bounds how long an Idempotency-Key is honored.
	// Values <= 0 default to 24h.
	IdempotencyTTL time.Duration

	// Now is a clock seam for tests; nil means time.Now.
	Now func() time.Time
}

// Submit runs one submission through the pipeline.
//
// It returns ErrBotDetected for honeypot hits (the caller fakes success),
// ErrCaptchaRejected when the token was refused, *ValidationError for bad
// input, or a storage error. On success the stored request is returned and
// exactly one notification attempt has been made. A retried submission
// carrying a known Idempotency-Key returns the original request.
func (s *ContactService) Submit(ctx context.Context, in ContactSubmission) (*domain.ContactRequest, error) {
	ctx, span := observability.Tracer("services/ContactService").Start(ctx, "Submit",
		trace.WithAttributes(
			attribute.String("client.ip", in.IP),
			attribute.Bool("idempotency.key_present", in.IdempotencyKey != ""),
		),
	)
	defer span.End()
	lg := zerolog.Ctx(ctx)

	if in.Honeypot == "" {
		if prev := s.replay(ctx, in.IP, in.IdempotencyKey); prev != nil {
			observability.ContactOutcome(observability.OutcomeReplay)
			span.SetAttributes(attribute.Bool("idempotency.replay", true))
			return prev, nil
		}
	}

	switch s.Gate.Check(ctx, in.Honeypot, in.CaptchaToken, in.IP) {
	case VerdictBot:
		observability.ContactOutcome(observability.OutcomeBot)
		return nil, ErrBotDetected
	case VerdictCaptcha:
		observability.ContactOutcome(observability.OutcomeCaptcha)
		return nil, ErrCaptchaRejected
	}

	form, verr := cleanContactForm(in)
	if verr != nil {
		observability.ContactOutcome(observability.OutcomeInvalid)
		return nil, verr
	}

	now := s.now()
	req := &domain.ContactRequest{
		Name:         form.Name,
		Email:        form.Email,
		Phone:        form.Phone,
		Company:      form.Company,
		Message:      form.Message,
		CreatedAt:    now,
		ConsentGiven: true,
		ConsentDate:  now,
		IPAddress:    optionalIP(in.IP),
		UserAgent:    truncateRunes(in.UserAgent, domain.MaxUserAgentLen),
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.CreateContactRequest(ctx, tx, req); err != nil {
			return err
		}
		if key == "" {
			return nil
		}
		_, err := repo.CreateIdempotency(ctx, tx, in.IP, key, req.ID, idempotencyAccepted, s.ttl())
		return err
	})
	if errors.Is(err, repo.ErrDuplicate) {
		// A concurrent retry with the same key won the race.
		if prev := s.replay(ctx, in.IP, key); prev != nil {
			observability.ContactOutcome(observability.OutcomeReplay)
			return prev, nil
		}
	}
	if err != nil {
		observability.ContactOutcome(observability.OutcomeError)
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist contact request")
		lg.Error().Err(err).Msg("contact request not stored")
		return nil, err
	}

	span.SetAttributes(attribute.Int("contact.id", int(req.ID)))
	observability.ContactOutcome(observability.OutcomeAccepted)
	lg.Info().Uint("contact_request_id", req.ID).Msg("contact request stored")

	if s.Notifier != nil {
		s.Notifier.ContactReceived(ctx, req)
	}
	return req, nil
}

// replay returns the request previously stored under (ip, key), or nil.
func (s *ContactService) replay(ctx context.Context, ip, key string) *domain.ContactRequest {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	rec, err := repo.GetIdempotency(ctx, s.DB, ip, key, s.now())
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("idempotency lookup failed")
		}
		return nil
	}
	prev, err := repo.GetContactRequest(ctx, s.DB, rec.ContactRequestID)
	if err != nil {
		return nil
	}
	return prev
}

// ListPage returns a page of contact requests, newest first, and the total count.
func (s *ContactService) ListPage(ctx context.Context, page, pageSize int) ([]domain.ContactRequest, int64, error) {
	ctx, span := observability.Tracer("services/ContactService").Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	page, pageSize = utils.ClampPage(page, pageSize)
	offset := utils.Offset(page, pageSize)

	total, err := repo.CountContactRequests(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.ContactRequest{}, 0, nil
	}
	items, err := repo.ListContactRequestsPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}

// Get returns a single contact request.
func (s *ContactService) Get(ctx context.Context, id uint) (*domain.ContactRequest, error) {
	c, err := repo.GetContactRequest(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrContactNotFound
	}
	return c, err
}

// Triage marks a request as processed (or not) and replaces its notes.
func (s *ContactService) Triage(ctx context.Context, id uint, processed bool, notes string) (*domain.ContactRequest, error) {
	ctx, span := observability.Tracer("services/ContactService").Start(ctx, "Triage",
		trace.WithAttributes(attribute.Int("contact.id", int(id))),
	)
	defer span.End()

	err := repo.UpdateContactRequestTriage(ctx, s.DB, id, processed, strings.TrimSpace(notes))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Stats returns the number of stored requests and the newest creation time
// (nil when there are none). Handlers derive list ETags from it.
func (s *ContactService) Stats(ctx context.Context) (int64, *time.Time, error) {
	return repo.ContactRequestsStats(ctx, s.DB)
}

func (s *ContactService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *ContactService) ttl() time.Duration {
	if s.IdempotencyTTL > 0 {
		return s.IdempotencyTTL
	}
	return 24 * time.Hour
}

// cleanContactForm normalizes in and validates it. Text fields are trimmed
// and NFC-normalized; the phone keeps only digits and '+'.
func cleanContactForm(in ContactSubmission) (contactForm, *ValidationError) {
	f := contactForm{
		Name:    normalizeText(in.Name),
		Email:   normalizeText(in.Email),
		Phone:   cleanPhone(in.Phone),
		Company: normalizeText(in.Company),
		Message: normalizeText(in.Message),
		Consent: in.Consent,
	}

	err := validate.Struct(f)
	if err == nil {
		return f, nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		ve := &ValidationError{}
		ve.add("__all__", err.Error())
		return f, ve
	}

	byField := map[string]validator.FieldError{}
	for _, fe := range fieldErrs {
		byField[fe.Field()] = fe
	}
	ve := &ValidationError{}
	for _, name := range formFields {
		if fe, ok := byField[name]; ok {
			ve.add(name, fieldMessage(fe))
		}
	}
	if ve.empty() {
		return f, nil
	}
	return f, ve
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Field() == "consent" {
			return MsgConsent
		}
		return MsgRequired
	case "email":
		return MsgInvalidEmail
	case "max":
		s, _ := fe.Value().(string)
		return fmt.Sprintf(msgMaxLenPattern, fe.Param(), utf8.RuneCountInString(s))
	default:
		return MsgRequired
	}
}

func normalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// cleanPhone drops every rune that is neither a digit nor '+'.
func cleanPhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func optionalIP(ip string) *string {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return nil
	}
	return &ip
}
