package observability

import "github.com/prometheus/client_golang/prometheus"

// Contact intake outcomes recorded by ContactOutcome.
const (
	OutcomeAccepted = "accepted"
	OutcomeBot      = "bot"
	OutcomeCaptcha  = "captcha_rejected"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
	OutcomeReplay   = "replay"
)

var (
	contactSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Contact form submissions by outcome.",
		},
		[]string{"outcome"},
	)

	// captchaChecks counts verifier round trips: ok, failed, error, skipped.
	captchaChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "captcha_checks_total",
			Help: "SmartCaptcha verifications by result.",
		},
		[]string{"result"},
	)

	documentDownloads = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "document_downloads_total",
			Help: "Documents served for download.",
		},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_notifications_total",
			Help: "Lead notification emails by result (sent|failed).",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(contactSubmissions, captchaChecks, documentDownloads, notifications)
}

// ContactOutcome records the result of one contact submission.
func ContactOutcome(outcome string) { contactSubmissions.WithLabelValues(outcome).Inc() }

// CaptchaResult records the result of one captcha check.
func CaptchaResult(result string) { captchaChecks.WithLabelValues(result).Inc() }

// DocumentDownloaded records one served download.
func DocumentDownloaded() { documentDownloads.Inc() }

// NotificationResult records one notification attempt; err == nil means sent.
func NotificationResult(err error) {
	if err != nil {
		notifications.WithLabelValues("failed").Inc()
		return
	}
	notifications.WithLabelValues("sent").Inc()
}
