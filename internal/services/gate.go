// Package services – BotGate
//
// BotGate decides whether a contact submission comes from a human. It checks
// the hidden honeypot field first and then, when a server key is configured,
// asks the CAPTCHA verifier. Outages of the verifier are tolerated unless the
// gate is configured to fail closed.
package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/turret-landing/internal/captcha"
	"github.com/tbourn/turret-landing/internal/observability"
)

// Verdict is the outcome of BotGate.Check.
type Verdict int

const (
	// VerdictAllow lets the submission through to validation.
	VerdictAllow Verdict = iota
	// VerdictBot means the honeypot was filled; the caller fakes success.
	VerdictBot
	// VerdictCaptcha means the verifier explicitly rejected the token.
	VerdictCaptcha
)

// String returns a short lowercase name for logs and span attributes.
func (v Verdict) String() string {
	switch v {
	case VerdictBot:
		return "bot"
	case VerdictCaptcha:
		return "captcha"
	default:
		return "allow"
	}
}

// Captcha check results recorded in metrics.
const (
	captchaSkipped  = "skipped"
	captchaNoToken  = "no_token"
	captchaOK       = "ok"
	captchaRejected = "rejected"
	captchaError    = "error"
)

// BotGate screens submissions. A nil Verifier means no server key is
// configured and CAPTCHA verification is skipped.
type BotGate struct {
	Verifier   captcha.Verifier
	FailClosed bool
}

// NewBotGate wires a SmartCaptcha client into a gate. A client without a
// secret disables verification.
func NewBotGate(sc *captcha.SmartCaptcha, failClosed bool) *BotGate {
	g := &BotGate{FailClosed: failClosed}
	if sc.Enabled() {
		g.Verifier = sc
	}
	return g
}

// Check evaluates the honeypot value and the CAPTCHA token sent from ip.
func (g *BotGate) Check(ctx context.Context, honeypot, token, ip string) Verdict {
	ctx, span := observability.Tracer("services/BotGate").Start(ctx, "Check",
		trace.WithAttributes(attribute.String("client.ip", ip)),
	)
	defer span.End()

	v := g.check(ctx, honeypot, token, ip)
	span.SetAttributes(attribute.String("gate.verdict", v.String()))
	return v
}

func (g *BotGate) check(ctx context.Context, honeypot, token, ip string) Verdict {
	lg := zerolog.Ctx(ctx)

	if honeypot != "" {
		lg.Warn().Str("ip", ip).Msg("honeypot triggered")
		return VerdictBot
	}

	if g == nil || g.Verifier == nil {
		lg.Info().Msg("captcha: no server key configured, skipping verification")
		observability.CaptchaResult(captchaSkipped)
		return VerdictAllow
	}

	token = strings.TrimSpace(token)
	if token == "" {
		lg.Warn().Str("ip", ip).Bool("fail_closed", g.FailClosed).Msg("captcha: empty token")
		observability.CaptchaResult(captchaNoToken)
		if g.FailClosed {
			return VerdictCaptcha
		}
		return VerdictAllow
	}

	ok, err := g.Verifier.Verify(ctx, token, ip)
	if err != nil {
		lg.Error().Err(err).Str("ip", ip).Bool("fail_closed", g.FailClosed).Msg("captcha: verification error")
		observability.CaptchaResult(captchaError)
		if g.FailClosed {
			return VerdictCaptcha
		}
		return VerdictAllow
	}
	if !ok {
		observability.CaptchaResult(captchaRejected)
		return VerdictCaptcha
	}
	observability.CaptchaResult(captchaOK)
	return VerdictAllow
}
