package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tbourn/turret-landing/internal/domain"
	"github.com/tbourn/turret-landing/internal/observability"
)

// Dispatcher turns accepted contact requests into operator notifications.
type Dispatcher struct {
	Mailer Mailer
	From   string
	To     string
	// Location renders the submission date; nil means time.Local.
	Location *time.Location
}

// NewDispatcher builds a Dispatcher sending from "from" to the operator
// mailbox "to".
func NewDispatcher(m Mailer, from, to string) *Dispatcher {
	return &Dispatcher{Mailer: m, From: from, To: to}
}

// ContactReceived makes one delivery attempt for c. The outcome is logged
// and counted; it is never returned, so a mail outage cannot fail or roll
// back the submission that triggered it.
func (d *Dispatcher) ContactReceived(ctx context.Context, c *domain.ContactRequest) {
	if d == nil || d.Mailer == nil || c == nil {
		return
	}
	lg := zerolog.Ctx(ctx)

	err := d.Mailer.Send(ctx, d.contactMessage(c))
	observability.NotificationResult(err)
	if err != nil {
		lg.Error().Err(err).Uint("contact_request_id", c.ID).Msg("lead notification failed")
		return
	}
	lg.Info().Uint("contact_request_id", c.ID).Msg("lead notification sent")
}

func (d *Dispatcher) contactMessage(c *domain.ContactRequest) Message {
	return Message{
		From:    d.From,
		To:      []string{d.To},
		Subject: ContactSubject(c),
		Body:    ContactBody(c, d.Location),
	}
}

// ContactSubject is the subject line of the lead notification.
func ContactSubject(c *domain.ContactRequest) string {
	return "Новая заявка с сайта Арсенал от " + c.Name
}

// ContactBody renders the fixed notification template. Empty optional
// fields are replaced with placeholders.
func ContactBody(c *domain.ContactRequest, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	phone := c.Phone
	if strings.TrimSpace(phone) == "" {
		phone = "Не указан"
	}
	company := c.Company
	if strings.TrimSpace(company) == "" {
		company = "Не указана"
	}

	var b strings.Builder
	b.WriteString("Новая заявка с сайта:\n\n")
	fmt.Fprintf(&b, "Имя: %s\n", c.Name)
	fmt.Fprintf(&b, "Email: %s\n", c.Email)
	fmt.Fprintf(&b, "Телефон: %s\n", phone)
	fmt.Fprintf(&b, "Организация: %s\n", company)
	fmt.Fprintf(&b, "\nСообщение:\n%s\n", c.Message)
	b.WriteString("\n---\n")
	fmt.Fprintf(&b, "Дата: %s\n", c.CreatedAt.In(loc).Format("02.01.2006 15:04"))
	return b.String()
}
