// Package notify delivers the "new lead" email to the site operator.
//
// Delivery is best-effort: the Dispatcher makes exactly one attempt per
// accepted contact request, never retries, and never reports failure to
// its caller. Failures are logged and counted so they stay visible.
package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Message is a plain-text email.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Mailer sends a single message.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// DefaultSMTPTimeout bounds one delivery when SMTPMailer.Timeout is zero.
const DefaultSMTPTimeout = 10 * time.Second

// sendMailFunc is smtp.SendMail with a context carrying the deadline.
type sendMailFunc func(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends mail through an SMTP relay with PLAIN auth. STARTTLS is
// used when the server offers it.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	// Timeout bounds the whole delivery: dial, handshake and DATA.
	Timeout time.Duration

	sendMail sendMailFunc
	now      func() time.Time
}

// NewSMTPMailer builds an SMTPMailer with DefaultSMTPTimeout.
func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		Timeout:  DefaultSMTPTimeout,
		now:      time.Now,
	}
}

// Send renders m as a UTF-8 text/plain message and hands it to the relay.
func (s *SMTPMailer) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Host == "" || s.Port <= 0 {
		return errors.New("notify: smtp host/port not configured")
	}
	if len(m.To) == 0 {
		return errors.New("notify: no recipients")
	}

	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}
	addr := s.Host + ":" + strconv.Itoa(s.Port)
	send := s.sendMail
	if send == nil {
		send = s.deliver
	}
	now := s.now
	if now == nil {
		now = time.Now
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultSMTPTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := send(ctx, addr, auth, m.From, m.To, render(m, now())); err != nil {
		return fmt.Errorf("notify: send mail: %w", err)
	}
	return nil
}

// deliver runs the SMTP conversation of smtp.SendMail on a connection whose
// deadline follows ctx, so a stalled relay cannot hold the caller forever.
func (s *SMTPMailer) deliver(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	c, err := smtp.NewClient(conn, s.Host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.Host}); err != nil {
			return err
		}
	}
	if a != nil {
		if ok, _ := c.Extension("AUTH"); !ok {
			return errors.New("smtp: server doesn't support AUTH")
		}
		if err := c.Auth(a); err != nil {
			return err
		}
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

// render builds the RFC 5322 message. The subject is Q-encoded because it
// carries Cyrillic text.
func render(m Message, now time.Time) []byte {
	var b strings.Builder
	b.WriteString("From: " + m.From + "\r\n")
	b.WriteString("To: " + strings.Join(m.To, ", ") + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", m.Subject) + "\r\n")
	b.WriteString("Date: " + now.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(m.Body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}

// LogMailer only logs messages. It is used when email is disabled so the
// pipeline behaves the same in development.
type LogMailer struct{}

// Send logs the envelope at info level.
func (LogMailer) Send(ctx context.Context, m Message) error {
	zerolog.Ctx(ctx).Info().
		Strs("to", m.To).
		Str("subject", m.Subject).
		Msg("email disabled; message not sent")
	return nil
}
