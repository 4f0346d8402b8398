package notify

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/turret-landing/internal/domain"
)

type recordingMailer struct {
	calls []Message
	err   error
}

func (r *recordingMailer) Send(_ context.Context, m Message) error {
	r.calls = append(r.calls, m)
	return r.err
}

func sampleRequest() *domain.ContactRequest {
	return &domain.ContactRequest{
		ID:        7,
		Name:      "Иван",
		Email:     "ivan@example.com",
		Message:   "Интересует демонстрация",
		CreatedAt: time.Date(2026, 5, 6, 14, 30, 0, 0, time.UTC),
	}
}

func TestContactBody_Placeholders(t *testing.T) {
	body := ContactBody(sampleRequest(), time.UTC)

	assert.Contains(t, body, "Имя: Иван\n")
	assert.Contains(t, body, "Email: ivan@example.com\n")
	assert.Contains(t, body, "Телефон: Не указан\n")
	assert.Contains(t, body, "Организация: Не указана\n")
	assert.Contains(t, body, "Сообщение:\nИнтересует демонстрация\n")
	assert.Contains(t, body, "---\nДата: 06.05.2026 14:30\n")
}

func TestContactBody_FilledFields(t *testing.T) {
	c := sampleRequest()
	c.Phone = "+79602831514"
	c.Company = "НПО"
	body := ContactBody(c, time.UTC)
	assert.Contains(t, body, "Телефон: +79602831514\n")
	assert.Contains(t, body, "Организация: НПО\n")
}

func TestDispatcher_ContactReceived_SingleAttempt(t *testing.T) {
	m := &recordingMailer{}
	d := NewDispatcher(m, "noreply@site", "ops@site")
	d.Location = time.UTC

	d.ContactReceived(context.Background(), sampleRequest())

	require.Len(t, m.calls, 1)
	got := m.calls[0]
	assert.Equal(t, "Новая заявка с сайта Арсенал от Иван", got.Subject)
	assert.Equal(t, []string{"ops@site"}, got.To)
	assert.Equal(t, "noreply@site", got.From)
}

func TestDispatcher_ContactReceived_FailureIsSwallowedAndLogged(t *testing.T) {
	m := &recordingMailer{err: errors.New("smtp down")}
	d := NewDispatcher(m, "noreply@site", "ops@site")

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	assert.NotPanics(t, func() { d.ContactReceived(ctx, sampleRequest()) })
	assert.Len(t, m.calls, 1, "no retry on failure")
	assert.Contains(t, buf.String(), "lead notification failed")
	assert.Contains(t, buf.String(), "smtp down")
}

func TestDispatcher_NilSafe(t *testing.T) {
	var d *Dispatcher
	d.ContactReceived(context.Background(), sampleRequest())
	(&Dispatcher{}).ContactReceived(context.Background(), sampleRequest())
}

func TestSMTPMailer_Send(t *testing.T) {
	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotMsg  string
		gotAuth smtp.Auth
	)
	s := NewSMTPMailer("smtp.example.com", 587, "user", "pass")
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	s.sendMail = func(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, string(msg)
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline, "delivery must run under a deadline")
		return nil
	}

	err := s.Send(context.Background(), Message{
		From:    "noreply@site",
		To:      []string{"ops@site"},
		Subject: "Новая заявка",
		Body:    "line1\nline2",
	})
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.NotNil(t, gotAuth)
	assert.Equal(t, "noreply@site", gotFrom)
	assert.Equal(t, []string{"ops@site"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: =?utf-8?q?")
	assert.Contains(t, gotMsg, "Content-Type: text/plain; charset=UTF-8\r\n")
	assert.True(t, strings.HasSuffix(gotMsg, "\r\n\r\nline1\r\nline2\r\n"))
}

func TestSMTPMailer_Errors(t *testing.T) {
	s := NewSMTPMailer("", 0, "", "")
	assert.Error(t, s.Send(context.Background(), Message{To: []string{"a@b"}}))

	s = NewSMTPMailer("h", 25, "", "")
	assert.Error(t, s.Send(context.Background(), Message{}), "no recipients")

	s.sendMail = func(context.Context, string, smtp.Auth, string, []string, []byte) error { return errors.New("421") }
	err := s.Send(context.Background(), Message{To: []string{"a@b"}})
	assert.ErrorContains(t, err, "421")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, Message{To: []string{"a@b"}}), context.Canceled)
}

// listen starts a TCP listener on loopback and returns the mailer pointed
// at it.
func listen(t *testing.T) (net.Listener, *SMTPMailer) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)
	return ln, NewSMTPMailer(host, p, "", "")
}

func TestSMTPMailer_StalledRelayTimesOut(t *testing.T) {
	ln, s := listen(t)
	held := make(chan net.Conn, 1)
	go func() {
		// Accept and never greet.
		if c, err := ln.Accept(); err == nil {
			held <- c
		}
	}()
	t.Cleanup(func() {
		select {
		case c := <-held:
			_ = c.Close()
		default:
		}
	})

	s.Timeout = 150 * time.Millisecond
	start := time.Now()
	err := s.Send(context.Background(), Message{From: "noreply@site", To: []string{"ops@site"}, Subject: "s", Body: "b"})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
	var ne net.Error
	require.ErrorAs(t, err, &ne)
	assert.True(t, ne.Timeout())
}

func TestSMTPMailer_DeliversToRelay(t *testing.T) {
	ln, s := listen(t)
	got := make(chan string, 1)
	go func() {
		c, err := ln.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		r := bufio.NewReader(c)
		reply := func(line string) { _, _ = c.Write([]byte(line + "\r\n")) }
		reply("220 relay ready")
		var data strings.Builder
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"):
				reply("250-relay")
				reply("250 8BITMIME")
			case strings.HasPrefix(cmd, "MAIL"), strings.HasPrefix(cmd, "RCPT"):
				reply("250 ok")
			case cmd == "DATA":
				reply("354 end with .")
				for {
					l, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if l == ".\r\n" {
						break
					}
					data.WriteString(l)
				}
				reply("250 queued")
			case cmd == "QUIT":
				reply("221 bye")
				got <- data.String()
				return
			default:
				reply("502 unknown")
			}
		}
	}()

	err := s.Send(context.Background(), Message{
		From:    "noreply@site",
		To:      []string{"ops@site"},
		Subject: "Новая заявка",
		Body:    "Имя: Иван",
	})
	require.NoError(t, err)
	select {
	case msg := <-got:
		assert.Contains(t, msg, "To: ops@site\r\n")
		assert.Contains(t, msg, "Имя: Иван")
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not receive the message")
	}
}

func TestLogMailer(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())
	require.NoError(t, LogMailer{}.Send(ctx, Message{To: []string{"ops@site"}, Subject: "s"}))
	assert.Contains(t, buf.String(), "email disabled")
}
