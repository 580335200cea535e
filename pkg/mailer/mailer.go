package mailer

import (
	"context"
	"errors"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/smoralesdev/cartaqr-backend/pkg/config"
	"github.com/smoralesdev/cartaqr-backend/pkg/logger"
)

// Mailer sends transactional mail. Delivery is best effort: callers treat
// failures as non-fatal and implementations log them.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string)
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends mail through the configured SMTP relay.
type SMTPMailer struct {
	dialer sender
	from   string
	logg   *logger.Logger
}

// NewSMTP builds a mailer from SMTP configuration.
func NewSMTP(cfg config.SMTPConfig, logg *logger.Logger) (*SMTPMailer, error) {
	if !cfg.Enabled() {
		return nil, errors.New("smtp host and from address are required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		logg:   logg,
	}, nil
}

// Send delivers the message asynchronously. SMTP round trips are slow and
// must not hold up request handling.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) {
	if m == nil || m.dialer == nil {
		return
	}
	detached := m.logg.WithFields(context.WithoutCancel(ctx), map[string]any{
		"mail_to":      to,
		"mail_subject": subject,
	})
	go m.deliver(detached, to, subject, htmlBody)
}

func (m *SMTPMailer) deliver(ctx context.Context, to, subject, htmlBody string) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logg.Warn(m.logg.WithField(ctx, "error", err.Error()), "mail delivery failed")
		return
	}
	m.logg.Info(ctx, "mail delivered")
}

// NoopMailer drops every message. Used when SMTP is not configured.
type NoopMailer struct{}

func (NoopMailer) Send(context.Context, string, string, string) {}

// InvitationBody renders the invitation email for a new panel user.
func InvitationBody(nombreNegocio, link string, ttlDays int) (subject, body string) {
	subject = "Invitación a CartaQR"
	body = fmt.Sprintf(
		"<p>Hola,</p><p>Fuiste invitado a administrar <strong>%s</strong> en CartaQR.</p>"+
			"<p><a href=%q>Completar registro</a></p>"+
			"<p>El enlace vence en %d días y solo puede usarse una vez.</p>",
		nombreNegocio, link, ttlDays,
	)
	return subject, body
}

// SolicitudRechazadaBody renders the rejection notice for a signup request.
func SolicitudRechazadaBody(nombreNegocio string) (subject, body string) {
	subject = "Tu solicitud en CartaQR"
	body = fmt.Sprintf(
		"<p>Hola,</p><p>Tu solicitud para <strong>%s</strong> no fue aprobada en esta ocasión.</p>"+
			"<p>Podés volver a postularte cuando quieras.</p>",
		nombreNegocio,
	)
	return subject, body
}
