package services

import (
	"gopkg.in/gomail.v2"

	"github.com/mernshopper/shopper-backend/internal/config"
)

// Mailer is the outbound notification sink. Send failures during password
// recovery are logged and swallowed by callers, never surfaced.
type Mailer interface {
	Send(to, subject, html string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer returns an SMTP-backed Mailer configured from the environment.
func NewMailer(cfg *config.Config) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.MailFrom,
	}
}

func (m *smtpMailer) Send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)
	return m.dialer.DialAndSend(msg)
}
