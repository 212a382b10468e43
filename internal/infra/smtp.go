package infra

import (
	"fmt"
	"net/smtp"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending plain-text notifications.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Send delivers a plain-text email to a single recipient, attaching any
// files given (the order PDF, typically).
func (m *Mailer) Send(to, subject, body string, adjuntos ...string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	for _, ruta := range adjuntos {
		if ruta == "" {
			continue
		}
		if _, err := e.AttachFile(ruta); err != nil {
			return fmt.Errorf("mailer: adjunto %s: %w", ruta, err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	if err := e.Send(m.addr, auth); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}
