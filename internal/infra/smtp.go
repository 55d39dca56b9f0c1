package infra

import (
	"fmt"
	"net/smtp"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending emails with PDF attachments.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Enviar sends an HTML message to a single recipient, attaching the file
// at anexo when non-empty. Implements service.Mailer.
func (m *Mailer) Enviar(para, assunto, corpoHTML, anexo string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{para}
	e.Subject = assunto
	e.HTML = []byte(corpoHTML)

	if anexo != "" {
		if _, err := e.AttachFile(anexo); err != nil {
			return fmt.Errorf("mailer: attach PDF: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
