package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPConfig holds the outbound mail transport settings.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

// SMTPMailer sends confirmation emails over plain SMTP.
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer creates an SMTPMailer.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers the confirmation message.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	body := buildConfirmation(m.cfg.FromName, m.cfg.From, msg)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{msg.ToEmail}, []byte(body)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.ToEmail, err)
	}
	return nil
}

func buildConfirmation(fromName, from string, msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", fromName, from)
	fmt.Fprintf(&b, "To: %s <%s>\r\n", msg.ToName, msg.ToEmail)
	b.WriteString("Subject: Appointment Confirmed\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Dear %s,\r\n\r\n", msg.ToName)
	fmt.Fprintf(&b, "Your appointment has been confirmed with %s on %s at %s.\r\n", msg.DoctorName, msg.Date, msg.Time)
	if msg.Reason != "" {
		fmt.Fprintf(&b, "Reason for visit: %s\r\n", msg.Reason)
	}
	return b.String()
}
