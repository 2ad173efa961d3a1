package services

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/rohits-web03/docdrop/internal/config"
)

// Notifier delivers the verification link for a fresh signup. Delivery is
// best-effort: callers fire it after the signup commits and only log
// failures.
type Notifier interface {
	SendVerificationEmail(email, token string) error
}

// NewNotifier returns the SMTP notifier when SMTP is configured and a
// log-only notifier otherwise, so development setups work without a relay.
func NewNotifier(cfg config.Config) Notifier {
	if cfg.SMTP.Host == "" || cfg.SMTP.Email == "" {
		log.Println("SMTP not configured, verification links will be logged")
		return &LogNotifier{BaseURL: cfg.PublicBaseURL}
	}
	return &SMTPNotifier{SMTP: cfg.SMTP, BaseURL: cfg.PublicBaseURL}
}

// SMTPNotifier sends the verification email through a plain-auth SMTP relay.
type SMTPNotifier struct {
	SMTP    config.SMTPConfig
	BaseURL string
}

func (n *SMTPNotifier) SendVerificationEmail(email, token string) error {
	link := verificationLink(n.BaseURL, token)
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Verify your email\r\n\r\nPlease click the following link to verify your email: %s\r\n",
		n.SMTP.Email, email, link,
	)
	addr := n.SMTP.Host + ":" + n.SMTP.Port
	auth := smtp.PlainAuth("", n.SMTP.Email, n.SMTP.Password, n.SMTP.Host)
	if err := smtp.SendMail(addr, auth, n.SMTP.Email, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// LogNotifier writes the verification link to the log instead of sending it.
type LogNotifier struct {
	BaseURL string
}

func (n *LogNotifier) SendVerificationEmail(email, token string) error {
	log.Printf("verification link for %s: %s", email, verificationLink(n.BaseURL, token))
	return nil
}

func verificationLink(baseURL, token string) string {
	return fmt.Sprintf("%s/verify-email/%s", baseURL, token)
}
