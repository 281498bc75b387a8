package service

import (
	"fmt"
	"log"
	"time"

	mail "gopkg.in/mail.v2"

	"consigne/internal/config"
	"consigne/internal/model"
)

// Mailer delivers outbound mail. The auth flow only needs the confirmation
// message; delivery failures are logged, never surfaced to the signup caller.
type Mailer interface {
	SendConfirmation(user *model.User, token string) error
}

// SMTPMailer sends mail through the configured SMTP relay.
type SMTPMailer struct {
	dialer     *mail.Dialer
	from       string
	confirmURL string
}

// NewSMTPMailer creates a mailer from config.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	d := mail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	d.Timeout = 20 * time.Second
	return &SMTPMailer{
		dialer:     d,
		from:       cfg.MailFrom,
		confirmURL: cfg.ConfirmURL,
	}
}

// SendConfirmation sends the account confirmation link. The send happens on a
// separate goroutine so signup latency does not depend on the relay.
func (m *SMTPMailer) SendConfirmation(user *model.User, token string) error {
	link := fmt.Sprintf("%s?token=%s", m.confirmURL, token)

	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", user.Email)
	msg.SetHeader("Subject", "Confirmez votre compte")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Bonjour %s,\n\nMerci de confirmer votre adresse mail en suivant ce lien :\n%s\n\nLe lien expire dans 24 heures.",
		user.Username, link))

	go func() {
		if err := m.dialer.DialAndSend(msg); err != nil {
			log.Printf("send confirmation mail to %s: %v", user.Email, err)
		}
	}()
	return nil
}
