package email

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/quiniela-inc/quiniela/internal/shared/config"
)

// ErrEmailServiceNotConfigured is returned when SMTP settings are missing
var ErrEmailServiceNotConfigured = errors.New("email service is not configured")

// SMTPInvitationMailer delivers invitation emails over SMTP. It implements
// the access usecases' InvitationMailer port.
type SMTPInvitationMailer struct {
	cfg    *config.EmailConfig
	dialer *gomail.Dialer
}

// NewSMTPInvitationMailer creates a new SMTPInvitationMailer. Returns nil
// when SMTP is not configured so callers can wire sending as optional.
func NewSMTPInvitationMailer(cfg *config.EmailConfig) *SMTPInvitationMailer {
	if !cfg.IsConfigured() {
		return nil
	}
	return &SMTPInvitationMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
	}
}

// SendInvitation sends the invitation email with its accept link.
func (s *SMTPInvitationMailer) SendInvitation(ctx context.Context, email, token, poolName string, expiresAt time.Time) error {
	acceptURL := fmt.Sprintf("%s/invitations/accept?token=%s", s.cfg.BaseURL, token)
	expiry := expiresAt.UTC().Format("Jan 2, 2006 15:04 MST")

	subject := fmt.Sprintf("You're invited to join %s", poolName)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>You're invited!</h2>
			<p>You have been invited to join the prediction pool <strong>%s</strong>.</p>
			<p><a href="%s">Accept Invitation</a></p>
			<p>Or copy and paste this URL into your browser:</p>
			<p>%s</p>
			<p>This invitation expires on %s.</p>
			<p>If you weren't expecting this invitation, you can ignore this email.</p>
		</body>
		</html>
	`, poolName, acceptURL, acceptURL, expiry)

	plainBody := fmt.Sprintf(`
You're invited!

You have been invited to join the prediction pool %s.

Accept the invitation by visiting:
%s

This invitation expires on %s.

If you weren't expecting this invitation, you can ignore this email.
	`, poolName, acceptURL, expiry)

	return s.send(email, subject, htmlBody, plainBody)
}

// SendTestEmail sends a test email to verify the configuration
func (s *SMTPInvitationMailer) SendTestEmail(to string) error {
	subject := "Quiniela email configuration test"
	body := "If you received this message, outbound email is working."
	return s.send(to, subject, "<p>"+body+"</p>", body)
}

func (s *SMTPInvitationMailer) send(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromAddress, s.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
