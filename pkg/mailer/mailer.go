package mailer

import (
	"context"
	"fmt"

	"github.com/mentorportal/mentor-portal-api/pkg/logger"
	"github.com/mentorportal/mentor-portal-api/pkg/metrics"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Sender delivers magic-link login emails to mentors
type Sender interface {
	SendMagicLink(ctx context.Context, toEmail, mentorName, loginURL string) error
}

// ResendMailer sends email through the Resend API.
// Without an API key it runs in dev mode and logs login URLs instead.
type ResendMailer struct {
	client  *resend.Client
	from    string
	devMode bool
}

// New creates a mailer. An empty API key enables dev mode.
func New(apiKey, from string) *ResendMailer {
	if apiKey == "" {
		logger.Warn("Mailer running in dev mode: login links are logged, not sent")
		return &ResendMailer{from: from, devMode: true}
	}

	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// SendMagicLink sends the login-link email for a mentor
func (m *ResendMailer) SendMagicLink(ctx context.Context, toEmail, mentorName, loginURL string) error {
	if m.devMode {
		logger.Info("=== DEV LOGIN URL ===",
			zap.String("mentor_email", toEmail),
			zap.String("mentor_name", mentorName),
			zap.String("login_url", loginURL))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{toEmail},
		Subject: "Your Mentor Portal Login Link",
		Html:    magicLinkBody(mentorName, loginURL),
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		metrics.EmailSendTotal.WithLabelValues("error").Inc()
		logger.Error("Failed to send magic-link email",
			zap.String("to", toEmail),
			zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	metrics.EmailSendTotal.WithLabelValues("success").Inc()
	logger.Info("Magic-link email sent",
		zap.String("to", toEmail),
		zap.String("email_id", sent.Id))

	return nil
}

// magicLinkBody renders the login email HTML
func magicLinkBody(mentorName, loginURL string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #1E3A5F;">Welcome to the Mentor Portal</h2>
    <p>Hi %s,</p>
    <p>Click the button below to access your mentor dashboard:</p>
    <p style="margin: 30px 0;">
        <a href="%s"
           style="background: linear-gradient(135deg, #4F46E5 0%%, #7C3AED 100%%);
                  color: white;
                  padding: 12px 30px;
                  text-decoration: none;
                  border-radius: 6px;
                  display: inline-block;">
            Access Portal
        </a>
    </p>
    <p style="color: #64748B; font-size: 14px;">
        This link will expire in 1 hour for security reasons.<br>
        If you didn't request this link, you can safely ignore this email.
    </p>
</div>
`, mentorName, loginURL)
}
