package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/mentorportal/mentor-portal-api/config"
	"github.com/mentorportal/mentor-portal-api/internal/models"
	"github.com/mentorportal/mentor-portal-api/internal/repository"
	"github.com/mentorportal/mentor-portal-api/pkg/jwt"
	"github.com/mentorportal/mentor-portal-api/pkg/logger"
	"github.com/mentorportal/mentor-portal-api/pkg/mailer"
	"github.com/mentorportal/mentor-portal-api/pkg/metrics"
	"github.com/mentorportal/mentor-portal-api/pkg/token"
	"go.uber.org/zap"
)

var (
	ErrMentorNotFound   = errors.New("mentor not found")
	ErrLinkInvalid      = errors.New("invalid or expired login link")
	ErrInvalidAdminKey  = errors.New("invalid admin key")
	ErrNotificationSend = errors.New("failed to send login email")
)

// AuthService implements the magic-link login flow: request a link, verify
// it, or impersonate a mentor with the admin preview key. Every path that
// produces a session first resolves the email to a real mentor record.
type AuthService struct {
	directoryRepo repository.DirectoryRepository
	config        *config.Config
	codec         *token.Codec
	tokenManager  *jwt.TokenManager
	mailer        mailer.Sender
}

// NewAuthService creates a new AuthService
func NewAuthService(directoryRepo repository.DirectoryRepository, cfg *config.Config, sender mailer.Sender) *AuthService {
	return &AuthService{
		directoryRepo: directoryRepo,
		config:        cfg,
		codec:         token.NewCodec(cfg.MagicLink.Secret, cfg.MagicLink.Salt),
		tokenManager: jwt.NewTokenManager(
			cfg.Session.JWTSecret,
			cfg.Session.JWTIssuer,
			cfg.Session.SessionTTLHours,
		),
		mailer: sender,
	}
}

// RequestLogin issues a magic-link token for a known mentor email and sends
// it by mail. The link is only considered sent when the mail call succeeded.
func (s *AuthService) RequestLogin(ctx context.Context, email string) (*models.RequestLoginResponse, error) {
	start := time.Now()

	mentor, err := s.directoryRepo.FindMentorByEmail(ctx, email)
	if err != nil {
		logger.Warn("Login request for unknown email",
			zap.String("email", email),
			zap.Error(err))
		metrics.AuthLoginRequests.WithLabelValues("mentor_not_found").Inc()
		return nil, ErrMentorNotFound
	}

	magicToken := s.codec.Issue(mentor.Email)
	loginURL := fmt.Sprintf("%s/auth/callback?token=%s", s.config.Server.BaseURL, url.QueryEscape(magicToken))

	if err := s.mailer.SendMagicLink(ctx, mentor.Email, mentor.Name, loginURL); err != nil {
		logger.Error("Failed to send magic-link email",
			zap.String("email", email),
			zap.Error(err))
		metrics.AuthLoginRequests.WithLabelValues("send_failed").Inc()
		return nil, ErrNotificationSend
	}

	metrics.AuthLoginRequests.WithLabelValues("success").Inc()
	logger.Info("Login link sent",
		zap.String("mentor_id", mentor.AirtableID),
		zap.Duration("duration", time.Since(start)))

	return &models.RequestLoginResponse{
		Success: true,
		Message: "A login link has been sent to your email",
	}, nil
}

// VerifyMagicLink checks a magic-link token and creates a session for the
// mentor it names. Returns the session and the signed session cookie value.
func (s *AuthService) VerifyMagicLink(ctx context.Context, magicToken string) (*models.MentorSession, string, error) {
	maxAge := time.Duration(s.config.MagicLink.TTLSeconds) * time.Second

	email, err := s.codec.Verify(magicToken, maxAge)
	if err != nil {
		logger.Warn("Magic-link verification failed", zap.Error(err))
		metrics.AuthVerifyRequests.WithLabelValues("invalid_token").Inc()
		return nil, "", ErrLinkInvalid
	}

	// The token only proves the email was targeted; the mentor must still
	// exist at verification time
	mentor, err := s.directoryRepo.FindMentorByEmail(ctx, email)
	if err != nil {
		logger.Warn("Verified token for unknown mentor",
			zap.String("email", email),
			zap.Error(err))
		metrics.AuthVerifyRequests.WithLabelValues("mentor_not_found").Inc()
		return nil, "", ErrMentorNotFound
	}

	session, cookie, err := s.createSession(mentor.Email, mentor.Name, false)
	if err != nil {
		metrics.AuthVerifyRequests.WithLabelValues("jwt_failed").Inc()
		return nil, "", err
	}

	metrics.AuthVerifyRequests.WithLabelValues("success").Inc()
	logger.Info("Login successful", zap.String("mentor_id", mentor.AirtableID))

	return session, cookie, nil
}

// PreviewLogin authenticates as any mentor given the shared admin key.
// The resulting session is marked as a preview.
func (s *AuthService) PreviewLogin(ctx context.Context, previewEmail, adminKey string) (*models.MentorSession, string, error) {
	if !jwt.TimingSafeCompare(adminKey, s.config.Admin.PreviewKey) {
		logger.Warn("Preview login with invalid admin key",
			zap.String("preview_email", previewEmail))
		metrics.AuthPreviewRequests.WithLabelValues("invalid_key").Inc()
		return nil, "", ErrInvalidAdminKey
	}

	mentor, err := s.directoryRepo.FindMentorByEmail(ctx, previewEmail)
	if err != nil {
		logger.Warn("Preview login for unknown email",
			zap.String("preview_email", previewEmail),
			zap.Error(err))
		metrics.AuthPreviewRequests.WithLabelValues("mentor_not_found").Inc()
		return nil, "", ErrMentorNotFound
	}

	session, cookie, err := s.createSession(mentor.Email, mentor.Name, true)
	if err != nil {
		metrics.AuthPreviewRequests.WithLabelValues("jwt_failed").Inc()
		return nil, "", err
	}

	metrics.AuthPreviewRequests.WithLabelValues("success").Inc()
	logger.Info("Preview session created",
		zap.String("mentor_id", mentor.AirtableID),
		zap.String("preview_email", previewEmail))

	return session, cookie, nil
}

func (s *AuthService) createSession(email, name string, isPreview bool) (*models.MentorSession, string, error) {
	jwtToken, err := s.tokenManager.GenerateToken(email, name, isPreview)
	if err != nil {
		logger.Error("Failed to generate session token",
			zap.String("email", email),
			zap.Error(err))
		return nil, "", fmt.Errorf("failed to generate session: %w", err)
	}

	now := time.Now()
	session := &models.MentorSession{
		Email:     email,
		Name:      name,
		IsPreview: isPreview,
		ExpiresAt: now.Add(s.tokenManager.GetExpirationTime()).Unix(),
		IssuedAt:  now.Unix(),
	}
	return session, jwtToken, nil
}

// GetSessionTTL returns the session TTL in seconds
func (s *AuthService) GetSessionTTL() int {
	return s.config.Session.SessionTTLHours * 3600
}

// GetCookieDomain returns the cookie domain
func (s *AuthService) GetCookieDomain() string {
	return s.config.Session.CookieDomain
}

// GetCookieSecure returns whether cookies should be secure
func (s *AuthService) GetCookieSecure() bool {
	return s.config.Session.CookieSecure
}

// GetTokenManager returns the JWT token manager
func (s *AuthService) GetTokenManager() *jwt.TokenManager {
	return s.tokenManager
}
