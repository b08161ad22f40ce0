package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/question-bank/internal/db/models"
	"github.com/gokatarajesh/question-bank/internal/metrics"
)

type credentialSource interface {
	Get(ctx context.Context) (models.Credentials, error)
}

// Service is the admin auth gate: login mints tokens, Check validates and refreshes them.
type Service struct {
	creds    credentialSource
	sessions *SessionTable
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	newToken func() (string, error)
}

// ServiceOptions configures the auth service.
type ServiceOptions struct {
	Sessions *SessionTable
	Metrics  *metrics.Metrics
}

// NewService creates an authentication service.
func NewService(creds credentialSource, opts ServiceOptions, logger zerolog.Logger) *Service {
	if opts.Sessions == nil {
		opts.Sessions = NewSessionTable(DefaultSessionTTL)
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New(nil)
	}
	return &Service{
		creds:    creds,
		sessions: opts.Sessions,
		metrics:  opts.Metrics,
		logger:   logger.With().Str("component", "auth").Logger(),
		newToken: generateToken,
	}
}

// Login compares the credentials verbatim against the stored record and opens a session.
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, error) {
	stored, err := s.creds.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("load credentials: %w", err)
	}

	if req.Username != stored.Username || req.Password != stored.Password {
		s.metrics.Logins.WithLabelValues(metrics.LoginFailure).Inc()
		s.logger.Warn().Str("username", req.Username).Msg("admin login rejected")
		return "", ErrInvalidCredentials
	}

	token, err := s.newToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	expiry := s.sessions.Add(token)

	s.metrics.Logins.WithLabelValues(metrics.LoginSuccess).Inc()
	s.metrics.ActiveSessions.Set(float64(s.sessions.Len()))
	s.logger.Info().Time("expires_at", expiry).Msg("admin logged in")

	return token, nil
}

// Check reports whether token is live; a live token gets a fresh window.
func (s *Service) Check(token string) bool {
	if token == "" {
		return false
	}
	ok := s.sessions.Touch(token)
	if !ok {
		s.metrics.ActiveSessions.Set(float64(s.sessions.Len()))
	}
	return ok
}

// Logout drops the token if present. It never fails.
func (s *Service) Logout(token string) {
	if s.sessions.Remove(token) {
		s.logger.Info().Msg("admin logged out")
	}
	s.metrics.ActiveSessions.Set(float64(s.sessions.Len()))
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
