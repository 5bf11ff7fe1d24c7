// Package mail delivers transactional email. The only message the system
// sends today is the password-reset token, which must never travel back to
// the HTTP caller.
package mail

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// PasswordResetMessage carries everything needed to deliver a reset token
// to the account owner.
type PasswordResetMessage struct {
	To          string
	DisplayName string
	Token       string
	ExpiresAt   time.Time
}

// Mailer sends transactional messages to account owners
type Mailer interface {
	SendPasswordReset(ctx context.Context, msg PasswordResetMessage) error
}

// LogMailer is the development fallback used when no provider is
// configured. It records the delivery without the token so secrets never
// reach log storage.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a mailer that only logs deliveries
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// SendPasswordReset logs the delivery instead of sending it
func (m *LogMailer) SendPasswordReset(_ context.Context, msg PasswordResetMessage) error {
	m.logger.Info("Password reset email suppressed, no mail provider configured",
		zap.String("to", msg.To),
		zap.Time("expires_at", msg.ExpiresAt))
	return nil
}
