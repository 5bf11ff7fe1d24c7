package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/infrastructure/config"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendgridMailer delivers messages through the SendGrid v3 API
type SendgridMailer struct {
	apiKey string
	from   *sgmail.Email
	logger *zap.Logger
}

// SendgridMailerOption configures a SendgridMailer
type SendgridMailerOption func(*SendgridMailer)

// WithLogger sets the logger used for delivery diagnostics
func WithLogger(logger *zap.Logger) SendgridMailerOption {
	return func(m *SendgridMailer) {
		m.logger = logger
	}
}

// NewSendgridMailer creates a SendGrid-backed mailer
func NewSendgridMailer(cfg config.MailConfig, opts ...SendgridMailerOption) *SendgridMailer {
	m := &SendgridMailer{
		apiKey: cfg.SendgridKey,
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SendPasswordReset emails the reset token to the account owner
func (m *SendgridMailer) SendPasswordReset(ctx context.Context, msg PasswordResetMessage) error {
	to := sgmail.NewEmail(msg.DisplayName, msg.To)
	subject := "Password reset request"
	body := fmt.Sprintf(
		"A password reset was requested for your account.\n\n"+
			"Reset token: %s\n\n"+
			"The token expires at %s. If you did not request this, ignore this message.",
		msg.Token, msg.ExpiresAt.UTC().Format("15:04 MST, Jan 2 2006"))

	message := sgmail.NewSingleEmail(m.from, subject, to, body, "")

	req := sendgrid.GetRequest(m.apiKey, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(message)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		m.logger.Error("SendGrid rejected password reset email",
			zap.Int("status", res.StatusCode),
			zap.String("to", msg.To))
		return fmt.Errorf("sendgrid returned status %d", res.StatusCode)
	}
	return nil
}
