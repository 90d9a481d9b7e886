// Package notify delivers one-time codes to institutes by email.
package notify

import (
	"context"
	"fmt"
	"html"
	"time"

	"inscovia/internal/otp"
	"inscovia/pkg/utils"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

type OTPEmail struct {
	To        string
	Name      string
	Code      string
	Purpose   otp.Purpose
	ExpiresIn time.Duration
}

type Mailer interface {
	SendOTP(ctx context.Context, email OTPEmail) error
}

// NewMailer picks Resend when an API key is configured and the log mailer otherwise
func NewMailer(config utils.EmailConfig, log *zap.Logger) Mailer {
	if config.ResendAPIKey == "" || config.From == "" {
		log.Warn("Email delivery not configured, OTP codes will be logged")
		return NewLogMailer(log)
	}
	return NewResendMailer(resend.NewClient(config.ResendAPIKey), config, log)
}

func subjectFor(purpose otp.Purpose) string {
	switch purpose {
	case otp.PurposePasswordReset:
		return "Reset your Inscovia password"
	case otp.PurposeRegistration:
		return "Verify your Inscovia institute account"
	default:
		return "Your Inscovia verification code"
	}
}

func textBody(email OTPEmail) string {
	return fmt.Sprintf("Hello %s,\n\nYour verification code is %s. It expires in %d minutes.\n\n"+
		"If you did not request this code you can ignore this email.\n\nInscovia",
		email.Name, email.Code, int(email.ExpiresIn.Minutes()))
}

func htmlBody(email OTPEmail) string {
	return fmt.Sprintf(`<p>Hello %s,</p>
<p>Your verification code is <strong style="font-size:24px;letter-spacing:4px">%s</strong>.</p>
<p>It expires in %d minutes. If you did not request this code you can ignore this email.</p>
<p>Inscovia</p>`,
		html.EscapeString(email.Name), email.Code, int(email.ExpiresIn.Minutes()))
}

type resendMailer struct {
	client *resend.Client
	from   string
	log    *zap.Logger
}

func NewResendMailer(client *resend.Client, config utils.EmailConfig, log *zap.Logger) Mailer {
	from := config.From
	if config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", config.FromName, config.From)
	}
	return &resendMailer{
		client: client,
		from:   from,
		log:    log.With(zap.String("mailer", "resend")),
	}
}

func (m *resendMailer) SendOTP(ctx context.Context, email OTPEmail) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{email.To},
		Subject: subjectFor(email.Purpose),
		Html:    htmlBody(email),
		Text:    textBody(email),
	}

	res, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		m.log.Error("Failed to send OTP email",
			zap.Error(err),
			zap.String("to", email.To),
			zap.String("purpose", string(email.Purpose)),
		)
		return fmt.Errorf("send OTP email to %s: %w", email.To, err)
	}

	m.log.Info("OTP email sent",
		zap.String("to", email.To),
		zap.String("purpose", string(email.Purpose)),
		zap.String("message_id", res.Id),
	)
	return nil
}

type logMailer struct {
	log *zap.Logger
}

// NewLogMailer writes codes to the log instead of sending them; for local development
func NewLogMailer(log *zap.Logger) Mailer {
	return &logMailer{log: log.With(zap.String("mailer", "log"))}
}

func (m *logMailer) SendOTP(_ context.Context, email OTPEmail) error {
	m.log.Info("OTP email (not delivered)",
		zap.String("to", email.To),
		zap.String("name", email.Name),
		zap.String("purpose", string(email.Purpose)),
		zap.String("otp_code", email.Code),
		zap.Duration("expires_in", email.ExpiresIn),
	)
	return nil
}
