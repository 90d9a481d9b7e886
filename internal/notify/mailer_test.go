package notify

import (
	"context"
	"testing"
	"time"

	"inscovia/internal/otp"
	"inscovia/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func sampleEmail() OTPEmail {
	return OTPEmail{
		To:        "owner@example.com",
		Name:      "Malabar <Tech> Academy",
		Code:      "482913",
		Purpose:   otp.PurposeRegistration,
		ExpiresIn: 10 * time.Minute,
	}
}

func TestSubjectFor(t *testing.T) {
	assert.Contains(t, subjectFor(otp.PurposeRegistration), "Verify")
	assert.Contains(t, subjectFor(otp.PurposePasswordReset), "Reset")
	assert.Equal(t, "Your Inscovia verification code", subjectFor(otp.PurposeEmailVerification))
}

func TestBodies(t *testing.T) {
	email := sampleEmail()

	text := textBody(email)
	assert.Contains(t, text, "482913")
	assert.Contains(t, text, "expires in 10 minutes")

	body := htmlBody(email)
	assert.Contains(t, body, "482913")
	assert.Contains(t, body, "Malabar &lt;Tech&gt; Academy")
	assert.NotContains(t, body, "<Tech>")
}

func TestLogMailer(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	mailer := NewLogMailer(zap.New(core))

	require.NoError(t, mailer.SendOTP(context.Background(), sampleEmail()))

	entries := logs.FilterField(zap.String("otp_code", "482913")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "owner@example.com", entries[0].ContextMap()["to"])
}

func TestNewMailer_FallsBackToLog(t *testing.T) {
	mailer := NewMailer(utils.EmailConfig{}, zap.NewNop())
	_, ok := mailer.(*logMailer)
	assert.True(t, ok)

	mailer = NewMailer(utils.EmailConfig{ResendAPIKey: "re_test"}, zap.NewNop())
	_, ok = mailer.(*logMailer)
	assert.True(t, ok, "a sender address is required for Resend")

	mailer = NewMailer(utils.EmailConfig{ResendAPIKey: "re_test", From: "otp@inscovia.example", FromName: "Inscovia"}, zap.NewNop())
	rm, ok := mailer.(*resendMailer)
	require.True(t, ok)
	assert.Equal(t, "Inscovia <otp@inscovia.example>", rm.from)
}
