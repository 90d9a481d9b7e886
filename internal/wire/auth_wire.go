package wire

import (
	"inscovia/internal/adaptor"
	"inscovia/internal/data/repository"
	"inscovia/pkg/middleware"
	"inscovia/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== OTP SENDING ROUTES ====================
	// Every route that emails a code is rate limited per client IP
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(config.RateLimit.OTPRequests, config.RateLimit.Window(), log))

		r.Post("/api/auth/register/send-otp", authHandler.RegisterSendOTP)
		r.Post("/api/auth/password/forgot", authHandler.ForgotPassword)
		r.Post("/api/otp/send", authHandler.SendOTP)
	})

	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/register/verify-otp", authHandler.RegisterVerifyOTP)
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/password/reset", authHandler.ResetPassword)
	r.Post("/api/otp/verify", authHandler.VerifyOTP)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthSession(config.JWT.Secret, repo.Session, log)).Post("/api/auth/logout", authHandler.Logout)
}
