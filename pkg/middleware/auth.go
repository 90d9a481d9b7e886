package middleware

import (
	"net/http"
	"strings"

	"inscovia/internal/data/repository"
	"inscovia/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession validates the bearer JWT and checks that its session has not been revoked
func AuthSession(secret string, sessionRepo repository.SessionRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := utils.ParseToken(secret, strings.TrimSpace(token))
			if err != nil {
				logger.Warn("Rejected token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			session, err := sessionRepo.FindValidSession(r.Context(), claims.SessionID)
			if err != nil {
				logger.Error("Failed to validate session",
					zap.String("session_id", claims.SessionID.String()),
					zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil || session.InstituteID != claims.InstituteID {
				logger.Warn("Invalid or revoked session", zap.String("session_id", claims.SessionID.String()))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetAuthContext(r.Context(), claims.InstituteID, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
