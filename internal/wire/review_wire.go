package wire

import (
	"inscovia/internal/adaptor"
	"inscovia/internal/data/repository"
	"inscovia/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/centers/{id}/reviews - reviews of a center, newest first
	r.Get("/api/centers/{id}/reviews", reviewHandler.GetCenterReviews)

	// POST /api/centers/{id}/reviews - anyone may review once per email
	r.Post("/api/centers/{id}/reviews", reviewHandler.CreateReview)
}
