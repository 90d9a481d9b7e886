package wire

import (
	"inscovia/internal/adaptor"
	"inscovia/internal/data/repository"
	"inscovia/pkg/middleware"
	"inscovia/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireInstitute(
	r chi.Router,
	instituteHandler *adaptor.InstituteHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Route("/api/institute", func(r chi.Router) {
		r.Use(middleware.AuthSession(config.JWT.Secret, repo.Session, log))

		r.Get("/me", instituteHandler.Me)

		// Center management (owner only)
		r.Get("/centers", instituteHandler.ListCenters)
		r.Post("/centers", instituteHandler.CreateCenter)
		r.Put("/centers/{id}", instituteHandler.UpdateCenter)
		r.Delete("/centers/{id}", instituteHandler.DeleteCenter)

		// Review moderation on owned centers
		r.Delete("/reviews/{id}", instituteHandler.DeleteReview)
	})
}
