package wire

import (
	"inscovia/internal/adaptor"
	"inscovia/internal/data/repository"
	"inscovia/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCenter(
	r chi.Router,
	centerHandler *adaptor.CenterHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/centers - filtered directory listing
	r.Get("/api/centers", centerHandler.ListCenters)

	// GET /api/centers/filters - accepted filter values
	r.Get("/api/centers/filters", centerHandler.GetFilterOptions)

	// GET /api/centers/{idOrSlug} - center detail with courses
	r.Get("/api/centers/{idOrSlug}", centerHandler.GetCenter)
}
