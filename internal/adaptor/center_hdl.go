package adaptor

import (
	"net/http"

	"inscovia/internal/dto/request"
	"inscovia/internal/search"
	"inscovia/internal/usecase"
	"inscovia/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CenterHandler struct {
	service usecase.CenterService
	log     *zap.Logger
}

func NewCenterHandler(service usecase.CenterService, log *zap.Logger) *CenterHandler {
	return &CenterHandler{
		service: service,
		log:     log.With(zap.String("handler", "center")),
	}
}

// ListCenters handles GET /api/centers (public)
func (h *CenterHandler) ListCenters(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := search.ParseQuery(query)

	// the full filtered set is returned unless the client asks for a page
	var page *request.PaginatedRequest
	if query.Has("page") || query.Has("per_page") {
		page = &request.PaginatedRequest{
			Page:    max(utils.ParseInt(query.Get("page"), 1), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), request.DefaultPerPage),
		}
	}

	centers, err := h.service.ListCenters(r.Context(), q, page)
	if err != nil {
		handleServiceError(w, h.log, err, "list centers")
		return
	}

	message := "success"
	if centers.Count == 0 {
		message = "No centers match these filters. Try adjusting them."
	}
	utils.ResponseSuccess(w, message, centers)
}

// GetFilterOptions handles GET /api/centers/filters (public)
func (h *CenterHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.FilterOptions(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get filter options")
		return
	}

	utils.ResponseSuccess(w, "success", options)
}

// GetCenter handles GET /api/centers/{idOrSlug} (public). A miss is 200 with null data.
func (h *CenterHandler) GetCenter(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")
	if idOrSlug == "" {
		utils.ResponseBadRequest(w, "Center ID or slug is required", nil)
		return
	}

	center, err := h.service.GetCenter(r.Context(), idOrSlug)
	if err != nil {
		handleServiceError(w, h.log, err, "get center")
		return
	}
	if center == nil {
		utils.ResponseSuccess(w, "Center not found", nil)
		return
	}

	utils.ResponseSuccess(w, "success", center)
}
