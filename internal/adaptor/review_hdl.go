package adaptor

import (
	"net/http"

	"inscovia/internal/dto/request"
	"inscovia/internal/usecase"
	"inscovia/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// CreateReview handles POST /api/centers/{id}/reviews (public)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	centerID := chi.URLParam(r, "id")
	if centerID == "" {
		utils.ResponseBadRequest(w, "Center ID is required", nil)
		return
	}

	var req request.CreateReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	review, err := h.service.CreateReview(r.Context(), centerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review submitted", review)
}

// GetCenterReviews handles GET /api/centers/{id}/reviews (public)
func (h *ReviewHandler) GetCenterReviews(w http.ResponseWriter, r *http.Request) {
	centerID := chi.URLParam(r, "id")
	if centerID == "" {
		utils.ResponseBadRequest(w, "Center ID is required", nil)
		return
	}

	// Parse query parameters
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    max(utils.ParseInt(query.Get("page"), 1), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), request.DefaultPerPage),
	}

	reviews, err := h.service.GetCenterReviews(r.Context(), centerID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get center reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}
