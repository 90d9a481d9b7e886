package adaptor

import (
	"net/http"

	"inscovia/internal/dto/request"
	"inscovia/internal/usecase"
	"inscovia/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// InstituteHandler serves the authenticated institute dashboard
type InstituteHandler struct {
	auth    usecase.AuthService
	centers usecase.CenterService
	reviews usecase.ReviewService
	log     *zap.Logger
}

func NewInstituteHandler(auth usecase.AuthService, centers usecase.CenterService, reviews usecase.ReviewService, log *zap.Logger) *InstituteHandler {
	return &InstituteHandler{
		auth:    auth,
		centers: centers,
		reviews: reviews,
		log:     log.With(zap.String("handler", "institute")),
	}
}

// Me handles GET /api/institute/me
func (h *InstituteHandler) Me(w http.ResponseWriter, r *http.Request) {
	instituteID, ok := utils.GetInstituteIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	institute, err := h.auth.Me(r.Context(), instituteID)
	if err != nil {
		handleServiceError(w, h.log, err, "get institute")
		return
	}

	utils.ResponseSuccess(w, "success", institute)
}

// ListCenters handles GET /api/institute/centers
func (h *InstituteHandler) ListCenters(w http.ResponseWriter, r *http.Request) {
	instituteID, ok := utils.GetInstituteIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	centers, err := h.centers.ListInstituteCenters(r.Context(), instituteID)
	if err != nil {
		handleServiceError(w, h.log, err, "list institute centers")
		return
	}

	utils.ResponseSuccess(w, "success", centers)
}

// CreateCenter handles POST /api/institute/centers
func (h *InstituteHandler) CreateCenter(w http.ResponseWriter, r *http.Request) {
	instituteID, ok := utils.GetInstituteIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CenterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	center, err := h.centers.CreateCenter(r.Context(), instituteID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create center")
		return
	}

	utils.ResponseCreated(w, "Center created", center)
}

// UpdateCenter handles PUT /api/institute/centers/{id}
func (h *InstituteHandler) UpdateCenter(w http.ResponseWriter, r *http.Request) {
	instituteID, ok := utils.GetInstituteIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	centerID := chi.URLParam(r, "id")
	if centerID == "" {
		utils.ResponseBadRequest(w, "Center ID is required", nil)
		return
	}

	var req request.CenterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	center, err := h.centers.UpdateCenter(r.Context(), instituteID, centerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update center")
		return
	}

	utils.ResponseSuccess(w, "Center updated", center)
}

// DeleteCenter handles DELETE /api/institute/centers/{id}
func (h *InstituteHandler) DeleteCenter(w http.ResponseWriter, r *http.Request) {
	instituteID, ok := utils.GetInstituteIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	centerID := chi.URLParam(r, "id")
	if centerID == "" {
		utils.ResponseBadRequest(w, "Center ID is required", nil)
		return
	}

	if err := h.centers.DeleteCenter(r.Context(), instituteID, centerID); err != nil {
		handleServiceError(w, h.log, err, "delete center")
		return
	}

	utils.ResponseSuccess(w, "Center deleted", nil)
}

// DeleteReview handles DELETE /api/institute/reviews/{id}
func (h *InstituteHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	instituteID, ok := utils.GetInstituteIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reviewID := chi.URLParam(r, "id")
	if reviewID == "" {
		utils.ResponseBadRequest(w, "Review ID is required", nil)
		return
	}

	if err := h.reviews.DeleteReview(r.Context(), instituteID, reviewID); err != nil {
		handleServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseSuccess(w, "Review deleted", nil)
}
