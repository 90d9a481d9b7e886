package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inscovia/internal/dto/request"
	"inscovia/internal/dto/response"
	"inscovia/internal/otp"
	"inscovia/internal/search"
	"inscovia/internal/usecase"
	"inscovia/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

type stubCenterService struct {
	usecase.CenterService
	gotQuery search.Query
	gotPage  *request.PaginatedRequest
	center   *response.CenterResponse
}

func (s *stubCenterService) ListCenters(ctx context.Context, q search.Query, page *request.PaginatedRequest) (*response.CenterListResponse, error) {
	s.gotQuery = q
	s.gotPage = page
	return &response.CenterListResponse{Centers: []response.CenterResponse{}, Count: 0}, nil
}

func (s *stubCenterService) GetCenter(ctx context.Context, idOrSlug string) (*response.CenterResponse, error) {
	return s.center, nil
}

type stubReviewService struct {
	usecase.ReviewService
	err error
}

func (s *stubReviewService) CreateReview(ctx context.Context, centerID string, req *request.CreateReviewRequest) (*response.CreateReviewResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &response.CreateReviewResponse{
		Review:       response.ReviewResponse{ID: uuid.NewString(), CenterID: centerID, UserName: req.UserName, Rating: req.Rating},
		CenterRating: float64(req.Rating),
	}, nil
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &usecase.ValidationError{Fields: map[string]string{"rating": "Must be at most 5"}}, http.StatusBadRequest},
		{"otp", otp.ErrInvalidOrExpired, http.StatusBadRequest},
		{"conflict", fmt.Errorf("review: %w", usecase.ErrConflict), http.StatusConflict},
		{"not found", fmt.Errorf("center x: %w", usecase.ErrNotFound), http.StatusNotFound},
		{"unauthorized", fmt.Errorf("invalid credentials: %w", usecase.ErrUnauthorized), http.StatusUnauthorized},
		{"forbidden", fmt.Errorf("not yours: %w", usecase.ErrForbidden), http.StatusForbidden},
		{"internal", errors.New("connection reset by peer"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tt.err, "test")

			assert.Equal(t, tt.status, rec.Code)
			env := decode(t, rec)
			assert.False(t, env.Status)
			if tt.status == http.StatusInternalServerError {
				assert.Equal(t, "Internal server error", env.Message)
			}
		})
	}
}

func TestHandleServiceError_FieldMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(rec, zap.NewNop(), &usecase.ValidationError{Fields: map[string]string{
		"userEmail": "Invalid email format",
		"comment":   "Minimum length is 10",
	}}, "create review")

	env := decode(t, rec)
	assert.Equal(t, "Invalid email format", env.Errors["userEmail"])
	assert.Equal(t, "Minimum length is 10", env.Errors["comment"])
}

func reviewRouter(svc usecase.ReviewService) http.Handler {
	h := NewReviewHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/api/centers/{id}/reviews", h.CreateReview)
	return r
}

func TestCreateReviewHandler(t *testing.T) {
	centerID := uuid.NewString()
	body := `{"userName":"Asha","userEmail":"asha@example.com","rating":4,"comment":"Great mentors and notes"}`

	t.Run("created", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/centers/"+centerID+"/reviews", strings.NewReader(body))
		reviewRouter(&stubReviewService{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var created response.CreateReviewResponse
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))
		assert.Equal(t, centerID, created.Review.CenterID)
		assert.Equal(t, 4.0, created.CenterRating)
	})

	t.Run("duplicate", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/centers/"+centerID+"/reviews", strings.NewReader(body))
		reviewRouter(&stubReviewService{err: fmt.Errorf("dup: %w", usecase.ErrConflict)}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/centers/"+centerID+"/reviews", strings.NewReader("{"))
		reviewRouter(&stubReviewService{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body", decode(t, rec).Message)
	})
}

func TestListCentersHandler(t *testing.T) {
	svc := &stubCenterService{}
	h := NewCenterHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	h.ListCenters(rec, httptest.NewRequest(http.MethodGet, "/api/centers?state=Delhi&rating=abc&priceRange=bogus", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Delhi", svc.gotQuery.State)
	assert.Nil(t, svc.gotQuery.MinRating)
	assert.Equal(t, "bogus", svc.gotQuery.PriceRange)
	assert.Nil(t, svc.gotPage)

	env := decode(t, rec)
	assert.True(t, env.Status)
	assert.Contains(t, env.Message, "No centers match")

	rec = httptest.NewRecorder()
	h.ListCenters(rec, httptest.NewRequest(http.MethodGet, "/api/centers?page=0&per_page=5", nil))
	require.NotNil(t, svc.gotPage)
	assert.Equal(t, 1, svc.gotPage.Page)
	assert.Equal(t, 5, svc.gotPage.PerPage)
}

func TestGetCenterHandler_Missing(t *testing.T) {
	h := NewCenterHandler(&stubCenterService{}, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/api/centers/{idOrSlug}", h.GetCenter)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/centers/nowhere", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.True(t, env.Status)
	assert.Equal(t, "Center not found", env.Message)
	assert.Empty(t, env.Data)
}

func TestInstituteHandler_RequiresAuthContext(t *testing.T) {
	h := NewInstituteHandler(nil, &stubCenterService{}, &stubReviewService{}, zap.NewNop())

	rec := httptest.NewRecorder()
	h.ListCenters(rec, httptest.NewRequest(http.MethodGet, "/api/institute/centers", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/institute/reviews/x", nil)
	req = req.WithContext(utils.SetAuthContext(req.Context(), uuid.Nil, uuid.New()))
	h.DeleteReview(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClientInfo(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "203.0.113.7:53122"
	req.Header.Set("User-Agent", "inscovia-test")

	info := clientInfo(req)
	assert.Equal(t, "203.0.113.7", info.IPAddress)
	assert.Equal(t, "inscovia-test", info.UserAgent)
}
