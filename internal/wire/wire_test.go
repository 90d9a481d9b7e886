package wire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inscovia/internal/ai"
	"inscovia/internal/data/repository"
	"inscovia/internal/notify"
	"inscovia/internal/otp"
	"inscovia/internal/usecase"
	"inscovia/pkg/utils"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) (*App, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	log := zap.NewNop()
	config := &utils.Config{
		App:       utils.AppConfig{CORSOrigins: []string{"*"}},
		JWT:       utils.JWTConfig{Secret: "wire-secret", ExpiryHours: 1},
		RateLimit: utils.RateLimitConfig{OTPRequests: 1, OTPWindowMinutes: 1},
	}

	generator, err := ai.NewGenerator(context.Background(), config.AI, log)
	require.NoError(t, err)

	deps := usecase.Deps{
		OTP:       otp.NewRegistry(log),
		Mailer:    notify.NewLogMailer(log),
		Generator: generator,
	}

	return Wiring(repository.NewRepository(mock, log), deps, config, log), mock
}

func serve(app *App, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)

	rec := serve(app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestListCentersRoute(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("FROM centers").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "institute_id", "slug", "name", "category", "secondary_categories", "teaching_mode",
			"state", "city", "district", "location", "description", "rating", "created_at", "updated_at",
		}))

	rec := serve(app, http.MethodGet, "/api/centers?state=Delhi&rating=oops", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":0`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCentersRoute_HugePage(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("FROM centers").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "institute_id", "slug", "name", "category", "secondary_categories", "teaching_mode",
			"state", "city", "district", "location", "description", "rating", "created_at", "updated_at",
		}))

	rec := serve(app, http.MethodGet, "/api/centers?page=100000000000000000&per_page=100", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"centers":[]`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRequiresToken(t *testing.T) {
	app, _ := newTestApp(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/institute/me"},
		{http.MethodGet, "/api/institute/centers"},
		{http.MethodPost, "/api/institute/centers"},
		{http.MethodDelete, "/api/institute/reviews/abc"},
		{http.MethodPost, "/api/auth/logout"},
	} {
		rec := serve(app, route.method, route.path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
	}
}

func TestOTPRoutesAreRateLimited(t *testing.T) {
	app, _ := newTestApp(t)

	first := serve(app, http.MethodPost, "/api/otp/send", `{"email":"bad"}`)
	assert.Equal(t, http.StatusBadRequest, first.Code)

	second := serve(app, http.MethodPost, "/api/otp/send", `{"email":"bad"}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// verification is not limited
	for i := 0; i < 3; i++ {
		rec := serve(app, http.MethodPost, "/api/otp/verify", `{"email":"a@example.com","otp":"123456"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestChatRouteFallsBackWithoutModel(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("FROM centers").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "institute_id", "slug", "name", "category", "secondary_categories", "teaching_mode",
			"state", "city", "district", "location", "description", "rating", "created_at", "updated_at",
		}))

	rec := serve(app, http.MethodPost, "/api/chat", `{"message":"python courses"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"source":"fallback"`)
}
