package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/martijn/jobtrack/internal/api/dto"
	"github.com/martijn/jobtrack/internal/api/middleware"
	"github.com/martijn/jobtrack/internal/core/service"
	"github.com/martijn/jobtrack/internal/infrastructure/sqlite"
)

// testEnv holds all test dependencies
type testEnv struct {
	db       *sqlite.DB
	router   *gin.Engine
	store    *service.CredentialStore
	sessions *service.SessionService
}

// setupTestEnv creates a test environment with in-memory SQLite database
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := service.NewCredentialStore(
		sqlite.NewUserRepository(db),
		sqlite.NewResetTokenRepository(db),
		db,
	)
	sessions := service.NewSessionService("test-secret", "HS256")
	authHandler := NewAuthHandler(store, sessions)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandlerMiddleware())

	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)
	router.POST("/auth/password/forgot", authHandler.ForgotPassword)
	router.POST("/auth/password/reset", authHandler.ResetPassword)
	router.POST("/auth/password/change", middleware.AuthMiddleware(sessions), authHandler.ChangePassword)
	router.GET("/auth/me", middleware.AuthMiddleware(sessions), authHandler.Me)

	return &testEnv{
		db:       db,
		router:   router,
		store:    store,
		sessions: sessions,
	}
}

// postJSON performs a POST request with a JSON body and an optional bearer token
func (env *testEnv) postJSON(t *testing.T, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.AuthHeaderKey, "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// get performs a GET request with an optional bearer token
func (env *testEnv) get(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set(middleware.AuthHeaderKey, "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// login registers nothing; it logs an existing user in and returns the session token
func (env *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	w := env.postJSON(t, "/auth/login", dto.LoginRequest{Email: email, Password: password}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login failed with %d: %s", w.Code, w.Body.String())
	}
	return decode[dto.TokenResponse](t, w).AccessToken
}

// decode parses the response body into T
func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var resp T
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}
