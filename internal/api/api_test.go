package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"notes_system/internal/config"
	"notes_system/internal/db"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// newTestRouter builds the full router against an in-memory sqlite database.
// Passing a nil Redis client disables the cache path.
func newTestRouter(t *testing.T, rdb *redis.Client) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(gdb))
	cfg := &config.Config{JWTSecret: testSecret, Env: "development"}
	return NewRouter(gdb, rdb, cfg), gdb
}

// doRequest runs one request through the router and returns the recorder
func doRequest(t *testing.T, r *gin.Engine, method, path string, body any, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for _, o := range opts {
		o(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func withCookie(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "jwt_token", Value: token})
	}
}

func withBearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// sessionCookie extracts the jwt_token cookie from a response
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "jwt_token" {
			return c
		}
	}
	t.Fatal("jwt_token cookie not set")
	return nil
}

// registerUser registers an account through the API and returns its session token
func registerUser(t *testing.T, r *gin.Engine, username, email, password string) string {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/register", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return sessionCookie(t, w).Value
}

// decodeBody unmarshals a JSON response body into a map
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
