package api

import (
	"net/http"
	"testing"

	"notes_system/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileFetchWithoutAuth(t *testing.T) {
	r, gdb := newTestRouter(t, nil)
	registerUser(t, r, "alice", "alice@example.com", "hunter2")

	// No cookie, no header: the endpoint still serves the full profile,
	// stored session token included
	w := doRequest(t, r, http.MethodGet, "/user/profile/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Equal(t, "user", body["role"])

	var stored domain.User
	require.NoError(t, gdb.First(&stored, 1).Error)
	assert.Equal(t, stored.JWTToken, body["jwt"])
	assert.NotEmpty(t, body["jwt"])
}

func TestProfileFetchNotFound(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	for _, path := range []string{"/user/profile/99", "/user/profile/abc"} {
		w := doRequest(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User not found", decodeBody(t, w)["error"])
	}
}

func TestUpdateProfile(t *testing.T) {
	r, gdb := newTestRouter(t, nil)
	token := registerUser(t, r, "alice", "alice@example.com", "hunter2")

	// Only the email is sent; username and password must survive untouched
	w := doRequest(t, r, http.MethodPut, "/profile", gin.H{
		"email": "new@example.com",
	}, withCookie(token))
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "new@example.com", user["email"])

	var stored domain.User
	require.NoError(t, gdb.First(&stored, 1).Error)
	assert.Equal(t, "new@example.com", stored.Email)
	assert.Equal(t, "hunter2", stored.Password)
}

func TestUpdateProfileEmptyPassword(t *testing.T) {
	r, gdb := newTestRouter(t, nil)
	token := registerUser(t, r, "alice", "alice@example.com", "hunter2")

	// An empty password field means "no change"
	w := doRequest(t, r, http.MethodPut, "/profile", gin.H{
		"username": "alice2",
		"password": "",
	}, withCookie(token))
	require.Equal(t, http.StatusOK, w.Code)

	var stored domain.User
	require.NoError(t, gdb.First(&stored, 1).Error)
	assert.Equal(t, "alice2", stored.Username)
	assert.Equal(t, "hunter2", stored.Password)

	// The old password still works against the new username
	w = doRequest(t, r, http.MethodPost, "/login", gin.H{
		"username": "alice2",
		"password": "hunter2",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateProfileRequiresAuth(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	w := doRequest(t, r, http.MethodPut, "/profile", gin.H{"email": "x@example.com"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
