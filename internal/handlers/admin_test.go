package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminListUsers(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.svc.EnsureDefaults(context.Background()))

	w := ts.do(t, http.MethodPost, "/api/register", `{"username":"alice","password":"p1","handle":"al"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// Bootstrapped admin logs in with the fixed credentials.
	w = ts.do(t, http.MethodPost, "/api/login", `{"username":"admin","password":"admin123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, true, body["isAdmin"])
	cookie := sessionCookie(t, w)

	w = ts.do(t, http.MethodGet, "/api/admin/users", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var users []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2)
	// Newest first.
	assert.Equal(t, "alice", users[0]["username"])
	assert.Equal(t, "admin", users[1]["username"])
	assert.Equal(t, true, users[1]["is_admin"])
	// The plain listing never exposes digests.
	_, hasPassword := users[0]["password"]
	assert.False(t, hasPassword)
}

func TestAdminListUserCredentials(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.svc.EnsureDefaults(context.Background()))

	w := ts.do(t, http.MethodPost, "/api/register", `{"username":"alice","password":"p1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, "/api/login", `{"username":"admin","password":"admin123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)

	w = ts.do(t, http.MethodGet, "/api/admin/user-credentials", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var users []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2)
	digest, ok := users[0]["password"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, digest)
	assert.NotEqual(t, "p1", digest, "stored value is the digest, never the plaintext")
}

func TestAdminEndpoints_Forbidden(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/register", `{"username":"alice","password":"p1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)

	for _, path := range []string{"/api/admin/users", "/api/admin/user-credentials"} {
		// Anonymous.
		w = ts.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusForbidden, w.Code, "anonymous %s", path)
		// Authenticated but not admin: same 403.
		w = ts.do(t, http.MethodGet, path, "", cookie)
		assert.Equal(t, http.StatusForbidden, w.Code, "non-admin %s", path)
	}
}

func TestAdminSessionFrozenAtCreation(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.svc.EnsureDefaults(context.Background()))

	// Log in as a regular user, then promote the row out of band. The
	// session keeps the flag captured at login.
	w := ts.do(t, http.MethodPost, "/api/register", `{"username":"alice","password":"p1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)

	for i := range ts.repo.users {
		if ts.repo.users[i].Username == "alice" {
			ts.repo.users[i].IsAdmin = true
		}
	}

	w = ts.do(t, http.MethodGet, "/api/admin/users", "", cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
