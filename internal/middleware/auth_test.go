package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkettu/worklog/backend/internal/middleware"
)

// sessionEchoHandler writes the authenticated user ID, or 200 with an empty
// body for anonymous requests.
var sessionEchoHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
	if ok {
		//nolint:errcheck
		w.Write([]byte(sess.UserID.String()))
	}
})

func TestSessionAuth_ValidToken_InjectsSession(t *testing.T) {
	userID := uuid.New()
	h := middleware.NewSessionAuth(map[string]uuid.UUID{"secret": userID})(sessionEchoHandler)

	req := httptest.NewRequest(http.MethodGet, "/work/view", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())
}

func TestSessionAuth_UnknownToken_PassesThroughAnonymous(t *testing.T) {
	h := middleware.NewSessionAuth(map[string]uuid.UUID{"secret": uuid.New()})(sessionEchoHandler)

	req := httptest.NewRequest(http.MethodGet, "/work/view", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestSessionAuth_NoHeader_PassesThroughAnonymous(t *testing.T) {
	h := middleware.NewSessionAuth(map[string]uuid.UUID{"secret": uuid.New()})(sessionEchoHandler)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestSessionAuth_MalformedHeader_PassesThroughAnonymous(t *testing.T) {
	h := middleware.NewSessionAuth(map[string]uuid.UUID{"secret": uuid.New()})(sessionEchoHandler)

	for _, header := range []string{"secret", "Basic secret", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/work/view", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String(), "header %q should not authenticate", header)
	}
}
