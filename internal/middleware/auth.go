package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mkettu/worklog/backend/internal/domain"
)

type ctxKeySession struct{}

// ContextWithSession stores the caller's session in the request context.
func ContextWithSession(ctx context.Context, sess domain.Session) context.Context {
	return context.WithValue(ctx, ctxKeySession{}, sess)
}

// SessionFromContext returns the session stored by NewSessionAuth.
// The second return is false for unauthenticated requests; the returned
// zero session is safe to pass on (domain treats it as anonymous).
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	sess, ok := ctx.Value(ctxKeySession{}).(domain.Session)
	return sess, ok && sess.Authenticated()
}

// NewSessionAuth returns a middleware that resolves the bearer token from
// the Authorization header against the configured token→user map and puts
// the resulting session in the request context.
//
// Requests without a valid token pass through with no session: the view
// selector renders the empty view for them, and the dispatcher rejects
// mutations with ErrUnauthorized. Rejecting here would break /healthz-style
// anonymous endpoints mounted behind the same router.
func NewSessionAuth(tokens map[string]uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := tokens[token]
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := ContextWithSession(r.Context(), domain.Session{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the credential from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return h[len(prefix):], true
}
