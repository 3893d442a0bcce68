package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aleksk/socialnet/internal/auth"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// SessionUserID resolves the signed session cookie to a user id. It returns
// 0 when the request carries no valid session.
func SessionUserID(r *http.Request) int {
	cookie, err := r.Cookie(auth.SessionCookie)
	if err != nil {
		return 0
	}

	value, err := auth.Verify(cookie.Value)
	if err != nil {
		return 0
	}

	userID, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return userID
}

// Authenticated rejects requests without a valid session and injects the
// user id into the request context.
func Authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := SessionUserID(r)
		if userID == 0 {
			http.Error(w, "Not authenticated.", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID extracts the authenticated user id set by Authenticated.
func UserID(r *http.Request) int {
	id, _ := r.Context().Value(UserIDKey).(int)
	return id
}
