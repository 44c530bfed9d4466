package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/snapnest/snapnest/internal/ctxkeys"
	"github.com/snapnest/snapnest/internal/repository"
	"github.com/snapnest/snapnest/internal/service"
)

// AuthMiddleware verifies the session cookie and adds the user to the context if valid.
// Requests without a valid session pass through unauthenticated.
func AuthMiddleware(authService *service.AuthService, userService *service.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(service.CookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := authService.VerifyJWT(cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := ctxkeys.WithSessionUserID(r.Context(), userID)

			user, err := userService.ByID(ctx, userID)
			if errors.Is(err, repository.ErrUserNotFound) {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			if err != nil {
				slog.Error("failed to load session user", "error", err, "user_id", userID)
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			// Security: Remove password hash from context
			user.PasswordHash = ""

			ctx = ctxkeys.WithUser(ctx, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth answers 401 unless AuthMiddleware found a user.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) != nil {
			next.ServeHTTP(w, r)
			return
		}

		if ctxkeys.SessionUserID(r.Context()) != "" {
			writeMessage(w, http.StatusUnauthorized, "No user found")
			return
		}
		writeMessage(w, http.StatusUnauthorized, "Please log in to access this resource")
	}
}
