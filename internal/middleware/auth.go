package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"interviewai/internal/models"
	"interviewai/internal/repositories"
	"interviewai/internal/utils"
)

const userKey contextKey = "user"

type UserLookup interface {
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

// Authenticate verifies the bearer token and loads the caller, so handlers
// always see the current role rather than the one baked into the token.
func Authenticate(secret string, users UserLookup, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := utils.VerifyToken(r, secret)
			if err != nil {
				if errors.Is(err, utils.ErrMissingAuthHeader) {
					utils.JSONError(w, http.StatusUnauthorized, "Not authorized to access this route")
				} else {
					utils.JSONErrorDetails(w, http.StatusUnauthorized, "Not authorized to access this route", err.Error())
				}
				return
			}

			identity, err := utils.IdentityFromClaims(claims)
			if err != nil {
				utils.JSONErrorDetails(w, http.StatusUnauthorized, "Not authorized to access this route", err.Error())
				return
			}

			user, err := users.GetUserByID(r.Context(), identity.ID)
			if err != nil {
				if errors.Is(err, repositories.ErrUserNotFound) {
					utils.JSONErrorDetails(w, http.StatusUnauthorized, "Not authorized to access this route", "user no longer exists")
					return
				}
				logger.Error("Failed to load authenticated user", zap.String("user_id", identity.ID), zap.Error(err))
				utils.JSONError(w, http.StatusInternalServerError, "Failed to authenticate")
				return
			}
			if !user.IsActive {
				utils.JSONError(w, http.StatusUnauthorized, "Account is deactivated")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the caller set by Authenticate, or nil.
func CurrentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userKey).(*models.User)
	return user
}

// WithUser stores user in ctx the way Authenticate does.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// RequireRole must run after Authenticate.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := CurrentUser(r)
			if user == nil {
				utils.JSONError(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.JSONError(w, http.StatusForbidden, fmt.Sprintf("User role '%s' is not authorized to access this route", user.Role))
		})
	}
}
