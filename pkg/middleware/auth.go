package middleware

import (
	"errors"
	"net/http"
	"strings"

	"booking-service/internal/data/entity"
	"booking-service/pkg/utils"

	"go.uber.org/zap"
)

// Auth validates the bearer access token and admits regular users and privileged callers.
func Auth(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			token := parts[1]

			actor, err := utils.ParseAccessToken(secret, token)
			if err != nil {
				if !errors.Is(err, utils.ErrInvalidToken) {
					logger.Error("Failed to validate token", zap.Error(err))
				}
				logger.Debug("Rejected access token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			if !actor.IsPrivileged && !actor.Has(entity.PermissionUser) {
				logger.Warn("Caller without user permission",
					zap.String("user_id", actor.ID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "User permission required")
				return
			}

			ctx := utils.SetActorContext(r.Context(), actor)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Privileged only lets superusers through. Must run after Auth.
func Privileged(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := utils.GetActorFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !actor.IsPrivileged {
				logger.Warn("Privileged check: non-privileged access attempt",
					zap.String("user_id", actor.ID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Privileged access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
