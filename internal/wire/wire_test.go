package wire

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"booking-service/internal/data/entity"
	"booking-service/internal/data/repository"
	"booking-service/internal/peer"
	"booking-service/internal/usecase"
	"booking-service/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRouter(t *testing.T) {
	config := &utils.Config{
		App: utils.AppConfig{APIPrefix: "/api/v1"},
		JWT: utils.JWTConfig{Secret: "wire-secret"},
	}
	app := Wiring(&repository.Repository{}, peer.Clients{}, usecase.Notifiers{}, config, zap.NewNop())

	token, err := utils.SignAccessToken(config.JWT.Secret,
		entity.Actor{ID: uuid.New(), Permissions: []int{entity.PermissionUser}},
		jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))})
	require.NoError(t, err)

	tests := []struct {
		name  string
		path  string
		token string
		code  int
	}{
		{"health", "/health", "", http.StatusOK},
		{"announcements need a token", "/api/v1/announcements", "", http.StatusUnauthorized},
		{"bookings need a token", "/api/v1/bookings", "", http.StatusUnauthorized},
		{"service listing needs a superuser", "/api/v1/_bookings", token, http.StatusForbidden},
		{"bad id is rejected before the service", "/api/v1/booking/42", token, http.StatusBadRequest},
		{"unknown route", "/api/v2/bookings", token, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
