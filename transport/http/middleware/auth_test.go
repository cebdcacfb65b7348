package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"rentro/config"
	"rentro/infras/jwt"
	jwtMocks "rentro/infras/jwt/mocks"
	otelMocks "rentro/infras/otel/mocks"
	"rentro/permissions"
	"rentro/shared/constant"
	"rentro/transport/http/middleware"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const apiKey = "internal-key"

var testPermissions = mustParse(`{
  "endpoints": [
    { "path": "/v1/auth/login", "method": "POST", "skip": true, "permissions": [] },
    { "path": "/v1/request/{id}/accept", "method": "PUT", "permissions": ["landlord", "admin"] }
  ]
}`)

func mustParse(raw string) *permissions.PermissionData {
	data, err := permissions.Parse([]byte(raw))
	if err != nil {
		panic(err)
	}

	return data
}

type seen struct {
	userID string
	role   string
	token  string
}

func newRouter(t *testing.T, validator jwt.JWT) (http.Handler, *seen) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.APIKey = apiKey

	authRole := middleware.NewAuthRoleMiddleware(validator, otelMocks.NewOtel(), testPermissions, cfg)
	observed := &seen{}

	capture := func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		observed.userID, _ = ctx.Value(constant.ContextKeyUserID).(string)
		observed.role, _ = ctx.Value(constant.ContextKeyUserRole).(string)
		observed.token, _ = ctx.Value(constant.ContextKeyAccessToken).(string)

		writer.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Route("/v1", func(group chi.Router) {
		group.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)
		group.Post("/auth/login", capture)
		group.Put("/request/{id}/accept", capture)
		group.Get("/booking/posts/{postID}", capture)
	})

	return router, observed
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		path         string
		header       string
		claims       *jwt.Claims
		validateErr  error
		expectedCode int
		expectedUser string
	}{
		{name: "skipped route needs no token", method: http.MethodPost, path: "/v1/auth/login", expectedCode: http.StatusOK},
		{name: "missing header", method: http.MethodGet, path: "/v1/booking/posts/7", expectedCode: http.StatusUnauthorized},
		{name: "malformed header", method: http.MethodGet, path: "/v1/booking/posts/7", header: "Token abc", expectedCode: http.StatusUnauthorized},
		{name: "expired token", method: http.MethodGet, path: "/v1/booking/posts/7", header: "Bearer abc", validateErr: jwt.ErrExpiredToken, expectedCode: http.StatusUnauthorized},
		{name: "claims without email", method: http.MethodGet, path: "/v1/booking/posts/7", header: "Bearer abc", claims: &jwt.Claims{UserID: "12"}, expectedCode: http.StatusUnauthorized},
		{
			name: "valid token", method: http.MethodGet, path: "/v1/booking/posts/7", header: "Bearer abc",
			claims:       &jwt.Claims{UserID: "12", Email: "a@example.com", Role: constant.RoleUser},
			expectedCode: http.StatusOK, expectedUser: "12",
		},
		{
			name: "tenant cannot accept", method: http.MethodPut, path: "/v1/request/9/accept", header: "Bearer abc",
			claims:       &jwt.Claims{UserID: "12", Email: "a@example.com", Role: constant.RoleUser},
			expectedCode: http.StatusForbidden,
		},
		{
			name: "landlord accepts", method: http.MethodPut, path: "/v1/request/9/accept", header: "Bearer abc",
			claims:       &jwt.Claims{UserID: "34", Email: "b@example.com", Role: constant.RoleLandlord},
			expectedCode: http.StatusOK, expectedUser: "34",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			validator := jwtMocks.NewMockJWT(ctrl)

			if tt.claims != nil || tt.validateErr != nil {
				validator.EXPECT().ValidateToken("abc", jwt.AccessToken).Return(tt.claims, tt.validateErr)
			}

			router, observed := newRouter(t, validator)

			request := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				request.Header.Set(constant.RequestHeaderAuthorization, tt.header)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.expectedCode, recorder.Code)

			if tt.expectedUser != "" {
				assert.Equal(t, tt.expectedUser, observed.userID)
				assert.Equal(t, tt.claims.Role, observed.role)
				assert.Equal(t, "abc", observed.token)
			}
		})
	}
}

func TestAPIKey(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		expectedCode int
	}{
		{name: "matching key skips token checks", key: apiKey, expectedCode: http.StatusOK},
		{name: "wrong key is rejected", key: "guess", expectedCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newRouter(t, jwtMocks.NewMockJWT(gomock.NewController(t)))

			request := httptest.NewRequest(http.MethodPut, "/v1/request/9/accept", nil)
			request.Header.Set(constant.RequestHeaderAPIKey, tt.key)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.expectedCode, recorder.Code)
		})
	}
}
