package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"carhive/config"
	"carhive/infras/jwt"
	jwtMocks "carhive/infras/jwt/mocks"
	"carhive/infras/otel/mocks"
	"carhive/permissions"
	"carhive/shared/constant"
	"carhive/transport/http/middleware"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	jwtService := jwtMocks.NewMockJWT(ctrl)

	authRole := middleware.NewAuthRoleMiddleware(
		jwtService,
		mocks.NewOtel(),
		&permissions.PermissionData{},
		&config.Config{},
	)

	tests := []struct {
		name        string
		authHeader  string
		setupMock   func()
		wantCode    int
		wantHandled bool
	}{
		{
			name:       "valid claims pass through",
			authHeader: "Bearer valid-token",
			setupMock: func() {
				jwtService.EXPECT().
					ValidateToken(gomock.Any(), "valid-token", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "user-id", Email: "user@example.com", Role: constant.RoleUser}, nil)
			},
			wantCode:    http.StatusOK,
			wantHandled: true,
		},
		{
			name:        "missing authorization header",
			authHeader:  "",
			setupMock:   func() {},
			wantCode:    http.StatusUnauthorized,
			wantHandled: false,
		},
		{
			name:       "empty user id claim is rejected",
			authHeader: "Bearer valid-token",
			setupMock: func() {
				jwtService.EXPECT().
					ValidateToken(gomock.Any(), "valid-token", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "", Email: "user@example.com"}, nil)
			},
			wantCode:    http.StatusUnauthorized,
			wantHandled: false,
		},
		{
			name:       "empty email claim is rejected",
			authHeader: "Bearer valid-token",
			setupMock: func() {
				jwtService.EXPECT().
					ValidateToken(gomock.Any(), "valid-token", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "user-id", Email: ""}, nil)
			},
			wantCode:    http.StatusUnauthorized,
			wantHandled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			handled := false
			router := chi.NewRouter()
			router.Use(authRole.Auth)
			router.Get("/v1/bookings/my", func(writer http.ResponseWriter, request *http.Request) {
				handled = true

				userID, _ := request.Context().Value(constant.ContextKeyUserID).(string)
				assert.NotEmpty(t, userID)

				writer.WriteHeader(http.StatusOK)
			})

			request := httptest.NewRequest(http.MethodGet, "/v1/bookings/my", nil)
			if tt.authHeader != "" {
				request.Header.Set(constant.RequestHeaderAuthorization, tt.authHeader)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantHandled, handled)
		})
	}
}
