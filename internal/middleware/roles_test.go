package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"consigne/internal/auth"
	"consigne/internal/model"
)

const testSecret = "test-secret"

// newTestServer mirrors the production route setup: jwt verification first,
// then the role gate on the admin route.
func newTestServer() *echo.Echo {
	e := echo.New()
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(testSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))
	secured.GET("/admin-only", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, RequireRole(model.RoleAdmin))
	return e
}

func TestRequireRole(t *testing.T) {
	jwtService := auth.NewJWTService(testSecret)

	adminToken, err := jwtService.GenerateAccessToken(uuid.New(), "admin@example.com", model.RoleAdmin)
	assert.NoError(t, err)
	userToken, err := jwtService.GenerateAccessToken(uuid.New(), "user@example.com", model.RoleUser)
	assert.NoError(t, err)
	confirmToken, err := jwtService.GenerateConfirmToken(uuid.New(), "pending@example.com")
	assert.NoError(t, err)

	foreignToken, err := auth.NewJWTService("other-secret").
		GenerateAccessToken(uuid.New(), "admin@example.com", model.RoleAdmin)
	assert.NoError(t, err)

	tests := []struct {
		name         string
		authHeader   string
		expectedCode int
	}{
		{
			name:         "no token",
			authHeader:   "",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "malformed token",
			authHeader:   "Bearer not.a.token",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "token signed with another secret",
			authHeader:   "Bearer " + foreignToken,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "confirmation token is not an identity",
			authHeader:   "Bearer " + confirmToken,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "authenticated but wrong role",
			authHeader:   "Bearer " + userToken,
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "admin passes",
			authHeader:   "Bearer " + adminToken,
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer()
			req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
			if tt.authHeader != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.authHeader)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}

func TestCurrentClaims_NoToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Nil(t, CurrentClaims(c))
}
