package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yaseeradam/smartlink-backend/models"
	"github.com/yaseeradam/smartlink-backend/services"
)

type stubParser struct {
	claims *services.Claims
	err    error
}

func (p *stubParser) ParseToken(tokenString string) (*services.Claims, error) {
	return p.claims, p.err
}

func testRouter(parser TokenParser, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{Authenticate(parser)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		actor := Actor(c)
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": actor.Role})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestAuthenticate(t *testing.T) {
	t.Run("Valid Token", func(t *testing.T) {
		parser := &stubParser{claims: &services.Claims{UserID: "u-1", Role: models.RoleBuyer}}
		r := testRouter(parser)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer sometoken")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "u-1")
	})

	t.Run("Missing Header", func(t *testing.T) {
		r := testRouter(&stubParser{})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		r := testRouter(&stubParser{err: errors.New("invalid token")})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	parser := &stubParser{claims: &services.Claims{UserID: "u-1", Role: models.RoleBuyer}}

	t.Run("Role Allowed", func(t *testing.T) {
		r := testRouter(parser, RequireRole(models.RoleBuyer, models.RoleSeller))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer sometoken")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Role Denied", func(t *testing.T) {
		r := testRouter(parser, RequireRole(models.RoleRider))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer sometoken")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
