package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusCode(NotFound("missing")))
	assert.Equal(t, http.StatusConflict, StatusCode(Conflict("dup")))
	assert.Equal(t, http.StatusBadRequest, StatusCode(OutOfStock("gone")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("plain")))

	wrapped := fmt.Errorf("context: %w", Forbidden("no"))
	assert.Equal(t, http.StatusForbidden, StatusCode(wrapped))
	assert.True(t, IsCode(wrapped, http.StatusForbidden))
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Application Error", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Respond(c, NotFound("Order not found"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"Order not found"}`, w.Body.String())
	})

	t.Run("Unknown Error Is Hidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Respond(c, errors.New("pg: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}
