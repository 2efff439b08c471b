package apperror_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-attend/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type rolePayload struct {
	Username string `json:"username" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=user admin superadmin"`
}

func bindRolePayload(t *testing.T, body string) error {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var p rolePayload
	return c.ShouldBindJSON(&p)
}

func TestMapValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	t.Run("missing field reports the wire name, not validator internals", func(t *testing.T) {
		err := bindRolePayload(t, `{"username":"dina"}`)
		assert.Error(t, err)

		mapped := apperror.MapValidationError(err)

		var appErr *apperror.AppError
		assert.ErrorAs(t, mapped, &appErr)
		assert.Equal(t, "Role is required", appErr.Message)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
		assert.NotContains(t, appErr.Message, "Field validation")
	})

	t.Run("failed rule reports the field as invalid", func(t *testing.T) {
		err := bindRolePayload(t, `{"username":"dina","role":"owner"}`)
		assert.Error(t, err)

		mapped := apperror.MapValidationError(err)

		var appErr *apperror.AppError
		assert.ErrorAs(t, mapped, &appErr)
		assert.Equal(t, "Role is invalid", appErr.Message)
	})

	t.Run("non-validator error collapses to the generic message", func(t *testing.T) {
		mapped := apperror.MapValidationError(errors.New("unexpected EOF"))

		var appErr *apperror.AppError
		assert.ErrorAs(t, mapped, &appErr)
		assert.Equal(t, "Invalid input", appErr.Message)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	})
}
