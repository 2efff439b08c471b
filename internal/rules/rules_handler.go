package rules

import (
	"net/http"

	"go-attend/internal/shared/apperror"
	"go-attend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Message)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Message)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Message)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
