package excuse

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

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Message)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateExcuseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(
		c.Request.Context(),
		c.GetString("user_id"),
		c.GetString("username"),
		c.GetString("email"),
		req,
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, resp)
}

func (h *Handler) GetMine(c *gin.Context) {
	resp, err := h.service.GetMine(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

func (h *Handler) GetPending(c *gin.Context) {
	resp, err := h.service.GetPending(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

func (h *Handler) Decide(c *gin.Context) {
	var req DecideExcuseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Decide(
		c.Request.Context(),
		c.GetString("user_id"),
		c.Param("id"),
		req.Status,
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
