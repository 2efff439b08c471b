package attendance

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	attendanceerrors "go-attend/internal/attendance/errors"
	"go-attend/internal/shared/apperror"
	"go-attend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// NewHandlerWithRedis enables idempotency-result caching on the mark routes.
func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Message)
}

// daysParam validates the window; an explicit zero or garbage value is an
// input error, an oversized one just clamps.
func daysParam(c *gin.Context) (int, error) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 {
		return 0, attendanceerrors.ErrInvalidDays
	}
	if days > 365 {
		days = 365
	}
	return days, nil
}

// GetMine serves the caller's own history.
func (h *Handler) GetMine(c *gin.Context) {
	days, err := daysParam(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp, err := h.service.GetHistory(c.Request.Context(), c.GetString("user_id"), days)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// GetForUser serves another user's history, admin only.
func (h *Handler) GetForUser(c *gin.Context) {
	days, err := daysParam(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp, err := h.service.GetHistory(c.Request.Context(), c.Param("userId"), days)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

func (h *Handler) GetAllEmployees(c *gin.Context) {
	days, err := daysParam(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp, err := h.service.GetAllEmployees(c.Request.Context(), days)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

func (h *Handler) ExportReport(c *gin.Context) {
	days, err := daysParam(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	buf, err := BuildReport(c.Request.Context(), h.service, days)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("attendance-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *Handler) MarkArrival(c *gin.Context) {
	var req MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if h.rdb != nil {
		if lk := c.GetString("idempotency_lock_key"); lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	resp, err := h.service.MarkArrival(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.cacheResult(c, resp)
	response.JSON(c, http.StatusCreated, resp)
}

func (h *Handler) MarkExit(c *gin.Context) {
	var req MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if h.rdb != nil {
		if lk := c.GetString("idempotency_lock_key"); lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	resp, err := h.service.MarkExit(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.cacheResult(c, resp)
	response.JSON(c, http.StatusOK, resp)
}

func (h *Handler) cacheResult(c *gin.Context, resp RecordResponse) {
	if h.rdb == nil {
		return
	}
	ck := c.GetString("idempotency_cache_key")
	if ck == "" {
		return
	}
	if payload, err := json.Marshal(resp); err == nil {
		_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
	}
}
