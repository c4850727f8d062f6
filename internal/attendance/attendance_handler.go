package attendance

import (
	"context"
	"net/http"

	"go-hris-leave/internal/shared/apperror"
	"go-hris-leave/internal/shared/i18n"
	"go-hris-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	msg := i18n.Message(c.GetHeader("Accept-Language"), httpErr.Code, httpErr.Message)
	response.Error(c, httpErr.Status, httpErr.Code, msg, httpErr.Details)
}

func (h *Handler) writeValidationError(c *gin.Context, err error) {
	appErr := apperror.ToHTTP(apperror.MapValidationError(err))
	msg := i18n.Message(c.GetHeader("Accept-Language"), "VALIDATION_ERROR", appErr.Message)
	response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", msg, err.Error())
}

type clockAction func(ctx context.Context, employeeID string) (AttendanceResponse, error)

func (h *Handler) handleClock(c *gin.Context, action clockAction, status int) {
	resp, err := action(c.Request.Context(), c.GetString("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, status, resp, nil)
}

func (h *Handler) ClockIn(c *gin.Context) {
	h.handleClock(c, h.service.ClockIn, http.StatusCreated)
}

func (h *Handler) TakeBreak(c *gin.Context) {
	h.handleClock(c, h.service.TakeBreak, http.StatusOK)
}

func (h *Handler) BackToWork(c *gin.Context) {
	h.handleClock(c, h.service.BackToWork, http.StatusOK)
}

func (h *Handler) ClockOut(c *gin.Context) {
	h.handleClock(c, h.service.ClockOut, http.StatusOK)
}

func (h *Handler) GetToday(c *gin.Context) {
	resp, err := h.service.GetTodayStatus(c.Request.Context(), c.GetString("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPeriod(c *gin.Context) {
	var filter PeriodFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeValidationError(c, err)
		return
	}

	resp, err := h.service.GetPeriodHours(c.Request.Context(), c.GetString("employee_id"), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetHistory(c *gin.Context) {
	var filter HistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeValidationError(c, err)
		return
	}

	page := response.ParsePagination(c)
	rows, total, err := h.service.GetHistory(c.Request.Context(), c.GetString("employee_id"), filter, page)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page.Page, page.PageSize)
	response.Success(c, http.StatusOK, rows, &meta)
}
