package sickleave

import (
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
	l := zap.L().Named("sickleave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sickleave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("sick leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	msg := i18n.Message(c.GetHeader("Accept-Language"), httpErr.Code, httpErr.Message)
	response.Error(c, httpErr.Status, httpErr.Code, msg, httpErr.Details)
}

func (h *Handler) writeValidationError(c *gin.Context, err error) {
	appErr := apperror.ToHTTP(apperror.MapValidationError(err))
	msg := i18n.Message(c.GetHeader("Accept-Language"), "VALIDATION_ERROR", appErr.Message)
	response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", msg, err.Error())
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateSickLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create sick leave bind failed", zap.Error(err))
		h.writeValidationError(c, err)
		return
	}

	actorID := c.GetString("employee_id")
	h.logger.Debug("http create sick leave", zap.String("employee_id", actorID))

	resp, err := h.service.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update sick leave status bind failed", zap.Error(err))
		h.writeValidationError(c, err)
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), c.GetString("employee_id"), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	var filter ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeValidationError(c, err)
		return
	}

	leaves, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page := response.ParsePagination(c)
	start, end := response.Window(len(leaves), page)
	meta := response.NewPaginationMeta(int64(len(leaves)), page.Page, page.PageSize)
	response.Success(c, http.StatusOK, leaves[start:end], &meta)
}

func (h *Handler) GetMine(c *gin.Context) {
	leaves, err := h.service.ListByEmployee(c.Request.Context(), c.GetString("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, leaves, nil)
}
