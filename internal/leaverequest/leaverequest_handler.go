package leaverequest

import (
	"net/http"

	"go-hris-leave/internal/domain"
	"go-hris-leave/internal/middleware"
	"go-hris-leave/internal/shared/apperror"
	"go-hris-leave/internal/shared/i18n"
	"go-hris-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rbac    middleware.RBACService
	logger  *zap.Logger
}

func NewHandler(service Service, rbac middleware.RBACService, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leaverequest.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.handler")
	}
	return &Handler{service: service, rbac: rbac, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request call failed",
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

func (h *Handler) allowed(c *gin.Context, kind Kind, action string) (bool, error) {
	return h.rbac.Enforce(domain.EnforceRequest{
		EmployeeID: c.GetString("employee_id"),
		Resource:   kind.String(),
		Action:     action,
	})
}

// UpdateStatus authorizes against the kind in the path, so one route serves
// approvers of each workflow.
func (h *Handler) UpdateStatus(c *gin.Context) {
	kind, err := ParseKind(c.Param("kind"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	ok, err := h.allowed(c, kind, "approve")
	if err != nil {
		h.logger.Error("rbac enforce failed", zap.String("kind", kind.String()), zap.Error(err))
		h.writeServiceError(c, apperror.ErrInternal)
		return
	}
	if !ok {
		h.writeServiceError(c, apperror.ErrForbidden)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeValidationError(c, err)
		return
	}

	resp, err := h.service.UpdateRequestStatus(c.Request.Context(), c.GetString("employee_id"), kind, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// List merges the kinds the caller holds read_all on.
func (h *Handler) List(c *gin.Context) {
	var filter ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeValidationError(c, err)
		return
	}

	filter.Kinds = []Kind{}
	for _, kind := range AllKinds {
		ok, err := h.allowed(c, kind, "read_all")
		if err != nil {
			h.logger.Error("rbac enforce failed", zap.String("kind", kind.String()), zap.Error(err))
			h.writeServiceError(c, apperror.ErrInternal)
			return
		}
		if ok {
			filter.Kinds = append(filter.Kinds, kind)
		}
	}
	if len(filter.Kinds) == 0 {
		h.writeServiceError(c, apperror.ErrForbidden)
		return
	}

	rows, err := h.service.ListRequests(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writePage(c, rows)
}

func (h *Handler) GetMine(c *gin.Context) {
	rows, err := h.service.GetMyRequests(c.Request.Context(), c.GetString("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writePage(c, rows)
}

func (h *Handler) writePage(c *gin.Context, rows []RequestSummary) {
	page := response.ParsePagination(c)
	start, end := response.Window(len(rows), page)
	meta := response.NewPaginationMeta(int64(len(rows)), page.Page, page.PageSize)
	response.Success(c, http.StatusOK, rows[start:end], &meta)
}
