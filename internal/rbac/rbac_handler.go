package rbac

import (
	"net/http"
	"strings"

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
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

// Enforce answers a permission question for the calling employee, letting
// clients hide actions the caller cannot perform.
func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest
	req.EmployeeID = c.GetString("employee_id")

	var body struct {
		Resource string `json:"resource" binding:"required"`
		Action   string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		appErr := apperror.ToHTTP(apperror.MapValidationError(err))
		msg := i18n.Message(c.GetHeader("Accept-Language"), "VALIDATION_ERROR", appErr.Message)
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", msg, err.Error())
		return
	}
	req.Resource = strings.TrimSpace(body.Resource)
	req.Action = strings.TrimSpace(body.Action)

	allowed, err := h.service.Enforce(req)
	if err != nil {
		h.logger.Error("http rbac enforce failed", zap.Error(err))
		httpErr := apperror.ToHTTP(err)
		msg := i18n.Message(c.GetHeader("Accept-Language"), httpErr.Code, httpErr.Message)
		response.Error(c, httpErr.Status, httpErr.Code, msg, nil)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed}, nil)
}
