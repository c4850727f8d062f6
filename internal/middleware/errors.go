package middleware

import (
	"net/http"

	"go-hris-leave/internal/shared/apperror"
	"go-hris-leave/internal/shared/i18n"
	"go-hris-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	CodeTokenExpired        = "TOKEN_EXPIRED"
	CodeInvalidToken        = "INVALID_TOKEN"
	CodeTooManyRequests     = "TOO_MANY_REQUESTS"
	CodeIdempotencyConflict = "IDEMPOTENCY_CONFLICT"
)

var (
	ErrTokenNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"Token not found",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		CodeInvalidToken,
		"Invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		CodeTokenExpired,
		"Token has expired",
		http.StatusUnauthorized,
	)
	ErrMissingEmployeeClaim = apperror.New(
		CodeInvalidToken,
		"Employee ID not found in token",
		http.StatusUnauthorized,
	)
	ErrTooManyRequests = apperror.New(
		CodeTooManyRequests,
		"Too many requests, try again later",
		http.StatusTooManyRequests,
	)
	ErrRequestInProgress = apperror.New(
		CodeIdempotencyConflict,
		"A request with this Idempotency-Key is still being processed",
		http.StatusConflict,
	)
)

func abortWithError(c *gin.Context, err *apperror.AppError, details any) {
	msg := i18n.Message(c.GetHeader("Accept-Language"), err.Code, err.Message)
	response.Error(c, err.HTTPStatus, err.Code, msg, details)
	c.Abort()
}
