package extensionerrors

import (
	"net/http"

	"go-hris-leave/internal/shared/apperror"
)

var (
	ErrExtensionNotFound = apperror.New(
		apperror.CodeNotFound,
		"vacation extension request not found",
		http.StatusNotFound,
	)
	ErrInvalidExtensionID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid vacation extension id",
		http.StatusBadRequest,
	)
	ErrExtensionRequestPending = apperror.New(
		apperror.CodeExtensionRequestPending,
		"an extension request for this vacation is already pending",
		http.StatusConflict,
	)
)
