package cancellationerrors

import (
	"net/http"

	"go-hris-leave/internal/shared/apperror"
)

var (
	ErrCancellationNotFound = apperror.New(
		apperror.CodeNotFound,
		"vacation cancellation request not found",
		http.StatusNotFound,
	)
	ErrInvalidCancellationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid vacation cancellation id",
		http.StatusBadRequest,
	)
	ErrCancellationRequestPending = apperror.New(
		apperror.CodeCancellationRequestPending,
		"a cancellation request for this vacation is already pending",
		http.StatusConflict,
	)
)
