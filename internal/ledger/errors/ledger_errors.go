package ledgererrors

import (
	"net/http"

	"go-hris-leave/internal/shared/apperror"
)

var (
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"insufficient vacation balance",
		http.StatusConflict,
	)
	ErrAccountNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance account not found",
		http.StatusNotFound,
	)
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"number of days must be positive",
		http.StatusBadRequest,
	)
	ErrRefundExceedsUsed = apperror.New(
		apperror.CodeInvalidState,
		"refund exceeds used vacation days",
		http.StatusConflict,
	)
	ErrUnboundLedger = apperror.New(
		apperror.CodeInternalError,
		"ledger mutation outside a transaction",
		http.StatusInternalServerError,
	)
)
