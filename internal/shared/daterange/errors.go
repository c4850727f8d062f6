package daterange

import (
	"net/http"

	"go-hris-leave/internal/shared/apperror"
)

var (
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidDate,
		"invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrReturnBeforeDeparture = apperror.New(
		apperror.CodeReturnBeforeDeparture,
		"return day must not be before departure day",
		http.StatusBadRequest,
	)
	ErrDayCountMismatch = apperror.New(
		apperror.CodeDayCountMismatch,
		"number of days does not match the date range",
		http.StatusBadRequest,
	)
	ErrOverlapConflict = apperror.New(
		apperror.CodeOverlapConflict,
		"request overlaps an existing pending or approved request",
		http.StatusConflict,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidDateRange,
		"start date must be before or equal to end date",
		http.StatusBadRequest,
	)
)
