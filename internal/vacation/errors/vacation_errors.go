package vacationerrors

import (
	"net/http"

	"go-hris-leave/internal/shared/apperror"
)

var (
	ErrVacationNotFound = apperror.New(
		apperror.CodeNotFound,
		"vacation request not found",
		http.StatusNotFound,
	)
	ErrInvalidVacationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid vacation id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeNotOwner,
		"vacation request belongs to another employee",
		http.StatusForbidden,
	)
	ErrCanOnlyExtendApproved = apperror.New(
		apperror.CodeCanOnlyExtendApproved,
		"only approved vacations can be extended",
		http.StatusConflict,
	)
	ErrExtendToDateMustBeAfterReturn = apperror.New(
		apperror.CodeExtendToDateMustBeAfterReturn,
		"extend_to_date must be after the return day",
		http.StatusBadRequest,
	)
	ErrCannotCancel = apperror.New(
		apperror.CodeCannotCancel,
		"only pending or approved vacations can be cancelled",
		http.StatusConflict,
	)
)
