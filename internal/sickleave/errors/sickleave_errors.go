package sickleaveerrors

import (
	"net/http"

	"go-hris-leave/internal/shared/apperror"
)

var (
	ErrSickLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"sick leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidSickLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid sick leave id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
)
