package attendanceerrors

import (
	"net/http"

	"go-hris-leave/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeAlreadyClockedIn,
		"already clocked in today",
		http.StatusConflict,
	)
	ErrAlreadyClockedOut = apperror.New(
		apperror.CodeAlreadyClockedOut,
		"already clocked out today",
		http.StatusConflict,
	)
	ErrNoClockInFound = apperror.New(
		apperror.CodeNoClockInFound,
		"no clock-in found for today",
		http.StatusNotFound,
	)
	ErrAlreadyOnBreak = apperror.New(
		apperror.CodeAlreadyOnBreak,
		"already on break",
		http.StatusConflict,
	)
	ErrNotOnBreak = apperror.New(
		apperror.CodeNotOnBreak,
		"not on break",
		http.StatusConflict,
	)
	ErrUnclosedBreak = apperror.New(
		apperror.CodeUnclosedBreak,
		"an open break already exists",
		http.StatusConflict,
	)
	ErrCannotClockOutOnBreak = apperror.New(
		apperror.CodeCannotClockOutOnBreak,
		"end the break before clocking out",
		http.StatusConflict,
	)
)
