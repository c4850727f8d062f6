package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Leave and attendance business codes. These are part of the public API and
// must stay stable.
const (
	CodeInvalidDate                   = "INVALID_DATE"
	CodeInvalidDateRange              = "INVALID_DATE_RANGE"
	CodeReturnBeforeDeparture         = "RETURN_BEFORE_DEPARTURE"
	CodeDayCountMismatch              = "DAY_COUNT_MISMATCH"
	CodeOverlapConflict               = "OVERLAP_CONFLICT"
	CodeEmployeeNotFoundOrInactive    = "EMPLOYEE_NOT_FOUND_OR_INACTIVE"
	CodeAlreadyProcessed              = "ALREADY_PROCESSED"
	CodeInvalidStatus                 = "INVALID_STATUS"
	CodeInsufficientBalance           = "INSUFFICIENT_BALANCE"
	CodeNotOwner                      = "NOT_OWNER"
	CodeCanOnlyExtendApproved         = "CAN_ONLY_EXTEND_APPROVED"
	CodeExtendToDateMustBeAfterReturn = "EXTEND_TO_DATE_MUST_BE_AFTER_RETURN"
	CodeExtensionRequestPending       = "EXTENSION_REQUEST_PENDING"
	CodeCannotCancel                  = "CANNOT_CANCEL"
	CodeCancellationRequestPending    = "CANCELLATION_REQUEST_PENDING"
	CodeAlreadyClockedIn              = "ALREADY_CLOCKED_IN"
	CodeAlreadyClockedOut             = "ALREADY_CLOCKED_OUT"
	CodeNoClockInFound                = "NO_CLOCK_IN_FOUND"
	CodeAlreadyOnBreak                = "ALREADY_ON_BREAK"
	CodeNotOnBreak                    = "NOT_ON_BREAK"
	CodeUnclosedBreak                 = "UNCLOSED_BREAK"
	CodeCannotClockOutOnBreak         = "CANNOT_CLOCK_OUT_ON_BREAK"
)
