package leaverequest

import (
	"net/http"
	"strings"

	"go-hris-leave/internal/events"
	"go-hris-leave/internal/shared/apperror"
)

// Kind names a request workflow. Its value doubles as the RBAC resource.
type Kind string

const (
	KindVacation             Kind = events.KindVacation
	KindSickLeave            Kind = events.KindSickLeave
	KindVacationExtension    Kind = events.KindVacationExtension
	KindVacationCancellation Kind = events.KindVacationCancellation
)

var AllKinds = []Kind{KindVacation, KindSickLeave, KindVacationExtension, KindVacationCancellation}

var ErrUnknownKind = apperror.New(
	apperror.CodeInvalidInput,
	"unknown request kind",
	http.StatusBadRequest,
)

// ParseKind accepts snake_case or kebab-case, case-insensitively.
func ParseKind(v string) (Kind, error) {
	k := Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), "-", "_"))
	for _, known := range AllKinds {
		if k == known {
			return k, nil
		}
	}
	return "", ErrUnknownKind
}

func (k Kind) String() string {
	return string(k)
}
