package errors

import (
	"errors"
	"net/http"
)

// Kind classifies a failure independently of the bounded context that raised it.
type Kind string

const (
	KindNotFound             Kind = "not-found"
	KindForbiddenRole        Kind = "forbidden-role"
	KindForbidden            Kind = "forbidden"
	KindUnauthorized         Kind = "unauthorized"
	KindShopClosed           Kind = "shop-closed"
	KindMinimumNotMet        Kind = "minimum-not-met"
	KindInvalidConfiguration Kind = "invalid-configuration"
	KindInvalidTransition    Kind = "invalid-transition"
	KindAlreadyCompleted     Kind = "already-completed"
	KindAlreadyCanceled      Kind = "already-canceled"
	KindInvalidArgument      Kind = "invalid-argument"
	KindAlreadyExists        Kind = "already-exists"
	KindNotEligible          Kind = "not-eligible"
	KindNoReviews            Kind = "no-reviews"
	KindEmptyRange           Kind = "empty-range"
	KindLimitExceeded        Kind = "limit-exceeded"
	KindConflict             Kind = "conflict"
)

// Error implements error so a Kind can be matched with errors.Is.
func (k Kind) Error() string { return string(k) }

// Error is a classified failure. Its message is returned verbatim by Error().
type Error struct {
	kind    Kind
	message string
}

// New builds a classified error, typically stored in a package-level sentinel.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

func (e *Error) Error() string { return e.message }

// Kind reports the failure class.
func (e *Error) Kind() Kind { return e.kind }

// Is matches a Kind target, so errors.Is(err, KindNotFound) holds for every not-found error.
// Sentinel identity is left to the == comparison errors.Is already makes.
func (e *Error) Is(target error) bool {
	if kind, ok := target.(Kind); ok {
		return kind == e.kind
	}
	return false
}

type kinded interface {
	Kind() Kind
}

// KindOf returns the first Kind found in the error chain.
func KindOf(err error) (Kind, bool) {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind(), true
	}
	return "", false
}

var kindStatus = map[Kind]int{
	KindNotFound:             http.StatusNotFound,
	KindForbiddenRole:        http.StatusForbidden,
	KindForbidden:            http.StatusForbidden,
	KindUnauthorized:         http.StatusUnauthorized,
	KindShopClosed:           http.StatusConflict,
	KindMinimumNotMet:        http.StatusConflict,
	KindInvalidConfiguration: http.StatusConflict,
	KindInvalidTransition:    http.StatusConflict,
	KindAlreadyCompleted:     http.StatusConflict,
	KindAlreadyCanceled:      http.StatusConflict,
	KindAlreadyExists:        http.StatusConflict,
	KindLimitExceeded:        http.StatusConflict,
	KindConflict:             http.StatusConflict,
	KindInvalidArgument:      http.StatusBadRequest,
	KindNotEligible:          http.StatusBadRequest,
	KindNoReviews:            http.StatusBadRequest,
	KindEmptyRange:           http.StatusBadRequest,
}

// StatusForKind maps a failure class to its HTTP status.
func StatusForKind(kind Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// MapKind is an ErrorMapper that turns classified errors into problems.
// The error message becomes the detail and the kind an extension member.
func MapKind(err error) (ProblemDetail, bool) {
	kind, ok := KindOf(err)
	if !ok {
		return ProblemDetail{}, false
	}
	status := StatusForKind(kind)
	var problem ProblemDetail
	switch status {
	case http.StatusNotFound:
		problem = ErrNotFound
	case http.StatusForbidden:
		problem = ErrForbidden
	case http.StatusUnauthorized:
		problem = ErrUnauthorized
	case http.StatusConflict:
		problem = ErrConflict
	case http.StatusBadRequest:
		problem = ErrBadRequest
		if kind == KindInvalidArgument {
			problem = ErrValidation
		}
	default:
		problem = ErrInternal
	}
	return problem.WithDetail(err.Error()).WithExtension("kind", string(kind)), true
}
