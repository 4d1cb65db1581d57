package schedule

import "errors"

// Kind classifies a domain failure so callers can branch without string
// matching. Notification/audit failures are never represented here: they are
// side effects and get logged, not returned.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindNotFound
	KindPolicy
)

type Error struct {
	Kind   Kind
	Code   string
	Reason string
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return e.Code
	}
	return e.Code + ": " + e.Reason
}

func Validation(code, reason string) *Error {
	return &Error{Kind: KindValidation, Code: code, Reason: reason}
}

func Conflict(code, reason string) *Error {
	return &Error{Kind: KindConflict, Code: code, Reason: reason}
}

func NotFound(code, reason string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Reason: reason}
}

func Policy(code, reason string) *Error {
	return &Error{Kind: KindPolicy, Code: code, Reason: reason}
}

func IsKind(err error, kind Kind) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
