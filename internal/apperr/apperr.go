package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so handlers can pick a status code without
// inspecting storage internals.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindTransientStorage
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Storage wraps a backend/network failure. Callers never retry; the UI
// policy is notify-and-reload.
func Storage(err error, format string, args ...any) *Error {
	return &Error{Kind: KindTransientStorage, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindTransientStorage so
// unknown failures are treated as backend trouble rather than caller fault.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransientStorage
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
