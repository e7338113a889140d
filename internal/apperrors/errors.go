package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindInvalidState
	KindConflict
	KindAlreadyFinalized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindInvalidState:
		return "invalid_state"
	case KindConflict:
		return "conflict"
	case KindAlreadyFinalized:
		return "already_finalized"
	}
	return "unknown"
}

// Error is the failure type returned by every service operation. It
// carries the attempted operation and, where known, the interview id and
// its status at the time of the failure, so callers can decide whether
// to retry or surface the error.
type Error struct {
	Kind        Kind
	Op          string
	InterviewID uint
	Status      string
	Msg         string
}

func (e *Error) Error() string {
	if e.InterviewID != 0 && e.Status != "" {
		return fmt.Sprintf("%s: %s (interview %d, status %s)", e.Op, e.Msg, e.InterviewID, e.Status)
	}
	if e.InterviewID != 0 {
		return fmt.Sprintf("%s: %s (interview %d)", e.Op, e.Msg, e.InterviewID)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func Validation(op, msg string) *Error {
	return &Error{Kind: KindValidation, Op: op, Msg: msg}
}

func NotFound(op, msg string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Msg: msg}
}

func Forbidden(op string, interviewID uint, msg string) *Error {
	return &Error{Kind: KindForbidden, Op: op, InterviewID: interviewID, Msg: msg}
}

func InvalidState(op string, interviewID uint, status, msg string) *Error {
	return &Error{Kind: KindInvalidState, Op: op, InterviewID: interviewID, Status: status, Msg: msg}
}

func Conflict(op string, interviewID uint, msg string) *Error {
	return &Error{Kind: KindConflict, Op: op, InterviewID: interviewID, Msg: msg}
}

func AlreadyFinalized(op string, interviewID uint) *Error {
	return &Error{Kind: KindAlreadyFinalized, Op: op, InterviewID: interviewID, Msg: "analysis already finalized"}
}

// KindOf unwraps err and returns its Kind, or KindUnknown for errors
// raised outside this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
