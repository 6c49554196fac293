package sim

import "fmt"

// Code classifies simulation failures into the closed set the tick pipeline
// is allowed to produce.
type Code int

const (
	CodeUnauthorized Code = iota + 1
	CodeNotFound
	CodeInvalidState
	CodeResourceExhausted
)

func (c Code) String() string {
	switch c {
	case CodeUnauthorized:
		return "unauthorized"
	case CodeNotFound:
		return "not-found"
	case CodeInvalidState:
		return "invalid-state"
	case CodeResourceExhausted:
		return "resource-exhausted"
	default:
		return "unknown"
	}
}

// Error carries a failure code plus the entity and detail needed at the log
// boundary. Messages are rendered only when something actually prints them.
type Error struct {
	Code   Code
	Entity string
	Detail string
}

func (e *Error) Error() string {
	if e == nil {
		return "sim: nil error"
	}
	switch {
	case e.Entity != "" && e.Detail != "":
		return fmt.Sprintf("sim: %s: %s (%s)", e.Code, e.Entity, e.Detail)
	case e.Entity != "":
		return fmt.Sprintf("sim: %s: %s", e.Code, e.Entity)
	case e.Detail != "":
		return fmt.Sprintf("sim: %s: %s", e.Code, e.Detail)
	default:
		return fmt.Sprintf("sim: %s", e.Code)
	}
}

// Is matches any *Error carrying the same code, so callers can compare
// against the package sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok || e == nil || other == nil {
		return false
	}
	return e.Code == other.Code
}

var (
	ErrUnauthorized      = &Error{Code: CodeUnauthorized}
	ErrNotFound          = &Error{Code: CodeNotFound}
	ErrInvalidState      = &Error{Code: CodeInvalidState}
	ErrResourceExhausted = &Error{Code: CodeResourceExhausted}
)

// Unauthorized builds an authorization failure for the given sender.
func Unauthorized(sender string) *Error {
	return &Error{Code: CodeUnauthorized, Entity: sender}
}

// NotFound builds a missing-entity failure.
func NotFound(entity string) *Error {
	return &Error{Code: CodeNotFound, Entity: entity}
}

// InvalidState builds a failure for an entity in an unexpected state.
func InvalidState(entity, detail string) *Error {
	return &Error{Code: CodeInvalidState, Entity: entity, Detail: detail}
}

// ResourceExhausted builds a budget-exhaustion failure.
func ResourceExhausted(entity, detail string) *Error {
	return &Error{Code: CodeResourceExhausted, Entity: entity, Detail: detail}
}
