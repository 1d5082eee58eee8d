package services

import "errors"

// Store-level sentinels. GORM stores translate constraint violations and
// missing rows into these so the services never inspect driver errors.
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateCode    = errors.New("token code already exists")
	ErrDuplicateMatric  = errors.New("application with this matric number already exists")
	ErrDuplicateStudent = errors.New("student profile already exists for this email")
	ErrTokenConsumed    = errors.New("token already consumed")
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindNotFound
	KindUpstream
	KindInternal
)

// Error is the one error type handlers map onto HTTP statuses. Expected
// rejections (validation, conflict) travel through the same type as faults,
// distinguished only by Kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }
func NotFoundErr(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}
func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf classifies any error for HTTP mapping; unknown errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
