package form

import (
	"errors"
	"fmt"
)

var (
	ErrNoImage      = errors.New("no image selected")
	ErrNameRequired = errors.New("name required when text is included")
	ErrNoResult     = errors.New("no image to download")
	ErrInFlight     = errors.New("generation already in progress")
)

// Kind classifies a failure by where it came from. All kinds are shown to
// the user the same way.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindTransport   Kind = "transport"
	KindApplication Kind = "application"
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

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

func kindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

func IsValidation(err error) bool {
	return kindOf(err) == KindValidation
}

func IsTransport(err error) bool {
	return kindOf(err) == KindTransport
}

func IsApplication(err error) bool {
	return kindOf(err) == KindApplication
}

// MessageOf returns the user facing message of err, or the generic failure
// message for errors that did not come from the controller.
func MessageOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Msg
	}
	return MsgGenerateError
}
