package fieldstream

import (
	"errors"
	"fmt"
)

var (
	ErrTruncatedInput   = errors.New("fieldstream: truncated input")
	ErrMalformedFraming = errors.New("fieldstream: malformed framing")
	ErrInputTooLarge    = errors.New("fieldstream: input too large")
	ErrOutOfBounds      = errors.New("fieldstream: offset out of bounds")
)

// DecodeError reports where a decode stopped. Err is one of the sentinels.
type DecodeError struct {
	Offset int
	State  State
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%v at offset %d (%s)", e.Err, e.Offset, e.State)
	}
	return fmt.Sprintf("%v: %s at offset %d (%s)", e.Err, e.Reason, e.Offset, e.State)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(off int, state State, err error, reason string) error {
	return &DecodeError{Offset: off, State: state, Reason: reason, Err: err}
}
