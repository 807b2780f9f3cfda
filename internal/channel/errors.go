package channel

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyRead     = errors.New("channel: read returned no bytes")
	ErrResponseLimit = errors.New("channel: response reached the read limit")
)

// TransportError reports a channel acquisition or I/O fault. Op is one of
// "open", "write", "read", "close".
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("channel: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
