package protocol

import "fmt"

// EncodingError reports a request that could not be encoded. It is a
// caller bug and is raised before any channel I/O happens.
type EncodingError struct {
	Reason string
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("protocol: encode: %s", e.Reason)
	}
	return fmt.Sprintf("protocol: encode: %s: %v", e.Reason, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// ProtocolError reports a response the host produced that violates the
// wire contract: not UTF-8, not JSON, not an object, or mistyped keys.
type ProtocolError struct {
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("protocol: malformed response: %s", e.Reason)
	}
	return fmt.Sprintf("protocol: malformed response: %s: %v", e.Reason, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// ToolError reports a logical failure from the tool itself. Message is
// the host's text verbatim; it is opaque and must not be parsed.
type ToolError struct {
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("protocol: tool error: %s", e.Message)
}
