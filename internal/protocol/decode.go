package protocol

import (
	"encoding/json"
	"unicode/utf8"
)

// DecodeResponse parses one response document and classifies the outcome.
//
// An "error" key wins over any "result" key: its string value is returned
// verbatim as *ToolError. Otherwise the value under "result" is decoded
// into native JSON values; an absent "result" key means a nil result.
// Anything that violates the wire contract is a *ProtocolError, distinct
// from a host-reported tool failure.
func DecodeResponse(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, &ProtocolError{Reason: "empty response"}
	}
	if !utf8.Valid(data) {
		return nil, &ProtocolError{Reason: "response is not valid UTF-8"}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ProtocolError{Reason: "response is not a JSON object", Err: err}
	}
	if doc == nil {
		// json.Unmarshal accepts a bare null without touching the map.
		return nil, &ProtocolError{Reason: "response is not a JSON object"}
	}

	if raw, ok := doc["error"]; ok {
		// Unmarshal through a pointer: a bare null is a no-op on a plain
		// string and would masquerade as an empty tool error.
		var message *string
		if err := json.Unmarshal(raw, &message); err != nil || message == nil {
			return nil, &ProtocolError{Reason: "error value is not a string", Err: err}
		}
		return nil, &ToolError{Message: *message}
	}

	raw, ok := doc["result"]
	if !ok {
		return nil, nil
	}
	var result any
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &ProtocolError{Reason: "result value is not valid JSON", Err: err}
	}
	return result, nil
}
