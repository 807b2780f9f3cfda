package protocol

import (
	"encoding/json"
	"strings"
)

// Request is one host call on the wire.
type Request struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// EncodeRequest builds the request document for one call. The result is
// exactly one UTF-8 JSON document with no length prefix or delimiter;
// message boundaries belong to the channel transport.
//
// A blank name or args that cannot be marshaled fail with *EncodingError
// before any I/O is attempted.
func EncodeRequest(name string, args map[string]any) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &EncodingError{Reason: "tool name is empty"}
	}
	if args == nil {
		args = map[string]any{}
	}
	buf, err := json.Marshal(Request{Name: name, Args: args})
	if err != nil {
		return nil, &EncodingError{Reason: "args are not JSON-serializable", Err: err}
	}
	return buf, nil
}
