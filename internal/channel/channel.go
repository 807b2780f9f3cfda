package channel

// Conn is one acquired channel handle, good for a single exchange: one
// request message out, one response message in. The transport decides
// message boundaries; Conn carries whole messages only.
type Conn interface {
	// WriteMessage submits the full request in one unbuffered write.
	// A short write is a transport fault, not retried here.
	WriteMessage(payload []byte) error
	// ReadMessage blocks until the host has produced a complete
	// response and returns exactly those bytes.
	ReadMessage() ([]byte, error)
	Close() error
}

// Opener acquires a fresh Conn. Handles are per-call: acquired
// immediately before use and released on every exit path.
type Opener interface {
	Open() (Conn, error)
}

// Limits constrains per-exchange memory use.
type Limits struct {
	MaxResponseBytes int64
}

// DefaultLimits mirrors the host's response ceiling.
func DefaultLimits() Limits {
	return Limits{MaxResponseBytes: 8 * 1024 * 1024}
}

func (l Limits) withDefaults() Limits {
	if l.MaxResponseBytes <= 0 {
		l.MaxResponseBytes = DefaultLimits().MaxResponseBytes
	}
	return l
}
