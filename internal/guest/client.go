package guest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/hcall/internal/channel"
	"github.com/danmuck/hcall/internal/observability"
	"github.com/danmuck/hcall/internal/protocol"
)

// Config selects the channel endpoint for a Client.
type Config struct {
	// DevicePath overrides channel.DefaultDevicePath when set.
	DevicePath string
	Limits     channel.Limits
}

// Client invokes host-registered tools through the call channel. It is
// stateless across calls: every Call acquires a fresh handle and
// releases it before returning.
type Client struct {
	opener channel.Opener
	log    zerolog.Logger
}

// New builds a Client over the host-call character device.
func New(cfg Config) *Client {
	return NewWithOpener(channel.NewDevice(cfg.DevicePath, cfg.Limits))
}

// NewWithOpener builds a Client over any channel transport.
func NewWithOpener(opener channel.Opener) *Client {
	return &Client{opener: opener, log: log.Logger}
}

// WithLogger returns a copy of the client logging through logger.
func (c *Client) WithLogger(logger zerolog.Logger) *Client {
	clone := *c
	clone.log = logger
	return &clone
}

// Call performs one full host round trip for the named tool and returns
// the value the host placed under "result", decoded into native JSON
// values (nil when the host omitted it).
//
// The call blocks for as long as the host takes; the protocol carries no
// timeout or cancellation, so ctx is consulted only until the request
// has been transmitted. Callers needing bounded latency must wrap Call
// externally and accept that the channel handle stays blocked.
func (c *Client) Call(ctx context.Context, name string, args map[string]any) (any, error) {
	start := time.Now()
	callID := uuid.NewString()
	logger := c.log.With().Str("call_id", callID).Str("tool", name).Logger()

	result, err := c.roundTrip(ctx, logger, name, args)
	outcome := outcomeOf(err)
	observability.RecordCall(name, outcome, time.Since(start))
	if err != nil {
		logger.Debug().Err(err).Str("outcome", outcome).Dur("elapsed", time.Since(start)).Msg("call failed")
		return nil, err
	}
	logger.Debug().Dur("elapsed", time.Since(start)).Msg("call ok")
	return result, nil
}

func (c *Client) roundTrip(ctx context.Context, logger zerolog.Logger, name string, args map[string]any) (any, error) {
	payload, err := protocol.EncodeRequest(name, args)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn, err := c.opener.Open()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	logger.Trace().Int("request_bytes", len(payload)).Msg("transmit")
	if err := conn.WriteMessage(payload); err != nil {
		return nil, err
	}

	raw, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	logger.Trace().Int("response_bytes", len(raw)).Msg("received")

	return protocol.DecodeResponse(raw)
}

func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	var (
		encodingErr  *protocol.EncodingError
		transportErr *channel.TransportError
		protocolErr  *protocol.ProtocolError
		toolErr      *protocol.ToolError
	)
	switch {
	case errors.As(err, &encodingErr):
		return "encoding_error"
	case errors.As(err, &transportErr):
		return "transport_error"
	case errors.As(err, &protocolErr):
		return "protocol_error"
	case errors.As(err, &toolErr):
		return "tool_error"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
