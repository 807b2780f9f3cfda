package channel

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// DefaultDevicePath is the well-known host-call endpoint inside the guest.
const DefaultDevicePath = "/dev/hcall"

// Device opens the host-call character device. The device is raw and
// unbuffered: the host observes each write as one logical message and
// each read returns one complete response.
type Device struct {
	Path   string
	Limits Limits
}

// NewDevice builds a Device opener for path, or the default endpoint
// when path is empty.
func NewDevice(path string, limits Limits) *Device {
	if path == "" {
		path = DefaultDevicePath
	}
	return &Device{Path: path, Limits: limits}
}

// Open acquires one handle on the device.
func (d *Device) Open() (Conn, error) {
	fd, err := unix.Open(d.Path, unix.O_RDWR, 0)
	if err != nil {
		return nil, &TransportError{Op: "open", Err: fmt.Errorf("%s: %w", d.Path, err)}
	}
	return &fdConn{file: os.NewFile(uintptr(fd), d.Path), limits: d.Limits.withDefaults()}, nil
}

// fdConn is a Conn over a raw file descriptor.
type fdConn struct {
	file   *os.File
	limits Limits
}

// NewFDConn wraps an already-open descriptor-backed file as a Conn.
func NewFDConn(file *os.File, limits Limits) Conn {
	return &fdConn{file: file, limits: limits.withDefaults()}
}

func (c *fdConn) WriteMessage(payload []byte) error {
	n, err := c.file.Write(payload)
	if err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	if n != len(payload) {
		return &TransportError{Op: "write", Err: io.ErrShortWrite}
	}
	return nil
}

func (c *fdConn) ReadMessage() ([]byte, error) {
	buf := make([]byte, c.limits.MaxResponseBytes)
	n, err := c.file.Read(buf)
	if err != nil {
		return nil, &TransportError{Op: "read", Err: err}
	}
	if n == 0 {
		return nil, &TransportError{Op: "read", Err: ErrEmptyRead}
	}
	if int64(n) == c.limits.MaxResponseBytes {
		// A buffer-filling read is indistinguishable from truncation;
		// refuse it rather than parse a possible prefix.
		return nil, &TransportError{Op: "read", Err: ErrResponseLimit}
	}
	return buf[:n], nil
}

func (c *fdConn) Close() error {
	if err := c.file.Close(); err != nil {
		return &TransportError{Op: "close", Err: err}
	}
	return nil
}
