package channel

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/danmuck/hcall/internal/testutil/testlog"
)

// pair builds a loopback stand-in for the host-call device: a unix
// socketpair where the test plays host on the peer end.
func pair(t *testing.T, limits Limits) (Conn, *os.File) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		t.Fatalf("socketpair: %v", err)
	}
	guest := os.NewFile(uintptr(fds[0]), "guest")
	host := os.NewFile(uintptr(fds[1]), "host")
	t.Cleanup(func() {
		host.Close()
	})
	conn := NewFDConn(guest, limits)
	t.Cleanup(func() {
		conn.Close()
	})
	return conn, host
}

func TestOpenMissingDevice(t *testing.T) {
	testlog.Start(t)
	dev := NewDevice("/dev/does-not-exist-hcall", Limits{})
	_, err := dev.Open()
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
	if transportErr.Op != "open" {
		t.Fatalf("unexpected op: %q", transportErr.Op)
	}
}

func TestNewDeviceDefaultPath(t *testing.T) {
	testlog.Start(t)
	dev := NewDevice("", Limits{})
	if dev.Path != DefaultDevicePath {
		t.Fatalf("unexpected path: %q", dev.Path)
	}
}

func TestWriteMessageReachesPeer(t *testing.T) {
	testlog.Start(t)
	conn, host := pair(t, Limits{})

	payload := []byte(`{"name":"echo","args":{}}`)
	if err := conn.WriteMessage(payload); err != nil {
		t.Fatalf("write: %v", err)
	}

	buf := make([]byte, 256)
	n, err := host.Read(buf)
	if err != nil {
		t.Fatalf("host read: %v", err)
	}
	if !bytes.Equal(buf[:n], payload) {
		t.Fatalf("unexpected bytes on peer: %s", buf[:n])
	}
}

func TestReadMessageReturnsPeerBytes(t *testing.T) {
	testlog.Start(t)
	conn, host := pair(t, Limits{})

	response := []byte(`{"result":"hi"}`)
	if _, err := host.Write(response); err != nil {
		t.Fatalf("host write: %v", err)
	}

	got, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, response) {
		t.Fatalf("unexpected response bytes: %s", got)
	}
}

func TestReadMessageAtLimitRejected(t *testing.T) {
	testlog.Start(t)
	conn, host := pair(t, Limits{MaxResponseBytes: 4})

	if _, err := host.Write([]byte("1234")); err != nil {
		t.Fatalf("host write: %v", err)
	}

	_, err := conn.ReadMessage()
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
	if transportErr.Op != "read" || !errors.Is(err, ErrResponseLimit) {
		t.Fatalf("unexpected transport error: %v", err)
	}
}

func TestReadMessagePeerClosed(t *testing.T) {
	testlog.Start(t)
	conn, host := pair(t, Limits{})

	if err := host.Close(); err != nil {
		t.Fatalf("host close: %v", err)
	}

	_, err := conn.ReadMessage()
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
	if transportErr.Op != "read" {
		t.Fatalf("unexpected op: %q", transportErr.Op)
	}
}
