package elm

import (
	"errors"
	"fmt"
)

// Sentinel errors for the session core.
var (
	// ErrNotInitialized indicates an operation was attempted before the
	// handshake completed.
	ErrNotInitialized = errors.New("session not initialized")

	// ErrDisposed indicates the session has been closed.
	ErrDisposed = errors.New("session disposed")

	// ErrInvalidDecoder indicates a decoder type could not report a usable
	// PID.
	ErrInvalidDecoder = errors.New("invalid decoder")
)

// TransportError wraps a send or receive failure at the transport boundary.
// It is surfaced to the caller, never retried here.
type TransportError struct {
	Op    string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s failed: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// HandshakeError reports a failed initialization command, carrying the
// adapter's reply when there was one.
type HandshakeError struct {
	Command string
	Reply   string
	Cause   error
}

func (e *HandshakeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("handshake command %s failed: %v", e.Command, e.Cause)
	}
	return fmt.Sprintf("handshake command %s failed: adapter replied %q", e.Command, e.Reply)
}

func (e *HandshakeError) Unwrap() error {
	return e.Cause
}
