// Package pid holds the mode 01 ("show current data") decoder catalogue.
// Each decoder is a stateless byte-to-physical-unit mapping declared by its
// one-byte Parameter ID.
package pid

import (
	"fmt"
)

// Value is a decoded measurement in physical units. Values are immutable
// and carry no reference to the raw payload.
type Value interface {
	String() string
}

// Decoder turns a raw payload into a typed Value. PID reports the one-byte
// Parameter ID the decoder claims; ByteLength is the number of payload
// bytes the formula reads (informational, adapters may pad beyond it).
type Decoder interface {
	PID() byte
	ByteLength() int
	Decode(data []byte) (Value, error)
}

// MalformedPayloadError reports a payload that does not fit a decoder's
// formula domain.
type MalformedPayloadError struct {
	PID     byte
	Payload []byte
	Reason  string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed payload for PID %02X (% X): %s", e.PID, e.Payload, e.Reason)
}

// need returns a MalformedPayloadError unless data carries at least n bytes.
func need(p byte, data []byte, n int) error {
	if len(data) < n {
		return &MalformedPayloadError{
			PID:     p,
			Payload: data,
			Reason:  fmt.Sprintf("need %d bytes, got %d", n, len(data)),
		}
	}
	return nil
}
