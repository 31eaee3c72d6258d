package transport

import (
	"errors"
	"time"
)

// ErrNotConnected is returned by Send when the transport has no open
// connection.
var ErrNotConnected = errors.New("transport not connected")

// Line is a single text line received from the adapter. At is the arrival
// time of the line, which downstream consumers treat as the measurement time.
type Line struct {
	Text string
	At   time.Time
}

// Transport is a duplex line-oriented byte-stream to an ELM327-class
// adapter. Implementations frame the raw byte stream into discrete lines
// (CR- or prompt-delimited) and deliver them on the Lines channel.
//
// The Lines channel is created by Connect and closed by Disconnect or on a
// fatal read error, so a consumer can range over it.
type Transport interface {
	Connect() error
	Disconnect() error
	Send(line string) error
	Lines() <-chan Line
}
