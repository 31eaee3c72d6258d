package transport

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"elmlink/pkg/log"

	"github.com/tarm/serial"
	"go.uber.org/zap"
)

const (
	// CR terminates every command sent to the adapter.
	CR = "\r"

	// Prompt is emitted by the adapter when it is ready for the next
	// command. It also terminates the preceding reply.
	Prompt = '>'

	defaultReadTimeout = 100 * time.Millisecond
)

// Config holds serial port settings for an ELM327-class adapter.
type Config struct {
	Port        string
	Baud        int
	ReadTimeout time.Duration
}

// Serial is a Transport backed by a serial port (tarm/serial). A reader
// goroutine frames incoming bytes into lines split on CR, LF and the '>'
// prompt, filtering non-printable bytes.
type Serial struct {
	cfg Config

	mu      sync.Mutex
	port    io.ReadWriteCloser
	lines   chan Line
	closing chan struct{}
}

// NewSerial creates a serial transport. The port is not opened until
// Connect.
func NewSerial(cfg Config) *Serial {
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	return &Serial{cfg: cfg}
}

func (t *Serial) Connect() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port != nil {
		return nil
	}

	p, err := serial.OpenPort(&serial.Config{
		Name:        t.cfg.Port,
		Baud:        t.cfg.Baud,
		ReadTimeout: t.cfg.ReadTimeout,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	})
	if err != nil {
		return fmt.Errorf("failed to open port %s: %w", t.cfg.Port, err)
	}

	t.port = p
	t.lines = make(chan Line, 16)
	t.closing = make(chan struct{})

	go frameLines(p, t.lines, t.closing)

	log.Info("serial port opened", zap.String("port", t.cfg.Port), zap.Int("baud", t.cfg.Baud))
	return nil
}

func (t *Serial) Disconnect() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		return nil
	}

	close(t.closing)
	err := t.port.Close()
	t.port = nil
	return err
}

func (t *Serial) Send(line string) error {
	t.mu.Lock()
	port := t.port
	t.mu.Unlock()

	if port == nil {
		return ErrNotConnected
	}

	full := line + CR
	n, err := port.Write([]byte(full))
	if err != nil {
		return fmt.Errorf("write %q: %w", line, err)
	}
	if n != len(full) {
		return fmt.Errorf("write %q: incomplete write: %d/%d bytes", line, n, len(full))
	}

	log.Debug("command sent", zap.String("command", line))
	return nil
}

func (t *Serial) Lines() <-chan Line {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lines
}

// frameLines reads the port byte by byte and emits complete lines. The
// underlying serial read times out periodically (returning io.EOF on tarm
// ports), which keeps the loop responsive to closing.
func frameLines(r io.Reader, lines chan<- Line, closing <-chan struct{}) {
	defer close(lines)

	reader := bufio.NewReader(r)
	buf := make([]byte, 1)
	var sb strings.Builder

	for {
		select {
		case <-closing:
			return
		default:
		}

		n, err := reader.Read(buf)
		if err != nil {
			if err == io.EOF {
				time.Sleep(10 * time.Millisecond)
				continue
			}
			// Port closed or fatal read error.
			return
		}
		if n == 0 {
			continue
		}

		b := buf[0]
		switch {
		case b == '\r' || b == '\n' || b == Prompt:
			if s := strings.TrimSpace(sb.String()); s != "" {
				select {
				case lines <- Line{Text: s, At: time.Now()}:
				case <-closing:
					return
				}
			}
			sb.Reset()
		case b >= 32 && b <= 126:
			sb.WriteByte(b)
		}
	}
}
