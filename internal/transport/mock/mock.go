package mock

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"elmlink/internal/transport"
)

// Transport is a scripted in-memory transport used for demo mode and tests.
// Replies are keyed by the exact command text; commands without a stub get
// the default reply. Every sent command is recorded in order.
type Transport struct {
	mu           sync.Mutex
	replies      map[string]string
	replyFuncs   map[string]func() string
	failures     map[string]error
	defaultReply string
	sent         []string
	lines        chan transport.Line
	connected    bool
}

// New creates a mock transport that answers every command with "OK" and
// the reset command with an adapter identification string.
func New() *Transport {
	t := &Transport{
		replies:      make(map[string]string),
		replyFuncs:   make(map[string]func() string),
		failures:     make(map[string]error),
		defaultReply: "OK",
	}
	t.Stub("ATZ", "ELM327 v1.5")
	return t
}

// Stub sets a fixed reply for a command.
func (t *Transport) Stub(cmd, reply string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replies[cmd] = reply
}

// StubFunc sets a dynamic reply for a command, evaluated per send.
func (t *Transport) StubFunc(cmd string, fn func() string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replyFuncs[cmd] = fn
}

// Silence makes a command produce no reply at all.
func (t *Transport) Silence(cmd string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.replyFuncs, cmd)
	t.replies[cmd] = ""
}

// FailCommand makes Send return err for the given command.
func (t *Transport) FailCommand(cmd string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures[cmd] = err
}

// Sent returns a copy of the commands sent so far, in order.
func (t *Transport) Sent() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.sent))
	copy(out, t.sent)
	return out
}

// Inject delivers an unsolicited line, as if the adapter had sent it on
// its own.
func (t *Transport) Inject(line string) {
	t.mu.Lock()
	ch := t.lines
	t.mu.Unlock()
	if ch != nil {
		ch <- transport.Line{Text: line, At: time.Now()}
	}
}

func (t *Transport) Connect() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.connected {
		return nil
	}
	t.lines = make(chan transport.Line, 64)
	t.connected = true
	return nil
}

func (t *Transport) Disconnect() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.connected {
		return nil
	}
	t.connected = false
	close(t.lines)
	return nil
}

func (t *Transport) Send(line string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.connected {
		return transport.ErrNotConnected
	}

	t.sent = append(t.sent, line)

	if err, ok := t.failures[line]; ok {
		return err
	}

	reply, ok := t.replies[line]
	if fn, fok := t.replyFuncs[line]; fok {
		reply, ok = fn(), true
	}
	if !ok {
		reply = t.defaultReply
	}
	if reply != "" {
		t.lines <- transport.Line{Text: reply, At: time.Now()}
	}
	return nil
}

func (t *Transport) Lines() <-chan transport.Line {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lines
}

// NewSimulated returns a mock transport that behaves like an ELM327 on a
// running engine: RPM, speed and coolant temperature random-walk between
// sends, the way a live vehicle drifts.
func NewSimulated() *Transport {
	t := New()

	rpm := 800
	speed := 50
	coolant := 75

	t.StubFunc("010C", func() string {
		rpm += rand.Intn(201) - 100
		if rpm < 600 {
			rpm = 600
		}
		if rpm > 4000 {
			rpm = 4000
		}
		v := rpm * 4
		return fmt.Sprintf("410C%02X%02X", v/256, v%256)
	})
	t.StubFunc("010D", func() string {
		speed += rand.Intn(11) - 5
		if speed < 0 {
			speed = 0
		}
		if speed > 160 {
			speed = 160
		}
		return fmt.Sprintf("410D%02X", speed)
	})
	t.StubFunc("0105", func() string {
		coolant += rand.Intn(3) - 1
		if coolant < 60 {
			coolant = 60
		}
		if coolant > 110 {
			coolant = 110
		}
		return fmt.Sprintf("4105%02X", coolant+40)
	})
	t.Stub("ATRV", "12.6V")
	t.Stub("ATDPN", "A6")

	return t
}

var _ transport.Transport = (*Transport)(nil)

// SentContains reports whether cmd was sent.
func (t *Transport) SentContains(cmd string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range t.sent {
		if strings.EqualFold(s, cmd) {
			return true
		}
	}
	return false
}
