package elm

import (
	"context"
	"sync"
	"time"

	"elmlink/internal/elm/pid"
)

// Reading is a typed measurement decoded from an adapter reply. At is the
// arrival time of the raw line, not the decode time.
type Reading struct {
	PID   byte
	Value pid.Value
	At    time.Time
}

// Result is what a pending command resolves to. Reading is nil when the
// reply carried no decodable data (AT command replies, "NO DATA", prompts).
type Result struct {
	Raw     string
	At      time.Time
	Reading *Reading
}

// outcome wraps a result or error delivered to a waiter.
type outcome struct {
	res Result
	err error
}

// Pending is the handle for an in-flight command.
type Pending struct {
	text string
	ch   chan outcome
}

// ledger tracks in-flight commands and matches incoming replies to them.
// The adapter is half-duplex and serializes replies, so matching is
// strictly FIFO: the next reply resolves the oldest pending entry.
type ledger struct {
	send func(string) error

	// issueMu serializes concurrent issuers so the pending queue order
	// always matches the order commands hit the wire.
	issueMu sync.Mutex

	mu      sync.Mutex
	pending []*Pending
}

func newLedger(send func(string) error) *ledger {
	return &ledger{send: send}
}

// issue records a pending entry and sends the command text. A send failure
// removes the entry again and is propagated, not retried.
func (l *ledger) issue(text string) (*Pending, error) {
	l.issueMu.Lock()
	defer l.issueMu.Unlock()

	p := &Pending{text: text, ch: make(chan outcome, 1)}

	l.mu.Lock()
	l.pending = append(l.pending, p)
	l.mu.Unlock()

	if err := l.send(text); err != nil {
		l.detach(p)
		return nil, &TransportError{Op: "send", Cause: err}
	}
	return p, nil
}

// resolve delivers res to the oldest pending entry. With nothing pending
// the reply is simply dropped here (fanout has already seen the line).
func (l *ledger) resolve(res Result) {
	l.mu.Lock()
	if len(l.pending) == 0 {
		l.mu.Unlock()
		return
	}
	p := l.pending[0]
	l.pending = l.pending[1:]
	l.mu.Unlock()

	p.ch <- outcome{res: res}
}

// wait blocks until the entry resolves or ctx is done. Cancellation
// detaches the entry so a late reply cannot resolve a stale waiter; it does
// not retract the already-transmitted command.
func (l *ledger) wait(ctx context.Context, p *Pending) (Result, error) {
	select {
	case out := <-p.ch:
		return out.res, out.err
	case <-ctx.Done():
		l.detach(p)
		// The reply may have been delivered while we were detaching.
		select {
		case out := <-p.ch:
			return out.res, out.err
		default:
		}
		return Result{}, ctx.Err()
	}
}

// detach removes p from the pending queue if still present.
func (l *ledger) detach(p *Pending) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, q := range l.pending {
		if q == p {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
}

// failAll resolves every pending entry with err. Called when the receive
// path ends so waiters do not hang on a dead transport.
func (l *ledger) failAll(err error) {
	l.mu.Lock()
	pending := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, p := range pending {
		p.ch <- outcome{err: err}
	}
}
