package elm

import (
	"sync"
	"time"

	"elmlink/internal/elm/pid"
)

// Callback receives a decoded value and its measurement time. Callbacks run
// synchronously on the receive goroutine and must not block it
// indefinitely; that is a caller obligation.
type Callback func(v pid.Value, at time.Time)

// RawCallback observes every received line before decode is attempted.
type RawCallback func(line string, at time.Time)

// Subscription is the stable removal handle for a registered callback.
// Funcs are not comparable in Go, so removal goes through the handle.
type Subscription struct {
	pid   byte
	raw   bool
	fn    Callback
	rawFn RawCallback
}

// fanout keeps per-PID subscriber lists in insertion order, plus the raw
// line observers. Notification snapshots the list under lock so subscribers
// may subscribe/unsubscribe while a notification is in flight.
type fanout struct {
	mu   sync.Mutex
	subs map[byte][]*Subscription
	raw  []*Subscription
}

func newFanout() *fanout {
	return &fanout{subs: make(map[byte][]*Subscription)}
}

func (f *fanout) subscribe(p byte, fn Callback) *Subscription {
	s := &Subscription{pid: p, fn: fn}
	f.mu.Lock()
	f.subs[p] = append(f.subs[p], s)
	f.mu.Unlock()
	return s
}

func (f *fanout) observeRaw(fn RawCallback) *Subscription {
	s := &Subscription{raw: true, rawFn: fn}
	f.mu.Lock()
	f.raw = append(f.raw, s)
	f.mu.Unlock()
	return s
}

// unsubscribe removes s; removing an absent subscription is a no-op.
func (f *fanout) unsubscribe(s *Subscription) {
	if s == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if s.raw {
		f.raw = remove(f.raw, s)
		return
	}
	f.subs[s.pid] = remove(f.subs[s.pid], s)
}

func (f *fanout) notify(p byte, v pid.Value, at time.Time) {
	f.mu.Lock()
	snapshot := make([]*Subscription, len(f.subs[p]))
	copy(snapshot, f.subs[p])
	f.mu.Unlock()

	for _, s := range snapshot {
		s.fn(v, at)
	}
}

func (f *fanout) notifyRaw(line string, at time.Time) {
	f.mu.Lock()
	snapshot := make([]*Subscription, len(f.raw))
	copy(snapshot, f.raw)
	f.mu.Unlock()

	for _, s := range snapshot {
		s.rawFn(line, at)
	}
}

// clear drops every subscription and observer.
func (f *fanout) clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = make(map[byte][]*Subscription)
	f.raw = nil
}

func remove(list []*Subscription, s *Subscription) []*Subscription {
	for i, q := range list {
		if q == s {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
