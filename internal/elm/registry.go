package elm

import (
	"reflect"
	"sync"

	"elmlink/internal/elm/pid"
)

// registry is the bidirectional decoder-type <-> PID mapping. It is
// populated lazily on first use and never evicted: PIDs are fixed by the
// OBD-II standard for the process lifetime.
//
// Concurrent first resolutions of the same type are resolved
// first-writer-wins; the mapping within a mode stays bijective (each PID
// belongs to at most one decoder type).
type registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]byte
	byPID  map[byte]pid.Decoder
}

func newRegistry() *registry {
	return &registry{
		byType: make(map[reflect.Type]byte),
		byPID:  make(map[byte]pid.Decoder),
	}
}

// resolve returns the PID claimed by the decoder's type, caching both
// directions on first use.
func (r *registry) resolve(proto pid.Decoder) (byte, error) {
	if proto == nil {
		return 0, ErrInvalidDecoder
	}
	t := reflect.TypeOf(proto)

	r.mu.RLock()
	p, ok := r.byType[t]
	r.mu.RUnlock()
	if ok {
		return p, nil
	}

	p = proto.PID()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another caller may have won the race while we were unlocked.
	if cached, ok := r.byType[t]; ok {
		return cached, nil
	}
	if prev, ok := r.byPID[p]; ok && reflect.TypeOf(prev) != t {
		// Two decoder types claiming one PID breaks the bijection.
		return 0, ErrInvalidDecoder
	}

	r.byType[t] = p
	r.byPID[p] = proto
	return p, nil
}

// lookup returns the decoder registered for a PID, if any.
func (r *registry) lookup(p byte) (pid.Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byPID[p]
	return d, ok
}
