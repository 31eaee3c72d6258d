// Package elm implements the client side of the ELM327 AT-command protocol:
// command/response correlation, typed PID decoding and subscription fanout
// over a line-oriented transport.
package elm

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"elmlink/internal/elm/pid"
	"elmlink/internal/transport"
	"elmlink/pkg/log"

	"go.uber.org/zap"
)

// State is the session lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Session is a single logical connection to one ELM327 adapter. The adapter
// is half-duplex: one command is outstanding at a time and the next line
// received answers the oldest issued command.
type Session struct {
	tr     transport.Transport
	ledger *ledger
	reg    *registry
	subs   *fanout

	mu    sync.Mutex
	state State
	done  chan struct{}
}

// NewSession creates a session over the given transport. The transport is
// not connected until Initialize.
func NewSession(tr transport.Transport) *Session {
	s := &Session{
		tr:   tr,
		reg:  newRegistry(),
		subs: newFanout(),
	}
	s.ledger = newLedger(tr.Send)
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Initialize connects the transport and runs the fixed handshake sequence
// (reset, echo off, linefeeds off, headers off, spacing off, protocol
// auto-detect) in strict order. Any failure aborts, leaves the session
// non-Ready and is surfaced to the caller; there is no partial-success
// state and no retry.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateReady:
		s.mu.Unlock()
		return nil
	case StateInitializing:
		s.mu.Unlock()
		return fmt.Errorf("initialization already in progress")
	case StateDisposed:
		s.mu.Unlock()
		return ErrDisposed
	}
	s.state = StateInitializing
	s.mu.Unlock()

	if err := s.tr.Connect(); err != nil {
		s.setState(StateUninitialized)
		return &TransportError{Op: "connect", Cause: err}
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.done = done
	s.mu.Unlock()
	go s.receiveLoop(s.tr.Lines(), done)

	for _, cmd := range handshake {
		res, err := s.command(ctx, cmd)
		if err != nil {
			s.abortInit()
			return &HandshakeError{Command: cmd, Cause: err}
		}
		if isErrorReply(res.Raw) {
			s.abortInit()
			return &HandshakeError{Command: cmd, Reply: res.Raw}
		}
		log.Debug("handshake command acknowledged",
			zap.String("command", cmd),
			zap.String("reply", res.Raw))
	}

	s.setState(StateReady)
	log.Info("adapter initialized")
	return nil
}

// Request issues a mode 01 data request for the decoder's PID and waits
// for the matching reply. A reply that carries no decodable data resolves
// to (nil, nil): no typed result, not an error. Cancellation via ctx
// detaches the waiter but does not retract the in-flight command.
func (s *Session) Request(ctx context.Context, proto pid.Decoder) (pid.Value, error) {
	if s.State() != StateReady {
		return nil, ErrNotInitialized
	}

	p, err := s.reg.resolve(proto)
	if err != nil {
		return nil, err
	}

	res, err := s.command(ctx, fmt.Sprintf("%02X%02X", ModeCurrentData, p))
	if err != nil {
		return nil, err
	}
	if res.Reading == nil {
		return nil, nil
	}
	return res.Reading.Value, nil
}

// Subscribe registers a callback for every decoded value of the decoder's
// PID. Callbacks fire in subscription order on the receive goroutine; the
// returned handle removes this registration.
func (s *Session) Subscribe(proto pid.Decoder, fn Callback) (*Subscription, error) {
	if s.State() == StateDisposed {
		return nil, ErrDisposed
	}
	p, err := s.reg.resolve(proto)
	if err != nil {
		return nil, err
	}
	return s.subs.subscribe(p, fn), nil
}

// Unsubscribe removes a subscription; removing one that is not present is
// a no-op.
func (s *Session) Unsubscribe(sub *Subscription) {
	s.subs.unsubscribe(sub)
}

// ObserveRaw registers an observer for every received line, fired before
// decode is attempted, for diagnostic consumers.
func (s *Session) ObserveRaw(fn RawCallback) *Subscription {
	return s.subs.observeRaw(fn)
}

// BatteryVoltage reads the adapter's measured supply voltage (ATRV).
func (s *Session) BatteryVoltage(ctx context.Context) (float64, error) {
	if s.State() != StateReady {
		return 0, ErrNotInitialized
	}
	res, err := s.command(ctx, CommandReadVoltage)
	if err != nil {
		return 0, err
	}
	return parseVoltage(res.Raw)
}

// ProtocolNumber reports the adapter's current protocol ID (ATDPN). A
// leading "A" marks an auto-detected protocol and is stripped.
func (s *Session) ProtocolNumber(ctx context.Context) (string, error) {
	if s.State() != StateReady {
		return "", ErrNotInitialized
	}
	res, err := s.command(ctx, CommandProtocolNum)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(strings.TrimSpace(res.Raw), "A"), nil
}

// EnterLowPower puts the adapter into low power mode (ATLP).
func (s *Session) EnterLowPower(ctx context.Context) error {
	if s.State() != StateReady {
		return ErrNotInitialized
	}
	res, err := s.command(ctx, CommandLowPower)
	if err != nil {
		return err
	}
	if !strings.Contains(strings.ToUpper(res.Raw), "OK") {
		return fmt.Errorf("low power mode refused: %q", res.Raw)
	}
	return nil
}

// ExitLowPower wakes the adapter by sending a filler byte. The adapter
// does not reply to the wake itself.
func (s *Session) ExitLowPower() error {
	if s.State() != StateReady {
		return ErrNotInitialized
	}
	if err := s.tr.Send(" "); err != nil {
		return &TransportError{Op: "send", Cause: err}
	}
	return nil
}

// Close tears the session down: a best-effort close-protocol command when
// requested (send failure ignored, the connection is going away anyway),
// all subscriptions cleared, transport released. Idempotent.
func (s *Session) Close(sendCloseProtocol bool) error {
	s.mu.Lock()
	if s.state == StateDisposed {
		s.mu.Unlock()
		return nil
	}
	wasReady := s.state == StateReady
	s.state = StateDisposed
	done := s.done
	s.mu.Unlock()

	if sendCloseProtocol && wasReady {
		if err := s.tr.Send(CommandCloseProtocol); err != nil {
			log.Debug("close protocol send failed", zap.Error(err))
		}
	}

	s.subs.clear()
	err := s.tr.Disconnect()
	if done != nil {
		<-done
	}
	return err
}

// command issues text through the ledger and waits for the FIFO-matched
// reply.
func (s *Session) command(ctx context.Context, text string) (Result, error) {
	p, err := s.ledger.issue(text)
	if err != nil {
		return Result{}, err
	}
	return s.ledger.wait(ctx, p)
}

// receiveLoop is the single receive path: every line feeds the raw
// observers, then the decoder, then resolves the oldest pending command,
// then fans out to subscribers. Callers waiting in Request never block
// this goroutine.
func (s *Session) receiveLoop(lines <-chan transport.Line, done chan struct{}) {
	defer func() {
		s.ledger.failAll(ErrDisposed)
		close(done)
	}()

	for line := range lines {
		s.subs.notifyRaw(line.Text, line.At)

		res := Result{Raw: line.Text, At: line.At}
		if reading, ok := decodeLine(s.reg, ModeCurrentData, line); ok {
			res.Reading = reading
			s.ledger.resolve(res)
			s.subs.notify(reading.PID, reading.Value, reading.At)
			continue
		}
		s.ledger.resolve(res)
	}
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// abortInit rolls a failed handshake back to a non-Ready state and
// releases the transport.
func (s *Session) abortInit() {
	s.setState(StateUninitialized)
	if err := s.tr.Disconnect(); err != nil {
		log.Warn("disconnect after failed handshake", zap.Error(err))
	}
}

// isErrorReply reports whether an AT reply indicates failure. The '?'
// response means the adapter did not understand the command.
func isErrorReply(raw string) bool {
	up := strings.ToUpper(strings.TrimSpace(raw))
	return up == "" || up == "?" || strings.Contains(up, "ERROR")
}

// parseVoltage parses an ATRV reply like "12.5V".
func parseVoltage(raw string) (float64, error) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(raw)), "V"))
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected voltage reply %q: %w", raw, err)
	}
	return v, nil
}
