package com

import (
	"sync"

	"github.com/rs/zerolog"
)

// Transport is the lower layer a Stack submits outbound PDUs to. Any error
// is treated as transient: the scheduler retries on the next tick, forever.
// Implementations must not retain payload past the call.
type Transport interface {
	Submit(lowerID uint32, payload []byte) error
}

// nopTransport accepts and discards everything.
type nopTransport struct{}

func (nopTransport) Submit(uint32, []byte) error { return nil }

// Stack is one running instance over a descriptor table. A single mutex
// serializes application calls, scheduler ticks and boundary handlers, so
// they may arrive from different goroutines; ordering across entry points is
// last-writer-wins. Notification hooks run synchronously under that lock and
// must not block or call back into the Stack.
type Stack struct {
	mu  sync.Mutex
	cfg *Config
	rt  *runtimeState
	bus Transport
	log zerolog.Logger
}

// Option configures a Stack at construction.
type Option func(*Stack)

// WithTransport sets the lower-layer transmit target.
func WithTransport(t Transport) Option {
	return func(s *Stack) {
		if t != nil {
			s.bus = t
		}
	}
}

// WithLogger attaches a logger; without it the stack is silent.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Stack) { s.log = l }
}

// New builds a Stack over cfg. All groups start inactive; message buffers
// are zeroed until a group start with initialization populates them.
func New(cfg *Config, opts ...Option) *Stack {
	s := &Stack{
		cfg: cfg,
		rt:  newRuntimeState(cfg),
		bus: nopTransport{},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reset deactivates every group. Buffers and timers keep their contents.
func (s *Stack) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rt.reset()
}

func (s *Stack) signal(id SignalID) (*Signal, error) {
	if int(id) >= len(s.cfg.Signals) {
		return nil, ErrOutOfRange
	}
	return &s.cfg.Signals[id], nil
}

func (s *Stack) pduActive(p *PDU) bool {
	return s.rt.groupMask&p.Groups != 0
}

// signalBuffer resolves the byte buffer a signal is marshaled against and
// the bit offset of the buffer's start within the PDU. Group members go
// through their group's staging buffer; everything else hits the live PDU.
func (s *Stack) signalBuffer(sig *Signal) (buf []byte, base int) {
	if !sig.IsGroup && sig.Group != GroupNone {
		group := &s.cfg.Signals[sig.Group]
		return s.rt.staging[sig.Group], group.BitOffset
	}
	return s.rt.pdus[sig.PDU].buf, 0
}
