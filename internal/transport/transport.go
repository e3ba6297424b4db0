// Package transport provides in-process lower-layer transports for the com
// core: a loopback bus for demos and a recorder for tests. The physical bus
// drivers and routing layers live outside this repository; anything with a
// Submit(lowerID, payload) method can stand in for them.
package transport

import (
	"errors"
	"sync"
)

// ErrBusFull is returned when a loopback submission cannot be queued. The
// com scheduler treats it like any transient bus error and retries next
// tick.
var ErrBusFull = errors.New("transport: bus full")

// Frame is one submitted PDU.
type Frame struct {
	ID      uint32
	Payload []byte
}

// Loopback queues every submitted frame for in-process delivery. Frames are
// copied on submit, so callers may reuse their buffers immediately.
type Loopback struct {
	frames chan Frame
}

// NewLoopback builds a loopback bus buffering up to depth frames.
func NewLoopback(depth int) *Loopback {
	if depth <= 0 {
		depth = 64
	}
	return &Loopback{frames: make(chan Frame, depth)}
}

func (l *Loopback) Submit(id uint32, payload []byte) error {
	p := make([]byte, len(payload))
	copy(p, payload)
	select {
	case l.frames <- Frame{ID: id, Payload: p}:
		return nil
	default:
		return ErrBusFull
	}
}

// Frames is the delivery side of the bus. Consumers typically feed these
// back into Stack.RxIndication from their own goroutine.
func (l *Loopback) Frames() <-chan Frame {
	return l.frames
}

// Close ends delivery. Submit must not be called after Close.
func (l *Loopback) Close() {
	close(l.frames)
}

// Recorder captures submissions and can be scripted to fail, for exercising
// the scheduler's retry behavior.
type Recorder struct {
	mu     sync.Mutex
	frames []Frame
	fail   int
}

func (r *Recorder) Submit(id uint32, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail > 0 {
		r.fail--
		return errors.New("transport: scripted failure")
	}
	p := make([]byte, len(payload))
	copy(p, payload)
	r.frames = append(r.frames, Frame{ID: id, Payload: p})
	return nil
}

// FailNext makes the next n submissions fail.
func (r *Recorder) FailNext(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = n
}

// Frames returns a copy of everything recorded so far.
func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Count reports how many submissions succeeded.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}
