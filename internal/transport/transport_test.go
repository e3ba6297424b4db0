package transport

import (
	"bytes"
	"testing"
)

func TestLoopbackDeliversCopies(t *testing.T) {
	lb := NewLoopback(4)
	payload := []byte{1, 2, 3}
	if err := lb.Submit(0x100, payload); err != nil {
		t.Fatalf("submit: %v", err)
	}
	payload[0] = 0xFF
	f := <-lb.Frames()
	if f.ID != 0x100 {
		t.Fatalf("id = %#x, want 0x100", f.ID)
	}
	if !bytes.Equal(f.Payload, []byte{1, 2, 3}) {
		t.Fatalf("payload mutated: %v", f.Payload)
	}
}

func TestLoopbackFullBusIsTransient(t *testing.T) {
	lb := NewLoopback(1)
	if err := lb.Submit(1, nil); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := lb.Submit(2, nil); err != ErrBusFull {
		t.Fatalf("expected ErrBusFull, got %v", err)
	}
	<-lb.Frames()
	if err := lb.Submit(3, nil); err != nil {
		t.Fatalf("submit after drain: %v", err)
	}
}

func TestRecorderScriptedFailures(t *testing.T) {
	var rec Recorder
	rec.FailNext(2)
	if err := rec.Submit(1, []byte{1}); err == nil {
		t.Fatal("expected scripted failure")
	}
	if err := rec.Submit(1, []byte{2}); err == nil {
		t.Fatal("expected scripted failure")
	}
	if err := rec.Submit(1, []byte{3}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rec.Count() != 1 {
		t.Fatalf("count = %d, want 1", rec.Count())
	}
	if got := rec.Frames()[0].Payload; !bytes.Equal(got, []byte{3}) {
		t.Fatalf("recorded payload = %v", got)
	}
}
