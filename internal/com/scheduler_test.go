package com

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/autosoc/comstack/internal/transport"
)

func TestRxTimeoutFiresExactlyOnce(t *testing.T) {
	fired := 0
	cfg := schedulerConfig(
		RxConfig{Timeout: 3, OnTimeout: func() { fired++ }},
		TxConfig{CycleTime: 100},
	)
	s := New(cfg)
	require.NoError(t, s.GroupStart(0, false))

	s.TickRx()
	s.TickRx()
	require.Equal(t, 0, fired, "deadline not reached yet")
	s.TickRx()
	require.Equal(t, 1, fired, "fires on reaching zero")

	for i := 0; i < 10; i++ {
		s.TickRx()
	}
	require.Equal(t, 1, fired, "stays at zero, no repeated firing")
}

func TestRxIndicationRearmsDeadline(t *testing.T) {
	fired := 0
	cfg := schedulerConfig(
		RxConfig{Timeout: 3, OnTimeout: func() { fired++ }},
		TxConfig{CycleTime: 100},
	)
	s := New(cfg)
	require.NoError(t, s.GroupStart(0, false))

	s.TickRx()
	s.TickRx()
	s.TickRx()
	require.Equal(t, 1, fired)

	s.RxIndication(0, []byte{1, 2, 3, 4})
	require.Equal(t, 3, s.rt.pdus[0].timer)
	s.TickRx()
	s.TickRx()
	s.TickRx()
	require.Equal(t, 2, fired, "re-armed deadline fires again")
}

func TestTxCyclicTransmission(t *testing.T) {
	var rec transport.Recorder
	cfg := schedulerConfig(
		RxConfig{Timeout: 100},
		TxConfig{CycleTime: 4, FirstTime: 2, LowerID: 0x123},
	)
	s := New(cfg, WithTransport(&rec))
	require.NoError(t, s.GroupStart(0, true))

	s.TickTx()
	require.Equal(t, 0, rec.Count())
	s.TickTx()
	require.Equal(t, 1, rec.Count(), "first transmit after FirstTime ticks")
	require.Equal(t, uint32(0x123), rec.Frames()[0].ID)
	require.Len(t, rec.Frames()[0].Payload, 8)
	require.Equal(t, 4, s.rt.pdus[1].timer, "re-armed to cycle time")

	for i := 0; i < 4; i++ {
		s.TickTx()
	}
	require.Equal(t, 2, rec.Count(), "steady cycle")
}

func TestTxRetryAfterTransientFailure(t *testing.T) {
	var rec transport.Recorder
	cfg := schedulerConfig(
		RxConfig{Timeout: 100},
		TxConfig{CycleTime: 10, FirstTime: 1},
	)
	s := New(cfg, WithTransport(&rec))
	require.NoError(t, s.GroupStart(0, false))

	rec.FailNext(1)
	s.TickTx()
	require.Equal(t, 0, rec.Count())
	require.Equal(t, 1, s.rt.pdus[1].timer, "failure arms a one-tick retry")

	s.TickTx()
	require.Equal(t, 1, rec.Count(), "next tick attempts again")
	require.Equal(t, 10, s.rt.pdus[1].timer)
}

func TestTxClearsUpdateBitsAfterSend(t *testing.T) {
	var rec transport.Recorder
	cfg := schedulerConfig(
		RxConfig{Timeout: 100},
		TxConfig{CycleTime: 5, FirstTime: 1},
	)
	s := New(cfg, WithTransport(&rec))
	require.NoError(t, s.GroupStart(0, false))

	speed, ok := s.cfg.SignalByName("Speed")
	require.True(t, ok)
	require.NoError(t, s.SendSignal(speed, 0x456))

	s.TickTx()
	require.Equal(t, 1, rec.Count())

	// The cyclic send consumed the change marker.
	_, err := s.ReceiveSignal(speed)
	require.ErrorIs(t, err, ErrNoUpdate)
}

func TestInactivePDUsAreNotScheduled(t *testing.T) {
	var rec transport.Recorder
	cfg := schedulerConfig(
		RxConfig{Timeout: 1, OnTimeout: func() { t.Fatal("timeout for inactive group") }},
		TxConfig{CycleTime: 1},
	)
	s := New(cfg, WithTransport(&rec))
	// Never started: timers stay unarmed and nothing runs.
	for i := 0; i < 5; i++ {
		s.Tick()
	}
	require.Equal(t, 0, rec.Count())
}
