package com

// pduState is the mutable per-PDU slice of a running instance: the live
// message buffer and the single direction timer (rx deadline or tx cycle,
// whichever the descriptor declares).
type pduState struct {
	buf   []byte
	timer int
}

// runtimeState collects every mutable register of one Stack, kept apart from
// the immutable descriptor table.
type runtimeState struct {
	groupMask uint32
	pdus      []pduState
	staging   map[SignalID][]byte
}

func newRuntimeState(cfg *Config) *runtimeState {
	rt := &runtimeState{
		pdus:    make([]pduState, len(cfg.PDUs)),
		staging: make(map[SignalID][]byte),
	}
	for i := range cfg.PDUs {
		rt.pdus[i].buf = make([]byte, cfg.PDUs[i].Length)
	}
	for i := range cfg.Signals {
		if cfg.Signals[i].IsGroup {
			rt.staging[SignalID(i)] = make([]byte, cfg.Signals[i].BitWidth/8)
		}
	}
	return rt
}

// reset clears the activation register. Buffers and timers are deliberately
// left alone; groups arm timers and write initial values when started.
func (rt *runtimeState) reset() {
	rt.groupMask = 0
}
