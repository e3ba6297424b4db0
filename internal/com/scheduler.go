package com

import "github.com/autosoc/comstack/internal/bitfield"

// TickRx advances reception-deadline timers of every inbound PDU whose
// owning groups are active. A timer that reaches zero fires the timeout hook
// exactly once and stays at zero until an indication or a group start
// re-arms it.
func (s *Stack) TickRx() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cfg.PDUs {
		p := &s.cfg.PDUs[i]
		if p.Rx == nil || !s.pduActive(p) {
			continue
		}
		st := &s.rt.pdus[i]
		if st.timer == 0 {
			continue
		}
		st.timer--
		if st.timer == 0 {
			s.log.Debug().Str("pdu", p.Name).Msg("reception timeout")
			if p.Rx.OnTimeout != nil {
				p.Rx.OnTimeout()
			}
		}
	}
}

// TickTx advances cycle timers of every outbound PDU whose owning groups are
// active. A timer that reaches zero submits the current buffer to the lower
// layer: success re-arms the cycle and clears contained update bits (those
// fields count as sent); failure re-arms to one tick, retrying forever with
// no backoff.
func (s *Stack) TickTx() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cfg.PDUs {
		p := &s.cfg.PDUs[i]
		if p.Tx == nil || !s.pduActive(p) {
			continue
		}
		st := &s.rt.pdus[i]
		if st.timer == 0 {
			continue
		}
		st.timer--
		if st.timer != 0 {
			continue
		}
		if err := s.bus.Submit(p.Tx.LowerID, st.buf); err != nil {
			st.timer = 1
			s.log.Warn().Err(err).Str("pdu", p.Name).Msg("transmit failed, retrying next tick")
			continue
		}
		st.timer = p.Tx.CycleTime
		s.clearUpdateBits(p)
		s.log.Debug().Str("pdu", p.Name).Uint32("id", p.Tx.LowerID).Msg("transmitted")
	}
}

// Tick runs one full scheduler period: reception deadlines, then
// transmissions.
func (s *Stack) Tick() {
	s.TickRx()
	s.TickTx()
}

// clearUpdateBits marks every contained signal as already sent. Group
// members carry their update bits in the staging buffer, exactly where the
// codec maintains them.
func (s *Stack) clearUpdateBits(p *PDU) {
	for _, sid := range p.Signals {
		sig := &s.cfg.Signals[sid]
		if sig.UpdateBit == UpdateBitUnused {
			continue
		}
		buf, base := s.signalBuffer(sig)
		bitfield.ClearBit(buf, sig.UpdateBit-base)
	}
}
