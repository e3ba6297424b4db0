package com

// GroupStart activates one group. Every PDU referencing the group gets its
// timer armed to the configured first value, falling back to the steady
// cycle/timeout; with initialize set, every contained signal's declared
// initial value is driven through the normal encode path first. Starting an
// already-active group re-arms its PDU timers.
func (s *Stack) GroupStart(id GroupID, initialize bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(id) >= s.cfg.NumGroups {
		return ErrOutOfRange
	}
	s.rt.groupMask |= 1 << id
	for i := range s.cfg.PDUs {
		p := &s.cfg.PDUs[i]
		if p.Groups&(1<<id) == 0 {
			continue
		}
		if initialize {
			s.initPDUData(p)
		}
		switch {
		case p.Rx != nil:
			if p.Rx.FirstTimeout > 0 {
				s.rt.pdus[i].timer = p.Rx.FirstTimeout
			} else {
				s.rt.pdus[i].timer = p.Rx.Timeout
			}
		case p.Tx != nil:
			if p.Tx.FirstTime > 0 {
				s.rt.pdus[i].timer = p.Tx.FirstTime
			} else {
				s.rt.pdus[i].timer = p.Tx.CycleTime
			}
		}
	}
	s.log.Info().Uint8("group", uint8(id)).Bool("initialize", initialize).Msg("group started")
	return nil
}

// GroupStop deactivates one group. Buffers and timers are frozen, not reset:
// the scheduler and boundary handlers simply stop touching the group's PDUs
// until it is started again.
func (s *Stack) GroupStop(id GroupID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(id) >= s.cfg.NumGroups {
		return ErrOutOfRange
	}
	s.rt.groupMask &^= 1 << id
	s.log.Info().Uint8("group", uint8(id)).Msg("group stopped")
	return nil
}

// SendSignalGroup commits a group's staging buffer into its live PDU region
// in one bulk copy, making all staged member updates visible atomically.
func (s *Stack) SendSignalGroup(id SignalID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sig, err := s.signal(id)
	if err != nil {
		return err
	}
	if !sig.IsGroup {
		return ErrUnsupportedType
	}
	s.commitGroup(sig, id)
	return nil
}

// ReceiveSignalGroup refreshes a group's staging buffer from the live PDU
// region so members can be decoded from a consistent snapshot.
func (s *Stack) ReceiveSignalGroup(id SignalID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sig, err := s.signal(id)
	if err != nil {
		return err
	}
	if !sig.IsGroup {
		return ErrUnsupportedType
	}
	live := s.rt.pdus[sig.PDU].buf
	off := sig.BitOffset / 8
	copy(s.rt.staging[id], live[off:off+sig.BitWidth/8])
	return nil
}

func (s *Stack) commitGroup(sig *Signal, id SignalID) {
	live := s.rt.pdus[sig.PDU].buf
	off := sig.BitOffset / 8
	copy(live[off:off+sig.BitWidth/8], s.rt.staging[id])
}

// initPDUData writes declared initial values for every contained signal, in
// descriptor order. Scalars and opaque spans go through the regular encode
// paths (so their update bits are set); a group pseudo-signal loads its
// staging buffer and commits it, which is why generated tables list the
// pseudo-signal after its members.
func (s *Stack) initPDUData(p *PDU) {
	for _, sid := range p.Signals {
		sig := &s.cfg.Signals[sid]
		switch {
		case sig.IsGroup:
			if sig.InitBytes != nil {
				copy(s.rt.staging[sid], sig.InitBytes)
			}
			s.commitGroup(sig, sid)
		case sig.Type == TypeBytes || sig.Endian == EndianOpaque:
			buf, base := s.signalBuffer(sig)
			n := sig.BitWidth / 8
			span := buf[(sig.BitOffset-base)/8:]
			for i := 0; i < n; i++ {
				span[i] = 0
			}
			copy(span[:n], sig.InitBytes)
			s.setUpdateBit(sig, buf, base)
		default:
			// Descriptor types are validated at load; encode cannot fail.
			_ = s.encodeScalar(sig, sig.Init)
		}
	}
}
