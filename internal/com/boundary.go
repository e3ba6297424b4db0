package com

// RxIndication is called by the transport when a PDU arrives. Indications
// for unknown handles, PDUs without a receive config, inactive groups or
// short payloads are dropped without any state change; an accepted payload
// is copied into the live buffer, the reception deadline is re-armed to the
// steady timeout and the arrival hook runs.
func (s *Stack) RxIndication(id PDUID, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(id) >= len(s.cfg.PDUs) {
		return
	}
	p := &s.cfg.PDUs[id]
	if p.Rx == nil || !s.pduActive(p) {
		s.log.Debug().Str("pdu", p.Name).Msg("indication dropped, inactive")
		return
	}
	if len(payload) < p.Length {
		s.log.Debug().Str("pdu", p.Name).Int("len", len(payload)).Msg("indication dropped, short payload")
		return
	}
	st := &s.rt.pdus[id]
	copy(st.buf, payload[:p.Length])
	st.timer = p.Rx.Timeout
	if p.Rx.OnReceive != nil {
		p.Rx.OnReceive()
	}
}

// TriggerTransmit copies the current live buffer into dst at the moment of
// physical send. It is a pull with no timer interaction; the only failures
// are an unknown handle and insufficient capacity.
func (s *Stack) TriggerTransmit(id PDUID, dst []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(id) >= len(s.cfg.PDUs) {
		return 0, ErrOutOfRange
	}
	p := &s.cfg.PDUs[id]
	if len(dst) < p.Length {
		return 0, ErrBufferTooSmall
	}
	copy(dst[:p.Length], s.rt.pdus[id].buf)
	return p.Length, nil
}

// TxConfirmation reports the outcome of an earlier submission. Gated like
// the scheduler: outbound config present and an owning group active;
// otherwise the confirmation is dropped. Outcomes reach the application only
// through the configured hooks.
func (s *Stack) TxConfirmation(id PDUID, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(id) >= len(s.cfg.PDUs) {
		return
	}
	p := &s.cfg.PDUs[id]
	if p.Tx == nil || !s.pduActive(p) {
		return
	}
	if ok {
		if p.Tx.OnConfirm != nil {
			p.Tx.OnConfirm()
		}
		return
	}
	if p.Tx.OnError != nil {
		p.Tx.OnError()
	}
}

// TriggerSend submits a PDU outside its normal cycle. On success the cycle
// timer re-arms; on failure the timer is set to one tick and the failure is
// absorbed into the scheduler's retry, so the call still reports success.
// Only an unknown handle or a PDU the activation registry is not driving
// produce an error.
func (s *Stack) TriggerSend(id PDUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(id) >= len(s.cfg.PDUs) {
		return ErrOutOfRange
	}
	p := &s.cfg.PDUs[id]
	if p.Tx == nil || !s.pduActive(p) {
		return ErrInactive
	}
	st := &s.rt.pdus[id]
	if err := s.bus.Submit(p.Tx.LowerID, st.buf); err != nil {
		st.timer = 1
		s.log.Warn().Err(err).Str("pdu", p.Name).Msg("triggered transmit failed, retrying next tick")
		return nil
	}
	st.timer = p.Tx.CycleTime
	return nil
}
