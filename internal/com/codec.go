package com

import "github.com/autosoc/comstack/internal/bitfield"

// SendSignal marshals a scalar value into the signal's buffer. The value is
// masked to the declared bit width; if an update bit is configured it is set
// after a successful write, marking the field changed since last consumed.
func (s *Stack) SendSignal(id SignalID, v int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sig, err := s.signal(id)
	if err != nil {
		return err
	}
	if sig.IsGroup || sig.Type == TypeBytes || sig.Endian == EndianOpaque {
		return ErrUnsupportedType
	}
	return s.encodeScalar(sig, v)
}

// ReceiveSignal unmarshals a scalar value from the signal's buffer. Signed
// types come back sign-extended; unsigned types in 0..2^32-1. If an update
// bit is configured and not set, the read fails with ErrNoUpdate; a set
// update bit is consumed exactly once.
func (s *Stack) ReceiveSignal(id SignalID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sig, err := s.signal(id)
	if err != nil {
		return 0, err
	}
	if sig.IsGroup || sig.Type == TypeBytes || sig.Endian == EndianOpaque {
		return 0, ErrUnsupportedType
	}
	buf, base := s.signalBuffer(sig)
	if err := s.consumeUpdateBit(sig, buf, base); err != nil {
		return 0, err
	}
	return s.decodeScalar(sig, buf, base)
}

// SendSignalBytes marshals an opaque byte-span signal. p must hold at least
// the declared span length.
func (s *Stack) SendSignalBytes(id SignalID, p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sig, err := s.signal(id)
	if err != nil {
		return err
	}
	if sig.IsGroup || (sig.Type != TypeBytes && sig.Endian != EndianOpaque) {
		return ErrUnsupportedType
	}
	n := sig.BitWidth / 8
	if len(p) < n {
		return ErrBufferTooSmall
	}
	buf, base := s.signalBuffer(sig)
	copy(buf[(sig.BitOffset-base)/8:], p[:n])
	s.setUpdateBit(sig, buf, base)
	return nil
}

// ReceiveSignalBytes unmarshals an opaque byte-span signal into dst, gated
// by the update bit exactly like scalar reception.
func (s *Stack) ReceiveSignalBytes(id SignalID, dst []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sig, err := s.signal(id)
	if err != nil {
		return err
	}
	if sig.IsGroup || (sig.Type != TypeBytes && sig.Endian != EndianOpaque) {
		return ErrUnsupportedType
	}
	n := sig.BitWidth / 8
	if len(dst) < n {
		return ErrBufferTooSmall
	}
	buf, base := s.signalBuffer(sig)
	if err := s.consumeUpdateBit(sig, buf, base); err != nil {
		return err
	}
	off := (sig.BitOffset - base) / 8
	copy(dst[:n], buf[off:off+n])
	return nil
}

// encodeScalar writes a validated scalar descriptor. Callers hold the lock.
func (s *Stack) encodeScalar(sig *Signal, v int64) error {
	switch sig.Type {
	case TypeInt8, TypeUint8, TypeInt16, TypeUint16, TypeInt32, TypeUint32:
	default:
		return ErrUnsupportedType
	}
	buf, base := s.signalBuffer(sig)
	mask := uint32(0xFFFFFFFF) >> (32 - sig.BitWidth)
	value := uint32(v) & mask
	switch sig.Endian {
	case BigEndian:
		bitfield.SetBig(buf, value, sig.BitOffset-base, sig.BitWidth)
	case LittleEndian:
		bitfield.SetLittle(buf, value, sig.BitOffset-base, sig.BitWidth)
	default:
		return ErrUnsupportedType
	}
	s.setUpdateBit(sig, buf, base)
	return nil
}

// decodeScalar extracts the raw field and reproduces two's-complement sign
// extension from BitWidth bits to the declared native width.
func (s *Stack) decodeScalar(sig *Signal, buf []byte, base int) (int64, error) {
	var raw uint32
	switch sig.Endian {
	case BigEndian:
		raw = bitfield.GetBig(buf, sig.BitOffset-base, sig.BitWidth)
	case LittleEndian:
		raw = bitfield.GetLittle(buf, sig.BitOffset-base, sig.BitWidth)
	default:
		return 0, ErrUnsupportedType
	}
	mask := uint32(0xFFFFFFFF) >> (32 - sig.BitWidth)
	raw &= mask
	signMask := ^(mask >> 1)
	signed := raw&signMask != 0
	switch sig.Type {
	case TypeInt8:
		if signed {
			raw |= signMask
		}
		return int64(int8(raw)), nil
	case TypeUint8:
		return int64(uint8(raw)), nil
	case TypeInt16:
		if signed {
			raw |= signMask
		}
		return int64(int16(raw)), nil
	case TypeUint16:
		return int64(uint16(raw)), nil
	case TypeInt32:
		if signed {
			raw |= signMask
		}
		return int64(int32(raw)), nil
	case TypeUint32:
		return int64(raw), nil
	default:
		return 0, ErrUnsupportedType
	}
}

func (s *Stack) setUpdateBit(sig *Signal, buf []byte, base int) {
	if sig.UpdateBit != UpdateBitUnused {
		bitfield.SetBit(buf, sig.UpdateBit-base)
	}
}

// consumeUpdateBit enforces consumed-on-read semantics: absent update bit
// means always fresh; a clear bit fails the read; a set bit is cleared.
func (s *Stack) consumeUpdateBit(sig *Signal, buf []byte, base int) error {
	if sig.UpdateBit == UpdateBitUnused {
		return nil
	}
	if !bitfield.GetBit(buf, sig.UpdateBit-base) {
		return ErrNoUpdate
	}
	bitfield.ClearBit(buf, sig.UpdateBit-base)
	return nil
}
