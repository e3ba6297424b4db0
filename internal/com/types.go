// Package com implements the signal-to-PDU marshaling and scheduling core:
// bit-exact packing of typed signals into fixed-layout message buffers,
// activation-group gating, and tick-driven cyclic transmission, reception
// timeout detection and retry handling.
package com

// SignalID is the external lookup handle of a signal descriptor.
type SignalID uint16

// PDUID is the external lookup handle of a message descriptor.
type PDUID uint16

// GroupID identifies one activation group. Groups map to single bits of a
// 32-bit status register, so valid ids are 0..31.
type GroupID uint8

// MaxGroups bounds GroupID; the activation registry is one uint32.
const MaxGroups = 32

// SignalType is the declared native type of a signal.
type SignalType uint8

const (
	TypeInt8 SignalType = iota
	TypeUint8
	TypeInt16
	TypeUint16
	TypeInt32
	TypeUint32
	// TypeBytes is an opaque byte span copied verbatim.
	TypeBytes
)

// Endianness selects the bit numbering of a packed scalar field.
type Endianness uint8

const (
	// BigEndian is Motorola/MSB0 numbering.
	BigEndian Endianness = iota
	// LittleEndian is Intel/LSB0 numbering.
	LittleEndian
	// EndianOpaque marks byte-span signals with no bit-level layout.
	EndianOpaque
)

// UpdateBitUnused marks a signal without an update bit.
const UpdateBitUnused = -1

// GroupNone marks a signal that is not a member of a signal group.
const GroupNone SignalID = 0xFFFF

// Signal is one immutable signal descriptor. Scalars occupy BitWidth bits
// at BitOffset of their PDU buffer (per Endian); opaque signals occupy
// BitWidth/8 whole bytes. A group pseudo-signal (IsGroup) spans a contiguous
// byte region of the PDU and owns the staging buffer its members are
// marshaled through.
type Signal struct {
	Name string
	PDU  PDUID

	Type   SignalType
	Endian Endianness

	// BitOffset and BitWidth address the field inside the PDU buffer.
	// For TypeBytes and group pseudo-signals both are whole bytes times 8.
	BitOffset int
	BitWidth  int

	// UpdateBit is the LSB0 position of the update bit inside the PDU
	// buffer, or UpdateBitUnused.
	UpdateBit int

	// Group is the handle of the owning group pseudo-signal; members are
	// marshaled into that group's staging buffer instead of the live PDU.
	Group   SignalID
	IsGroup bool

	// Init is the declared initial value for scalars; InitBytes for
	// opaque spans and group regions.
	Init      int64
	InitBytes []byte
}

// RxConfig is the inbound direction of a PDU.
type RxConfig struct {
	// Timeout is the steady reception deadline in ticks; FirstTimeout, if
	// nonzero, is used once when the owning group starts.
	Timeout      int
	FirstTimeout int

	// LowerID is the lower-layer identifier outer routing keys on. The
	// core itself addresses PDUs by handle and never reads it.
	LowerID uint32

	// OnReceive runs after an accepted reception indication; OnTimeout
	// runs when the deadline expires. Both are synchronous and must not
	// block or call back into the stack.
	OnReceive func()
	OnTimeout func()
}

// TxConfig is the outbound direction of a PDU.
type TxConfig struct {
	// CycleTime is the steady transmission period in ticks; FirstTime, if
	// nonzero, is used once when the owning group starts.
	CycleTime int
	FirstTime int

	// LowerID is handed to the transport on every submission.
	LowerID uint32

	// OnConfirm and OnError run on transmit confirmations. Synchronous,
	// non-blocking, no re-entry.
	OnConfirm func()
	OnError   func()
}

// PDU is one immutable message descriptor.
type PDU struct {
	Name    string
	Length  int
	Signals []SignalID

	// Groups is the bitmask of activation groups the PDU belongs to; the
	// PDU is processed while any of them is active.
	Groups uint32

	// A PDU is inbound or outbound, never both.
	Rx *RxConfig
	Tx *TxConfig
}

// Config is the read-only descriptor table. It holds no mutable state, so
// one Config can back any number of independent Stack instances.
type Config struct {
	Signals   []Signal
	PDUs      []PDU
	NumGroups int
}

// SignalByName resolves a signal handle by descriptor name.
func (c *Config) SignalByName(name string) (SignalID, bool) {
	for i := range c.Signals {
		if c.Signals[i].Name == name {
			return SignalID(i), true
		}
	}
	return 0, false
}

// PDUByName resolves a PDU handle by descriptor name.
func (c *Config) PDUByName(name string) (PDUID, bool) {
	for i := range c.PDUs {
		if c.PDUs[i].Name == name {
			return PDUID(i), true
		}
	}
	return 0, false
}
