// Package config loads statically generated descriptor tables from TOML and
// compiles them into the read-only com.Config the core runs on. Tables are
// produced offline; loading validates them once so the core never has to
// guess at runtime.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/autosoc/comstack/internal/com"
)

// File mirrors the TOML descriptor table layout.
type File struct {
	// Groups is the number of activation groups, 1..32.
	Groups int          `toml:"groups"`
	PDUs   []PDUSection `toml:"pdus"`
}

type PDUSection struct {
	Name   string `toml:"name"`
	Length int    `toml:"length"`
	// Groups lists the activation groups the PDU belongs to.
	Groups  []int           `toml:"groups"`
	Rx      *RxSection      `toml:"rx"`
	Tx      *TxSection      `toml:"tx"`
	Signals []SignalSection `toml:"signals"`
}

type RxSection struct {
	Timeout      int    `toml:"timeout"`
	FirstTimeout int    `toml:"first_timeout"`
	ID           uint32 `toml:"id"`
}

type TxSection struct {
	Cycle int    `toml:"cycle"`
	First int    `toml:"first"`
	ID    uint32 `toml:"id"`
}

type SignalSection struct {
	Name   string `toml:"name"`
	Type   string `toml:"type"`
	Endian string `toml:"endian"`

	// Scalars address bits; bytes and group spans address whole bytes.
	BitOffset  int `toml:"bit_offset"`
	BitWidth   int `toml:"bit_width"`
	ByteOffset int `toml:"byte_offset"`
	ByteLength int `toml:"byte_length"`

	UpdateBit *int `toml:"update_bit"`

	// Group names the group pseudo-signal this signal is a member of.
	Group string `toml:"group"`

	Init      int64  `toml:"init"`
	InitBytes []byte `toml:"init_bytes"`
}

// Load reads, validates and compiles a descriptor table. Notification hooks
// cannot come from a file; callers attach them to the returned descriptors
// before building a stack.
func Load(path string) (*com.Config, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("load descriptor table (%s): %w", path, err)
	}
	cfg, err := Build(f)
	if err != nil {
		return nil, fmt.Errorf("descriptor table %s: %w", path, err)
	}
	return cfg, nil
}

// Build compiles a parsed table into a com.Config.
func Build(f File) (*com.Config, error) {
	if err := validate(f); err != nil {
		return nil, err
	}

	cfg := &com.Config{NumGroups: f.Groups}

	for pi := range f.PDUs {
		ps := &f.PDUs[pi]
		pdu := com.PDU{
			Name:   ps.Name,
			Length: ps.Length,
		}
		for _, g := range ps.Groups {
			pdu.Groups |= 1 << g
		}
		if ps.Rx != nil {
			pdu.Rx = &com.RxConfig{
				Timeout:      ps.Rx.Timeout,
				FirstTimeout: ps.Rx.FirstTimeout,
				LowerID:      ps.Rx.ID,
			}
		}
		if ps.Tx != nil {
			pdu.Tx = &com.TxConfig{
				CycleTime: ps.Tx.Cycle,
				FirstTime: ps.Tx.First,
				LowerID:   ps.Tx.ID,
			}
		}

		base := com.SignalID(len(cfg.Signals))
		for si := range ps.Signals {
			sig, err := buildSignal(&ps.Signals[si], com.PDUID(pi))
			if err != nil {
				return nil, err
			}
			pdu.Signals = append(pdu.Signals, base+com.SignalID(si))
			cfg.Signals = append(cfg.Signals, sig)
		}

		// Second pass: bind members to their group pseudo-signal by name,
		// so members may be declared before the pseudo-signal (generated
		// tables list the pseudo-signal last for initialization order).
		for si := range ps.Signals {
			name := ps.Signals[si].Group
			if name == "" {
				continue
			}
			gid, ok := findGroup(cfg, pdu.Signals, name)
			if !ok {
				return nil, fmt.Errorf("pdu %q: signal %q references unknown group %q",
					ps.Name, ps.Signals[si].Name, name)
			}
			cfg.Signals[base+com.SignalID(si)].Group = gid
		}

		cfg.PDUs = append(cfg.PDUs, pdu)
	}

	if err := validateLayout(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildSignal(ss *SignalSection, pdu com.PDUID) (com.Signal, error) {
	sig := com.Signal{
		Name:      ss.Name,
		PDU:       pdu,
		UpdateBit: com.UpdateBitUnused,
		Group:     com.GroupNone,
		Init:      ss.Init,
	}
	if ss.UpdateBit != nil {
		sig.UpdateBit = *ss.UpdateBit
	}

	switch ss.Type {
	case "int8":
		sig.Type = com.TypeInt8
	case "uint8":
		sig.Type = com.TypeUint8
	case "int16":
		sig.Type = com.TypeInt16
	case "uint16":
		sig.Type = com.TypeUint16
	case "int32":
		sig.Type = com.TypeInt32
	case "uint32":
		sig.Type = com.TypeUint32
	case "bytes", "group":
		sig.Type = com.TypeBytes
		sig.Endian = com.EndianOpaque
		sig.BitOffset = ss.ByteOffset * 8
		sig.BitWidth = ss.ByteLength * 8
		sig.IsGroup = ss.Type == "group"
		if ss.InitBytes != nil {
			sig.InitBytes = append([]byte(nil), ss.InitBytes...)
		}
		return sig, nil
	default:
		return com.Signal{}, fmt.Errorf("signal %q: unknown type %q", ss.Name, ss.Type)
	}

	switch ss.Endian {
	case "big":
		sig.Endian = com.BigEndian
	case "little":
		sig.Endian = com.LittleEndian
	default:
		return com.Signal{}, fmt.Errorf("signal %q: unknown endianness %q", ss.Name, ss.Endian)
	}
	sig.BitOffset = ss.BitOffset
	sig.BitWidth = ss.BitWidth
	return sig, nil
}

func findGroup(cfg *com.Config, ids []com.SignalID, name string) (com.SignalID, bool) {
	for _, id := range ids {
		if cfg.Signals[id].Name == name && cfg.Signals[id].IsGroup {
			return id, true
		}
	}
	return 0, false
}
