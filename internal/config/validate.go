package config

import (
	"fmt"

	"github.com/autosoc/comstack/internal/com"
)

// validate checks the parsed table before compilation. Declarative only; it
// never mutates the file.
func validate(f File) error {
	if f.Groups < 1 || f.Groups > com.MaxGroups {
		return fmt.Errorf("groups must be 1..%d, got %d", com.MaxGroups, f.Groups)
	}

	pduNames := make(map[string]bool)
	signalNames := make(map[string]bool)

	for _, p := range f.PDUs {
		if p.Name == "" {
			return fmt.Errorf("pdu without a name")
		}
		if pduNames[p.Name] {
			return fmt.Errorf("duplicate pdu name %q", p.Name)
		}
		pduNames[p.Name] = true

		if p.Length < 1 {
			return fmt.Errorf("pdu %q: length must be at least 1", p.Name)
		}
		if len(p.Groups) == 0 {
			return fmt.Errorf("pdu %q: belongs to no activation group", p.Name)
		}
		for _, g := range p.Groups {
			if g < 0 || g >= f.Groups {
				return fmt.Errorf("pdu %q: group %d out of range 0..%d", p.Name, g, f.Groups-1)
			}
		}
		if p.Rx != nil && p.Tx != nil {
			return fmt.Errorf("pdu %q: declares both rx and tx; a pdu is inbound or outbound, not both", p.Name)
		}
		if p.Rx != nil {
			if p.Rx.Timeout < 1 {
				return fmt.Errorf("pdu %q: rx timeout must be at least 1 tick", p.Name)
			}
			if p.Rx.FirstTimeout < 0 {
				return fmt.Errorf("pdu %q: rx first_timeout must not be negative", p.Name)
			}
		}
		if p.Tx != nil {
			if p.Tx.Cycle < 1 {
				return fmt.Errorf("pdu %q: tx cycle must be at least 1 tick", p.Name)
			}
			if p.Tx.First < 0 {
				return fmt.Errorf("pdu %q: tx first must not be negative", p.Name)
			}
		}

		for _, s := range p.Signals {
			if s.Name == "" {
				return fmt.Errorf("pdu %q: signal without a name", p.Name)
			}
			if signalNames[s.Name] {
				return fmt.Errorf("duplicate signal name %q", s.Name)
			}
			signalNames[s.Name] = true
			if s.Type == "group" && s.Group != "" {
				return fmt.Errorf("signal %q: a group pseudo-signal cannot be a group member", s.Name)
			}
		}
	}
	return nil
}

func nativeBits(t com.SignalType) int {
	switch t {
	case com.TypeInt8, com.TypeUint8:
		return 8
	case com.TypeInt16, com.TypeUint16:
		return 16
	default:
		return 32
	}
}

// validateLayout checks the compiled table bit for bit: field containment,
// group spans, update-bit positions. The zero-width case is rejected here so
// the codec's mask arithmetic is always defined.
func validateLayout(cfg *com.Config) error {
	for i := range cfg.Signals {
		sig := &cfg.Signals[i]
		pdu := &cfg.PDUs[sig.PDU]
		pduBits := pdu.Length * 8

		// The span the field and its update bit must stay inside.
		lo, hi := 0, pduBits
		if sig.Group != com.GroupNone {
			group := &cfg.Signals[sig.Group]
			lo, hi = group.BitOffset, group.BitOffset+group.BitWidth
		}

		if sig.Type == com.TypeBytes {
			if sig.BitWidth < 8 {
				return fmt.Errorf("signal %q: byte span must cover at least one byte", sig.Name)
			}
			if len(sig.InitBytes) > sig.BitWidth/8 {
				return fmt.Errorf("signal %q: init_bytes longer than the span", sig.Name)
			}
		} else {
			if sig.BitWidth < 1 || sig.BitWidth > 32 {
				return fmt.Errorf("signal %q: bit width must be 1..32, got %d", sig.Name, sig.BitWidth)
			}
			if sig.BitWidth > nativeBits(sig.Type) {
				return fmt.Errorf("signal %q: bit width %d exceeds declared native width %d",
					sig.Name, sig.BitWidth, nativeBits(sig.Type))
			}
		}

		if sig.BitOffset < lo || sig.BitOffset+sig.BitWidth > hi {
			return fmt.Errorf("signal %q: field [%d,%d) outside its span [%d,%d)",
				sig.Name, sig.BitOffset, sig.BitOffset+sig.BitWidth, lo, hi)
		}
		if sig.UpdateBit != com.UpdateBitUnused {
			if sig.UpdateBit < lo || sig.UpdateBit >= hi {
				return fmt.Errorf("signal %q: update bit %d outside its span [%d,%d)",
					sig.Name, sig.UpdateBit, lo, hi)
			}
		}
	}
	return nil
}
