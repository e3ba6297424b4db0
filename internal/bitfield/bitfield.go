// Package bitfield packs and unpacks unsigned integer fields at arbitrary
// bit positions inside byte buffers.
//
// Two numbering conventions are supported, matching the usual automotive
// naming:
//
//   - Big endian (Motorola): MSB0 numbering. Bit position 0 is the most
//     significant bit of byte 0, position 8 is the most significant bit of
//     byte 1, and so on. A field of width w starting at position p occupies
//     positions [p, p+w), most significant value bit first.
//   - Little endian (Intel): LSB0 numbering. Bit position 0 is the least
//     significant bit of byte 0. A field of width w starting at position p
//     occupies positions [p, p+w), least significant value bit first.
//
// No sign handling happens here; fields are raw unsigned values of at most
// 32 bits. Callers are responsible for keeping position and width inside
// the buffer.
package bitfield

// GetBig extracts a width-bit unsigned field at MSB0 position pos.
func GetBig(buf []byte, pos, width int) uint32 {
	var v uint32
	for i := 0; i < width; i++ {
		p := pos + i
		v <<= 1
		if buf[p>>3]&(0x80>>(p&7)) != 0 {
			v |= 1
		}
	}
	return v
}

// SetBig stores the low width bits of value at MSB0 position pos.
func SetBig(buf []byte, value uint32, pos, width int) {
	for i := 0; i < width; i++ {
		p := pos + i
		m := byte(0x80) >> (p & 7)
		if value&(1<<(width-1-i)) != 0 {
			buf[p>>3] |= m
		} else {
			buf[p>>3] &^= m
		}
	}
}

// GetLittle extracts a width-bit unsigned field at LSB0 position pos.
func GetLittle(buf []byte, pos, width int) uint32 {
	var v uint32
	for i := width - 1; i >= 0; i-- {
		p := pos + i
		v <<= 1
		if buf[p>>3]&(1<<(p&7)) != 0 {
			v |= 1
		}
	}
	return v
}

// SetLittle stores the low width bits of value at LSB0 position pos.
func SetLittle(buf []byte, value uint32, pos, width int) {
	for i := 0; i < width; i++ {
		p := pos + i
		m := byte(1) << (p & 7)
		if value&(1<<i) != 0 {
			buf[p>>3] |= m
		} else {
			buf[p>>3] &^= m
		}
	}
}

// GetBit reports the bit at LSB0 position pos.
func GetBit(buf []byte, pos int) bool {
	return buf[pos>>3]&(1<<(pos&7)) != 0
}

// SetBit sets the bit at LSB0 position pos.
func SetBit(buf []byte, pos int) {
	buf[pos>>3] |= 1 << (pos & 7)
}

// ClearBit clears the bit at LSB0 position pos.
func ClearBit(buf []byte, pos int) {
	buf[pos>>3] &^= 1 << (pos & 7)
}
