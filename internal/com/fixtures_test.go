package com

// Test descriptor tables, built the way a generated table would be.

func scalarConfig(typ SignalType, endian Endianness, offset, width, updateBit int) *Config {
	return &Config{
		NumGroups: 1,
		Signals: []Signal{{
			Name:      "Sig",
			PDU:       0,
			Type:      typ,
			Endian:    endian,
			BitOffset: offset,
			BitWidth:  width,
			UpdateBit: updateBit,
			Group:     GroupNone,
		}},
		PDUs: []PDU{{
			Name:    "Pdu",
			Length:  8,
			Signals: []SignalID{0},
			Groups:  1,
		}},
	}
}

func bytesConfig(byteOffset, byteLen, updateBit int, init []byte) *Config {
	return &Config{
		NumGroups: 1,
		Signals: []Signal{{
			Name:      "Blob",
			PDU:       0,
			Type:      TypeBytes,
			Endian:    EndianOpaque,
			BitOffset: byteOffset * 8,
			BitWidth:  byteLen * 8,
			UpdateBit: updateBit,
			Group:     GroupNone,
			InitBytes: init,
		}},
		PDUs: []PDU{{
			Name:    "Pdu",
			Length:  8,
			Signals: []SignalID{0},
			Groups:  1,
		}},
	}
}

// groupConfig models a 6-byte PDU whose bytes 2..5 form a signal group with
// two members: a little-endian uint16 at byte 2 and a big-endian int8 at
// byte 4.
func groupConfig() *Config {
	return &Config{
		NumGroups: 1,
		Signals: []Signal{
			{
				Name: "Volt", PDU: 0, Type: TypeUint16, Endian: LittleEndian,
				BitOffset: 16, BitWidth: 16, UpdateBit: UpdateBitUnused, Group: 2,
				Init: 1200,
			},
			{
				Name: "Temp", PDU: 0, Type: TypeInt8, Endian: BigEndian,
				BitOffset: 32, BitWidth: 8, UpdateBit: UpdateBitUnused, Group: 2,
				Init: -10,
			},
			{
				Name: "BatteryGrp", PDU: 0, Type: TypeBytes, Endian: EndianOpaque,
				BitOffset: 16, BitWidth: 32, UpdateBit: UpdateBitUnused,
				Group: GroupNone, IsGroup: true,
			},
		},
		PDUs: []PDU{{
			Name:    "Battery",
			Length:  6,
			Signals: []SignalID{0, 1, 2},
			Groups:  1,
		}},
	}
}

// schedulerConfig builds one inbound and one outbound PDU, both in group 0.
func schedulerConfig(rx RxConfig, tx TxConfig) *Config {
	return &Config{
		NumGroups: 2,
		Signals: []Signal{
			{
				Name: "Mode", PDU: 0, Type: TypeUint8, Endian: LittleEndian,
				BitOffset: 0, BitWidth: 8, UpdateBit: UpdateBitUnused, Group: GroupNone,
			},
			{
				Name: "Speed", PDU: 1, Type: TypeUint16, Endian: BigEndian,
				BitOffset: 0, BitWidth: 12, UpdateBit: 63, Group: GroupNone,
				Init: 0x123,
			},
		},
		PDUs: []PDU{
			{Name: "Command", Length: 4, Signals: []SignalID{0}, Groups: 1, Rx: &rx},
			{Name: "Motion", Length: 8, Signals: []SignalID{1}, Groups: 1, Tx: &tx},
		},
	}
}
