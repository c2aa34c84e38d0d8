package fieldstream

import "encoding/binary"

// encodeVarInt is the inverse of ReadVarInt for non-negative values.
func encodeVarInt(n uint32) []byte {
	if n <= 206 {
		return []byte{byte(n + 1)}
	}
	var acc [4]byte
	binary.LittleEndian.PutUint32(acc[:], n)
	var mask byte
	for i := 0; i < maskBits; i++ {
		if acc[3-i] != 0 {
			mask |= 1 << i
		}
	}
	out := []byte{0xD0 + ((mask - 1) & 0x0F)}
	for i := 0; i < maskBits; i++ {
		if mask&(1<<i) != 0 {
			out = append(out, acc[3-i])
		}
	}
	return out
}

func field(kind byte, payload []byte) []byte {
	out := []byte{Start, kind}
	out = append(out, encodeVarInt(uint32(len(payload)))...)
	out = append(out, payload...)
	return append(out, End)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
