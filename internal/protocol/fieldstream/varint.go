package fieldstream

import "encoding/binary"

const (
	// Markers below inlineLimit carry value+1 in the marker byte itself.
	inlineLimit byte = 0xD0
	maskBits         = 4
)

// ReadVarInt decodes one length value at the cursor.
//
// A marker byte below 0xD0 encodes marker-1 inline, so marker 0x00 yields
// -1; interpreting that is left to the caller. Any other marker selects up
// to four following bytes through the mask (marker+1)&0x0F: mask bit i
// stores the next byte at accumulator index 3-i, and the accumulator is
// read as a little-endian uint32.
//
// On error the cursor is left where it was.
func (c *Cursor) ReadVarInt() (int64, error) {
	start := c.off
	marker, err := c.ReadByte()
	if err != nil {
		return 0, err
	}
	if marker < inlineLimit {
		return int64(marker) - 1, nil
	}

	mask := (marker + 1) & 0x0F
	var acc [4]byte
	for i := 0; i < maskBits; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		b, err := c.ReadByte()
		if err != nil {
			c.off = start
			return 0, err
		}
		acc[3-i] = b
	}
	return int64(binary.LittleEndian.Uint32(acc[:])), nil
}

// ReadVarInt decodes a length value from buf at off and returns the offset
// just past it.
func ReadVarInt(buf []byte, off int) (value int64, next int, err error) {
	if off < 0 || off > len(buf) {
		return 0, off, ErrOutOfBounds
	}
	c := &Cursor{buf: buf, off: off}
	v, err := c.ReadVarInt()
	if err != nil {
		return 0, off, err
	}
	return v, c.off, nil
}
