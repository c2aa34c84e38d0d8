// Package fieldstream recovers plain text from byte streams that carry
// embedded structured fields.
//
// Wire layout of one structured field:
//
//	0x02            START
//	kind            1 byte, opaque
//	length          1-5 byte varint (see Cursor.ReadVarInt)
//	payload         length bytes, discarded
//	0x03            END
//
// Every byte outside a field is passthrough text. Decoding is stateless and
// safe for concurrent use on independent buffers.
package fieldstream
