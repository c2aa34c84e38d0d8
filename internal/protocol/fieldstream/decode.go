package fieldstream

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// Framing bytes of a structured field.
const (
	Start byte = 0x02
	End   byte = 0x03
)

// State is the decoder's position in the field stream state machine.
type State uint8

const (
	Scanning State = iota
	InField
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Scanning:
		return "scanning"
	case InField:
		return "in_field"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Limits constrains decode cost. Decoding is linear in input size.
type Limits struct {
	MaxInputBytes int
}

func DefaultLimits() Limits {
	return Limits{
		MaxInputBytes: 8 * 1024 * 1024,
	}
}

// FieldInfo describes one structured field found in a stream. The payload
// itself is never retained.
type FieldInfo struct {
	Offset int
	Kind   byte
	Length int
}

// Result is the outcome of a successful decode.
type Result struct {
	Text         string
	Fields       int
	TextBytes    int
	PayloadBytes int
}

type Decoder struct {
	Limits Limits
}

func NewDecoder(limits Limits) *Decoder {
	return &Decoder{Limits: limits}
}

// DecodeText returns the passthrough text of buf using DefaultLimits.
func DecodeText(buf []byte) (string, error) {
	res, err := NewDecoder(DefaultLimits()).Decode(buf)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Decode strips every structured field from buf and returns the remaining
// bytes as UTF-8 text. The first framing violation aborts the decode.
func (d *Decoder) Decode(buf []byte) (Result, error) {
	if err := d.checkSize(buf); err != nil {
		return Result{}, err
	}

	out := make([]byte, 0, len(buf))
	var res Result
	err := walk(buf,
		func(text []byte) { out = append(out, text...) },
		func(f FieldInfo) {
			res.Fields++
			res.PayloadBytes += f.Length
		},
	)
	if err != nil {
		return Result{}, err
	}

	res.TextBytes = len(out)
	res.Text = UTF8String(out)
	return res, nil
}

// Inspect walks buf with the same validation as Decode and reports each
// structured field it skips.
func (d *Decoder) Inspect(buf []byte) ([]FieldInfo, error) {
	if err := d.checkSize(buf); err != nil {
		return nil, err
	}
	fields := make([]FieldInfo, 0, 4)
	err := walk(buf, func([]byte) {}, func(f FieldInfo) {
		fields = append(fields, f)
	})
	if err != nil {
		return nil, err
	}
	return fields, nil
}

func Inspect(buf []byte) ([]FieldInfo, error) {
	return NewDecoder(DefaultLimits()).Inspect(buf)
}

func (d *Decoder) checkSize(buf []byte) error {
	if d.Limits.MaxInputBytes > 0 && len(buf) > d.Limits.MaxInputBytes {
		return decodeErr(0, Failed, ErrInputTooLarge, "")
	}
	return nil
}

func walk(buf []byte, onText func([]byte), onField func(FieldInfo)) error {
	c := NewCursor(buf)
	for !c.Done() {
		b, _ := c.Peek()
		if b != Start {
			// Passthrough runs extend up to the next START byte.
			n := bytes.IndexByte(buf[c.off:], Start)
			if n < 0 {
				n = c.Remaining()
			}
			onText(buf[c.off : c.off+n])
			_ = c.Skip(n)
			continue
		}

		f, err := readField(c)
		if err != nil {
			return err
		}
		onField(f)
	}
	return nil
}

// readField consumes one structured field starting at the START byte.
func readField(c *Cursor) (FieldInfo, error) {
	f := FieldInfo{Offset: c.off}
	_ = c.Skip(1)
	kind, err := c.ReadByte()
	if err != nil {
		return FieldInfo{}, decodeErr(c.off, InField, ErrTruncatedInput, "missing kind tag")
	}
	f.Kind = kind

	lenAt := c.off
	length, err := c.ReadVarInt()
	if err != nil {
		return FieldInfo{}, decodeErr(lenAt, InField, ErrTruncatedInput, "incomplete length")
	}
	if length < 0 {
		return FieldInfo{}, decodeErr(lenAt, InField, ErrMalformedFraming, "negative length")
	}
	if length > int64(c.Remaining()) {
		return FieldInfo{}, decodeErr(c.off, InField, ErrTruncatedInput, "payload exceeds buffer")
	}
	f.Length = int(length)
	_ = c.Skip(f.Length)

	endAt := c.off
	end, err := c.ReadByte()
	if err != nil {
		return FieldInfo{}, decodeErr(endAt, InField, ErrTruncatedInput, "missing END marker")
	}
	if end != End {
		return FieldInfo{}, decodeErr(endAt, InField, ErrMalformedFraming, "missing END marker")
	}
	return f, nil
}

// UTF8String interprets b as UTF-8, replacing ill-formed sequences with
// U+FFFD.
func UTF8String(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return string(bytes.ToValidUTF8(b, []byte("\uFFFD")))
	}
	return string(out)
}
