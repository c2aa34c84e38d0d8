package fieldstream

// Cursor is a read position over an immutable byte buffer. It never moves
// past the end of the buffer.
type Cursor struct {
	buf []byte
	off int
}

func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

func (c *Cursor) Offset() int {
	return c.off
}

func (c *Cursor) Len() int {
	return len(c.buf)
}

func (c *Cursor) Remaining() int {
	return len(c.buf) - c.off
}

func (c *Cursor) Done() bool {
	return c.off >= len(c.buf)
}

// Peek returns the byte at the cursor without consuming it.
func (c *Cursor) Peek() (byte, error) {
	if c.Remaining() < 1 {
		return 0, ErrTruncatedInput
	}
	return c.buf[c.off], nil
}

func (c *Cursor) ReadByte() (byte, error) {
	if c.Remaining() < 1 {
		return 0, ErrTruncatedInput
	}
	b := c.buf[c.off]
	c.off++
	return b, nil
}

// Skip advances past n bytes. The cursor does not move when fewer than n
// bytes remain.
func (c *Cursor) Skip(n int) error {
	if n < 0 || n > c.Remaining() {
		return ErrTruncatedInput
	}
	c.off += n
	return nil
}
