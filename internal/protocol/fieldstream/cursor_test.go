package fieldstream

import (
	"errors"
	"testing"
)

func TestCursorReadsAndSkipsWithinBounds(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3})
	if b, err := c.Peek(); err != nil || b != 1 {
		t.Fatalf("peek: b=%d err=%v", b, err)
	}
	if c.Offset() != 0 {
		t.Fatalf("peek advanced cursor")
	}
	if b, err := c.ReadByte(); err != nil || b != 1 {
		t.Fatalf("read: b=%d err=%v", b, err)
	}
	if err := c.Skip(2); err != nil {
		t.Fatalf("skip: %v", err)
	}
	if !c.Done() || c.Remaining() != 0 || c.Len() != 3 {
		t.Fatalf("unexpected cursor state: off=%d remaining=%d", c.Offset(), c.Remaining())
	}
	if _, err := c.ReadByte(); !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("expected ErrTruncatedInput, got %v", err)
	}
	if _, err := c.Peek(); !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("expected ErrTruncatedInput, got %v", err)
	}
}

func TestCursorSkipPastEndDoesNotMove(t *testing.T) {
	c := NewCursor([]byte{1, 2})
	if err := c.Skip(3); !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("expected ErrTruncatedInput, got %v", err)
	}
	if err := c.Skip(-1); !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("expected ErrTruncatedInput for negative skip, got %v", err)
	}
	if c.Offset() != 0 {
		t.Fatalf("cursor moved to %d", c.Offset())
	}
}
