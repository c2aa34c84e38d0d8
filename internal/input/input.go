// Package input opens record dumps for decoding. Compressed dumps are
// recognised by their magic bytes.
package input

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var ErrTooLarge = errors.New("input: exceeds size limit")

// Stdin is the path that selects standard input.
const Stdin = "-"

type Compression int

const (
	CompressionNone Compression = iota
	CompressionGZIP
	CompressionZSTD
)

func (c Compression) String() string {
	switch c {
	case CompressionGZIP:
		return "gzip"
	case CompressionZSTD:
		return "zstd"
	default:
		return "none"
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Detect reports the compression of a stream from its first bytes.
func Detect(head []byte) Compression {
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return CompressionZSTD
	case bytes.HasPrefix(head, gzipMagic):
		return CompressionGZIP
	default:
		return CompressionNone
	}
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error {
	return r.close()
}

// Open returns the decompressed contents of path, or of stdin for "-".
func Open(path string) (io.ReadCloser, error) {
	var f io.ReadCloser
	if path == Stdin {
		f = io.NopCloser(os.Stdin)
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input (%s): %w", path, err)
		}
		f = file
	}

	rc, err := NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open input (%s): %w", path, err)
	}
	return rc, nil
}

// NewReader wraps r with the decompressor its first bytes call for.
// Closing the result closes r.
func NewReader(r io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}

	switch Detect(head) {
	case CompressionGZIP:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return readCloser{Reader: zr, close: func() error {
			_ = zr.Close()
			return r.Close()
		}}, nil
	case CompressionZSTD:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return readCloser{Reader: zr, close: func() error {
			zr.Close()
			return r.Close()
		}}, nil
	default:
		return readCloser{Reader: br, close: r.Close}, nil
	}
}

// ReadAll returns the full decompressed contents of path. When limit is
// positive, inputs longer than limit bytes are rejected.
func ReadAll(path string, limit int) ([]byte, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var r io.Reader = rc
	if limit > 0 {
		r = io.LimitReader(rc, int64(limit)+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input (%s): %w", path, err)
	}
	if limit > 0 && len(data) > limit {
		return nil, fmt.Errorf("read input (%s): %w", path, ErrTooLarge)
	}
	return data, nil
}
