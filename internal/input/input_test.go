package input

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/fieldtext/internal/report"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var sample = []byte{'h', 'i', 0x02, 0x00, 0x01, 0x03, '!'}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func zstdBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func TestReadAllDetectsCompression(t *testing.T) {
	cases := map[string][]byte{
		"plain.bin":   sample,
		"dump.bin.gz": gzipBytes(t, sample),
		"dump.zst":    zstdBytes(t, sample),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ReadAll(writeFile(t, name, data), 0)
			if err != nil {
				t.Fatalf("read all: %v", err)
			}
			if !bytes.Equal(got, sample) {
				t.Fatalf("got % x, want % x", got, sample)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	if Detect([]byte{0x1f, 0x8b, 0x08}) != CompressionGZIP {
		t.Fatalf("gzip not detected")
	}
	if Detect([]byte{0x28, 0xb5, 0x2f, 0xfd, 0x00}) != CompressionZSTD {
		t.Fatalf("zstd not detected")
	}
	if Detect([]byte{0x1f}) != CompressionNone || Detect(nil) != CompressionNone {
		t.Fatalf("short heads must be uncompressed")
	}
	if CompressionZSTD.String() != "zstd" || CompressionNone.String() != "none" {
		t.Fatalf("unexpected compression names")
	}
}

func TestReadAllEnforcesLimit(t *testing.T) {
	path := writeFile(t, "big.bin", bytes.Repeat([]byte("a"), 10))
	if _, err := ReadAll(path, 9); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if got, err := ReadAll(path, 10); err != nil || len(got) != 10 {
		t.Fatalf("limit equal to size: len=%d err=%v", len(got), err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestReadReports(t *testing.T) {
	body := strings.Join([]string{
		`{"id":1,"report_version":1,"model_version":1,"timestamp":"t1","type":0,"sender":"a","content":"aGk=","reason":"","suggested_classification":""}`,
		``,
		`{"id":2,"report_version":1,"model_version":1,"timestamp":"t2","type":0,"sender":"b","content":"","reason":"","suggested_classification":""}`,
	}, "\n")

	var got []report.Report
	var lines []int
	err := ReadReports(strings.NewReader(body), func(line int, rep report.Report) error {
		lines = append(lines, line)
		got = append(got, rep)
		return nil
	})
	if err != nil {
		t.Fatalf("read reports: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("unexpected reports: %+v", got)
	}
	if lines[0] != 1 || lines[1] != 3 {
		t.Fatalf("unexpected line numbers: %v", lines)
	}
	if string(got[0].Content) != "hi" {
		t.Fatalf("unexpected content: %q", got[0].Content)
	}
}

func TestReadReportsReportsLine(t *testing.T) {
	body := "{\"report_version\":1}\n"
	err := ReadReports(strings.NewReader(body), func(int, report.Report) error { return nil })
	var missing *report.MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "line 1:") {
		t.Fatalf("line number missing: %v", err)
	}
}
