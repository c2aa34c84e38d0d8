package input

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/fieldtext/internal/report"
)

// MaxLineBytes bounds one JSON Lines record.
const MaxLineBytes = 16 * 1024 * 1024

// ReadReports parses r as JSON Lines and calls fn for every record in
// order. Blank lines are skipped; line numbers start at 1.
func ReadReports(r io.Reader, fn func(line int, rep report.Report) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	line := 0
	for sc.Scan() {
		line++
		data := bytes.TrimSpace(sc.Bytes())
		if len(data) == 0 {
			continue
		}
		rep, err := report.Parse(data)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := fn(line, rep); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("line %d: %w", line+1, ErrTooLarge)
		}
		return err
	}
	return nil
}
