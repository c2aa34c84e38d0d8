// Package render turns stored reports into display text.
package render

import (
	"fmt"
	"strings"

	"github.com/danmuck/fieldtext/internal/logging"
	"github.com/danmuck/fieldtext/internal/observability"
	"github.com/danmuck/fieldtext/internal/protocol/fieldstream"
	"github.com/danmuck/fieldtext/internal/report"
)

// Fallback selects what Render shows when content is not a valid field
// stream.
type Fallback string

const (
	FallbackRaw   Fallback = "raw"
	FallbackEmpty Fallback = "empty"
	FallbackFail  Fallback = "fail"
)

func ParseFallback(raw string) (Fallback, error) {
	switch f := Fallback(strings.ToLower(strings.TrimSpace(raw))); f {
	case FallbackRaw, FallbackEmpty, FallbackFail:
		return f, nil
	case "":
		return FallbackRaw, nil
	default:
		return "", fmt.Errorf("unknown fallback policy: %q", raw)
	}
}

type Renderer struct {
	Decoder      *fieldstream.Decoder
	Replacements Replacements
	Fallback     Fallback
	Base64Fields []string
	// Source labels decode metrics.
	Source string
}

func NewRenderer() *Renderer {
	return &Renderer{
		Decoder:  fieldstream.NewDecoder(fieldstream.DefaultLimits()),
		Fallback: FallbackRaw,
		Source:   "report",
	}
}

// Rendered is the display form of one report.
type Rendered struct {
	ID        int64             `json:"id,omitempty"`
	Timestamp string            `json:"timestamp"`
	Sender    string            `json:"sender"`
	Text      string            `json:"text"`
	Fields    map[string]string `json:"fields,omitempty"`
	Skipped   int               `json:"skipped_fields"`
	Fallback  bool              `json:"fallback,omitempty"`
	DecodeErr string            `json:"decode_error,omitempty"`
}

// Text decodes one field stream and applies replacements. With a fallback
// policy other than fail, a decode failure is reported through fellBack
// rather than err.
func (r *Renderer) Text(raw []byte) (text string, skipped int, fellBack bool, err error) {
	res, decErr := r.decoder().Decode(raw)
	observability.RecordDecode(r.source(), len(raw), res.Fields, decErr)
	if decErr == nil {
		return r.Replacements.Apply(res.Text), res.Fields, false, nil
	}

	switch r.Fallback {
	case FallbackFail:
		return "", 0, false, decErr
	case FallbackEmpty:
		observability.RecordFallback(string(FallbackEmpty))
		return "", 0, true, decErr
	default:
		observability.RecordFallback(string(FallbackRaw))
		return r.Replacements.Apply(fieldstream.UTF8String(raw)), 0, true, decErr
	}
}

func (r *Renderer) Render(rep report.Report) (Rendered, error) {
	out := Rendered{
		ID:        rep.ID,
		Timestamp: rep.Timestamp,
		Sender:    rep.Sender,
	}

	text, skipped, fellBack, err := r.Text(rep.Content)
	if err != nil && !fellBack {
		return Rendered{}, fmt.Errorf("render report %d: %w", rep.ID, err)
	}
	if fellBack {
		logging.Warnf(
			"render.Renderer.Render fallback id=%d policy=%q err=%v",
			rep.ID,
			r.Fallback,
			err,
		)
		out.Fallback = true
		out.DecodeErr = err.Error()
	}
	out.Text = text
	out.Skipped = skipped

	for _, name := range r.Base64Fields {
		v, ok := rep.Field(name)
		if !ok {
			return Rendered{}, fmt.Errorf("render report %d: unknown base64 field %q", rep.ID, name)
		}
		if out.Fields == nil {
			out.Fields = make(map[string]string, len(r.Base64Fields))
		}
		out.Fields[name] = DecodeBase64Field(v)
	}

	logging.Debugf("render.Renderer.Render id=%d skipped=%d fallback=%t", rep.ID, skipped, fellBack)
	return out, nil
}

func (r *Renderer) decoder() *fieldstream.Decoder {
	if r.Decoder == nil {
		return fieldstream.NewDecoder(fieldstream.DefaultLimits())
	}
	return r.Decoder
}

func (r *Renderer) source() string {
	if r.Source == "" {
		return "report"
	}
	return r.Source
}
