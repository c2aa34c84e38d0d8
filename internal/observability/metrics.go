package observability

import (
	"errors"
	"fmt"
	"sync"

	"github.com/danmuck/fieldtext/internal/protocol/fieldstream"
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every fieldtext collector. It is separate from the
// default registry so it can be written to a textfile without process
// metrics.
var Registry = prometheus.NewRegistry()

var (
	registerOnce sync.Once

	decodeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fieldtext",
			Subsystem: "decode",
			Name:      "total",
			Help:      "Field stream decodes by outcome.",
		},
		[]string{"source", "result"},
	)
	decodeFields = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fieldtext",
			Subsystem: "decode",
			Name:      "fields_skipped_total",
			Help:      "Structured fields skipped during successful decodes.",
		},
		[]string{"source"},
	)
	decodeInputBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fieldtext",
			Subsystem: "decode",
			Name:      "input_bytes",
			Help:      "Size of decoded buffers in bytes.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		},
		[]string{"source"},
	)
	renderFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fieldtext",
			Subsystem: "render",
			Name:      "fallbacks_total",
			Help:      "Reports rendered through a fallback policy after a decode failure.",
		},
		[]string{"policy"},
	)
)

const (
	ResultOK        = "ok"
	ResultTruncated = "truncated"
	ResultMalformed = "malformed"
	ResultTooLarge  = "too_large"
	ResultError     = "error"
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		Registry.MustRegister(decodeTotal, decodeFields, decodeInputBytes, renderFallbacks)
	})
}

// DecodeResult maps a decode error to its metric label.
func DecodeResult(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, fieldstream.ErrTruncatedInput):
		return ResultTruncated
	case errors.Is(err, fieldstream.ErrMalformedFraming):
		return ResultMalformed
	case errors.Is(err, fieldstream.ErrInputTooLarge):
		return ResultTooLarge
	default:
		return ResultError
	}
}

func RecordDecode(source string, inputBytes, fields int, err error) {
	RegisterMetrics()
	decodeTotal.WithLabelValues(source, DecodeResult(err)).Inc()
	decodeInputBytes.WithLabelValues(source).Observe(float64(inputBytes))
	if err == nil {
		decodeFields.WithLabelValues(source).Add(float64(fields))
	}
}

func RecordFallback(policy string) {
	RegisterMetrics()
	renderFallbacks.WithLabelValues(policy).Inc()
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func WriteTextfile(path string) error {
	RegisterMetrics()
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("write metrics textfile (%s): %w", path, err)
	}
	return nil
}
