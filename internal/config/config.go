package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/fieldtext/internal/protocol/fieldstream"
	"github.com/danmuck/fieldtext/internal/render"
)

type Config struct {
	Decoder  DecoderConfig
	Render   RenderConfig
	Pipeline PipelineConfig
	Metrics  MetricsConfig
}

type DecoderConfig struct {
	MaxInputBytes int
}

type RenderConfig struct {
	Fallback     render.Fallback
	Base64Fields []string
	Replacements render.Replacements
}

type PipelineConfig struct {
	Workers int
}

type MetricsConfig struct {
	Textfile string
}

// fileConfig is the on-disk shape; every key is optional.
type fileConfig struct {
	Decoder struct {
		MaxInputBytes int `toml:"max_input_bytes"`
	} `toml:"decoder"`
	Render struct {
		Fallback     string               `toml:"fallback"`
		Base64Fields []string             `toml:"base64_fields"`
		Replacements []render.Replacement `toml:"replacements"`
	} `toml:"render"`
	Pipeline struct {
		Workers int `toml:"workers"`
	} `toml:"pipeline"`
	Metrics struct {
		Textfile string `toml:"textfile"`
	} `toml:"metrics"`
}

func DefaultConfig() Config {
	return Config{
		Decoder: DecoderConfig{
			MaxInputBytes: fieldstream.DefaultLimits().MaxInputBytes,
		},
		Render: RenderConfig{
			Fallback:     render.FallbackRaw,
			Base64Fields: []string{"reason"},
		},
		Pipeline: PipelineConfig{
			Workers: 4,
		},
	}
}

// Load reads path over DefaultConfig. Keys absent from the file keep their
// defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("decoder", "max_input_bytes") {
		cfg.Decoder.MaxInputBytes = raw.Decoder.MaxInputBytes
	}
	if meta.IsDefined("render", "fallback") {
		f, err := render.ParseFallback(raw.Render.Fallback)
		if err != nil {
			return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
		cfg.Render.Fallback = f
	}
	if meta.IsDefined("render", "base64_fields") {
		cfg.Render.Base64Fields = normalizeNames(raw.Render.Base64Fields)
	}
	if meta.IsDefined("render", "replacements") {
		cfg.Render.Replacements = render.Replacements(raw.Render.Replacements)
	}
	if meta.IsDefined("pipeline", "workers") {
		cfg.Pipeline.Workers = raw.Pipeline.Workers
	}
	if meta.IsDefined("metrics", "textfile") {
		cfg.Metrics.Textfile = strings.TrimSpace(raw.Metrics.Textfile)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if cfg.Decoder.MaxInputBytes < 0 {
		return fmt.Errorf("decoder.max_input_bytes must not be negative")
	}
	if cfg.Pipeline.Workers < 1 {
		return fmt.Errorf("pipeline.workers must be at least 1")
	}
	if _, err := render.ParseFallback(string(cfg.Render.Fallback)); err != nil {
		return err
	}
	for i, r := range cfg.Render.Replacements {
		if r.Needle == "" {
			return fmt.Errorf("render.replacements[%d] missing needle", i)
		}
	}
	for _, name := range cfg.Render.Base64Fields {
		if !isTextColumn(name) {
			return fmt.Errorf("render.base64_fields: %q is not a text column", name)
		}
	}
	return nil
}

// Limits converts the decoder section.
func (c DecoderConfig) Limits() fieldstream.Limits {
	return fieldstream.Limits{MaxInputBytes: c.MaxInputBytes}
}

func isTextColumn(name string) bool {
	switch name {
	case "timestamp", "sender", "reason", "suggested_classification":
		return true
	default:
		return false
	}
}

func normalizeNames(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(in))
	for _, name := range in {
		v := strings.TrimSpace(name)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
