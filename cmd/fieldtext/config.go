package main

import (
	"fmt"

	"github.com/danmuck/fieldtext/internal/config"
	"github.com/danmuck/fieldtext/internal/render"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

// loadConfig reads the optional config file and lays explicitly set flags
// over it.
func loadConfig(fs *pflag.FlagSet, opts options) (config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
		log.Info().Str("path", opts.configPath).Msg("loaded fieldtext config")
	}

	if fs.Changed("workers") {
		cfg.Pipeline.Workers = opts.workers
	}
	if fs.Changed("fallback") {
		f, err := render.ParseFallback(opts.fallback)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Render.Fallback = f
	}
	if fs.Changed("max-input-bytes") {
		cfg.Decoder.MaxInputBytes = opts.maxInputBytes
	}
	if fs.Changed("metrics-file") {
		cfg.Metrics.Textfile = opts.metricsFile
	}

	if err := config.Validate(cfg); err != nil {
		return config.Config{}, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}
