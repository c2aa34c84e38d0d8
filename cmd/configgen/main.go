package main

import (
	"fmt"
	"os"

	"github.com/danmuck/fieldtext/internal/config"
	"github.com/danmuck/fieldtext/internal/logging"
	"github.com/danmuck/fieldtext/internal/observability"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

const defaultPath = "cmd/fieldtext/config.toml"

func main() {
	logging.ConfigureRuntime()
	observability.InitLogger("configgen")
	if err := run(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		log.Fatal().Err(err).Msg("configgen failed")
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("configgen", pflag.ContinueOnError)
	kind := fs.String("kind", "fieldtext", "config kind: fieldtext|minimal")
	output := fs.String("output", defaultPath, "output path for config template")
	validate := fs.Bool("validate", false, "validate an existing config file")
	input := fs.String("input", defaultPath, "config path for validation")
	force := fs.Bool("force", false, "overwrite existing config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *validate {
		if _, err := config.Load(*input); err != nil {
			return err
		}
		log.Info().Str("path", *input).Msg("validated fieldtext config")
		return nil
	}

	if err := config.WriteTemplate(*output, *kind, *force); err != nil {
		return fmt.Errorf("write %s template: %w", *kind, err)
	}
	log.Info().Str("kind", *kind).Str("path", *output).Msg("wrote config template")
	return nil
}
