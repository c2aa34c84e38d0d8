// fieldtext strips structured fields from record dumps and prints the
// plain text they carry.
//
//	fieldtext [flags] decode FILE...   decode raw field streams
//	fieldtext [flags] inspect FILE...  list the structured fields in each stream
//	fieldtext [flags] reports FILE...  render JSON Lines report dumps
//
// FILE may be "-" for stdin. gzip and zstd inputs are decompressed.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/danmuck/fieldtext/internal/input"
	"github.com/danmuck/fieldtext/internal/logging"
	"github.com/danmuck/fieldtext/internal/observability"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	logging.ConfigureRuntime()
	observability.InitLogger("fieldtext")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Error().Err(err).Msg("fieldtext failed")
		os.Exit(1)
	}
}

type options struct {
	configPath    string
	workers       int
	fallback      string
	maxInputBytes int
	metricsFile   string
	jsonOutput    bool
}

func newFlagSet(opts *options, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("fieldtext", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.configPath, "config", "c", "", "path to a fieldtext TOML config")
	fs.IntVarP(&opts.workers, "workers", "w", 0, "parallel decode workers (overrides config)")
	fs.StringVar(&opts.fallback, "fallback", "", "report fallback on decode failure: raw|empty|fail")
	fs.IntVar(&opts.maxInputBytes, "max-input-bytes", 0, "reject buffers larger than this (0 disables, overrides config)")
	fs.StringVar(&opts.metricsFile, "metrics-file", "", "write prometheus metrics to this textfile on exit")
	fs.BoolVar(&opts.jsonOutput, "json", false, "emit JSON lines instead of text")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: fieldtext [flags] decode|inspect|reports FILE...\n\n")
		fs.PrintDefaults()
	}
	return fs
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var opts options
	fs := newFlagSet(&opts, os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) < 2 {
		fs.Usage()
		return fmt.Errorf("expected a command and at least one file")
	}

	cfg, err := loadConfig(fs, opts)
	if err != nil {
		return err
	}
	cli := newApp(cfg, stdout, opts.jsonOutput)

	cmd, paths := rest[0], rest[1:]
	if err := checkPaths(paths); err != nil {
		return err
	}
	switch cmd {
	case "decode":
		err = cli.decodeFiles(ctx, paths)
	case "inspect":
		err = cli.inspectFiles(ctx, paths)
	case "reports":
		err = cli.renderReports(ctx, paths)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}

	if cfg.Metrics.Textfile != "" {
		if werr := observability.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			err = errors.Join(err, werr)
		}
	}
	return err
}

// checkPaths rejects a repeated stdin operand, since stdin can only be read
// once.
func checkPaths(paths []string) error {
	stdin := 0
	for _, p := range paths {
		if p == input.Stdin {
			stdin++
		}
	}
	if stdin > 1 {
		return fmt.Errorf("%q given %d times: stdin can only be read once", input.Stdin, stdin)
	}
	return nil
}
