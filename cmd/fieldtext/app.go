package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/fieldtext/internal/config"
	"github.com/danmuck/fieldtext/internal/input"
	"github.com/danmuck/fieldtext/internal/observability"
	"github.com/danmuck/fieldtext/internal/pipeline"
	"github.com/danmuck/fieldtext/internal/protocol/fieldstream"
	"github.com/danmuck/fieldtext/internal/render"
	"github.com/danmuck/fieldtext/internal/report"
	"github.com/rs/zerolog/log"
)

type app struct {
	cfg      config.Config
	out      io.Writer
	json     bool
	decoder  *fieldstream.Decoder
	renderer *render.Renderer
}

func newApp(cfg config.Config, out io.Writer, jsonOutput bool) *app {
	decoder := fieldstream.NewDecoder(cfg.Decoder.Limits())
	return &app{
		cfg:     cfg,
		out:     out,
		json:    jsonOutput,
		decoder: decoder,
		renderer: &render.Renderer{
			Decoder:      decoder,
			Replacements: cfg.Render.Replacements,
			Fallback:     cfg.Render.Fallback,
			Base64Fields: cfg.Render.Base64Fields,
			Source:       "report",
		},
	}
}

func (a *app) readFile(path string) ([]byte, error) {
	return input.ReadAll(path, a.cfg.Decoder.MaxInputBytes)
}

type decodedFile struct {
	Path   string `json:"path"`
	Text   string `json:"text"`
	Fields int    `json:"fields"`
}

func (a *app) decodeFiles(ctx context.Context, paths []string) error {
	results, err := pipeline.Run(ctx, paths, a.cfg.Pipeline.Workers,
		func(path string) string { return path },
		func(_ context.Context, path string) (fieldstream.Result, error) {
			data, err := a.readFile(path)
			if err != nil {
				return fieldstream.Result{}, err
			}
			res, err := a.decoder.Decode(data)
			observability.RecordDecode("file", len(data), res.Fields, err)
			return res, err
		})

	for i, res := range results {
		if res.Err != nil {
			continue
		}
		if a.json {
			if werr := a.writeJSON(decodedFile{Path: paths[i], Text: res.Out.Text, Fields: res.Out.Fields}); werr != nil {
				return errors.Join(err, werr)
			}
			continue
		}
		header := ""
		if len(paths) > 1 {
			header = paths[i]
		}
		if werr := a.writeText(header, res.Out.Text); werr != nil {
			return errors.Join(err, werr)
		}
	}
	log.Debug().Int("files", len(paths)).Err(err).Msg("decode complete")
	return err
}

type inspectedField struct {
	Path   string `json:"path"`
	Offset int    `json:"offset"`
	Kind   byte   `json:"kind"`
	Length int    `json:"length"`
}

func (a *app) inspectFiles(ctx context.Context, paths []string) error {
	results, err := pipeline.Run(ctx, paths, a.cfg.Pipeline.Workers,
		func(path string) string { return path },
		func(_ context.Context, path string) ([]fieldstream.FieldInfo, error) {
			data, err := a.readFile(path)
			if err != nil {
				return nil, err
			}
			return a.decoder.Inspect(data)
		})

	for i, res := range results {
		if res.Err != nil {
			continue
		}
		for _, f := range res.Out {
			if a.json {
				if werr := a.writeJSON(inspectedField{Path: paths[i], Offset: f.Offset, Kind: f.Kind, Length: f.Length}); werr != nil {
					return errors.Join(err, werr)
				}
				continue
			}
			if _, werr := fmt.Fprintf(a.out, "%s\toffset=%d\tkind=0x%02x\tlength=%d\n", paths[i], f.Offset, f.Kind, f.Length); werr != nil {
				return errors.Join(err, werr)
			}
		}
	}
	return err
}

type reportItem struct {
	path string
	line int
	rep  report.Report
}

func (a *app) renderReports(ctx context.Context, paths []string) error {
	items := make([]reportItem, 0)
	var readErrs []error
	for _, path := range paths {
		if err := a.collectReports(path, &items); err != nil {
			readErrs = append(readErrs, fmt.Errorf("%s: %w", path, err))
		}
	}

	results, err := pipeline.Run(ctx, items, a.cfg.Pipeline.Workers,
		func(it reportItem) string { return fmt.Sprintf("%s:%d", it.path, it.line) },
		func(_ context.Context, it reportItem) (render.Rendered, error) {
			return a.renderer.Render(it.rep)
		})

	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if a.json {
			if werr := a.writeJSON(res.Out); werr != nil {
				return errors.Join(err, werr)
			}
			continue
		}
		if _, werr := fmt.Fprintf(a.out, "[%d] %s %s: %s\n", res.Out.ID, res.Out.Timestamp, res.Out.Sender, res.Out.Text); werr != nil {
			return errors.Join(append(readErrs, err, werr)...)
		}
	}
	return errors.Join(append(readErrs, err)...)
}

func (a *app) collectReports(path string, items *[]reportItem) error {
	rc, err := input.Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	return input.ReadReports(rc, func(line int, rep report.Report) error {
		*items = append(*items, reportItem{path: path, line: line, rep: rep})
		return nil
	})
}

// writeText prints text with a trailing newline, preceded by a "==> name <=="
// banner when header is set.
func (a *app) writeText(header, text string) error {
	if header != "" {
		if _, err := fmt.Fprintf(a.out, "==> %s <==\n", header); err != nil {
			return err
		}
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(a.out, text)
	return err
}

func (a *app) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = a.out.Write(data)
	return err
}
