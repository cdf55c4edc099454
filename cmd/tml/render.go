package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tml/pkg/html"
	"tml/pkg/layout"
	"tml/pkg/render"
)

func newRenderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [flags] FILE...",
		Short: "Lay out markup files and export the result",
		Long: `Parses and lays out every FILE ("-" reads standard input) and exports
the laid-out boxes as positioned HTML, a PNG image, a tree or a structural
dump. Files are processed concurrently. Text output goes to standard
output in argument order unless --out-dir is set; PNG output always goes to
files, next to the input when no --out-dir is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.renderFiles(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args)
		},
	}

	flags := cmd.Flags()
	flags.StringP("format", "f", "", "output format: html, png, tree or dump")
	flags.IntP("jobs", "j", 0, "number of files processed at once")
	flags.StringP("out-dir", "o", "", "directory for output files")
	flags.Float64("scale", 0, "PNG scale factor")
	for key, name := range map[string]string{
		"render.format":  "format",
		"render.jobs":    "jobs",
		"render.out_dir": "out-dir",
		"render.scale":   "scale",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	return cmd
}

// renderFiles processes files concurrently, bounded by render.jobs. The
// first failure cancels files that have not started yet.
func (a *app) renderFiles(ctx context.Context, stdin io.Reader, stdout io.Writer, files []string) error {
	outputs := make([][]byte, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Render.Jobs)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := a.renderFile(stdin, file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, out := range outputs {
		if _, err := stdout.Write(out); err != nil {
			return err
		}
	}
	return nil
}

// renderFile lays out one file. It returns what belongs on standard output,
// nothing when the result was written to a file.
func (a *app) renderFile(stdin io.Reader, file string) ([]byte, error) {
	doc, err := a.loadDocument(stdin, file)
	if err != nil {
		return nil, err
	}

	format := a.cfg.Render.Format
	var buf bytes.Buffer
	switch format {
	case "html":
		err = render.WriteHTML(&buf, doc.Element)
	case "png":
		err = render.WritePNG(&buf, doc.Element, a.cfg.RenderOptions())
	case "tree":
		buf.WriteString(render.Tree(doc.Element, true))
	case "dump":
		buf.WriteString(doc.Dump())
	}
	if err != nil {
		return nil, err
	}

	target := a.outputPath(file, format)
	if target == "" {
		return buf.Bytes(), nil
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return nil, err
	}
	a.logger.Info("rendered", zap.String("input", file), zap.String("output", target))
	return nil, nil
}

// loadDocument parses file and lays it out at the configured viewport
// size.
func (a *app) loadDocument(stdin io.Reader, file string) (*html.Document, error) {
	var data []byte
	var err error
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, err
	}

	logger := a.logger.With(zap.String("input", file))
	doc, err := html.NewParser(html.WithLogger(logger)).Parse(string(data))
	if err != nil {
		return nil, err
	}

	width, height := a.cfg.Viewport.Width, a.cfg.Viewport.Height
	doc.Width, doc.Height = width, height
	doc.LayoutedWidth, doc.LayoutedHeight = width, height
	opts := append(a.cfg.LayoutOptions(), layout.WithLogger(logger))
	layout.Reflow(doc.Element, opts...)
	logger.Debug("laid out", zap.Int("height", doc.LayoutedHeight), zap.Int("fragments", len(doc.Fragments)))
	return doc, nil
}

// outputPath names the output file for input, or "" for standard output.
func (a *app) outputPath(input, format string) string {
	dir := a.cfg.Render.OutDir
	if dir == "" && format != "png" {
		return ""
	}
	base := "stdin"
	if input != "-" {
		base = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		if dir == "" {
			dir = filepath.Dir(input)
		}
	}
	return filepath.Join(dir, base+"."+extension(format))
}

func extension(format string) string {
	switch format {
	case "tree", "dump":
		return "txt"
	}
	return format
}
