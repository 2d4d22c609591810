// Command scadtree evaluates scene scripts into OpenSCAD files.
//
//	scadtree build [--out DIR] [--jobs N] PATTERN...
//	scadtree preview [--cells N] PATTERN...
//
// Patterns are doublestar globs such as "models/**/*.zy".
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/chazu/scadtree/pkg/kernel"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newCLI(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "scadtree:", err)
		os.Exit(1)
	}
}

// runner carries the state shared by all commands once flags are parsed.
type runner struct {
	stdout io.Writer
	stderr io.Writer
	cfg    Config
	log    *log.Logger
}

func newCLI(stdout, stderr io.Writer) *cli.App {
	r := &runner{stdout: stdout, stderr: stderr}
	return &cli.App{
		Name:      "scadtree",
		Usage:     "evaluate scene scripts into OpenSCAD files",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load settings from YAML `FILE`"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "do not log progress"},
			&cli.DurationFlag{Name: "timeout", Usage: "evaluation limit per script"},
		},
		Before: r.setup,
		Commands: []*cli.Command{
			{
				Name:      "build",
				Usage:     "write one .scad file per script",
				ArgsUsage: "PATTERN...",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write into `DIR` instead of next to each script"},
					&cli.IntFlag{Name: "jobs", Aliases: []string{"j"}, Usage: "scripts evaluated at once"},
				},
				Action: r.build,
			},
			{
				Name:      "preview",
				Usage:     "tessellate each script and report mesh statistics",
				ArgsUsage: "PATTERN...",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "cells", Usage: "marching cubes resolution"},
					&cli.IntFlag{Name: "jobs", Aliases: []string{"j"}, Usage: "scripts evaluated at once"},
				},
				Action: r.preview,
			},
		},
	}
}

// setup loads the config file and applies global flags.
func (r *runner) setup(c *cli.Context) error {
	cfg, err := LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	r.cfg = cfg

	var w io.Writer = r.stderr
	if c.Bool("quiet") {
		w = io.Discard
	}
	r.log = log.New(w, "scadtree: ", 0)
	return nil
}

// commandConfig applies the flags shared by build and preview.
func (r *runner) commandConfig(c *cli.Context) (Config, error) {
	cfg := r.cfg
	if c.IsSet("jobs") {
		cfg.Jobs = c.Int("jobs")
	}
	if c.IsSet("out") {
		cfg.OutDir = c.String("out")
	}
	if c.IsSet("cells") {
		cfg.MeshCells = c.Int("cells")
	}
	return cfg, cfg.validate()
}

func (r *runner) build(c *cli.Context) error {
	cfg, err := r.commandConfig(c)
	if err != nil {
		return err
	}
	files, err := expandPatterns(c.Args().Slice())
	if err != nil {
		return err
	}

	var total atomic.Uint64
	var g errgroup.Group
	g.SetLimit(cfg.Jobs)
	for _, path := range files {
		g.Go(func() error {
			// Each script gets its own engine; one engine discards all
			// but its latest evaluation.
			out, n, err := buildFile(NewApp(cfg, r.log), r.log, path, cfg.OutDir)
			if err != nil {
				r.log.Print(err)
				return err
			}
			total.Add(uint64(n))
			r.log.Printf("wrote %s (%s)", out, humanize.Bytes(uint64(n)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	r.log.Printf("built %s, %s total", plural(len(files), "file"), humanize.Bytes(total.Load()))
	return nil
}

// buildFile evaluates one script and writes its output. It returns the
// output path and the number of bytes written.
func buildFile(app *App, logger *log.Logger, path, outDir string) (string, int, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", 0, err
	}
	res := app.Evaluate(string(src))
	if !res.OK() {
		return "", 0, scriptError(path, res.Errors)
	}
	for _, w := range res.Warnings {
		logger.Printf("%s: warning: %s", path, w.Message)
	}

	out := outputPath(path, outDir)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", 0, err
	}
	if err := os.WriteFile(out, []byte(res.SCAD), 0o644); err != nil {
		return "", 0, err
	}
	return out, len(res.SCAD), nil
}

func (r *runner) preview(c *cli.Context) error {
	cfg, err := r.commandConfig(c)
	if err != nil {
		return err
	}
	files, err := expandPatterns(c.Args().Slice())
	if err != nil {
		return err
	}

	results := make([]EvalResult, len(files))
	var g errgroup.Group
	g.SetLimit(cfg.Jobs)
	for i, path := range files {
		g.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			results[i] = NewApp(cfg, r.log).Preview(string(src))
			if !results[i].OK() {
				return scriptError(path, results[i].Errors)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, res := range results {
		fmt.Fprintf(r.stdout, "%s: %s\n", files[i], plural(len(res.Meshes), "mesh"))
		for _, m := range res.Meshes {
			fmt.Fprintf(r.stdout, "  %s: %s triangles, %s\n", m.PartName, humanize.Comma(int64(len(m.Indices)/3)), bounds(m.Vertices))
		}
	}
	return nil
}

// expandPatterns resolves glob patterns to a sorted list of distinct files.
func expandPatterns(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, errors.New("no scripts given")
	}
	seen := make(map[string]bool)
	var files []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", p)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// outputPath is path with its extension replaced by .scad, moved into
// outDir when one is given.
func outputPath(path, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".scad"
	if outDir == "" {
		return filepath.Join(filepath.Dir(path), base)
	}
	return filepath.Join(outDir, base)
}

// scriptError reports the first error of a script with its position.
func scriptError(path string, errs []EvalErrorData) error {
	e := errs[0]
	msg := e.Message
	if len(errs) > 1 {
		msg += fmt.Sprintf(" (and %s)", plural(len(errs)-1, "more error"))
	}
	if e.Line > 0 {
		return fmt.Errorf("%s:%d: %s", path, e.Line, msg)
	}
	return fmt.Errorf("%s: %s", path, msg)
}

func plural(n int, noun string) string {
	s := humanize.Comma(int64(n)) + " " + noun
	if n != 1 {
		if strings.HasSuffix(noun, "sh") {
			return s + "es"
		}
		return s + "s"
	}
	return s
}

// bounds formats the extent of a flat vertex array.
func bounds(v []float32) string {
	m := kernel.Mesh{Vertices: v}
	if m.IsEmpty() {
		return "empty"
	}
	lo, hi := m.Bounds()
	return fmt.Sprintf("bounds [%.2f %.2f %.2f] to [%.2f %.2f %.2f]", lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}
