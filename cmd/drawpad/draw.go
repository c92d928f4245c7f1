package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/example/drawpad/internal/export"
)

// commandList collects repeated -e flags.
type commandList []string

func (c *commandList) String() string { return strings.Join(*c, "; ") }

func (c *commandList) Set(v string) error {
	*c = append(*c, v)
	return nil
}

// drawCmd replays session commands on a fresh canvas and exports the result once.
type drawCmd struct {
	*root
	fs       *flag.FlagSet
	canvas   *canvasFlags
	output   string
	toClip   bool
	commands commandList
	script   string
	stdin    io.Reader
	stdout   io.Writer
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func (d *drawCmd) Program() string {
	return d.root.subcommand("draw")
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs, stdin: os.Stdin, stdout: os.Stdout}
	fs.Usage = usageFunc(d)
	d.canvas = addCanvasFlags(fs)
	fs.StringVar(&d.output, "output", "", "output file (.png or .pdf); defaults to a new file in the save directory")
	fs.BoolVar(&d.toClip, "to-clipboard", false, "copy the result to the clipboard instead of writing a file")
	fs.BoolVar(&d.toClip, "to-clip", false, "copy the result to the clipboard (alias)")
	fs.Var(&d.commands, "e", "session command to run (repeatable)")
	fs.StringVar(&d.script, "script", "", "file of session commands, one per line (- for stdin)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: d}
	}
	if d.toClip && d.output != "" {
		return nil, errors.New("-output and -to-clipboard cannot be used together")
	}
	return d, nil
}

func (d *drawCmd) sink() (export.Sink, string) {
	if d.toClip {
		return export.ClipboardSink{}, ""
	}
	if d.output == "" {
		dir := d.root.saveDir()
		return export.FileSink{Dir: dir}, dir
	}
	dir := filepath.Dir(d.output)
	if expanded, err := homedir.Expand(dir); err == nil {
		dir = expanded
	}
	file := export.FileSink{Path: d.output}
	if strings.EqualFold(filepath.Ext(d.output), ".pdf") {
		return export.PDFSink{FileSink: file}, dir
	}
	return file, dir
}

func (d *drawCmd) Run() error {
	ctx := context.Background()
	s, err := d.canvas.openSession(ctx, d.root, d.stdout)
	if err != nil {
		return err
	}
	defer s.Close()

	for i, line := range d.commands {
		done, err := s.Execute(ctx, line)
		if err != nil {
			return fmt.Errorf("-e #%d: %w", i+1, err)
		}
		if done {
			break
		}
	}
	if d.script != "" {
		var in io.Reader = d.stdin
		if d.script != "-" {
			f, err := os.Open(d.script)
			if err != nil {
				return fmt.Errorf("open script: %w", err)
			}
			defer f.Close()
			in = f
		}
		if err := s.Run(ctx, in, false); err != nil {
			return fmt.Errorf("%s: %w", d.script, err)
		}
	}

	sink, dir := d.sink()
	exp := d.root.exporter(dir)
	dest, err := exp.Persist(ctx, sink, s.Surface().ExportAsync(0, 0))
	if err != nil {
		return err
	}
	fmt.Fprintf(d.stdout, "saved %s\n", dest)
	return nil
}
