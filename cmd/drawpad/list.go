package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/example/drawpad/internal/brush"
)

type colorsCmd struct {
	*root
	fs  *flag.FlagSet
	out io.Writer
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r, fs: fs, out: os.Stdout}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	palette := brush.PaletteColors()
	if len(palette) == 0 {
		fmt.Fprintln(c.out, "no colors available")
		return nil
	}
	fmt.Fprintln(c.out, "available palette colors (* marks the default color):")
	defaultIdx := brush.DefaultColorIndex()
	for idx, entry := range palette {
		marker := " "
		if idx == defaultIdx {
			marker = "*"
		}
		hex := brush.HexString(entry.Color)
		name := entry.Name
		if name == "" {
			name = hex
		}
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(c.out, "%s %2d: %-12s %s %s\n", marker, idx, name, hex, block)
	}
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *colorsCmd) Program() string {
	return c.root.subcommand("colors")
}

func (c *colorsCmd) Template() string {
	return "colors.txt"
}

type widthsCmd struct {
	*root
	fs  *flag.FlagSet
	out io.Writer
}

func parseWidthsCmd(args []string, r *root) (*widthsCmd, error) {
	fs := flag.NewFlagSet("widths", flag.ExitOnError)
	cmd := &widthsCmd{root: r, fs: fs, out: os.Stdout}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *widthsCmd) Run() error {
	fmt.Fprintln(c.out, "brush presets (* marks the default):")
	def := brush.DefaultPreset()
	for _, p := range brush.Presets() {
		marker := " "
		if p == def {
			marker = "*"
		}
		width := strconv.FormatFloat(brush.PresetWidth(p), 'g', -1, 64)
		fmt.Fprintf(c.out, "%s %-7s %5spx\n", marker, p, width)
	}
	return nil
}

func (c *widthsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *widthsCmd) Program() string {
	return c.root.subcommand("widths")
}

func (c *widthsCmd) Template() string {
	return "widths.txt"
}
