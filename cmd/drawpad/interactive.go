package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
)

type interactiveCmd struct {
	*root
	fs     *flag.FlagSet
	canvas *canvasFlags
	stdin  io.Reader
	stdout io.Writer
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func (i *interactiveCmd) Program() string {
	return i.root.subcommand("interactive")
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	i := &interactiveCmd{root: r, fs: fs, stdin: os.Stdin, stdout: os.Stdout}
	fs.Usage = usageFunc(i)
	i.canvas = addCanvasFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: i}
	}
	return i, nil
}

func (i *interactiveCmd) Run() error {
	ctx := context.Background()
	s, err := i.canvas.openSession(ctx, i.root, i.stdout)
	if err != nil {
		return err
	}
	defer s.Close()
	fmt.Fprintln(i.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	return s.Run(ctx, i.stdin, true)
}
