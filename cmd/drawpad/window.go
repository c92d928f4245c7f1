package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/example/drawpad/internal/background"
	"github.com/example/drawpad/internal/theme"
	"github.com/example/drawpad/internal/ui"
)

type windowCmd struct {
	*root
	fs     *flag.FlagSet
	canvas *canvasFlags
	watch  bool
	title  string
	theme  string
}

func (w *windowCmd) FlagSet() *flag.FlagSet {
	return w.fs
}

func (w *windowCmd) Program() string {
	return w.root.subcommand("window")
}

func parseWindowCmd(args []string, r *root) (*windowCmd, error) {
	fs := flag.NewFlagSet("window", flag.ExitOnError)
	w := &windowCmd{root: r, fs: fs}
	fs.Usage = usageFunc(w)
	w.canvas = addCanvasFlags(fs)
	fs.BoolVar(&w.watch, "watch", false, "reload the background file whenever it changes")
	fs.StringVar(&w.title, "title", "drawpad", "window title")
	// Precedence: CLI > Env > Config > Default, resolved in Run.
	fs.StringVar(&w.theme, "theme", "", "status bar theme: default, dark, high_contrast or a .theme file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: w}
	}
	return w, nil
}

func (w *windowCmd) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := w.canvas.openSession(ctx, w.root, os.Stdout)
	if err != nil {
		return err
	}
	defer s.Close()
	surf := s.Surface()

	if w.watch && w.canvas.background != "" {
		watcher := &background.Watcher{
			Path:     w.canvas.background,
			OnChange: func(img image.Image) { surf.SetBackground(img) },
			OnError:  func(err error) { log.Printf("watch %s: %v", w.canvas.background, err) },
		}
		go func() {
			if err := watcher.Run(ctx); err != nil {
				log.Printf("watch %s: %v", w.canvas.background, err)
			}
		}()
	}

	th, err := theme.NewLoader().Resolve(w.theme, w.root.config.Theme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v. using default theme.\n", err)
	}

	dir := w.root.saveDir()
	win := ui.New(surf,
		ui.WithTheme(th),
		ui.WithExporter(w.root.exporter(dir)),
		ui.WithSaveDir(dir),
		ui.WithTitle(w.title),
		ui.WithOnClose(cancel),
	)
	win.Run()
	return nil
}
