package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/drawpad/internal/config"
	"github.com/example/drawpad/internal/export"
	"github.com/example/drawpad/internal/notify"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	exportAlerts bool
	copyAlerts   bool
	saveDirFlag  string
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("drawpad", flag.ExitOnError),
		program:  "drawpad",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after saving a drawing")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	// Precedence: CLI > Env > Config > Default, resolved in saveDir.
	r.fs.StringVar(&r.saveDirFlag, "save-dir", "", "directory for saved drawings (env "+config.EnvSaveDir+")")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	if err := r.config.Apply(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "window":
		cmd, err = parseWindowCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "widths":
		cmd, err = parseWidthsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		var pf *export.PersistFailure
		if errors.As(err, &pf) {
			fmt.Fprintln(os.Stderr, pf.UserMessage())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// saveDir resolves where drawings without an explicit path are written.
func (r *root) saveDir() string {
	if r == nil || r.config == nil {
		return config.DefaultSaveDir
	}
	return r.config.ResolveSaveDir(r.saveDirFlag)
}

// exporter returns an Exporter whose gate checks dir and whose announcements
// go through the root notifier.
func (r *root) exporter(dir string) *export.Exporter {
	e := &export.Exporter{Gate: export.DirGate{Dir: dir}}
	if r != nil && r.notifier != nil {
		e.Notifier = r.notifier
	}
	return e
}
