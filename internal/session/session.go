// Package session drives a drawing surface from text commands, one per line,
// for scripts and the interactive prompt.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/mattn/go-shellwords"

	"github.com/example/drawpad/internal/export"
	"github.com/example/drawpad/internal/surface"
)

var (
	// ErrUnknownCommand is returned for a command name that is not registered.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is wrapped when a command gets the wrong arguments.
	ErrUsage = errors.New("invalid arguments")
)

// Session executes commands against one Surface.
type Session struct {
	surface  *surface.Surface
	exporter *export.Exporter
	saveDir  string
	out      io.Writer

	watchMu     sync.Mutex
	stopWatch   context.CancelFunc
	commands    map[string]command
	lastExports []string
}

// Option modifies a Session during creation.
type Option func(*Session)

// WithOutput sets where command output is written.
func WithOutput(w io.Writer) Option { return func(s *Session) { s.out = w } }

// WithExporter sets the exporter used by export, pdf and copy.
func WithExporter(e *export.Exporter) Option { return func(s *Session) { s.exporter = e } }

// WithSaveDir sets the directory for exports without an explicit path.
func WithSaveDir(dir string) Option { return func(s *Session) { s.saveDir = dir } }

// New creates a Session for surf.
func New(surf *surface.Surface, opts ...Option) *Session {
	s := &Session{
		surface:  surf,
		exporter: &export.Exporter{},
		saveDir:  ".",
		out:      os.Stdout,
	}
	for _, o := range opts {
		o(s)
	}
	s.commands = s.commandTable()
	return s
}

// Surface returns the surface the session draws on.
func (s *Session) Surface() *surface.Surface { return s.surface }

// Exports returns the destinations written so far, oldest first.
func (s *Session) Exports() []string {
	out := make([]string, len(s.lastExports))
	copy(out, s.lastExports)
	return out
}

// Execute runs a single command line. done reports that the line asked the
// session to end.
func (s *Session) Execute(ctx context.Context, line string) (done bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	args, err := shellwords.Parse(line)
	if err != nil {
		return false, fmt.Errorf("parse %q: %w", line, err)
	}
	if len(args) == 0 {
		return false, nil
	}
	name := strings.ToLower(args[0])
	if name == "exit" || name == "quit" {
		return true, nil
	}
	cmd, ok := s.commands[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	if err := cmd.run(ctx, args[1:]); err != nil {
		if errors.Is(err, ErrUsage) {
			return false, fmt.Errorf("%w (usage: %s)", err, cmd.usage)
		}
		return false, err
	}
	return false, nil
}

// Run reads commands from r until EOF or exit. When prompt is set a prompt
// is written before each line and errors are reported without stopping;
// otherwise the first error ends the run.
func (s *Session) Run(ctx context.Context, r io.Reader, prompt bool) error {
	defer s.stopWatching()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for {
		if prompt {
			fmt.Fprint(s.out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		lineNo++
		done, err := s.Execute(ctx, scanner.Text())
		if err != nil {
			if !prompt {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			log.Printf("session: %v", err)
			fmt.Fprintln(s.out, err)
		}
		if done {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// Help lists the available commands.
func (s *Session) Help() []string {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]string, 0, len(names)+1)
	for _, name := range names {
		out = append(out, s.commands[name].usage)
	}
	return append(out, "exit")
}

// Close stops any background watch started by the session.
func (s *Session) Close() { s.stopWatching() }

func (s *Session) stopWatching() {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	if s.stopWatch != nil {
		s.stopWatch()
		s.stopWatch = nil
	}
}
