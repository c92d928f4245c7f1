package session

import (
	"context"
	"fmt"
	"image"
	"log"
	"strconv"
	"strings"

	"github.com/example/drawpad/internal/background"
	"github.com/example/drawpad/internal/brush"
	"github.com/example/drawpad/internal/compositor"
	"github.com/example/drawpad/internal/export"
	"github.com/example/drawpad/internal/stroke"
	"github.com/example/drawpad/internal/surface"
)

// logf is swapped in tests. Watch errors arrive on the watcher goroutine and
// go here rather than to the session output.
var logf = log.Printf

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

func (s *Session) commandTable() map[string]command {
	return map[string]command{
		"size":       {"size W H", s.cmdSize},
		"down":       {"down X Y", s.cmdDown},
		"move":       {"move X Y", s.cmdMove},
		"up":         {"up", s.cmdUp},
		"stroke":     {"stroke X Y [X Y]...", s.cmdStroke},
		"color":      {"color NAME|#RRGGBB[AA]", s.cmdColor},
		"width":      {"width W", s.cmdWidth},
		"brush":      {"brush small|medium|large", s.cmdBrush},
		"style":      {"style freehand|line", s.cmdStyle},
		"undo":       {"undo", s.cmdUndo},
		"background": {"background PATH|clipboard|screen|none", s.cmdBackground},
		"watch":      {"watch PATH", s.cmdWatch},
		"fit":        {"fit cover|contain|stretch", s.cmdFit},
		"export":     {"export [PATH]", s.cmdExport},
		"pdf":        {"pdf [PATH]", s.cmdPDF},
		"copy":       {"copy", s.cmdCopy},
		"status":     {"status", s.cmdStatus},
		"help":       {"help", s.cmdHelp},
	}
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrUsage, a)
		}
		out[i] = v
	}
	return out, nil
}

func parsePoint(args []string) (stroke.Point, error) {
	if len(args) != 2 {
		return stroke.Point{}, ErrUsage
	}
	v, err := parseFloats(args)
	if err != nil {
		return stroke.Point{}, err
	}
	return stroke.Pt(v[0], v[1]), nil
}

func (s *Session) cmdSize(_ context.Context, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	w, err := strconv.Atoi(args[0])
	if err != nil || w <= 0 {
		return ErrUsage
	}
	h, err := strconv.Atoi(args[1])
	if err != nil || h <= 0 {
		return ErrUsage
	}
	s.surface.Resize(w, h)
	return nil
}

func (s *Session) cmdDown(_ context.Context, args []string) error {
	p, err := parsePoint(args)
	if err != nil {
		return err
	}
	return s.surface.PointerDown(p)
}

func (s *Session) cmdMove(_ context.Context, args []string) error {
	p, err := parsePoint(args)
	if err != nil {
		return err
	}
	return s.surface.PointerMove(p)
}

func (s *Session) cmdUp(_ context.Context, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return s.surface.PointerUp()
}

func (s *Session) cmdStroke(_ context.Context, args []string) error {
	if len(args) < 2 || len(args)%2 != 0 {
		return ErrUsage
	}
	v, err := parseFloats(args)
	if err != nil {
		return err
	}
	if err := s.surface.PointerDown(stroke.Pt(v[0], v[1])); err != nil {
		return err
	}
	for i := 2; i < len(v); i += 2 {
		if err := s.surface.PointerMove(stroke.Pt(v[i], v[i+1])); err != nil {
			s.surface.Cancel()
			return err
		}
	}
	return s.surface.PointerUp()
}

func (s *Session) cmdColor(_ context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return s.surface.SetColor(args[0])
}

func (s *Session) cmdWidth(_ context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	v, err := parseFloats(args)
	if err != nil {
		return err
	}
	return s.surface.SetBrushWidth(v[0])
}

func (s *Session) cmdBrush(_ context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	p, err := brush.ParsePreset(args[0])
	if err != nil {
		return err
	}
	return s.surface.ApplyPreset(p)
}

func (s *Session) cmdStyle(_ context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	st, err := stroke.ParseStyle(args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", surface.ErrInvalidBrushParameter, err)
	}
	return s.surface.SetStyle(st)
}

func (s *Session) cmdUndo(_ context.Context, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return s.surface.Undo()
}

func (s *Session) cmdBackground(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return s.LoadBackground(ctx, args[0])
}

// LoadBackground sets the background from a file path or one of the sources
// "clipboard" and "screen"; "none" clears it. A surface without a size takes
// the size of the loaded image.
func (s *Session) LoadBackground(ctx context.Context, spec string) error {
	var p background.Provider
	switch strings.ToLower(spec) {
	case "none":
		s.surface.ClearBackground()
		return nil
	case "clipboard":
		p = background.ClipboardProvider{}
	case "screen":
		p = background.ScreenProvider{}
	default:
		if err := s.allowRead(ctx, spec); err != nil {
			return err
		}
		p = background.FileProvider{Path: spec}
	}
	img, err := p.Load(ctx)
	if err != nil {
		return err
	}
	s.surface.SetBackground(img)
	b := img.Bounds()
	if w, h := s.surface.Size(); w == 0 && h == 0 {
		s.surface.Resize(b.Dx(), b.Dy())
	}
	fmt.Fprintf(s.out, "background %dx%d\n", b.Dx(), b.Dy())
	return nil
}

func (s *Session) cmdWatch(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if err := s.cmdBackground(ctx, args); err != nil {
		return err
	}
	s.stopWatching()
	wctx, cancel := context.WithCancel(context.Background())
	s.watchMu.Lock()
	s.stopWatch = cancel
	s.watchMu.Unlock()
	path := args[0]
	w := &background.Watcher{
		Path:     path,
		OnChange: func(img image.Image) { s.surface.SetBackground(img) },
		OnError:  func(err error) { logf("watch %s: %v", path, err) },
	}
	go func() {
		if err := w.Run(wctx); err != nil {
			logf("watch %s: %v", path, err)
		}
	}()
	return nil
}

func (s *Session) allowRead(ctx context.Context, path string) error {
	granted, err := export.Await(ctx, export.DirGate{ReadPath: path}, export.AccessRead)
	if err != nil {
		return err
	}
	if !granted {
		return fmt.Errorf("read %s: %w", path, export.ErrPermissionDenied)
	}
	return nil
}

func (s *Session) cmdFit(_ context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	f, err := compositor.ParseFit(args[0])
	if err != nil {
		return err
	}
	s.surface.SetFit(f)
	return nil
}

func (s *Session) persist(ctx context.Context, sink export.Sink) error {
	dest, err := s.exporter.Persist(ctx, sink, s.surface.ExportAsync(0, 0))
	if err != nil {
		return err
	}
	s.lastExports = append(s.lastExports, dest)
	fmt.Fprintf(s.out, "saved %s\n", dest)
	return nil
}

func (s *Session) fileSink(args []string) (export.FileSink, error) {
	switch len(args) {
	case 0:
		return export.FileSink{Dir: s.saveDir}, nil
	case 1:
		return export.FileSink{Path: args[0]}, nil
	}
	return export.FileSink{}, ErrUsage
}

func (s *Session) cmdExport(ctx context.Context, args []string) error {
	sink, err := s.fileSink(args)
	if err != nil {
		return err
	}
	return s.persist(ctx, sink)
}

func (s *Session) cmdPDF(ctx context.Context, args []string) error {
	sink, err := s.fileSink(args)
	if err != nil {
		return err
	}
	return s.persist(ctx, export.PDFSink{FileSink: sink})
}

func (s *Session) cmdCopy(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return s.persist(ctx, export.ClipboardSink{})
}

func (s *Session) cmdStatus(_ context.Context, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	b := s.surface.Brush()
	w, h := s.surface.Size()
	bg := "none"
	if img := s.surface.Background(); img != nil {
		bg = fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
	fmt.Fprintf(s.out, "state=%s strokes=%d size=%dx%d color=%s width=%s style=%s background=%s fit=%s\n",
		s.surface.State(), len(s.surface.Strokes()), w, h,
		brush.HexString(b.Color()), strconv.FormatFloat(b.Width(), 'g', -1, 64), b.Style(),
		bg, s.surface.Fit())
	return nil
}

func (s *Session) cmdHelp(_ context.Context, _ []string) error {
	for _, line := range s.Help() {
		fmt.Fprintln(s.out, line)
	}
	return nil
}
