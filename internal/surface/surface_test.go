package surface

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/example/drawpad/internal/brush"
	"github.com/example/drawpad/internal/compositor"
	"github.com/example/drawpad/internal/stroke"
)

func drain(s *Surface) int {
	n := 0
	for {
		select {
		case <-s.Invalidated():
			n++
		default:
			return n
		}
	}
}

func drawStroke(t *testing.T, s *Surface, pts ...stroke.Point) {
	t.Helper()
	if err := s.PointerDown(pts[0]); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	for _, p := range pts[1:] {
		if err := s.PointerMove(p); err != nil {
			t.Fatalf("PointerMove: %v", err)
		}
	}
	if err := s.PointerUp(); err != nil {
		t.Fatalf("PointerUp: %v", err)
	}
}

func TestGestureThenUndo(t *testing.T) {
	s := New(WithSize(40, 40))
	drawStroke(t, s, stroke.Pt(0, 0), stroke.Pt(10, 0), stroke.Pt(10, 10))
	strokes := s.Strokes()
	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	want := []stroke.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	got := strokes[0].Points()
	if len(got) != len(want) {
		t.Fatalf("points = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("points = %v, want %v", got, want)
		}
	}
	if err := s.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if len(s.Strokes()) != 0 || s.State() != Idle {
		t.Fatalf("after undo: %d strokes, state %v", len(s.Strokes()), s.State())
	}
}

func TestUndoEmptyStackIsNoop(t *testing.T) {
	s := New()
	drain(s)
	if err := s.Undo(); err != nil {
		t.Fatalf("Undo on empty stack: %v", err)
	}
	if n := drain(s); n != 0 {
		t.Fatalf("empty undo requested %d repaints", n)
	}
}

func TestUndoRejectedWhileDrawing(t *testing.T) {
	s := New()
	drawStroke(t, s, stroke.Pt(1, 1), stroke.Pt(2, 2))
	if err := s.PointerDown(stroke.Pt(5, 5)); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	if err := s.Undo(); !errors.Is(err, ErrInvalidGestureState) {
		t.Fatalf("Undo while drawing error = %v", err)
	}
	if len(s.Strokes()) != 1 || s.State() != Drawing {
		t.Fatalf("undo while drawing changed state: %d strokes, %v", len(s.Strokes()), s.State())
	}
	if err := s.PointerUp(); err != nil {
		t.Fatalf("PointerUp: %v", err)
	}
	if len(s.Strokes()) != 2 {
		t.Fatalf("stroke lost after rejected undo")
	}
}

func TestInvalidGestureOrder(t *testing.T) {
	s := New()
	if err := s.PointerMove(stroke.Pt(1, 1)); !errors.Is(err, ErrInvalidGestureState) {
		t.Fatalf("move while idle error = %v", err)
	}
	if err := s.PointerUp(); !errors.Is(err, ErrInvalidGestureState) {
		t.Fatalf("up while idle error = %v", err)
	}
	if err := s.PointerDown(stroke.Pt(0, 0)); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	if err := s.PointerDown(stroke.Pt(3, 3)); !errors.Is(err, ErrInvalidGestureState) {
		t.Fatalf("down while drawing error = %v", err)
	}
	if err := s.PointerUp(); err != nil {
		t.Fatalf("PointerUp: %v", err)
	}
	strokes := s.Strokes()
	if len(strokes) != 1 || strokes[0].Len() != 1 {
		t.Fatalf("second down leaked into stroke: %v", strokes)
	}
}

func TestBrushWidthRejected(t *testing.T) {
	s := New()
	if err := s.SetBrushWidth(7); err != nil {
		t.Fatalf("SetBrushWidth: %v", err)
	}
	if err := s.SetBrushWidth(-5); !errors.Is(err, ErrInvalidBrushParameter) {
		t.Fatalf("SetBrushWidth(-5) error = %v", err)
	}
	drawStroke(t, s, stroke.Pt(0, 0))
	if w := s.Strokes()[0].Width(); w != 7 {
		t.Fatalf("stroke width = %v, want 7", w)
	}
}

func TestSetColorRejected(t *testing.T) {
	s := New()
	if err := s.SetColor("blue"); err != nil {
		t.Fatalf("SetColor: %v", err)
	}
	if err := s.SetColor("#zz"); !errors.Is(err, ErrInvalidBrushParameter) {
		t.Fatalf("SetColor(#zz) error = %v", err)
	}
	if s.Brush().Color() != (color.RGBA{0, 0, 255, 255}) {
		t.Fatalf("colour changed after rejection: %v", s.Brush().Color())
	}
}

func TestBrushChangeMidGestureAffectsNextStroke(t *testing.T) {
	s := New()
	if err := s.SetColor("red"); err != nil {
		t.Fatal(err)
	}
	if err := s.PointerDown(stroke.Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := s.SetColor("blue"); err != nil {
		t.Fatal(err)
	}
	if err := s.ApplyPreset(brush.PresetLarge); err != nil {
		t.Fatal(err)
	}
	if err := s.PointerUp(); err != nil {
		t.Fatal(err)
	}
	drawStroke(t, s, stroke.Pt(1, 1))
	strokes := s.Strokes()
	if strokes[0].Color() != (color.RGBA{255, 0, 0, 255}) || strokes[0].Width() != brush.DefaultWidth() {
		t.Fatalf("first stroke picked up later brush change: %v", strokes[0])
	}
	if strokes[1].Color() != (color.RGBA{0, 0, 255, 255}) || strokes[1].Width() != 30 {
		t.Fatalf("second stroke missing brush change: %v", strokes[1])
	}
}

func TestInvalidationCoalesces(t *testing.T) {
	s := New()
	drain(s)
	if err := s.PointerDown(stroke.Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	for i := 1; i < 20; i++ {
		if err := s.PointerMove(stroke.Pt(float64(i), 0)); err != nil {
			t.Fatal(err)
		}
	}
	if n := drain(s); n != 1 {
		t.Fatalf("got %d pending repaints, want 1", n)
	}
	if err := s.PointerMove(stroke.Pt(30, 0)); err != nil {
		t.Fatal(err)
	}
	if n := drain(s); n != 1 {
		t.Fatalf("move after drain did not request repaint")
	}
}

func TestRenderMatchesExport(t *testing.T) {
	s := New(WithSize(24, 24))
	if err := s.SetColor("red"); err != nil {
		t.Fatal(err)
	}
	_ = s.SetBrushWidth(4)
	drawStroke(t, s, stroke.Pt(2, 2), stroke.Pt(20, 20))
	dst := image.NewRGBA(image.Rect(0, 0, 24, 24))
	if err := s.Render(dst); err != nil {
		t.Fatalf("Render: %v", err)
	}
	flat, err := compositor.New().Flatten(s.Snapshot(), 24, 24)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if !bytes.Equal(dst.Pix, flat.Pix) {
		t.Fatalf("render and export pixels differ")
	}
	a, err := s.ExportRaster(0, 0)
	if err != nil {
		t.Fatalf("ExportRaster: %v", err)
	}
	b, err := s.ExportRaster(24, 24)
	if err != nil {
		t.Fatalf("ExportRaster: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("export with visible size differs from explicit size")
	}
}

func TestRenderZeroTarget(t *testing.T) {
	s := New()
	var rf *compositor.RenderFailure
	if err := s.Render(image.NewRGBA(image.Rect(0, 0, 0, 0))); !errors.As(err, &rf) {
		t.Fatalf("Render zero target error = %v", err)
	}
	if _, err := s.ExportRaster(0, 0); !errors.As(err, &rf) {
		t.Fatalf("ExportRaster without size error = %v", err)
	}
}

func TestRenderShowsActiveStroke(t *testing.T) {
	s := New(WithSize(10, 10))
	s.SetColorRGBA(color.RGBA{0, 0, 0, 255})
	_ = s.SetBrushWidth(6)
	if err := s.PointerDown(stroke.Pt(5, 5)); err != nil {
		t.Fatal(err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if err := s.Render(dst); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := dst.RGBAAt(5, 5); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("active stroke not rendered: %v", got)
	}
}

func TestExportSnapshotIsolated(t *testing.T) {
	s := New(WithSize(16, 16))
	drawStroke(t, s, stroke.Pt(1, 1), stroke.Pt(8, 8))
	want, err := s.ExportRaster(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	ch := s.ExportAsync(0, 0)
	drawStroke(t, s, stroke.Pt(0, 15), stroke.Pt(15, 0))
	res := <-ch
	if res.Err != nil {
		t.Fatalf("ExportAsync: %v", res.Err)
	}
	if !bytes.Equal(res.Data, want) {
		t.Fatalf("async export saw strokes committed after it started")
	}
}

func TestSetBackgroundConcurrent(t *testing.T) {
	s := New(WithSize(8, 8))
	bg := image.NewUniform(color.RGBA{0, 255, 0, 255})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.SetBackground(bg)
		}()
	}
	drawStroke(t, s, stroke.Pt(1, 1))
	wg.Wait()
	if s.Background() == nil {
		t.Fatalf("background not set")
	}
	s.ClearBackground()
	if s.Background() != nil {
		t.Fatalf("background not cleared")
	}
	if len(s.Strokes()) != 1 {
		t.Fatalf("background change touched strokes")
	}
}

func TestCancelDiscardsStroke(t *testing.T) {
	s := New()
	if err := s.PointerDown(stroke.Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	s.Cancel()
	if s.State() != Idle || len(s.Strokes()) != 0 {
		t.Fatalf("cancel left state %v with %d strokes", s.State(), len(s.Strokes()))
	}
}
