package stroke

import (
	"errors"
	"image/color"
	"reflect"
	"testing"
)

var red = Attributes{Color: color.RGBA{R: 255, A: 255}, Width: 4, Style: StyleFreehand}

func TestRecorderPointCountMatchesMoves(t *testing.T) {
	for moves := 0; moves < 6; moves++ {
		var r Recorder
		if err := r.Begin(Pt(0, 0), red); err != nil {
			t.Fatalf("begin: %v", err)
		}
		want := []Point{Pt(0, 0)}
		for i := 0; i < moves; i++ {
			p := Pt(float64(i+1), float64(2*i))
			if !r.Extend(p) {
				t.Fatalf("extend %d rejected", i)
			}
			want = append(want, p)
		}
		s, ok := r.End()
		if !ok {
			t.Fatalf("end reported no gesture")
		}
		if s.Len() != 1+moves {
			t.Fatalf("moves=%d: got %d points", moves, s.Len())
		}
		if !reflect.DeepEqual(s.Points(), want) {
			t.Fatalf("moves=%d: points %v, want %v", moves, s.Points(), want)
		}
	}
}

func TestRecorderDuplicatePointsKept(t *testing.T) {
	var r Recorder
	_ = r.Begin(Pt(3, 3), red)
	r.Extend(Pt(3, 3))
	r.Extend(Pt(3, 3))
	s, _ := r.End()
	if s.Len() != 3 {
		t.Fatalf("expected duplicate points to be recorded, got %d", s.Len())
	}
}

func TestRecorderBeginWhileActive(t *testing.T) {
	var r Recorder
	if err := r.Begin(Pt(0, 0), red); err != nil {
		t.Fatalf("begin: %v", err)
	}
	r.Extend(Pt(1, 1))
	if err := r.Begin(Pt(9, 9), red); !errors.Is(err, ErrGestureActive) {
		t.Fatalf("expected ErrGestureActive, got %v", err)
	}
	s, _ := r.End()
	if got := s.Points()[0]; got != Pt(0, 0) {
		t.Fatalf("second begin altered active stroke: first point %v", got)
	}
}

func TestRecorderIdleOperations(t *testing.T) {
	var r Recorder
	if r.Extend(Pt(1, 1)) {
		t.Fatalf("extend accepted without gesture")
	}
	if _, ok := r.End(); ok {
		t.Fatalf("end returned a stroke without gesture")
	}
	if _, ok := r.Active(); ok {
		t.Fatalf("active stroke reported while idle")
	}
}

func TestRecorderOnExtend(t *testing.T) {
	calls := 0
	r := Recorder{OnExtend: func() { calls++ }}
	r.Extend(Pt(0, 0))
	_ = r.Begin(Pt(0, 0), red)
	r.Extend(Pt(1, 0))
	r.Extend(Pt(2, 0))
	if calls != 2 {
		t.Fatalf("expected 2 redraw requests, got %d", calls)
	}
}

func TestRecorderRejectsBadWidth(t *testing.T) {
	var r Recorder
	bad := red
	bad.Width = 0
	if err := r.Begin(Pt(0, 0), bad); !errors.Is(err, ErrInvalidAttributes) {
		t.Fatalf("expected ErrInvalidAttributes, got %v", err)
	}
	if r.Recording() {
		t.Fatalf("recorder should stay idle")
	}
}

func TestStrokePointsAreCopies(t *testing.T) {
	var r Recorder
	_ = r.Begin(Pt(0, 0), red)
	r.Extend(Pt(5, 5))
	s, _ := r.End()
	pts := s.Points()
	pts[0] = Pt(100, 100)
	if s.Points()[0] != Pt(0, 0) {
		t.Fatalf("mutating returned points changed the stroke")
	}
}

func TestActiveIsSnapshot(t *testing.T) {
	var r Recorder
	_ = r.Begin(Pt(0, 0), red)
	snap, _ := r.Active()
	r.Extend(Pt(1, 1))
	if snap.Len() != 1 {
		t.Fatalf("snapshot grew with the live stroke: %d", snap.Len())
	}
}

func TestLineGeometry(t *testing.T) {
	attrs := red
	attrs.Style = StyleLine
	s, err := New(attrs, Pt(0, 0), Pt(1, 5), Pt(10, 0))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	g := s.Geometry()
	if len(g) != 2 || g[0] != Pt(0, 0) || g[1] != Pt(10, 0) {
		t.Fatalf("unexpected line geometry %v", g)
	}
}

func TestParseStyle(t *testing.T) {
	if st, err := ParseStyle(" Line "); err != nil || st != StyleLine {
		t.Fatalf("ParseStyle(line) = %v, %v", st, err)
	}
	if _, err := ParseStyle("spray"); err == nil {
		t.Fatalf("expected error for unknown style")
	}
}
