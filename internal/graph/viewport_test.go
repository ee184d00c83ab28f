package graph

import "testing"

func TestNewViewportClampsSize(t *testing.T) {
	v := NewViewport(0, -3)
	w, h := v.Size()
	if w != 1 || h != 1 {
		t.Errorf("Size() = %d, %d, want 1, 1", w, h)
	}
}

func TestViewportTranslate(t *testing.T) {
	v := NewViewport(80, 24)
	v.Translate(Point{X: 2, Y: 3})
	got := v.Translate(Point{X: -1, Y: 1})
	if got != (Point{X: 1, Y: 4}) {
		t.Errorf("Translate = %v, want (1, 4)", got)
	}
}

func TestViewportZoomClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{2, 2},
		{0, MinZoom},
		{100, MaxZoom},
	}
	for _, tt := range tests {
		v := NewViewport(10, 10)
		v.SetZoom(tt.in)
		if got := v.Zoom(); got != tt.want {
			t.Errorf("SetZoom(%v): Zoom() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestViewportScreenMapping(t *testing.T) {
	v := NewViewport(20, 10)
	v.SetOffset(Point{X: 5, Y: -2})
	v.SetZoom(2)

	x, y := v.ToScreen(Point{X: 1, Y: 4})
	if x != 12 || y != 4 {
		t.Errorf("ToScreen = %d, %d, want 12, 4", x, y)
	}
	if p := v.ToGraph(x, y); p != (Point{X: 1, Y: 4}) {
		t.Errorf("ToGraph = %v, want (1, 4)", p)
	}

	if !v.Visible(Point{X: 1, Y: 4}) {
		t.Error("(1, 4) should be visible")
	}
	if v.Visible(Point{X: 100, Y: 0}) {
		t.Error("(100, 0) should not be visible")
	}
}

func TestPointArithmetic(t *testing.T) {
	p := Point{X: 3, Y: -4}
	if got := p.Scale(2); got != (Point{X: 6, Y: -8}) {
		t.Errorf("Scale = %v", got)
	}
	if got := p.Add(Point{X: 1, Y: 1}).Sub(Point{X: 1, Y: 1}); got != p {
		t.Errorf("Add/Sub = %v", got)
	}
	if !(Point{}).IsZero() || p.IsZero() {
		t.Error("IsZero mismatch")
	}
	if p.String() != "(3, -4)" {
		t.Errorf("String() = %q", p.String())
	}
}
