package graph

import (
	"math"
	"sync"
)

// Zoom limits.
const (
	MinZoom = 0.1
	MaxZoom = 10.0
)

// Viewport maps graph coordinates onto the surface. The offset is the
// translation applied to every graph point before zoom.
type Viewport struct {
	mu sync.RWMutex

	offset Point
	zoom   float64

	// Size in screen cells
	width  int
	height int
}

// NewViewport creates a viewport with the given size.
// Width and height are clamped to a minimum of 1.
func NewViewport(width, height int) *Viewport {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Viewport{zoom: 1, width: width, height: height}
}

// Offset returns the current translation.
func (v *Viewport) Offset() Point {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.offset
}

// SetOffset replaces the translation.
func (v *Viewport) SetOffset(p Point) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset = p
}

// Translate adds delta to the translation and returns the new offset.
func (v *Viewport) Translate(delta Point) Point {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset = v.offset.Add(delta)
	return v.offset
}

// Zoom returns the current zoom factor.
func (v *Viewport) Zoom() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.zoom
}

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom].
func (v *Viewport) SetZoom(z float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.zoom = math.Max(MinZoom, math.Min(MaxZoom, z))
}

// Size returns the viewport dimensions.
func (v *Viewport) Size() (width, height int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width, v.height
}

// Resize updates the viewport dimensions.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.width = width
	v.height = height
}

// ToScreen converts a graph point to screen cell coordinates.
func (v *Viewport) ToScreen(p Point) (x, y int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	s := p.Add(v.offset).Scale(v.zoom)
	return int(math.Round(s.X)), int(math.Round(s.Y))
}

// ToGraph converts screen cell coordinates to a graph point.
func (v *Viewport) ToGraph(x, y int) Point {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Point{X: float64(x), Y: float64(y)}.Scale(1 / v.zoom).Sub(v.offset)
}

// Visible reports whether a graph point lands inside the viewport.
func (v *Viewport) Visible(p Point) bool {
	x, y := v.ToScreen(p)
	w, h := v.Size()
	return x >= 0 && x < w && y >= 0 && y < h
}
