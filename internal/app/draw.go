package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/graphview/internal/graph"
)

var (
	edgeStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	nodeStyle   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	statusStyle = tcell.StyleDefault.Reverse(true)
)

// draw renders the graph at the current view offset and the status line.
// It runs on the terminal event loop.
func (app *Application) draw() {
	w, h := app.term.Size()
	vp := app.graph.Viewport()
	vp.Resize(w, h-1)

	app.term.Clear()

	nodes := app.graph.Nodes()
	pos := make(map[string][2]int, len(nodes))
	for _, n := range nodes {
		x, y := vp.ToScreen(n.Position)
		pos[n.ID] = [2]int{x, y}
	}
	for _, e := range app.graph.Edges() {
		a, b := pos[e.Source], pos[e.Target]
		app.drawLine(a[0], a[1], b[0], b[1])
	}
	for _, n := range nodes {
		p := pos[n.ID]
		label := "(" + n.Label + ")"
		app.term.DrawText(p[0]-len(label)/2, p[1], label, nodeStyle)
	}

	status := fmt.Sprintf(" offset %s  %s  q quit", app.graph.Position(), app.helpLine())
	if pad := w - len(status); pad > 0 {
		status += strings.Repeat(" ", pad)
	}
	app.term.DrawText(0, h-1, status, statusStyle)
	app.term.Show()
}

// drawLine plots a line of dots between two cells (Bresenham).
func (app *Application) drawLine(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		app.term.DrawText(x0, y0, "·", edgeStyle)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// helpLine lists the enabled bindings of every behavior.
func (app *Application) helpLine() string {
	var parts []string
	seen := make(map[string]bool)
	for _, b := range app.controller.KeyBindings() {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		s := h.Key + " " + h.Desc
		if seen[s] {
			continue
		}
		seen[s] = true
		parts = append(parts, s)
	}
	return strings.Join(parts, " · ")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// populateDemo adds a small service graph to g.
func populateDemo(g *graph.Graph) error {
	nodes := []graph.Node{
		{ID: "gateway", Label: "gateway", Position: graph.Point{X: 10, Y: 8}},
		{ID: "auth", Label: "auth", Position: graph.Point{X: 32, Y: 3}},
		{ID: "orders", Label: "orders", Position: graph.Point{X: 32, Y: 9}},
		{ID: "search", Label: "search", Position: graph.Point{X: 32, Y: 15}},
		{ID: "cache", Label: "cache", Position: graph.Point{X: 56, Y: 3}},
		{ID: "billing", Label: "billing", Position: graph.Point{X: 56, Y: 9}},
		{ID: "db", Label: "db", Position: graph.Point{X: 56, Y: 15}},
	}
	edges := []graph.Edge{
		{Source: "gateway", Target: "auth"},
		{Source: "gateway", Target: "orders"},
		{Source: "gateway", Target: "search"},
		{Source: "auth", Target: "cache"},
		{Source: "orders", Target: "billing"},
		{Source: "orders", Target: "db"},
		{Source: "search", Target: "db"},
		{Source: "billing", Target: "db"},
	}

	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			return err
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			return err
		}
	}
	return nil
}
