// Package dragdrop maps pointer positions during a drag to drop targets.
package dragdrop

import (
	"fmt"
	"image"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/geometry"
)

// Dragged identifies what is being dragged: a tab or a whole tabset.
type Dragged struct {
	Kind entity.NodeKind
	ID   entity.NodeID
}

// Candidate is a drop target with the outline to draw while hovering it.
type Candidate struct {
	ContainerID entity.NodeID
	Index       int
	Edge        entity.Edge
	Outline     image.Rectangle
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s[%d]@%s", c.ContainerID, c.Index, c.Edge)
}

// Options tune zone classification.
type Options struct {
	// CenterFraction is the share of each axis covered by the center zone.
	CenterFraction float64
	// EdgeMargin is the thickness of the strips along the main area's
	// outer edges that dock against the main row itself.
	EdgeMargin int
	// BarThickness is the width of the insertion marker in a tab bar.
	BarThickness int
}

// DefaultOptions returns the standard 60% center zone.
func DefaultOptions() Options {
	return Options{CenterFraction: 0.6, EdgeMargin: 10, BarThickness: 3}
}

// Resolve returns the drop target under p, innermost first, or false when
// nothing accepts the drop.
func Resolve(f *geometry.Frame, l *entity.Layout, p image.Point, d Dragged, opts Options) (Candidate, bool) {
	if opts.CenterFraction <= 0 || opts.CenterFraction >= 1 {
		opts.CenterFraction = DefaultOptions().CenterFraction
	}
	r := resolver{frame: f, layout: l, dragged: d, opts: opts}

	for i := len(f.Floating) - 1; i >= 0; i-- {
		id := f.Floating[i]
		if p.In(f.Rects[id]) {
			return r.tabset(id, p)
		}
	}

	for _, id := range f.Borders {
		if p.In(f.Rects[id]) {
			return r.border(id, p)
		}
	}

	if !p.In(f.Main) {
		return Candidate{}, false
	}
	if f.Maximized != "" {
		return r.tabset(f.Maximized, p)
	}
	main := l.MainRow()
	if main == nil {
		return Candidate{}, false
	}
	if c, ok := r.mainEdge(main, p); ok {
		return c, true
	}
	return r.descend(main, p)
}

type resolver struct {
	frame   *geometry.Frame
	layout  *entity.Layout
	dragged Dragged
	opts    Options
}

func (r resolver) descend(n *entity.Node, p image.Point) (Candidate, bool) {
	if n.Kind == entity.KindTabset {
		return r.tabset(n.ID, p)
	}
	for _, id := range n.Children {
		if p.In(r.frame.Rects[id]) {
			c, _ := r.layout.Node(id)
			return r.descend(c, p)
		}
	}
	// Between children: the pointer sits on a splitter of this row.
	return r.row(n, p)
}

func (r resolver) tabset(id entity.NodeID, p image.Point) (Candidate, bool) {
	if r.dragged.Kind == entity.KindTabset && r.dragged.ID == id {
		return Candidate{}, false
	}
	ts, ok := r.layout.Node(id)
	if !ok {
		return Candidate{}, false
	}
	if bar := r.frame.TabBars[id]; bar != nil && p.In(bar.Rect) {
		return r.insertion(bar, p), true
	}

	rect := r.frame.Rects[id]
	edge := classify(rect, p, r.opts.CenterFraction)
	if edge == entity.EdgeCenter {
		outline := rect
		if c, ok := r.frame.Content[id]; ok {
			outline = c
		}
		return Candidate{ContainerID: id, Index: len(ts.Children), Edge: entity.EdgeCenter, Outline: outline}, true
	}
	if ts.IsFloating() {
		// Floating windows only accept tabs, they are not split.
		return Candidate{ContainerID: id, Index: len(ts.Children), Edge: entity.EdgeCenter, Outline: r.frame.Content[id]}, true
	}
	return Candidate{ContainerID: id, Edge: edge, Outline: half(rect, edge)}, true
}

func (r resolver) border(id entity.NodeID, p image.Point) (Candidate, bool) {
	if r.dragged.Kind != entity.KindTab {
		return Candidate{}, false
	}
	b, ok := r.layout.Node(id)
	if !ok {
		return Candidate{}, false
	}
	if bar := r.frame.TabBars[id]; bar != nil && p.In(bar.Rect) {
		return r.insertion(bar, p), true
	}
	return Candidate{ContainerID: id, Index: len(b.Children), Edge: entity.EdgeCenter, Outline: r.frame.Rects[id]}, true
}

func (r resolver) row(n *entity.Node, p image.Point) (Candidate, bool) {
	rect := r.frame.Rects[n.ID]
	edge := nearestEdge(rect, p)
	return r.rowCandidate(n, edge, rect), true
}

func (r resolver) mainEdge(main *entity.Node, p image.Point) (Candidate, bool) {
	m := r.opts.EdgeMargin
	if m <= 0 {
		return Candidate{}, false
	}
	area := r.frame.Main
	var edge entity.Edge
	switch {
	case p.X < area.Min.X+m:
		edge = entity.EdgeLeft
	case p.X >= area.Max.X-m:
		edge = entity.EdgeRight
	case p.Y < area.Min.Y+m:
		edge = entity.EdgeTop
	case p.Y >= area.Max.Y-m:
		edge = entity.EdgeBottom
	default:
		return Candidate{}, false
	}
	return r.rowCandidate(main, edge, area), true
}

func (r resolver) rowCandidate(n *entity.Node, edge entity.Edge, rect image.Rectangle) Candidate {
	index := 0
	if !edge.Leading() {
		index = len(n.Children)
	}
	return Candidate{ContainerID: n.ID, Index: index, Edge: edge, Outline: half(rect, edge)}
}

// insertion finds the tab boundary nearest to p: the index is the number
// of shown buttons whose midpoint lies before the pointer.
func (r resolver) insertion(bar *geometry.TabBar, p image.Point) Candidate {
	at := p.X
	if bar.Axis == entity.AxisVertical {
		at = p.Y
	}

	index := 0
	for _, btn := range bar.Buttons {
		lo, hi := btn.Rect.Min.X, btn.Rect.Max.X
		if bar.Axis == entity.AxisVertical {
			lo, hi = btn.Rect.Min.Y, btn.Rect.Max.Y
		}
		if at < (lo+hi)/2 {
			break
		}
		index++
	}

	pos := bar.Rect.Min.X
	if bar.Axis == entity.AxisVertical {
		pos = bar.Rect.Min.Y
	}
	switch {
	case index < len(bar.Buttons):
		pos = bar.Buttons[index].Rect.Min.X
		if bar.Axis == entity.AxisVertical {
			pos = bar.Buttons[index].Rect.Min.Y
		}
	case len(bar.Buttons) > 0:
		last := bar.Buttons[len(bar.Buttons)-1].Rect
		pos = last.Max.X
		if bar.Axis == entity.AxisVertical {
			pos = last.Max.Y
		}
	}

	thick := max(r.opts.BarThickness, 1)
	outline := image.Rect(pos-thick/2, bar.Rect.Min.Y, pos-thick/2+thick, bar.Rect.Max.Y)
	if bar.Axis == entity.AxisVertical {
		outline = image.Rect(bar.Rect.Min.X, pos-thick/2, bar.Rect.Max.X, pos-thick/2+thick)
	}
	return Candidate{ContainerID: bar.ContainerID, Index: index, Edge: entity.EdgeCenter, Outline: outline}
}

// classify returns EdgeCenter when p lies in the middle fraction of both
// axes and the nearest edge otherwise.
func classify(rect image.Rectangle, p image.Point, fraction float64) entity.Edge {
	if rect.Empty() {
		return entity.EdgeCenter
	}
	x := float64(p.X-rect.Min.X) / float64(rect.Dx())
	y := float64(p.Y-rect.Min.Y) / float64(rect.Dy())
	lo, hi := (1-fraction)/2, (1+fraction)/2
	if x >= lo && x <= hi && y >= lo && y <= hi {
		return entity.EdgeCenter
	}
	return nearestEdge(rect, p)
}

// nearestEdge compares proportional distances so tall and wide rectangles
// classify alike.
func nearestEdge(rect image.Rectangle, p image.Point) entity.Edge {
	if rect.Empty() {
		return entity.EdgeLeft
	}
	x := float64(p.X-rect.Min.X) / float64(rect.Dx())
	y := float64(p.Y-rect.Min.Y) / float64(rect.Dy())

	edge, best := entity.EdgeLeft, x
	if d := 1 - x; d < best {
		edge, best = entity.EdgeRight, d
	}
	if y < best {
		edge, best = entity.EdgeTop, y
	}
	if d := 1 - y; d < best {
		edge = entity.EdgeBottom
	}
	return edge
}

// half returns the half of rect adjacent to edge.
func half(rect image.Rectangle, edge entity.Edge) image.Rectangle {
	switch edge {
	case entity.EdgeTop:
		rect.Max.Y = rect.Min.Y + rect.Dy()/2
	case entity.EdgeBottom:
		rect.Min.Y = rect.Max.Y - rect.Dy()/2
	case entity.EdgeLeft:
		rect.Max.X = rect.Min.X + rect.Dx()/2
	case entity.EdgeRight:
		rect.Min.X = rect.Max.X - rect.Dx()/2
	}
	return rect
}
