package geometry

import (
	"image"
	"math"

	"github.com/bnema/dockyard/internal/domain/entity"
)

// Resolve lays the layout out inside bounds.
//
// Borders holding tabs are subtracted first, in the order top, bottom,
// left, right. The main row receives what is left and divides its main axis
// between children by weight after reserving one splitter per gap. A
// maximized tabset takes the whole main area instead. Floating tabsets are
// placed last at their own rectangles.
func Resolve(l *entity.Layout, bounds image.Rectangle, m Metrics) *Frame {
	if m.Measure == nil {
		m.Measure = DefaultMetrics().Measure
	}
	f := newFrame(bounds)
	area := bounds

	for _, edge := range entity.BorderEdges {
		b, ok := l.Border(edge)
		if !ok || len(b.Children) == 0 {
			continue
		}
		area = f.placeBorder(l, b, area, m)
	}
	f.Main = area

	main := l.MainRow()
	if main != nil {
		if id, ok := l.Maximized(); ok && l.InMainArea(id) {
			ts, _ := l.Node(id)
			f.Maximized = id
			f.Rects[main.ID] = area
			f.placeTabset(l, ts, area, m)
		} else {
			f.placeRow(l, main, area, entity.AxisHorizontal, m)
		}
	}

	for _, ts := range l.Floating() {
		r := *ts.Float
		if clipped := r.Intersect(bounds); !clipped.Empty() {
			r = clipped
		}
		f.placeTabset(l, ts, r, m)
		f.Floating = append(f.Floating, ts.ID)
	}
	return f
}

func (f *Frame) placeBorder(l *entity.Layout, b *entity.Node, area image.Rectangle, m Metrics) image.Rectangle {
	thickness := m.HeaderHeight
	if b.Selected >= 0 {
		thickness += b.Size
	}

	var rect, bar, panel image.Rectangle
	axis := entity.AxisHorizontal
	switch b.Location {
	case entity.EdgeTop:
		thickness = min(thickness, area.Dy())
		rect = image.Rect(area.Min.X, area.Min.Y, area.Max.X, area.Min.Y+thickness)
		bar = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+min(m.HeaderHeight, thickness))
		panel = image.Rect(rect.Min.X, bar.Max.Y, rect.Max.X, rect.Max.Y)
		area.Min.Y += thickness
	case entity.EdgeBottom:
		thickness = min(thickness, area.Dy())
		rect = image.Rect(area.Min.X, area.Max.Y-thickness, area.Max.X, area.Max.Y)
		bar = image.Rect(rect.Min.X, rect.Max.Y-min(m.HeaderHeight, thickness), rect.Max.X, rect.Max.Y)
		panel = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, bar.Min.Y)
		area.Max.Y -= thickness
	case entity.EdgeLeft:
		axis = entity.AxisVertical
		thickness = min(thickness, area.Dx())
		rect = image.Rect(area.Min.X, area.Min.Y, area.Min.X+thickness, area.Max.Y)
		bar = image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+min(m.HeaderHeight, thickness), rect.Max.Y)
		panel = image.Rect(bar.Max.X, rect.Min.Y, rect.Max.X, rect.Max.Y)
		area.Min.X += thickness
	case entity.EdgeRight:
		axis = entity.AxisVertical
		thickness = min(thickness, area.Dx())
		rect = image.Rect(area.Max.X-thickness, area.Min.Y, area.Max.X, area.Max.Y)
		bar = image.Rect(rect.Max.X-min(m.HeaderHeight, thickness), rect.Min.Y, rect.Max.X, rect.Max.Y)
		panel = image.Rect(rect.Min.X, rect.Min.Y, bar.Min.X, rect.Max.Y)
		area.Max.X -= thickness
	default:
		return area
	}

	f.Rects[b.ID] = rect
	f.Headers[b.ID] = bar
	f.Borders = append(f.Borders, b.ID)
	if tab, ok := b.SelectedChild(); ok {
		f.Content[b.ID] = panel
		f.Rects[tab] = panel
	}
	f.TabBars[b.ID] = layoutTabBar(l, b, bar, axis, m)
	return area
}

func (f *Frame) placeRow(l *entity.Layout, row *entity.Node, rect image.Rectangle, axis entity.Axis, m Metrics) {
	f.Rects[row.ID] = rect
	n := len(row.Children)
	if n == 0 {
		return
	}

	extent, start := rect.Dx(), rect.Min.X
	if axis == entity.AxisVertical {
		extent, start = rect.Dy(), rect.Min.Y
	}
	avail := max(extent-(n-1)*m.SplitterSize, 0)

	var total float64
	for _, id := range row.Children {
		c, _ := l.Node(id)
		total += c.Weight
	}

	pos, used := start, 0
	for i, id := range row.Children {
		c, _ := l.Node(id)
		size := avail - used
		if i < n-1 {
			if total > 0 {
				size = int(math.Floor(float64(avail) * c.Weight / total))
			} else {
				size = avail / n
			}
			size = min(size, avail-used)
		}
		used += size

		child := span(rect, axis, pos, pos+size)
		pos += size
		if i < n-1 {
			f.Splitters = append(f.Splitters, Splitter{
				RowID:  row.ID,
				Index:  i,
				Rect:   span(rect, axis, pos, pos+m.SplitterSize),
				Axis:   axis,
				Extent: avail,
			})
			pos += m.SplitterSize
		}

		switch c.Kind {
		case entity.KindRow:
			f.placeRow(l, c, child, axis.Flip(), m)
		case entity.KindTabset:
			f.placeTabset(l, c, child, m)
		}
	}
}

func (f *Frame) placeTabset(l *entity.Layout, ts *entity.Node, rect image.Rectangle, m Metrics) {
	header := rect
	header.Max.Y = min(rect.Min.Y+m.HeaderHeight, rect.Max.Y)
	content := rect
	content.Min.Y = header.Max.Y

	f.Rects[ts.ID] = rect
	f.Headers[ts.ID] = header
	f.Content[ts.ID] = content
	if tab, ok := ts.SelectedChild(); ok {
		f.Rects[tab] = content
	}
	f.TabBars[ts.ID] = layoutTabBar(l, ts, header, entity.AxisHorizontal, m)
}

// layoutTabBar places buttons in tab order until the bar is exhausted.
// Once a tab does not fit, it and every later tab go to the overflow list
// and room is made for the overflow button.
func layoutTabBar(l *entity.Layout, c *entity.Node, bar image.Rectangle, axis entity.Axis, m Metrics) *TabBar {
	tb := &TabBar{ContainerID: c.ID, Rect: bar, Axis: axis}
	extent, start := bar.Dx(), bar.Min.X
	if axis == entity.AxisVertical {
		extent, start = bar.Dy(), bar.Min.Y
	}

	sizes := make([]int, len(c.Children))
	needed := 0
	for i, id := range c.Children {
		tab, _ := l.Node(id)
		sizes[i] = m.Measure(tab.Name)
		needed += sizes[i]
		if i > 0 {
			needed += m.TabGap
		}
	}
	limit := extent
	if needed > extent {
		limit = max(extent-m.OverflowWidth, 0)
	}

	pos := start
	for i, id := range c.Children {
		end := pos + sizes[i]
		if end > start+limit {
			tb.Overflow = append(tb.Overflow, c.Children[i:]...)
			break
		}
		tab, _ := l.Node(id)
		btn := TabButton{TabID: id, Rect: span(bar, axis, pos, end)}
		if tab.Closable && sizes[i] > m.CloseWidth {
			btn.Close = span(bar, axis, end-m.CloseWidth, end)
		}
		tb.Buttons = append(tb.Buttons, btn)
		pos = end + m.TabGap
	}
	if len(tb.Overflow) > 0 {
		end := start + extent
		tb.OverflowButton = span(bar, axis, max(end-m.OverflowWidth, start), end)
	}
	return tb
}

// span cuts [from, to) out of r along axis, keeping r's cross extent.
func span(r image.Rectangle, axis entity.Axis, from, to int) image.Rectangle {
	if axis == entity.AxisVertical {
		return image.Rect(r.Min.X, from, r.Max.X, to)
	}
	return image.Rect(from, r.Min.Y, to, r.Max.Y)
}
