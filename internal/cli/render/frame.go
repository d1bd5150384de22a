package render

import (
	"image"
	"sort"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/geometry"
)

// Options control how a frame is drawn.
type Options struct {
	// Scale is the number of frame units per cell. Zero means one.
	Scale image.Point
	// Styles is nil for plain text.
	Styles *Styles
	// Active is the tabset whose header is highlighted.
	Active entity.NodeID
	// Outline and Preview are drawn on top, in frame units.
	Outline image.Rectangle
	Preview image.Rectangle
}

func (o Options) scale() (int, int) {
	sx, sy := o.Scale.X, o.Scale.Y
	if sx <= 0 {
		sx = 1
	}
	if sy <= 0 {
		sy = 1
	}
	return sx, sy
}

// Cells converts a rectangle in frame units to cells. A non-empty
// rectangle never collapses to nothing.
func (o Options) Cells(r image.Rectangle) image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	sx, sy := o.scale()
	out := image.Rect(floorDiv(r.Min.X, sx), floorDiv(r.Min.Y, sy), floorDiv(r.Max.X, sx), floorDiv(r.Max.Y, sy))
	if out.Dx() == 0 {
		out.Max.X++
	}
	if out.Dy() == 0 {
		out.Max.Y++
	}
	return out
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// Frame draws f onto a new canvas.
func Frame(f *geometry.Frame, l *entity.Layout, opts Options) *Canvas {
	c := NewCanvas(opts.Cells(f.Bounds))

	for _, s := range f.Splitters {
		ch := '│'
		if s.Axis == entity.AxisVertical {
			ch = '─'
		}
		c.Fill(opts.Cells(s.Rect), ch, ClassSplitter)
	}

	floating := make(map[entity.NodeID]bool, len(f.Floating))
	for _, id := range f.Floating {
		floating[id] = true
	}
	docked := make([]entity.NodeID, 0, len(f.Headers))
	for id := range f.Headers {
		if !floating[id] {
			docked = append(docked, id)
		}
	}
	sort.Slice(docked, func(i, j int) bool { return docked[i] < docked[j] })

	for _, id := range docked {
		drawContainer(c, f, l, id, opts)
	}
	for _, id := range f.Floating {
		drawContainer(c, f, l, id, opts)
	}

	if !opts.Preview.Empty() {
		c.Fill(opts.Cells(opts.Preview), '░', ClassPreview)
	}
	if !opts.Outline.Empty() {
		c.Box(opts.Cells(opts.Outline), ClassOutline)
	}
	return c
}

func drawContainer(c *Canvas, f *geometry.Frame, l *entity.Layout, id entity.NodeID, opts Options) {
	n, ok := l.Node(id)
	if !ok {
		return
	}
	selected, _ := n.SelectedChild()

	headerClass := ClassHeader
	if id == opts.Active {
		headerClass = ClassHeaderActive
	}
	c.Fill(opts.Cells(f.Headers[id]), ' ', headerClass)

	if bar := f.TabBars[id]; bar != nil {
		for _, btn := range bar.Buttons {
			drawButton(c, l, bar, btn, btn.TabID == selected, opts)
		}
		if !bar.OverflowButton.Empty() {
			r := opts.Cells(bar.OverflowButton)
			c.Fill(r, ' ', ClassOverflow)
			c.Set(r.Min, '»', ClassOverflow)
		}
	}

	content, ok := f.Content[id]
	if !ok {
		return
	}
	r := opts.Cells(content)
	c.Fill(r, ' ', ClassContent)
	if tab, ok := l.Node(selected); ok {
		class := ClassContent
		if tab.Content.Placeholder {
			class = ClassPlaceholder
		}
		c.Text(image.Pt(r.Min.X+1, r.Min.Y), ContentLabel(tab), r.Max.X, class)
	}
}

func drawButton(c *Canvas, l *entity.Layout, bar *geometry.TabBar, btn geometry.TabButton, selected bool, opts Options) {
	tab, ok := l.Node(btn.TabID)
	if !ok {
		return
	}
	class := ClassTab
	if selected {
		class = ClassTabSelected
	}
	r := opts.Cells(btn.Rect)
	c.Fill(r, ' ', class)

	closeRect := opts.Cells(btn.Close)
	if bar.Axis == entity.AxisVertical {
		end := r.Max.Y
		if !closeRect.Empty() {
			end = closeRect.Min.Y
		}
		c.VText(r.Min, TabLabel(tab), end, class)
	} else {
		end := r.Max.X
		if !closeRect.Empty() {
			end = closeRect.Min.X
		}
		c.Text(image.Pt(r.Min.X+1, r.Min.Y), TabLabel(tab), end, class)
	}
	if !closeRect.Empty() {
		c.Fill(closeRect, ' ', ClassClose)
		c.Set(closeRect.Min, '×', ClassClose)
	}
}

// TabLabel is the text shown on a tab button.
func TabLabel(tab *entity.Node) string {
	if tab.Name != "" {
		return tab.Name
	}
	return string(tab.ID)
}

// ContentLabel describes the content of a tab.
func ContentLabel(tab *entity.Node) string {
	label := TabLabel(tab) + " · " + tab.Content.Type
	if tab.Content.Placeholder {
		label += " (unavailable)"
	}
	return label
}
