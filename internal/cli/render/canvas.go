// Package render draws resolved layout frames as terminal text.
package render

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Class is the role of a cell, used to pick its style.
type Class int

const (
	ClassBlank Class = iota
	ClassHeader
	ClassHeaderActive
	ClassTab
	ClassTabSelected
	ClassClose
	ClassOverflow
	ClassContent
	ClassPlaceholder
	ClassSplitter
	ClassOutline
	ClassPreview
	numClasses
)

// Styles maps each class to a lipgloss style.
type Styles [numClasses]lipgloss.Style

type cell struct {
	r     rune
	class Class
}

// Canvas is a grid of classed runes addressed in absolute cell coordinates.
type Canvas struct {
	bounds image.Rectangle
	cells  []cell
}

// NewCanvas creates a blank canvas covering bounds.
func NewCanvas(bounds image.Rectangle) *Canvas {
	c := &Canvas{bounds: bounds, cells: make([]cell, bounds.Dx()*bounds.Dy())}
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	return c
}

// Bounds returns the area the canvas covers.
func (c *Canvas) Bounds() image.Rectangle { return c.bounds }

// Set writes one cell. Points outside the canvas are ignored.
func (c *Canvas) Set(p image.Point, r rune, class Class) {
	if !p.In(c.bounds) {
		return
	}
	p = p.Sub(c.bounds.Min)
	c.cells[p.Y*c.bounds.Dx()+p.X] = cell{r: r, class: class}
}

// At returns the rune and class at p.
func (c *Canvas) At(p image.Point) (rune, Class) {
	if !p.In(c.bounds) {
		return 0, ClassBlank
	}
	p = p.Sub(c.bounds.Min)
	cl := c.cells[p.Y*c.bounds.Dx()+p.X]
	return cl.r, cl.class
}

// Fill paints every cell of r.
func (c *Canvas) Fill(r image.Rectangle, ch rune, class Class) {
	r = r.Intersect(c.bounds)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.Set(image.Pt(x, y), ch, class)
		}
	}
}

// Restyle changes the class of every cell of r and keeps the runes.
func (c *Canvas) Restyle(r image.Rectangle, class Class) {
	r = r.Intersect(c.bounds)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			ch, _ := c.At(image.Pt(x, y))
			c.Set(image.Pt(x, y), ch, class)
		}
	}
}

// Text writes s rightwards from p, stopping before column maxX.
func (c *Canvas) Text(p image.Point, s string, maxX int, class Class) {
	for _, r := range s {
		if p.X >= maxX {
			return
		}
		c.Set(p, r, class)
		p.X++
	}
}

// VText writes s downwards from p, stopping before row maxY.
func (c *Canvas) VText(p image.Point, s string, maxY int, class Class) {
	for _, r := range s {
		if p.Y >= maxY {
			return
		}
		c.Set(p, r, class)
		p.Y++
	}
}

// Box draws the outline of r.
func (c *Canvas) Box(r image.Rectangle, class Class) {
	if r.Dx() < 2 || r.Dy() < 2 {
		c.Fill(r, '█', class)
		return
	}
	maxX, maxY := r.Max.X-1, r.Max.Y-1
	for x := r.Min.X + 1; x < maxX; x++ {
		c.Set(image.Pt(x, r.Min.Y), '─', class)
		c.Set(image.Pt(x, maxY), '─', class)
	}
	for y := r.Min.Y + 1; y < maxY; y++ {
		c.Set(image.Pt(r.Min.X, y), '│', class)
		c.Set(image.Pt(maxX, y), '│', class)
	}
	c.Set(r.Min, '┌', class)
	c.Set(image.Pt(maxX, r.Min.Y), '┐', class)
	c.Set(image.Pt(r.Min.X, maxY), '└', class)
	c.Set(image.Pt(maxX, maxY), '┘', class)
}

// String renders the canvas line by line. A nil styles renders plain text.
// Consecutive cells of the same class share one styled run.
func (c *Canvas) String(styles *Styles) string {
	w := c.bounds.Dx()
	var b strings.Builder
	var run []rune
	for y := 0; y < c.bounds.Dy(); y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		line := c.cells[y*w : (y+1)*w]
		for i := 0; i < len(line); {
			j := i
			run = run[:0]
			for j < len(line) && line[j].class == line[i].class {
				run = append(run, line[j].r)
				j++
			}
			if styles == nil {
				b.WriteString(string(run))
			} else {
				b.WriteString(styles[line[i].class].Render(string(run)))
			}
			i = j
		}
	}
	return b.String()
}
