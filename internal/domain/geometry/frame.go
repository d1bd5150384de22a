// Package geometry resolves a layout tree into pixel rectangles.
package geometry

import (
	"image"
	"unicode/utf8"

	"github.com/bnema/dockyard/internal/domain/entity"
)

// Metrics holds the fixed sizes used to lay the tree out.
type Metrics struct {
	HeaderHeight  int // tabset header bar and border bar thickness
	SplitterSize  int // handle between adjacent row children
	TabGap        int // space between tab buttons
	OverflowWidth int // button listing tabs that did not fit
	CloseWidth    int // close target at the end of closable tab buttons
	// Measure returns the extent of a tab button along its bar.
	Measure func(name string) int
}

// DefaultMetrics returns pixel metrics suited to a browser host.
func DefaultMetrics() Metrics {
	return Metrics{
		HeaderHeight:  28,
		SplitterSize:  6,
		TabGap:        2,
		OverflowWidth: 24,
		CloseWidth:    16,
		Measure:       CharMeasure(8, 24),
	}
}

// CharMeasure sizes tab buttons from the rune count of their name.
func CharMeasure(charWidth, padding int) func(string) int {
	return func(name string) int {
		return utf8.RuneCountInString(name)*charWidth + padding
	}
}

// Splitter is the drag handle between children Index and Index+1 of a row.
type Splitter struct {
	RowID entity.NodeID
	Index int
	Rect  image.Rectangle
	Axis  entity.Axis
	// Extent is the row's main-axis length minus all its handles, the
	// denominator of the pixel-to-weight ratio.
	Extent int
}

// TabButton is a tab's place in its container's bar.
type TabButton struct {
	TabID entity.NodeID
	Rect  image.Rectangle
	Close image.Rectangle // empty for tabs that cannot be closed
}

// TabBar is the resolved strip of tab buttons of a tabset or border.
type TabBar struct {
	ContainerID    entity.NodeID
	Rect           image.Rectangle
	Axis           entity.Axis
	Buttons        []TabButton
	Overflow       []entity.NodeID
	OverflowButton image.Rectangle
}

// Button returns the button of tabID, if it is shown.
func (b *TabBar) Button(tabID entity.NodeID) (TabButton, bool) {
	for _, btn := range b.Buttons {
		if btn.TabID == tabID {
			return btn, true
		}
	}
	return TabButton{}, false
}

// Frame is the resolved geometry of a layout at one bounding rectangle.
type Frame struct {
	Bounds image.Rectangle
	Main   image.Rectangle // area left to the main row once borders are placed

	// Rects holds rows, tabsets, borders and the selected tab of each container.
	Rects map[entity.NodeID]image.Rectangle
	// Headers holds tabset header bars and border bars.
	Headers map[entity.NodeID]image.Rectangle
	// Content holds tabset content areas and expanded border panels.
	Content   map[entity.NodeID]image.Rectangle
	Splitters []Splitter
	TabBars   map[entity.NodeID]*TabBar

	Borders   []entity.NodeID // placed borders in placement order
	Floating  []entity.NodeID // floating tabsets, bottom first
	Maximized entity.NodeID
}

func newFrame(bounds image.Rectangle) *Frame {
	return &Frame{
		Bounds:  bounds,
		Rects:   make(map[entity.NodeID]image.Rectangle),
		Headers: make(map[entity.NodeID]image.Rectangle),
		Content: make(map[entity.NodeID]image.Rectangle),
		TabBars: make(map[entity.NodeID]*TabBar),
	}
}

// Rect returns the resolved rectangle of id.
func (f *Frame) Rect(id entity.NodeID) (image.Rectangle, bool) {
	r, ok := f.Rects[id]
	return r, ok
}

// Splitter returns the handle at index of rowID.
func (f *Frame) Splitter(rowID entity.NodeID, index int) (Splitter, bool) {
	for _, s := range f.Splitters {
		if s.RowID == rowID && s.Index == index {
			return s, true
		}
	}
	return Splitter{}, false
}

// PixelsToWeight converts a pixel distance along a row into weight units
// using the row's current ratio of total weight to available extent.
func PixelsToWeight(deltaPixels, extent int, totalWeight float64) float64 {
	if extent <= 0 {
		return 0
	}
	return float64(deltaPixels) * totalWeight / float64(extent)
}

// WeightToPixels is the inverse of PixelsToWeight.
func WeightToPixels(weight float64, extent int, totalWeight float64) float64 {
	if totalWeight <= 0 {
		return 0
	}
	return weight * float64(extent) / totalWeight
}
