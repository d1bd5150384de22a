package geometry

import (
	"image"

	"github.com/bnema/dockyard/internal/domain/entity"
)

// HitKind classifies what lies under a point.
type HitKind int

const (
	HitNone     HitKind = iota
	HitSplitter         // a row's resize handle
	HitTab              // a tab button
	HitTabClose         // the close target of a tab button
	HitOverflow         // the overflow button of a bar
	HitHeader           // empty part of a tabset header or border bar
	HitContent          // a tabset content area or border panel
)

func (k HitKind) String() string {
	switch k {
	case HitSplitter:
		return "splitter"
	case HitTab:
		return "tab"
	case HitTabClose:
		return "tab-close"
	case HitOverflow:
		return "overflow"
	case HitHeader:
		return "header"
	case HitContent:
		return "content"
	default:
		return "none"
	}
}

// Hit is the result of a point query against a frame.
type Hit struct {
	Kind        HitKind
	ContainerID entity.NodeID // tabset or border owning the hit
	TabID       entity.NodeID // set for tab and close hits
	Splitter    Splitter      // set for splitter hits
	Floating    bool          // the container is a floating tabset
}

// HitTest finds the topmost element at p. Floating tabsets are above
// everything, then splitters, then borders and main-area tabsets.
func (f *Frame) HitTest(p image.Point) Hit {
	for i := len(f.Floating) - 1; i >= 0; i-- {
		id := f.Floating[i]
		if !p.In(f.Rects[id]) {
			continue
		}
		h := f.containerHit(id, p)
		h.Floating = true
		return h
	}

	for _, s := range f.Splitters {
		if p.In(s.Rect) {
			return Hit{Kind: HitSplitter, Splitter: s}
		}
	}

	for _, id := range f.Borders {
		if p.In(f.Rects[id]) {
			return f.containerHit(id, p)
		}
	}

	// Main-area tabsets never overlap, so map order does not matter.
	for id := range f.TabBars {
		if f.isBorder(id) || f.isFloating(id) {
			continue
		}
		if p.In(f.Rects[id]) {
			return f.containerHit(id, p)
		}
	}
	return Hit{}
}

func (f *Frame) containerHit(id entity.NodeID, p image.Point) Hit {
	h := Hit{Kind: HitNone, ContainerID: id}
	if bar := f.TabBars[id]; bar != nil && p.In(bar.Rect) {
		for _, btn := range bar.Buttons {
			if p.In(btn.Close) {
				h.Kind, h.TabID = HitTabClose, btn.TabID
				return h
			}
			if p.In(btn.Rect) {
				h.Kind, h.TabID = HitTab, btn.TabID
				return h
			}
		}
		if p.In(bar.OverflowButton) {
			h.Kind = HitOverflow
			return h
		}
		h.Kind = HitHeader
		return h
	}
	if c, ok := f.Content[id]; ok && p.In(c) {
		h.Kind = HitContent
		return h
	}
	if p.In(f.Headers[id]) {
		h.Kind = HitHeader
	}
	return h
}

func (f *Frame) isBorder(id entity.NodeID) bool {
	for _, b := range f.Borders {
		if b == id {
			return true
		}
	}
	return false
}

func (f *Frame) isFloating(id entity.NodeID) bool {
	for _, fl := range f.Floating {
		if fl == id {
			return true
		}
	}
	return false
}
