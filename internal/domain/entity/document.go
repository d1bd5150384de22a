package entity

import "errors"

// DocumentVersion is the current schema version of persisted layouts.
// Increment when making breaking changes to the serialization format.
const DocumentVersion = 1

// Document is the persisted form of a layout.
type Document struct {
	Version int          `json:"version" jsonschema:"required,minimum=1"`
	Layout  NodeDocument `json:"layout" jsonschema:"required"`
}

// NodeDocument captures one node and, recursively, its children.
// Which attributes apply depends on Type.
type NodeDocument struct {
	Type      string        `json:"type" jsonschema:"required,enum=root,enum=row,enum=tabset,enum=tab,enum=border"`
	ID        string        `json:"id,omitempty"`
	Weight    float64       `json:"weight,omitempty"`
	MinSize   int           `json:"minSize,omitempty"`
	Selected  *int          `json:"selected,omitempty" jsonschema:"minimum=-1"`
	Maximized bool          `json:"maximized,omitempty"`
	Float     *RectDocument `json:"float,omitempty"`

	// Border
	Location string `json:"location,omitempty" jsonschema:"enum=top,enum=bottom,enum=left,enum=right"`
	Size     int    `json:"size,omitempty"`

	// Tab
	Name       string `json:"name,omitempty"`
	Icon       string `json:"icon,omitempty"`
	Component  string `json:"component,omitempty"`
	Closable   *bool  `json:"closable,omitempty"`
	Renamable  *bool  `json:"renamable,omitempty"`
	EnableDrag *bool  `json:"enableDrag,omitempty"`

	Children []NodeDocument `json:"children,omitempty"`
}

// RectDocument is a rectangle in layout pixels.
type RectDocument struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w" jsonschema:"minimum=1"`
	H int `json:"h" jsonschema:"minimum=1"`
}

// LoadReport lists what a load repaired or dropped on its way in.
type LoadReport struct {
	// Unknown holds one ErrUnknownContentType error per affected tab.
	Unknown      []error
	Dropped      []NodeID
	Placeholders []NodeID
	// Coerced describes attributes rewritten to satisfy the invariants.
	Coerced []string
}

// Err joins the unknown content errors, nil when every tab resolved.
func (r *LoadReport) Err() error {
	if r == nil || len(r.Unknown) == 0 {
		return nil
	}
	return errors.Join(r.Unknown...)
}

// Clean reports whether the document loaded without any repair.
func (r *LoadReport) Clean() bool {
	return r == nil || (len(r.Unknown) == 0 && len(r.Coerced) == 0)
}
