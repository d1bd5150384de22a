// Package entity contains the domain entities of the panel layout.
// These entities are pure Go types with no infrastructure dependencies.
package entity

import (
	"fmt"
	"image"
)

// NodeID uniquely identifies a node for the lifetime of a layout.
type NodeID string

// IDGenerator produces fresh node identifiers.
type IDGenerator func() string

// NodeKind discriminates the closed set of node variants.
type NodeKind int

const (
	KindRoot   NodeKind = iota // Tree root, owns the main row, borders and floats
	KindRow                    // Weighted split container
	KindTabset                 // Tab container in the main area or floating
	KindTab                    // Leaf holding a content handle
	KindBorder                 // Tab container docked to a root edge
)

var kindNames = map[NodeKind]string{
	KindRoot:   "root",
	KindRow:    "row",
	KindTabset: "tabset",
	KindTab:    "tab",
	KindBorder: "border",
}

func (k NodeKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseNodeKind maps a document tag to a kind.
func ParseNodeKind(s string) (NodeKind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// IsContainer reports whether tabs can be inserted into nodes of this kind.
func (k NodeKind) IsContainer() bool {
	return k == KindTabset || k == KindBorder
}

// Edge is a drop zone on a container, or a border location.
type Edge int

const (
	EdgeCenter Edge = iota
	EdgeTop
	EdgeBottom
	EdgeLeft
	EdgeRight
)

var edgeNames = map[Edge]string{
	EdgeCenter: "center",
	EdgeTop:    "top",
	EdgeBottom: "bottom",
	EdgeLeft:   "left",
	EdgeRight:  "right",
}

func (e Edge) String() string {
	if s, ok := edgeNames[e]; ok {
		return s
	}
	return fmt.Sprintf("edge(%d)", int(e))
}

// ParseEdge maps a name to an edge.
func ParseEdge(s string) (Edge, bool) {
	for e, name := range edgeNames {
		if name == s {
			return e, true
		}
	}
	return 0, false
}

// IsSplit reports whether dropping on this edge splits the target.
func (e Edge) IsSplit() bool {
	return e == EdgeTop || e == EdgeBottom || e == EdgeLeft || e == EdgeRight
}

// Axis returns the axis along which a split on this edge lays its halves out.
func (e Edge) Axis() Axis {
	if e == EdgeTop || e == EdgeBottom {
		return AxisVertical
	}
	return AxisHorizontal
}

// Leading reports whether the edge sits at the start of its axis.
func (e Edge) Leading() bool {
	return e == EdgeTop || e == EdgeLeft
}

// BorderEdges lists border locations in the order geometry subtracts them.
var BorderEdges = []Edge{EdgeTop, EdgeBottom, EdgeLeft, EdgeRight}

// Axis is the main axis of a row.
type Axis int

const (
	AxisHorizontal Axis = iota // Children laid out left to right
	AxisVertical               // Children laid out top to bottom
)

// Flip returns the perpendicular axis.
func (a Axis) Flip() Axis {
	if a == AxisHorizontal {
		return AxisVertical
	}
	return AxisHorizontal
}

func (a Axis) String() string {
	if a == AxisVertical {
		return "vertical"
	}
	return "horizontal"
}

const (
	// NoSelection marks a tab container with nothing selected.
	NoSelection = -1
	// DefaultWeight is the share given to nodes that do not specify one.
	DefaultWeight = 100.0
	// DefaultBorderSize is the thickness of an expanded border panel.
	DefaultBorderSize = 200
)

// ContentHandle is the opaque render reference a host registers for a content type.
type ContentHandle any

// ContentRef binds a tab to its content type and resolved handle.
type ContentRef struct {
	Type   string
	Handle ContentHandle
	// Placeholder is set when Type was unknown to the registry and
	// Handle is the registry's placeholder.
	Placeholder bool
}

// Node is a single element of the layout tree.
// Kind decides which of the attribute groups below are meaningful.
type Node struct {
	ID       NodeID
	Kind     NodeKind
	Parent   NodeID // empty for the root
	Children []NodeID

	Weight  float64
	MinSize int // pixels along the parent row's axis

	// Tabset and Border
	Selected int

	// Tabset
	Maximized bool
	Float     *image.Rectangle // non-nil for floating tabsets

	// Border
	Location Edge
	Size     int

	// Tab
	Name       string
	Icon       string
	Content    ContentRef
	Closable   bool
	Renamable  bool
	EnableDrag bool
}

// SelectedChild returns the id of the selected tab, if any.
func (n *Node) SelectedChild() (NodeID, bool) {
	if !n.Kind.IsContainer() || n.Selected < 0 || n.Selected >= len(n.Children) {
		return "", false
	}
	return n.Children[n.Selected], true
}

// IndexOf returns the position of child in n's children, or -1.
func (n *Node) IndexOf(child NodeID) int {
	for i, id := range n.Children {
		if id == child {
			return i
		}
	}
	return -1
}

// IsFloating reports whether a tabset has been popped out of the main area.
func (n *Node) IsFloating() bool {
	return n.Kind == KindTabset && n.Float != nil
}

func (n *Node) clone() *Node {
	c := *n
	c.Children = append([]NodeID(nil), n.Children...)
	if n.Float != nil {
		r := *n.Float
		c.Float = &r
	}
	return &c
}

// TabSpec describes a tab to create.
type TabSpec struct {
	ID         NodeID // generated when empty
	Name       string
	Icon       string
	Content    ContentRef
	Closable   bool
	Renamable  bool
	EnableDrag bool
}

// NewTabNode builds a tab node from a spec.
func NewTabNode(id NodeID, spec TabSpec) *Node {
	return &Node{
		ID:         id,
		Kind:       KindTab,
		Weight:     DefaultWeight,
		Selected:   NoSelection,
		Name:       spec.Name,
		Icon:       spec.Icon,
		Content:    spec.Content,
		Closable:   spec.Closable,
		Renamable:  spec.Renamable,
		EnableDrag: spec.EnableDrag,
	}
}

// NewTabsetNode builds an empty tabset.
func NewTabsetNode(id NodeID, weight float64) *Node {
	return &Node{ID: id, Kind: KindTabset, Weight: weight, Selected: NoSelection}
}

// NewRowNode builds an empty row.
func NewRowNode(id NodeID, weight float64) *Node {
	return &Node{ID: id, Kind: KindRow, Weight: weight, Selected: NoSelection}
}

// NewBorderNode builds an empty, collapsed border.
func NewBorderNode(id NodeID, location Edge, size int) *Node {
	return &Node{
		ID:       id,
		Kind:     KindBorder,
		Weight:   DefaultWeight,
		Selected: NoSelection,
		Location: location,
		Size:     size,
	}
}
