package entity

import (
	"fmt"
	"sort"
)

// Layout is the node arena of one layout tree.
// Parent links are ids resolved through the arena; each node is owned by
// its parent's Children slice.
type Layout struct {
	nodes map[NodeID]*Node
	root  NodeID
}

// NewLayout creates the empty default tree: a root, its main row and one
// empty tabset.
func NewLayout(newID IDGenerator) *Layout {
	l := NewRootLayout(NodeID(newID()))
	row := NewRowNode(NodeID(newID()), DefaultWeight)
	ts := NewTabsetNode(NodeID(newID()), DefaultWeight)
	l.nodes[row.ID] = row
	l.nodes[ts.ID] = ts
	l.link(l.root, row.ID, 0)
	l.link(row.ID, ts.ID, 0)
	return l
}

// NewRootLayout creates a layout holding only a root node.
// Callers build the rest with AddNode and Attach.
func NewRootLayout(rootID NodeID) *Layout {
	root := &Node{ID: rootID, Kind: KindRoot, Weight: DefaultWeight, Selected: NoSelection}
	return &Layout{
		nodes: map[NodeID]*Node{rootID: root},
		root:  rootID,
	}
}

// RootID returns the id of the root node.
func (l *Layout) RootID() NodeID { return l.root }

// Root returns the root node.
func (l *Layout) Root() *Node { return l.nodes[l.root] }

// Len returns the number of nodes in the arena.
func (l *Layout) Len() int { return len(l.nodes) }

// Node looks up a node by id.
func (l *Layout) Node(id NodeID) (*Node, bool) {
	n, ok := l.nodes[id]
	return n, ok
}

// MainRow returns the row that fills the area inside the borders.
func (l *Layout) MainRow() *Node {
	root := l.Root()
	if root == nil {
		return nil
	}
	for _, id := range root.Children {
		if n := l.nodes[id]; n != nil && n.Kind == KindRow {
			return n
		}
	}
	return nil
}

// Walk visits nodes depth-first in child order, starting at the root.
// Returning false from fn stops the walk.
func (l *Layout) Walk(fn func(*Node) bool) {
	l.walkFrom(l.root, fn)
}

// WalkFrom is Walk restricted to the subtree rooted at id.
func (l *Layout) WalkFrom(id NodeID, fn func(*Node) bool) {
	l.walkFrom(id, fn)
}

func (l *Layout) walkFrom(id NodeID, fn func(*Node) bool) bool {
	n, ok := l.nodes[id]
	if !ok {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !l.walkFrom(c, fn) {
			return false
		}
	}
	return true
}

// IsAncestor reports whether ancestor lies on the parent chain of id.
func (l *Layout) IsAncestor(ancestor, id NodeID) bool {
	n, ok := l.nodes[id]
	for ok && n.Parent != "" {
		if n.Parent == ancestor {
			return true
		}
		n, ok = l.nodes[n.Parent]
	}
	return false
}

// InMainArea reports whether id belongs to the main row's subtree.
func (l *Layout) InMainArea(id NodeID) bool {
	main := l.MainRow()
	if main == nil {
		return false
	}
	return id == main.ID || l.IsAncestor(main.ID, id)
}

// RowAxis returns the layout axis of a row. The main row runs
// horizontally and every nested row flips the axis of its parent.
func (l *Layout) RowAxis(rowID NodeID) Axis {
	axis := AxisHorizontal
	n, ok := l.nodes[rowID]
	for ok && n.Parent != "" {
		p, found := l.nodes[n.Parent]
		if !found || p.Kind != KindRow {
			break
		}
		axis = axis.Flip()
		n = p
	}
	return axis
}

// Maximized returns the maximized tabset, if any.
func (l *Layout) Maximized() (NodeID, bool) {
	var found NodeID
	l.Walk(func(n *Node) bool {
		if n.Kind == KindTabset && n.Maximized {
			found = n.ID
			return false
		}
		return true
	})
	return found, found != ""
}

// Border returns the border docked at loc.
func (l *Layout) Border(loc Edge) (*Node, bool) {
	for _, id := range l.Root().Children {
		n := l.nodes[id]
		if n != nil && n.Kind == KindBorder && n.Location == loc {
			return n, true
		}
	}
	return nil, false
}

// Floating returns the popped-out tabsets in stacking order, bottom first.
func (l *Layout) Floating() []*Node {
	var out []*Node
	for _, id := range l.Root().Children {
		if n := l.nodes[id]; n != nil && n.IsFloating() {
			out = append(out, n)
		}
	}
	return out
}

// Tabsets returns every tabset in walk order, floating ones included.
func (l *Layout) Tabsets() []*Node {
	var out []*Node
	l.Walk(func(n *Node) bool {
		if n.Kind == KindTabset {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Clone returns a deep copy. Content handles are shared.
func (l *Layout) Clone() *Layout {
	c := &Layout{nodes: make(map[NodeID]*Node, len(l.nodes)), root: l.root}
	for id, n := range l.nodes {
		c.nodes[id] = n.clone()
	}
	return c
}

// IDs returns all node ids sorted, for stable iteration in tests and logs.
func (l *Layout) IDs() []NodeID {
	ids := make([]NodeID, 0, len(l.nodes))
	for id := range l.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AddNode registers an unattached node in the arena.
func (l *Layout) AddNode(n *Node) error {
	if n == nil || n.ID == "" {
		return fmt.Errorf("%w: node id is required", ErrInvalidOperation)
	}
	if _, exists := l.nodes[n.ID]; exists {
		return fmt.Errorf("%w: duplicate node id %q", ErrInvalidOperation, n.ID)
	}
	n.Parent = ""
	l.nodes[n.ID] = n
	return nil
}

// CanContain reports whether a node of kind child may sit under parent.
func CanContain(parent, child NodeKind) bool {
	switch parent {
	case KindRoot:
		return child == KindRow || child == KindBorder || child == KindTabset
	case KindRow:
		return child == KindRow || child == KindTabset
	case KindTabset, KindBorder:
		return child == KindTab
	default:
		return false
	}
}

// Attach inserts an unattached node under parent at index, clamped to
// [0, len]. The selected tab of a tab container stays selected.
func (l *Layout) Attach(parentID, childID NodeID, index int) error {
	parent, ok := l.nodes[parentID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, parentID)
	}
	child, ok := l.nodes[childID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, childID)
	}
	if child.Parent != "" {
		return fmt.Errorf("%w: %s is still attached to %s", ErrInvalidOperation, childID, child.Parent)
	}
	if childID == parentID || l.IsAncestor(childID, parentID) {
		return fmt.Errorf("%w: %s cannot contain itself", ErrInvalidOperation, childID)
	}
	if !CanContain(parent.Kind, child.Kind) {
		return fmt.Errorf("%w: a %s cannot hold a %s", ErrInvalidOperation, parent.Kind, child.Kind)
	}
	l.link(parentID, childID, index)
	return nil
}

func (l *Layout) link(parentID, childID NodeID, index int) {
	parent := l.nodes[parentID]
	index = clampIndex(index, len(parent.Children))
	parent.Children = append(parent.Children, "")
	copy(parent.Children[index+1:], parent.Children[index:])
	parent.Children[index] = childID
	l.nodes[childID].Parent = parentID

	if parent.Kind.IsContainer() && parent.Selected >= index {
		parent.Selected++
	}
}

// Detach removes a node from its parent's children, keeping it in the
// arena. Row siblings are rescaled so the row keeps its total weight and
// their relative shares. Tab containers keep a valid selection.
func (l *Layout) Detach(id NodeID) (parentID NodeID, index int, err error) {
	n, ok := l.nodes[id]
	if !ok {
		return "", -1, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	parent, ok := l.nodes[n.Parent]
	if !ok {
		return "", -1, fmt.Errorf("%w: %s is not attached", ErrInvalidOperation, id)
	}
	index = parent.IndexOf(id)
	parent.Children = append(parent.Children[:index], parent.Children[index+1:]...)
	n.Parent = ""

	switch parent.Kind {
	case KindRow:
		l.redistribute(parent, n.Weight)
	case KindTabset:
		parent.Selected = selectionAfterRemoval(parent.Selected, index, len(parent.Children))
	case KindBorder:
		switch {
		case parent.Selected == index:
			parent.Selected = NoSelection
		case parent.Selected > index:
			parent.Selected--
		}
	}
	return parent.ID, index, nil
}

// redistribute hands a removed child's weight to the remaining children
// of row in proportion to their current weights.
func (l *Layout) redistribute(row *Node, removed float64) {
	var rest float64
	for _, c := range row.Children {
		rest += l.nodes[c].Weight
	}
	if rest <= 0 || removed <= 0 {
		return
	}
	scale := (rest + removed) / rest
	for _, c := range row.Children {
		l.nodes[c].Weight *= scale
	}
}

func selectionAfterRemoval(selected, removed, remaining int) int {
	if remaining == 0 {
		return NoSelection
	}
	switch {
	case selected > removed:
		selected--
	case selected == removed && selected >= remaining:
		selected = remaining - 1
	}
	return clampIndex(selected, remaining-1)
}

// Replace puts newID into the slot held by oldID. newID inherits the weight
// of oldID and keeps its own min size. oldID is left unattached.
func (l *Layout) Replace(oldID, newID NodeID) error {
	old, ok := l.nodes[oldID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, oldID)
	}
	repl, ok := l.nodes[newID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, newID)
	}
	parent, ok := l.nodes[old.Parent]
	if !ok {
		return fmt.Errorf("%w: %s is not attached", ErrInvalidOperation, oldID)
	}
	if repl.Parent != "" {
		return fmt.Errorf("%w: %s is still attached to %s", ErrInvalidOperation, newID, repl.Parent)
	}
	if !CanContain(parent.Kind, repl.Kind) {
		return fmt.Errorf("%w: a %s cannot hold a %s", ErrInvalidOperation, parent.Kind, repl.Kind)
	}
	parent.Children[parent.IndexOf(oldID)] = newID
	repl.Parent = parent.ID
	repl.Weight = old.Weight
	old.Parent = ""
	return nil
}

// Delete detaches a node if needed and drops its whole subtree from the arena.
func (l *Layout) Delete(id NodeID) error {
	n, ok := l.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if id == l.root {
		return fmt.Errorf("%w: the root cannot be deleted", ErrInvalidOperation)
	}
	if n.Parent != "" {
		if _, _, err := l.Detach(id); err != nil {
			return err
		}
	}
	l.drop(id)
	return nil
}

func (l *Layout) drop(id NodeID) {
	n, ok := l.nodes[id]
	if !ok {
		return
	}
	for _, c := range n.Children {
		l.drop(c)
	}
	delete(l.nodes, id)
}

func clampIndex(i, maxIndex int) int {
	if i < 0 {
		return 0
	}
	if i > maxIndex {
		return maxIndex
	}
	return i
}
