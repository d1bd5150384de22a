package entity

import "fmt"

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOperation, fmt.Sprintf(format, args...))
}

// Validate checks every structural invariant of the tree.
func (l *Layout) Validate() error {
	root, ok := l.nodes[l.root]
	if !ok || root.Kind != KindRoot {
		return invariantf("missing root node")
	}
	if root.Parent != "" {
		return invariantf("root %s has a parent", root.ID)
	}

	rows := 0
	borders := make(map[Edge]bool)
	for _, id := range root.Children {
		n, ok := l.nodes[id]
		if !ok {
			return invariantf("root references missing node %s", id)
		}
		switch n.Kind {
		case KindRow:
			rows++
		case KindBorder:
			if !n.Location.IsSplit() {
				return invariantf("border %s has no location", n.ID)
			}
			if borders[n.Location] {
				return invariantf("two borders docked %s", n.Location)
			}
			borders[n.Location] = true
		case KindTabset:
			if n.Float == nil {
				return invariantf("tabset %s under the root must float", n.ID)
			}
		}
	}
	if rows != 1 {
		return invariantf("root must own exactly one row, has %d", rows)
	}

	v := &validator{layout: l, seen: make(map[NodeID]bool, len(l.nodes)), main: l.MainRow().ID}
	if err := v.visit(root, nil); err != nil {
		return err
	}
	if len(v.seen) != len(l.nodes) {
		return invariantf("%d nodes are not reachable from the root", len(l.nodes)-len(v.seen))
	}
	if v.maximized > 1 {
		return invariantf("%d tabsets are maximized", v.maximized)
	}
	return nil
}

type validator struct {
	layout    *Layout
	seen      map[NodeID]bool
	main      NodeID
	maximized int
}

func (v *validator) visit(n, parent *Node) error {
	if v.seen[n.ID] {
		return invariantf("node %s is reachable twice", n.ID)
	}
	v.seen[n.ID] = true

	if parent != nil {
		if n.Parent != parent.ID {
			return invariantf("node %s points at parent %s but is owned by %s", n.ID, n.Parent, parent.ID)
		}
		if !CanContain(parent.Kind, n.Kind) {
			return invariantf("a %s cannot hold a %s", parent.Kind, n.Kind)
		}
		if parent.Kind == KindRow && n.Weight <= 0 {
			return invariantf("node %s has non-positive weight %v", n.ID, n.Weight)
		}
	}
	if n.MinSize < 0 {
		return invariantf("node %s has negative min size", n.ID)
	}
	if n.Float != nil && (n.Kind != KindTabset || parent == nil || parent.Kind != KindRoot) {
		return invariantf("only root-level tabsets may float, %s does", n.ID)
	}

	switch n.Kind {
	case KindTab:
		if len(n.Children) > 0 {
			return invariantf("tab %s has children", n.ID)
		}
	case KindRow:
		if n.ID == v.main && len(n.Children) == 0 {
			return invariantf("main row %s is empty", n.ID)
		}
		if n.ID != v.main && len(n.Children) < 2 {
			return invariantf("row %s has %d children", n.ID, len(n.Children))
		}
	case KindTabset:
		if len(n.Children) == 0 {
			if n.IsFloating() || v.layout.MainTabsetCount() > 1 {
				return invariantf("tabset %s is empty", n.ID)
			}
			if n.Selected != NoSelection {
				return invariantf("empty tabset %s has selection %d", n.ID, n.Selected)
			}
		} else if n.Selected < 0 || n.Selected >= len(n.Children) {
			return invariantf("tabset %s selects %d of %d tabs", n.ID, n.Selected, len(n.Children))
		}
		if n.Maximized {
			if n.IsFloating() {
				return invariantf("floating tabset %s is maximized", n.ID)
			}
			v.maximized++
		}
	case KindBorder:
		if n.Selected < NoSelection || n.Selected >= len(n.Children) {
			return invariantf("border %s selects %d of %d tabs", n.ID, n.Selected, len(n.Children))
		}
		if n.Size <= 0 {
			return invariantf("border %s has non-positive size", n.ID)
		}
	}

	for _, id := range n.Children {
		c, ok := v.layout.nodes[id]
		if !ok {
			return invariantf("node %s references missing child %s", n.ID, id)
		}
		if err := v.visit(c, n); err != nil {
			return err
		}
	}
	return nil
}
