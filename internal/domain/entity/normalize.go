package entity

// Normalize prunes empty containers, collapses single-child rows and
// repairs selections until the tree is stable. Touched ids are added to
// changes when it is non-nil.
//
// The last tabset of the main area is kept even when empty so the layout
// always has somewhere to drop tabs.
func (l *Layout) Normalize(changes ChangeSet) {
	if changes == nil {
		changes = NewChangeSet()
	}
	for l.prune(changes) {
	}
	l.repairSelection(changes)
}

func (l *Layout) prune(changes ChangeSet) bool {
	main := l.MainRow()
	for _, id := range l.postOrder() {
		n := l.nodes[id]
		switch n.Kind {
		case KindTabset:
			if len(n.Children) > 0 {
				continue
			}
			if !n.IsFloating() && l.MainTabsetCount() <= 1 {
				continue
			}
			changes.Add(id, n.Parent)
			_ = l.Delete(id)
			return true
		case KindRow:
			if main != nil && id == main.ID {
				continue
			}
			switch len(n.Children) {
			case 0:
				changes.Add(id, n.Parent)
				_ = l.Delete(id)
				return true
			case 1:
				l.collapse(n, changes)
				return true
			}
		}
	}
	return false
}

// collapse removes a row holding a single child. A tabset takes the row's
// slot and weight; a row has its children spliced into the grandparent,
// scaled to the collapsed row's share, since its axis matches the grandparent's.
func (l *Layout) collapse(row *Node, changes ChangeSet) {
	parent := l.nodes[row.Parent]
	idx := parent.IndexOf(row.ID)
	only := l.nodes[row.Children[0]]
	changes.Add(row.ID, parent.ID, only.ID)

	if only.Kind == KindRow {
		var total float64
		for _, g := range only.Children {
			total += l.nodes[g].Weight
		}
		spliced := make([]NodeID, 0, len(parent.Children)+len(only.Children)-1)
		spliced = append(spliced, parent.Children[:idx]...)
		for _, g := range only.Children {
			gn := l.nodes[g]
			if total > 0 {
				gn.Weight = gn.Weight / total * row.Weight
			}
			gn.Parent = parent.ID
			spliced = append(spliced, g)
			changes.Add(g)
		}
		spliced = append(spliced, parent.Children[idx+1:]...)
		parent.Children = spliced
		delete(l.nodes, only.ID)
		delete(l.nodes, row.ID)
		return
	}

	parent.Children[idx] = only.ID
	only.Parent = parent.ID
	only.Weight = row.Weight
	delete(l.nodes, row.ID)
}

func (l *Layout) repairSelection(changes ChangeSet) {
	for _, n := range l.nodes {
		before, maxBefore := n.Selected, n.Maximized
		switch n.Kind {
		case KindTabset:
			switch {
			case len(n.Children) == 0:
				n.Selected = NoSelection
			case n.Selected < 0:
				n.Selected = 0
			case n.Selected >= len(n.Children):
				n.Selected = len(n.Children) - 1
			}
			if n.IsFloating() {
				n.Maximized = false
			}
		case KindBorder:
			if n.Selected < NoSelection || n.Selected >= len(n.Children) {
				n.Selected = NoSelection
			}
		}
		if n.Selected != before || n.Maximized != maxBefore {
			changes.Add(n.ID)
		}
	}
}

// MainTabsetCount counts the tabsets of the main area.
func (l *Layout) MainTabsetCount() int {
	main := l.MainRow()
	if main == nil {
		return 0
	}
	count := 0
	l.WalkFrom(main.ID, func(n *Node) bool {
		if n.Kind == KindTabset {
			count++
		}
		return true
	})
	return count
}

func (l *Layout) postOrder() []NodeID {
	out := make([]NodeID, 0, len(l.nodes))
	var visit func(id NodeID)
	visit = func(id NodeID) {
		n, ok := l.nodes[id]
		if !ok {
			return
		}
		for _, c := range n.Children {
			visit(c)
		}
		out = append(out, id)
	}
	visit(l.root)
	return out
}
