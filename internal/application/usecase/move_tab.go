package usecase

import (
	"context"
	"fmt"
	"image"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/logging"
)

// MoveTabInput contains parameters for moving a tab.
type MoveTabInput struct {
	Layout   *entity.Layout
	TabID    entity.NodeID
	TargetID entity.NodeID
	Index    int         // insertion index for EdgeCenter
	Edge     entity.Edge // EdgeCenter inserts, other edges split the target
}

// MoveTab takes a tab out of its container and either inserts it into the
// target tabset or border, or splits the target on an edge, placing the
// tab in a new tabset beside it.
func (uc *ManageLayoutUseCase) MoveTab(ctx context.Context, input MoveTabInput) (*MutationOutput, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("tab_id", string(input.TabID)).
		Str("target_id", string(input.TargetID)).
		Int("index", input.Index).
		Str("edge", input.Edge.String()).
		Msg("moving tab")

	out, err := uc.mutate(input.Layout, func(l *entity.Layout, changes entity.ChangeSet) error {
		tab, err := lookup(l, input.TabID, entity.KindTab)
		if err != nil {
			return err
		}
		target, err := lookup(l, input.TargetID)
		if err != nil {
			return err
		}
		if target.ID == tab.ID || target.Kind == entity.KindTab {
			return fmt.Errorf("%w: tab %s cannot be dropped on a tab", entity.ErrInvalidOperation, tab.ID)
		}
		if !tab.EnableDrag {
			return fmt.Errorf("%w: tab %s cannot be dragged", entity.ErrInvalidOperation, tab.ID)
		}
		if err := checkDropTarget(l, target, input.Edge); err != nil {
			return err
		}

		source := tab.Parent
		changes.Add(tab.ID, source, target.ID)

		if input.Edge == entity.EdgeCenter {
			index := input.Index
			if src, _ := l.Node(source); source == target.ID && src.IndexOf(tab.ID) < index {
				index--
			}
			if _, _, err := l.Detach(tab.ID); err != nil {
				return err
			}
			if err := l.Attach(target.ID, tab.ID, index); err != nil {
				return err
			}
			target.Selected = target.IndexOf(tab.ID)
			return nil
		}

		if _, _, err := l.Detach(tab.ID); err != nil {
			return err
		}
		ts := entity.NewTabsetNode(uc.newID(), uc.policy.DefaultWeight)
		if err := l.AddNode(ts); err != nil {
			return err
		}
		if err := l.Attach(ts.ID, tab.ID, 0); err != nil {
			return err
		}
		ts.Selected = 0
		changes.Add(ts.ID)
		return uc.split(l, target, ts, input.Edge, changes)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("tab_id", string(input.TabID)).
		Str("target_id", string(input.TargetID)).
		Str("edge", input.Edge.String()).
		Msg("tab moved")
	return out, nil
}

// MoveTabsetInput contains parameters for moving a whole tabset.
type MoveTabsetInput struct {
	Layout   *entity.Layout
	TabsetID entity.NodeID
	TargetID entity.NodeID
	Index    int
	Edge     entity.Edge
}

// MoveTabset drops a whole tabset. On the center of another tabset its tabs
// are merged in at Index; on an edge the tabset itself is docked beside the
// target. Floating tabsets are docked back this way.
func (uc *ManageLayoutUseCase) MoveTabset(ctx context.Context, input MoveTabsetInput) (*MutationOutput, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("tabset_id", string(input.TabsetID)).
		Str("target_id", string(input.TargetID)).
		Str("edge", input.Edge.String()).
		Msg("moving tabset")

	out, err := uc.mutate(input.Layout, func(l *entity.Layout, changes entity.ChangeSet) error {
		ts, err := lookup(l, input.TabsetID, entity.KindTabset)
		if err != nil {
			return err
		}
		target, err := lookup(l, input.TargetID)
		if err != nil {
			return err
		}
		if target.ID == ts.ID || l.IsAncestor(ts.ID, target.ID) {
			return fmt.Errorf("%w: tabset %s cannot be dropped into itself", entity.ErrInvalidOperation, ts.ID)
		}
		if err := checkDropTarget(l, target, input.Edge); err != nil {
			return err
		}
		changes.Add(ts.ID, ts.Parent, target.ID)

		if input.Edge == entity.EdgeCenter {
			if target.Kind != entity.KindTabset {
				return fmt.Errorf("%w: a tabset can only be merged into another tabset", entity.ErrInvalidOperation)
			}
			selected, hasSelected := ts.SelectedChild()
			index := input.Index
			for _, tab := range append([]entity.NodeID(nil), ts.Children...) {
				if _, _, err := l.Detach(tab); err != nil {
					return err
				}
				if err := l.Attach(target.ID, tab, index); err != nil {
					return err
				}
				index = target.IndexOf(tab) + 1
				changes.Add(tab)
			}
			if hasSelected {
				target.Selected = target.IndexOf(selected)
			}
			return nil
		}

		if _, _, err := l.Detach(ts.ID); err != nil {
			return err
		}
		ts.Float = nil
		ts.Maximized = false
		ts.Weight = uc.policy.DefaultWeight
		return uc.split(l, target, ts, input.Edge, changes)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("tabset_id", string(input.TabsetID)).
		Str("target_id", string(input.TargetID)).
		Msg("tabset moved")
	return out, nil
}

func checkDropTarget(l *entity.Layout, target *entity.Node, edge entity.Edge) error {
	if edge == entity.EdgeCenter {
		if !target.Kind.IsContainer() {
			return fmt.Errorf("%w: cannot insert into a %s", entity.ErrInvalidOperation, target.Kind)
		}
		return nil
	}
	if !edge.IsSplit() {
		return fmt.Errorf("%w: unknown edge %d", entity.ErrInvalidOperation, int(edge))
	}
	switch {
	case target.Kind == entity.KindRow:
		return nil
	case target.Kind == entity.KindTabset && !target.IsFloating():
		return nil
	default:
		return fmt.Errorf("%w: cannot split a %s", entity.ErrInvalidOperation, describe(target))
	}
}

func describe(n *entity.Node) string {
	if n.IsFloating() {
		return "floating tabset"
	}
	return n.Kind.String()
}

// split docks node (unattached) against target on edge with an even share.
// When the row holding the target already runs along the edge's axis the
// node becomes the target's sibling; otherwise a new row wraps the target.
func (uc *ManageLayoutUseCase) split(l *entity.Layout, target, node *entity.Node, edge entity.Edge, changes entity.ChangeSet) error {
	if target.Kind == entity.KindRow {
		return uc.splitRow(l, target, node, edge, changes)
	}

	parent, _ := l.Node(target.Parent)
	if l.RowAxis(parent.ID) == edge.Axis() {
		index := parent.IndexOf(target.ID)
		if !edge.Leading() {
			index++
		}
		target.Weight /= 2
		node.Weight = target.Weight
		changes.Add(parent.ID)
		return l.Attach(parent.ID, node.ID, index)
	}

	wrapper := entity.NewRowNode(uc.newID(), target.Weight)
	if err := l.AddNode(wrapper); err != nil {
		return err
	}
	if err := l.Replace(target.ID, wrapper.ID); err != nil {
		return err
	}
	target.Weight = uc.policy.DefaultWeight
	node.Weight = uc.policy.DefaultWeight
	changes.Add(wrapper.ID, parent.ID)
	if err := l.Attach(wrapper.ID, target.ID, 0); err != nil {
		return err
	}
	return l.Attach(wrapper.ID, node.ID, edgeIndex(edge, 1))
}

// splitRow docks node at one end of a row. The node gets as much weight as
// the row's existing children together, so it takes half of the row.
func (uc *ManageLayoutUseCase) splitRow(l *entity.Layout, row, node *entity.Node, edge entity.Edge, changes entity.ChangeSet) error {
	var total float64
	for _, id := range row.Children {
		c, _ := l.Node(id)
		total += c.Weight
	}
	if total <= 0 {
		total = uc.policy.DefaultWeight
	}

	if l.RowAxis(row.ID) == edge.Axis() {
		node.Weight = total
		changes.Add(row.ID)
		return l.Attach(row.ID, node.ID, edgeIndex(edge, len(row.Children)))
	}

	if parent, ok := l.Node(row.Parent); ok && parent.Kind == entity.KindRow {
		// The parent row runs along the edge's axis.
		index := parent.IndexOf(row.ID)
		if !edge.Leading() {
			index++
		}
		row.Weight /= 2
		node.Weight = row.Weight
		changes.Add(parent.ID)
		return l.Attach(parent.ID, node.ID, index)
	}

	// The main row has no parent row: move its children one level down
	// into rows that keep their axis, and stack the node against them.
	cross := entity.NewRowNode(uc.newID(), uc.policy.DefaultWeight)
	inner := entity.NewRowNode(uc.newID(), uc.policy.DefaultWeight)
	for _, n := range []*entity.Node{cross, inner} {
		if err := l.AddNode(n); err != nil {
			return err
		}
	}
	children := append([]entity.NodeID(nil), row.Children...)
	for i, id := range children {
		if _, _, err := l.Detach(id); err != nil {
			return err
		}
		if err := l.Attach(inner.ID, id, i); err != nil {
			return err
		}
	}
	node.Weight = uc.policy.DefaultWeight
	changes.Add(row.ID, cross.ID, inner.ID)
	if err := l.Attach(row.ID, cross.ID, 0); err != nil {
		return err
	}
	if err := l.Attach(cross.ID, inner.ID, 0); err != nil {
		return err
	}
	return l.Attach(cross.ID, node.ID, edgeIndex(edge, 1))
}

// edgeIndex is 0 for leading edges and trailing otherwise.
func edgeIndex(edge entity.Edge, trailing int) int {
	if edge.Leading() {
		return 0
	}
	return trailing
}

// FloatTabsetInput contains parameters for popping a tabset out.
type FloatTabsetInput struct {
	Layout   *entity.Layout
	TabsetID entity.NodeID
	Rect     image.Rectangle

	// Bounds is the frame the window must stay reachable in. Zero skips clamping.
	Bounds image.Rectangle
	// Header is the height of the window's header strip.
	Header int
}

// FloatTabset moves a main-area tabset out of its row into a floating
// window at Rect. The last tabset of the main area stays docked.
func (uc *ManageLayoutUseCase) FloatTabset(ctx context.Context, input FloatTabsetInput) (*MutationOutput, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("tabset_id", string(input.TabsetID)).
		Str("rect", input.Rect.String()).
		Msg("floating tabset")

	out, err := uc.mutate(input.Layout, func(l *entity.Layout, changes entity.ChangeSet) error {
		ts, err := lookup(l, input.TabsetID, entity.KindTabset)
		if err != nil {
			return err
		}
		if ts.IsFloating() {
			return fmt.Errorf("%w: tabset %s already floats", entity.ErrInvalidOperation, ts.ID)
		}
		if input.Rect.Empty() {
			return fmt.Errorf("%w: floating rectangle is empty", entity.ErrInvalidOperation)
		}
		if l.MainTabsetCount() <= 1 {
			return fmt.Errorf("%w: the last docked tabset cannot float", entity.ErrInvalidOperation)
		}
		changes.Add(ts.ID, ts.Parent)
		if _, _, err := l.Detach(ts.ID); err != nil {
			return err
		}
		r := keepHeaderVisible(input.Rect.Canon(), input.Bounds, input.Header)
		ts.Float = &r
		ts.Maximized = false
		return l.Attach(l.RootID(), ts.ID, len(l.Root().Children))
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("tabset_id", string(input.TabsetID)).Msg("tabset floated")
	return out, nil
}

// MoveFloatingInput contains parameters for moving a floating window.
type MoveFloatingInput struct {
	Layout   *entity.Layout
	TabsetID entity.NodeID
	Rect     image.Rectangle

	// Bounds is the frame the window must stay reachable in. Zero skips clamping.
	Bounds image.Rectangle
	// Header is the height of the window's header strip.
	Header int
}

// MoveFloating repositions a floating tabset and raises it above the others.
func (uc *ManageLayoutUseCase) MoveFloating(ctx context.Context, input MoveFloatingInput) (*MutationOutput, error) {
	logging.FromContext(ctx).Debug().
		Str("tabset_id", string(input.TabsetID)).
		Str("rect", input.Rect.String()).
		Msg("moving floating tabset")

	return uc.mutate(input.Layout, func(l *entity.Layout, changes entity.ChangeSet) error {
		ts, err := lookup(l, input.TabsetID, entity.KindTabset)
		if err != nil {
			return err
		}
		if !ts.IsFloating() {
			return fmt.Errorf("%w: tabset %s is docked", entity.ErrInvalidOperation, ts.ID)
		}
		if input.Rect.Empty() {
			return fmt.Errorf("%w: floating rectangle is empty", entity.ErrInvalidOperation)
		}
		r := keepHeaderVisible(input.Rect.Canon(), input.Bounds, input.Header)
		ts.Float = &r
		changes.Add(ts.ID)

		root := l.Root()
		if root.IndexOf(ts.ID) == len(root.Children)-1 {
			return nil
		}
		if _, _, err := l.Detach(ts.ID); err != nil {
			return err
		}
		return l.Attach(root.ID, ts.ID, len(root.Children))
	})
}

// keepHeaderVisible shifts r so its header strip lies inside bounds. The
// size of r is kept; a window wider than bounds is aligned to the left edge.
func keepHeaderVisible(r, bounds image.Rectangle, header int) image.Rectangle {
	if bounds.Empty() {
		return r
	}
	header = max(1, min(header, r.Dy()))

	var d image.Point
	switch {
	case r.Dx() >= bounds.Dx() || r.Min.X < bounds.Min.X:
		d.X = bounds.Min.X - r.Min.X
	case r.Max.X > bounds.Max.X:
		d.X = bounds.Max.X - r.Max.X
	}
	top := min(r.Min.Y, bounds.Max.Y-header)
	top = max(top, bounds.Min.Y)
	d.Y = top - r.Min.Y
	return r.Add(d)
}
