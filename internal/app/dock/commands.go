package dock

import (
	"context"
	"fmt"
	"image"

	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/ui/interaction"
)

// Apply runs a command produced by the interaction machine.
// Overflow requests change nothing; the host shows the menu.
func (e *Engine) Apply(ctx context.Context, cmd interaction.Command) error {
	switch cmd.Kind {
	case interaction.CommandSelectTab:
		return e.SelectTab(ctx, cmd.TabID)
	case interaction.CommandCloseTab:
		return e.CloseTab(ctx, cmd.TabID)
	case interaction.CommandToggleMaximize:
		ts, ok := e.layout.Node(cmd.TabsetID)
		if !ok {
			return fmt.Errorf("%w: %s", entity.ErrNotFound, cmd.TabsetID)
		}
		return e.SetMaximized(ctx, cmd.TabsetID, !ts.Maximized)
	case interaction.CommandMoveTab:
		return e.MoveTab(ctx, cmd.TabID, cmd.TargetID, cmd.Edge, cmd.Index)
	case interaction.CommandMoveTabset:
		return e.MoveTabset(ctx, cmd.TabsetID, cmd.TargetID, cmd.Edge, cmd.Index)
	case interaction.CommandResizeSplitter:
		return e.resize(ctx, cmd.RowID, cmd.SplitterIndex, cmd.DeltaPixels, cmd.Extent)
	case interaction.CommandMoveFloating:
		return e.MoveFloating(ctx, cmd.TabsetID, cmd.Rect)
	case interaction.CommandRenameTab:
		return e.RenameTab(ctx, cmd.TabID, cmd.Name)
	case interaction.CommandActivate:
		e.Activate(cmd.TabsetID)
		return nil
	case interaction.CommandShowOverflow:
		return nil
	default:
		return fmt.Errorf("%w: unknown command %d", entity.ErrInvalidOperation, cmd.Kind)
	}
}

// Activate makes a tabset the default target of OpenTab. Unknown ids and
// non-tabsets are ignored.
func (e *Engine) Activate(tabsetID entity.NodeID) {
	if n, ok := e.layout.Node(tabsetID); ok && n.Kind == entity.KindTabset {
		e.active = tabsetID
	}
}

// OpenTab adds a tab to a tabset or border and selects it. An empty
// containerID opens it in the active tabset. A negative index appends.
func (e *Engine) OpenTab(ctx context.Context, containerID entity.NodeID, spec entity.TabSpec, index int) (entity.NodeID, error) {
	if containerID == "" {
		containerID = e.active
	}
	if index < 0 {
		if c, ok := e.layout.Node(containerID); ok {
			index = len(c.Children)
		}
	}
	if spec.Content.Handle == nil && e.registry != nil {
		handle, ok := e.registry.Resolve(spec.Content.Type)
		if !ok {
			return "", fmt.Errorf("%w: %q", entity.ErrUnknownContentType, spec.Content.Type)
		}
		spec.Content.Handle = handle
	}

	out, err := e.layoutUC.AddTabToTabset(ctx, usecase.AddTabInput{
		Layout:      e.layout,
		ContainerID: containerID,
		Tab:         spec,
		Index:       index,
	})
	if err != nil {
		return "", err
	}
	e.commit(ctx, &out.MutationOutput)
	return out.TabID, nil
}

// CloseTab removes a closable tab.
func (e *Engine) CloseTab(ctx context.Context, tabID entity.NodeID) error {
	out, err := e.layoutUC.CloseTab(ctx, usecase.CloseTabInput{Layout: e.layout, TabID: tabID})
	return e.apply(ctx, out, err)
}

// CloseTabset removes a tabset with its tabs.
func (e *Engine) CloseTabset(ctx context.Context, tabsetID entity.NodeID) error {
	out, err := e.layoutUC.CloseTabset(ctx, usecase.CloseTabsetInput{Layout: e.layout, TabsetID: tabsetID})
	return e.apply(ctx, out, err)
}

// SelectTab shows a tab in its container and activates a tabset parent.
func (e *Engine) SelectTab(ctx context.Context, tabID entity.NodeID) error {
	out, err := e.layoutUC.SelectTab(ctx, usecase.SelectTabInput{Layout: e.layout, TabID: tabID})
	if err := e.apply(ctx, out, err); err != nil {
		return err
	}
	if tab, ok := e.layout.Node(tabID); ok {
		e.Activate(tab.Parent)
	}
	return nil
}

// SetMaximized maximizes or restores a tabset.
func (e *Engine) SetMaximized(ctx context.Context, tabsetID entity.NodeID, maximized bool) error {
	out, err := e.layoutUC.SetMaximized(ctx, usecase.SetMaximizedInput{
		Layout:    e.layout,
		TabsetID:  tabsetID,
		Maximized: maximized,
	})
	return e.apply(ctx, out, err)
}

// RenameTab changes a renamable tab's name.
func (e *Engine) RenameTab(ctx context.Context, tabID entity.NodeID, name string) error {
	out, err := e.layoutUC.RenameTab(ctx, usecase.RenameTabInput{Layout: e.layout, TabID: tabID, Name: name})
	return e.apply(ctx, out, err)
}

// MoveTab drops a tab on a container, inserting at index for EdgeCenter
// and splitting the target otherwise.
func (e *Engine) MoveTab(ctx context.Context, tabID, targetID entity.NodeID, edge entity.Edge, index int) error {
	out, err := e.layoutUC.MoveTab(ctx, usecase.MoveTabInput{
		Layout:   e.layout,
		TabID:    tabID,
		TargetID: targetID,
		Index:    index,
		Edge:     edge,
	})
	return e.apply(ctx, out, err)
}

// MoveTabset drops a whole tabset, docking it if it was floating.
func (e *Engine) MoveTabset(ctx context.Context, tabsetID, targetID entity.NodeID, edge entity.Edge, index int) error {
	out, err := e.layoutUC.MoveTabset(ctx, usecase.MoveTabsetInput{
		Layout:   e.layout,
		TabsetID: tabsetID,
		TargetID: targetID,
		Index:    index,
		Edge:     edge,
	})
	return e.apply(ctx, out, err)
}

// ResizeSplitter moves the handle between children index and index+1 of a
// row by delta pixels, measured against the current frame.
func (e *Engine) ResizeSplitter(ctx context.Context, rowID entity.NodeID, index, delta int) error {
	sp, ok := e.Frame().Splitter(rowID, index)
	if !ok {
		return fmt.Errorf("%w: no splitter %d in %s", entity.ErrNotFound, index, rowID)
	}
	return e.resize(ctx, rowID, index, delta, sp.Extent)
}

func (e *Engine) resize(ctx context.Context, rowID entity.NodeID, index, delta, extent int) error {
	out, err := e.layoutUC.ResizeSplitter(ctx, usecase.ResizeSplitterInput{
		Layout:        e.layout,
		RowID:         rowID,
		SplitterIndex: index,
		DeltaPixels:   delta,
		Extent:        extent,
	})
	if err != nil {
		return err
	}
	return e.apply(ctx, &out.MutationOutput, nil)
}

// FloatTabset pops a main-area tabset out into a window at rect. The window
// is shifted so its header stays inside the engine bounds.
func (e *Engine) FloatTabset(ctx context.Context, tabsetID entity.NodeID, rect image.Rectangle) error {
	out, err := e.layoutUC.FloatTabset(ctx, usecase.FloatTabsetInput{
		Layout:   e.layout,
		TabsetID: tabsetID,
		Rect:     rect,
		Bounds:   e.bounds,
		Header:   e.metrics.HeaderHeight,
	})
	return e.apply(ctx, out, err)
}

// MoveFloating repositions and raises a floating tabset.
func (e *Engine) MoveFloating(ctx context.Context, tabsetID entity.NodeID, rect image.Rectangle) error {
	out, err := e.layoutUC.MoveFloating(ctx, usecase.MoveFloatingInput{
		Layout:   e.layout,
		TabsetID: tabsetID,
		Rect:     rect,
		Bounds:   e.bounds,
		Header:   e.metrics.HeaderHeight,
	})
	if err := e.apply(ctx, out, err); err != nil {
		return err
	}
	e.Activate(tabsetID)
	return nil
}

// SetBorderSize changes the thickness of a border panel.
func (e *Engine) SetBorderSize(ctx context.Context, borderID entity.NodeID, size int) error {
	out, err := e.layoutUC.SetBorderSize(ctx, usecase.SetBorderSizeInput{Layout: e.layout, BorderID: borderID, Size: size})
	return e.apply(ctx, out, err)
}

// apply commits a successful mutation. Mutations that touched nothing
// are not committed, so listeners only hear about real changes.
func (e *Engine) apply(ctx context.Context, out *usecase.MutationOutput, err error) error {
	if err != nil {
		return err
	}
	if len(out.Changed) == 0 {
		return nil
	}
	e.commit(ctx, out)
	return nil
}
