package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/logging"
)

// IDGenerator is a function that generates unique IDs.
type IDGenerator func() string

// LayoutPolicy holds the defaults applied to nodes created by mutations.
type LayoutPolicy struct {
	DefaultWeight float64
	// MinSize is the pixel floor for nodes that do not set their own.
	MinSize int
}

// DefaultLayoutPolicy returns the policy used when none is configured.
func DefaultLayoutPolicy() LayoutPolicy {
	return LayoutPolicy{DefaultWeight: entity.DefaultWeight, MinSize: 40}
}

// ManageLayoutUseCase applies mutations to a layout tree.
//
// Every operation works on a clone of the input layout, prunes and
// validates it, and returns the new tree with the ids it touched. On error
// the input layout is left as it was and no layout is returned.
type ManageLayoutUseCase struct {
	idGenerator IDGenerator
	policy      LayoutPolicy
}

// NewManageLayoutUseCase creates a new layout management use case.
func NewManageLayoutUseCase(idGenerator IDGenerator, policy LayoutPolicy) *ManageLayoutUseCase {
	if policy.DefaultWeight <= 0 {
		policy.DefaultWeight = entity.DefaultWeight
	}
	if policy.MinSize < 0 {
		policy.MinSize = 0
	}
	return &ManageLayoutUseCase{
		idGenerator: idGenerator,
		policy:      policy,
	}
}

// MutationOutput is the result shared by every layout mutation.
type MutationOutput struct {
	Layout  *entity.Layout
	Changed entity.ChangeSet
}

func (uc *ManageLayoutUseCase) mutate(
	layout *entity.Layout,
	fn func(l *entity.Layout, changes entity.ChangeSet) error,
) (*MutationOutput, error) {
	if layout == nil {
		return nil, fmt.Errorf("layout is required")
	}
	next := layout.Clone()
	changes := entity.NewChangeSet()
	if err := fn(next, changes); err != nil {
		return nil, err
	}
	next.Normalize(changes)
	if err := next.Validate(); err != nil {
		return nil, fmt.Errorf("mutation left the layout inconsistent: %w", err)
	}
	return &MutationOutput{Layout: next, Changed: changes}, nil
}

func (uc *ManageLayoutUseCase) newID() entity.NodeID {
	return entity.NodeID(uc.idGenerator())
}

func lookup(l *entity.Layout, id entity.NodeID, kinds ...entity.NodeKind) (*entity.Node, error) {
	n, ok := l.Node(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrNotFound, id)
	}
	if len(kinds) == 0 {
		return n, nil
	}
	for _, k := range kinds {
		if n.Kind == k {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: %s is a %s", entity.ErrInvalidOperation, id, n.Kind)
}

// AddTabInput contains parameters for adding a tab.
type AddTabInput struct {
	Layout      *entity.Layout
	ContainerID entity.NodeID // tabset or border
	Tab         entity.TabSpec
	Index       int // clamped to [0, len]
}

// AddTabOutput contains the result of adding a tab.
type AddTabOutput struct {
	MutationOutput
	TabID entity.NodeID
}

// AddTabToTabset inserts a new tab into a tabset or border and selects it.
func (uc *ManageLayoutUseCase) AddTabToTabset(ctx context.Context, input AddTabInput) (*AddTabOutput, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("container_id", string(input.ContainerID)).
		Str("content_type", input.Tab.Content.Type).
		Int("index", input.Index).
		Msg("adding tab")

	tabID := input.Tab.ID
	out, err := uc.mutate(input.Layout, func(l *entity.Layout, changes entity.ChangeSet) error {
		container, err := lookup(l, input.ContainerID, entity.KindTabset, entity.KindBorder)
		if err != nil {
			return err
		}
		// A tab without a content type cannot be encoded as a loadable document.
		if strings.TrimSpace(input.Tab.Content.Type) == "" {
			return fmt.Errorf("%w: tab content type is required", entity.ErrInvalidOperation)
		}
		if tabID == "" {
			tabID = uc.newID()
		}
		tab := entity.NewTabNode(tabID, input.Tab)
		tab.Weight = uc.policy.DefaultWeight
		if err := l.AddNode(tab); err != nil {
			return err
		}
		if err := l.Attach(container.ID, tabID, input.Index); err != nil {
			return err
		}
		container.Selected = container.IndexOf(tabID)
		changes.Add(container.ID, tabID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("tab_id", string(tabID)).
		Str("container_id", string(input.ContainerID)).
		Msg("tab added")
	return &AddTabOutput{MutationOutput: *out, TabID: tabID}, nil
}

// CloseTabInput contains parameters for closing a tab.
type CloseTabInput struct {
	Layout *entity.Layout
	TabID  entity.NodeID
}

// CloseTab removes a tab and prunes its container if it empties.
func (uc *ManageLayoutUseCase) CloseTab(ctx context.Context, input CloseTabInput) (*MutationOutput, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("tab_id", string(input.TabID)).Msg("closing tab")

	out, err := uc.mutate(input.Layout, func(l *entity.Layout, changes entity.ChangeSet) error {
		tab, err := lookup(l, input.TabID, entity.KindTab)
		if err != nil {
			return err
		}
		if !tab.Closable {
			return fmt.Errorf("%w: tab %s cannot be closed", entity.ErrInvalidOperation, tab.ID)
		}
		changes.Add(tab.ID, tab.Parent)
		return l.Delete(tab.ID)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("tab_id", string(input.TabID)).Msg("tab closed")
	return out, nil
}

// CloseTabsetInput contains parameters for closing a tabset.
type CloseTabsetInput struct {
	Layout   *entity.Layout
	TabsetID entity.NodeID
}

// CloseTabset removes a tabset with all of its tabs. The last tabset of the
// main area is emptied instead of removed.
func (uc *ManageLayoutUseCase) CloseTabset(ctx context.Context, input CloseTabsetInput) (*MutationOutput, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("tabset_id", string(input.TabsetID)).Msg("closing tabset")

	out, err := uc.mutate(input.Layout, func(l *entity.Layout, changes entity.ChangeSet) error {
		ts, err := lookup(l, input.TabsetID, entity.KindTabset)
		if err != nil {
			return err
		}
		changes.Add(ts.ID, ts.Parent)
		changes.Add(ts.Children...)

		if !ts.IsFloating() && l.MainTabsetCount() == 1 {
			for _, tab := range append([]entity.NodeID(nil), ts.Children...) {
				if err := l.Delete(tab); err != nil {
					return err
				}
			}
			ts.Maximized = false
			return nil
		}
		return l.Delete(ts.ID)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("tabset_id", string(input.TabsetID)).Msg("tabset closed")
	return out, nil
}

// SelectTabInput contains parameters for selecting a tab.
type SelectTabInput struct {
	Layout *entity.Layout
	TabID  entity.NodeID
}

// SelectTab makes a tab the visible one of its container. Selecting the
// already selected tab of a border collapses the border.
func (uc *ManageLayoutUseCase) SelectTab(ctx context.Context, input SelectTabInput) (*MutationOutput, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("tab_id", string(input.TabID)).Msg("selecting tab")

	return uc.mutate(input.Layout, func(l *entity.Layout, changes entity.ChangeSet) error {
		tab, err := lookup(l, input.TabID, entity.KindTab)
		if err != nil {
			return err
		}
		container, _ := l.Node(tab.Parent)
		idx := container.IndexOf(tab.ID)
		switch {
		case container.Kind == entity.KindBorder && container.Selected == idx:
			container.Selected = entity.NoSelection
		case container.Selected != idx:
			container.Selected = idx
		default:
			return nil
		}
		changes.Add(container.ID, tab.ID)
		return nil
	})
}

// SetMaximizedInput contains parameters for maximizing or restoring a tabset.
type SetMaximizedInput struct {
	Layout    *entity.Layout
	TabsetID  entity.NodeID
	Maximized bool
}

// SetMaximized maximizes or restores a tabset. Maximizing demotes any other
// maximized tabset; repeating the call changes nothing.
func (uc *ManageLayoutUseCase) SetMaximized(ctx context.Context, input SetMaximizedInput) (*MutationOutput, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("tabset_id", string(input.TabsetID)).
		Bool("maximized", input.Maximized).
		Msg("setting maximized")

	return uc.mutate(input.Layout, func(l *entity.Layout, changes entity.ChangeSet) error {
		ts, err := lookup(l, input.TabsetID, entity.KindTabset)
		if err != nil {
			return err
		}
		if input.Maximized && ts.IsFloating() {
			return fmt.Errorf("%w: floating tabset %s cannot be maximized", entity.ErrInvalidOperation, ts.ID)
		}
		if input.Maximized {
			if current, ok := l.Maximized(); ok && current != ts.ID {
				prev, _ := l.Node(current)
				prev.Maximized = false
				changes.Add(current)
			}
		}
		if ts.Maximized != input.Maximized {
			ts.Maximized = input.Maximized
			changes.Add(ts.ID)
		}
		return nil
	})
}

// RenameTabInput contains parameters for renaming a tab.
type RenameTabInput struct {
	Layout *entity.Layout
	TabID  entity.NodeID
	Name   string
}

// RenameTab changes the display name of a renamable tab.
func (uc *ManageLayoutUseCase) RenameTab(ctx context.Context, input RenameTabInput) (*MutationOutput, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("tab_id", string(input.TabID)).Msg("renaming tab")

	return uc.mutate(input.Layout, func(l *entity.Layout, changes entity.ChangeSet) error {
		tab, err := lookup(l, input.TabID, entity.KindTab)
		if err != nil {
			return err
		}
		if !tab.Renamable {
			return fmt.Errorf("%w: tab %s cannot be renamed", entity.ErrInvalidOperation, tab.ID)
		}
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return fmt.Errorf("%w: tab name cannot be blank", entity.ErrInvalidOperation)
		}
		if tab.Name != name {
			tab.Name = name
			changes.Add(tab.ID)
		}
		return nil
	})
}

// SetBorderSizeInput contains parameters for resizing a border panel.
type SetBorderSizeInput struct {
	Layout   *entity.Layout
	BorderID entity.NodeID
	Size     int
}

// SetBorderSize changes the thickness of a border's expanded panel.
func (uc *ManageLayoutUseCase) SetBorderSize(ctx context.Context, input SetBorderSizeInput) (*MutationOutput, error) {
	logging.FromContext(ctx).Debug().
		Str("border_id", string(input.BorderID)).
		Int("size", input.Size).
		Msg("resizing border")

	return uc.mutate(input.Layout, func(l *entity.Layout, changes entity.ChangeSet) error {
		b, err := lookup(l, input.BorderID, entity.KindBorder)
		if err != nil {
			return err
		}
		size := max(input.Size, max(b.MinSize, uc.policy.MinSize, 1))
		if b.Size != size {
			b.Size = size
			changes.Add(b.ID)
		}
		return nil
	})
}
