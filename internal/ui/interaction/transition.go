package interaction

import (
	"image"

	"github.com/bnema/dockyard/internal/domain/dragdrop"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/geometry"
)

var ignored = Effect{Ignored: true}

// Transition applies ev to s. It never mutates the layout: a gesture that
// completes returns its Command in the Effect and the machine goes back to
// Idle. A pointer down while a gesture is active is ignored.
func Transition(s State, ev Event, env Env) (State, Effect) {
	switch ev.Kind {
	case EventPointerDown:
		if !s.Idle() {
			return s, ignored
		}
		return press(ev, env)
	case EventPointerMove:
		return move(s, ev, env)
	case EventPointerUp:
		return release(s, ev, env)
	case EventCancel:
		if s.Idle() {
			return s, ignored
		}
		return State{}, Effect{}
	case EventRenameStart:
		if !s.Idle() || env.Layout == nil {
			return s, ignored
		}
		tab, ok := env.Layout.Node(ev.TabID)
		if !ok || tab.Kind != entity.KindTab || !tab.Renamable {
			return s, ignored
		}
		return renaming(tab), Effect{}
	case EventRenameEdit:
		if s.Mode != ModeRenamingTab {
			return s, ignored
		}
		s.Draft = ev.Name
		return s, Effect{}
	case EventRenameConfirm:
		if s.Mode != ModeRenamingTab {
			return s, ignored
		}
		name := ev.Name
		if name == "" {
			name = s.Draft
		}
		return State{}, Effect{Command: &Command{Kind: CommandRenameTab, TabID: s.TabID, Name: name}}
	case EventRenameCancel:
		if s.Mode != ModeRenamingTab {
			return s, ignored
		}
		return State{}, Effect{}
	}
	return s, ignored
}

func renaming(tab *entity.Node) State {
	return State{Mode: ModeRenamingTab, TabID: tab.ID, TabsetID: tab.Parent, Draft: tab.Name}
}

func press(ev Event, env Env) (State, Effect) {
	if env.Frame == nil || env.Layout == nil {
		return State{}, ignored
	}
	hit := env.Frame.HitTest(ev.Pos)
	s := State{Origin: ev.Pos, Pointer: ev.Pos}

	switch hit.Kind {
	case geometry.HitSplitter:
		s.Mode = ModeDraggingSplitter
		s.Splitter = hit.Splitter
		return s, Effect{Preview: hit.Splitter.Rect}

	case geometry.HitTab, geometry.HitTabClose:
		if ev.DoubleClick && hit.Kind == geometry.HitTab {
			if tab, ok := env.Layout.Node(hit.TabID); ok && tab.Renamable {
				return renaming(tab), Effect{}
			}
		}
		s.Mode = ModeDraggingTab
		s.TabID = hit.TabID
		s.TabsetID = hit.ContainerID
		s.OnClose = hit.Kind == geometry.HitTabClose
		return s, Effect{}

	case geometry.HitHeader:
		c, ok := env.Layout.Node(hit.ContainerID)
		if !ok || c.Kind != entity.KindTabset {
			return State{}, Effect{}
		}
		if ev.DoubleClick && !hit.Floating {
			return State{}, Effect{Command: &Command{Kind: CommandToggleMaximize, TabsetID: c.ID}}
		}
		s.TabsetID = c.ID
		if hit.Floating && !ev.Shift {
			s.Mode = ModeDraggingFloatingWindow
			s.FloatRect = *c.Float
			return s, Effect{Preview: s.FloatRect}
		}
		s.Mode = ModeDraggingTabset
		return s, Effect{}

	case geometry.HitOverflow:
		return State{}, Effect{Command: &Command{Kind: CommandShowOverflow, TabsetID: hit.ContainerID}}

	case geometry.HitContent:
		return State{}, Effect{Command: &Command{Kind: CommandActivate, TabsetID: hit.ContainerID}}
	}
	return State{}, Effect{}
}

func move(s State, ev Event, env Env) (State, Effect) {
	switch s.Mode {
	case ModeDraggingSplitter:
		s.Pointer = ev.Pos
		return s, Effect{Preview: s.Splitter.Rect.Add(axisOffset(s.Splitter.Axis, ev.Pos.Sub(s.Origin)))}

	case ModeDraggingFloatingWindow:
		s.Pointer = ev.Pos
		s.Dragging = true
		return s, Effect{Preview: s.FloatRect.Add(ev.Pos.Sub(s.Origin))}

	case ModeDraggingTab, ModeDraggingTabset:
		s.Pointer = ev.Pos
		if !s.Dragging {
			if !beyond(s.Origin, ev.Pos, env.Options.DragThreshold) {
				return s, Effect{}
			}
			s.Dragging = true
		}
		s.Candidate, s.HasCandidate = candidateAt(s, ev.Pos, env)
		if !s.HasCandidate {
			return s, Effect{}
		}
		return s, Effect{Outline: s.Candidate.Outline}
	}
	return s, Effect{}
}

func release(s State, ev Event, env Env) (State, Effect) {
	switch s.Mode {
	case ModeDraggingSplitter:
		delta := axisDelta(s.Splitter.Axis, ev.Pos.Sub(s.Origin))
		if delta == 0 {
			return State{}, Effect{}
		}
		return State{}, Effect{Command: &Command{
			Kind:          CommandResizeSplitter,
			RowID:         s.Splitter.RowID,
			SplitterIndex: s.Splitter.Index,
			DeltaPixels:   delta,
			Extent:        s.Splitter.Extent,
		}}

	case ModeDraggingFloatingWindow:
		// Also sent for a plain click, which raises the window.
		return State{}, Effect{Command: &Command{
			Kind:     CommandMoveFloating,
			TabsetID: s.TabsetID,
			Rect:     s.FloatRect.Add(ev.Pos.Sub(s.Origin)),
		}}

	case ModeDraggingTab:
		if !s.Dragging {
			if s.OnClose {
				return State{}, Effect{Command: &Command{Kind: CommandCloseTab, TabID: s.TabID}}
			}
			return State{}, Effect{Command: &Command{Kind: CommandSelectTab, TabID: s.TabID}}
		}
		c, ok := candidateAt(s, ev.Pos, env)
		if !ok {
			return State{}, Effect{}
		}
		return State{}, Effect{Command: &Command{
			Kind:     CommandMoveTab,
			TabID:    s.TabID,
			TargetID: c.ContainerID,
			Index:    c.Index,
			Edge:     c.Edge,
		}}

	case ModeDraggingTabset:
		if !s.Dragging {
			return State{}, Effect{Command: &Command{Kind: CommandActivate, TabsetID: s.TabsetID}}
		}
		c, ok := candidateAt(s, ev.Pos, env)
		if !ok {
			return State{}, Effect{}
		}
		return State{}, Effect{Command: &Command{
			Kind:     CommandMoveTabset,
			TabsetID: s.TabsetID,
			TargetID: c.ContainerID,
			Index:    c.Index,
			Edge:     c.Edge,
		}}
	}
	return s, ignored
}

// candidateAt resolves the drop target of the dragged tab or tabset.
// Tabs that do not allow dragging never get one.
func candidateAt(s State, p image.Point, env Env) (dragdrop.Candidate, bool) {
	if env.Frame == nil || env.Layout == nil {
		return dragdrop.Candidate{}, false
	}
	d := dragdrop.Dragged{Kind: entity.KindTabset, ID: s.TabsetID}
	if s.Mode == ModeDraggingTab {
		tab, ok := env.Layout.Node(s.TabID)
		if !ok || !tab.EnableDrag {
			return dragdrop.Candidate{}, false
		}
		d = dragdrop.Dragged{Kind: entity.KindTab, ID: s.TabID}
	}
	return dragdrop.Resolve(env.Frame, env.Layout, p, d, env.Options.DragDrop)
}

func beyond(from, to image.Point, threshold int) bool {
	d := to.Sub(from)
	return max(abs(d.X), abs(d.Y)) >= max(threshold, 1)
}

func axisDelta(axis entity.Axis, d image.Point) int {
	if axis == entity.AxisVertical {
		return d.Y
	}
	return d.X
}

func axisOffset(axis entity.Axis, d image.Point) image.Point {
	if axis == entity.AxisVertical {
		return image.Pt(0, d.Y)
	}
	return image.Pt(d.X, 0)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
