// Package interaction turns pointer and rename events into layout commands.
//
// The machine is a pure function over an explicit State value: it holds no
// globals and performs no mutation. Hosts feed the returned Command to the
// engine and render the returned Effect.
package interaction

import (
	"image"

	"github.com/bnema/dockyard/internal/domain/dragdrop"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/geometry"
)

// Mode is the gesture in progress.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDraggingSplitter
	ModeDraggingTab
	ModeDraggingTabset
	ModeRenamingTab
	ModeDraggingFloatingWindow
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDraggingSplitter:
		return "dragging-splitter"
	case ModeDraggingTab:
		return "dragging-tab"
	case ModeDraggingTabset:
		return "dragging-tabset"
	case ModeRenamingTab:
		return "renaming-tab"
	case ModeDraggingFloatingWindow:
		return "dragging-floating-window"
	default:
		return "unknown"
	}
}

// State is the exclusive active gesture. The zero value is Idle.
type State struct {
	Mode    Mode
	Origin  image.Point // where the pointer went down
	Pointer image.Point // last known position
	// Dragging is set once the pointer moved past the drag threshold.
	// Until then a tab or header gesture is still a click.
	Dragging bool

	TabID    entity.NodeID
	TabsetID entity.NodeID
	OnClose  bool // the gesture started on the tab's close button

	Splitter geometry.Splitter
	// FloatRect is the floating window's rectangle when the gesture began.
	FloatRect image.Rectangle

	Candidate    dragdrop.Candidate
	HasCandidate bool

	// Draft is the name being edited while renaming.
	Draft string
}

// Idle reports whether no gesture is active.
func (s State) Idle() bool { return s.Mode == ModeIdle }

// EventKind discriminates input events.
type EventKind int

const (
	EventPointerDown EventKind = iota
	EventPointerMove
	EventPointerUp
	EventCancel
	EventRenameStart
	EventRenameEdit
	EventRenameConfirm
	EventRenameCancel
)

// Event is one input delivered to the machine.
type Event struct {
	Kind        EventKind
	Pos         image.Point
	DoubleClick bool
	// Shift on a floating header drags the tabset for docking instead of
	// moving the window.
	Shift bool
	TabID entity.NodeID // rename start
	Name  string        // rename edit and confirm
}

// PointerDown builds a press event.
func PointerDown(p image.Point, doubleClick bool) Event {
	return Event{Kind: EventPointerDown, Pos: p, DoubleClick: doubleClick}
}

// PointerMove builds a motion event.
func PointerMove(p image.Point) Event { return Event{Kind: EventPointerMove, Pos: p} }

// PointerUp builds a release event.
func PointerUp(p image.Point) Event { return Event{Kind: EventPointerUp, Pos: p} }

// Cancel builds a cancel event, e.g. for the escape key.
func Cancel() Event { return Event{Kind: EventCancel} }

// RenameStart asks to edit the name of a tab.
func RenameStart(tabID entity.NodeID) Event { return Event{Kind: EventRenameStart, TabID: tabID} }

// RenameEdit replaces the draft name.
func RenameEdit(name string) Event { return Event{Kind: EventRenameEdit, Name: name} }

// RenameConfirm commits name.
func RenameConfirm(name string) Event { return Event{Kind: EventRenameConfirm, Name: name} }

// RenameCancel abandons the rename.
func RenameCancel() Event { return Event{Kind: EventRenameCancel} }

// CommandKind names the layout operation a gesture resolved to.
type CommandKind int

const (
	CommandSelectTab CommandKind = iota + 1
	CommandCloseTab
	CommandToggleMaximize
	CommandMoveTab
	CommandMoveTabset
	CommandResizeSplitter
	CommandMoveFloating
	CommandRenameTab
	CommandActivate
	CommandShowOverflow
)

// String returns a human-readable command name.
func (k CommandKind) String() string {
	switch k {
	case CommandSelectTab:
		return "select-tab"
	case CommandCloseTab:
		return "close-tab"
	case CommandToggleMaximize:
		return "toggle-maximize"
	case CommandMoveTab:
		return "move-tab"
	case CommandMoveTabset:
		return "move-tabset"
	case CommandResizeSplitter:
		return "resize-splitter"
	case CommandMoveFloating:
		return "move-floating"
	case CommandRenameTab:
		return "rename-tab"
	case CommandActivate:
		return "activate"
	case CommandShowOverflow:
		return "show-overflow"
	default:
		return "none"
	}
}

// Command is a pending layout mutation. Which fields are set depends on Kind.
type Command struct {
	Kind     CommandKind
	TabID    entity.NodeID
	TabsetID entity.NodeID // also the container for activate and overflow
	TargetID entity.NodeID
	Index    int
	Edge     entity.Edge

	RowID         entity.NodeID
	SplitterIndex int
	DeltaPixels   int
	Extent        int

	Rect image.Rectangle
	Name string
}

// Effect is what a transition asks the host to do or draw.
type Effect struct {
	Command *Command
	// Outline is the drop target highlight, empty when there is none.
	Outline image.Rectangle
	// Preview is the splitter or floating window at the pointer.
	Preview image.Rectangle
	// Ignored is set when the event had no meaning in the current state.
	Ignored bool
}

// Options tune gesture recognition.
type Options struct {
	// DragThreshold is the distance in pixels the pointer must travel
	// before a press on a tab or header becomes a drag.
	DragThreshold int
	DragDrop      dragdrop.Options
}

// DefaultOptions returns a 4 pixel threshold and the default drop zones.
func DefaultOptions() Options {
	return Options{DragThreshold: 4, DragDrop: dragdrop.DefaultOptions()}
}

// Env is the read-only world a transition looks at.
type Env struct {
	Layout  *entity.Layout
	Frame   *geometry.Frame
	Options Options
}
