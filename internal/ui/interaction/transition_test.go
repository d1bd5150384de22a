package interaction_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/domain/entity"
	lt "github.com/bnema/dockyard/internal/domain/entity/layouttest"
	"github.com/bnema/dockyard/internal/domain/geometry"
	"github.com/bnema/dockyard/internal/ui/interaction"
)

var bounds = image.Rect(0, 0, 1000, 600)

func metrics() geometry.Metrics {
	return geometry.Metrics{
		HeaderHeight:  20,
		SplitterSize:  10,
		OverflowWidth: 30,
		CloseWidth:    16,
		Measure:       func(string) int { return 100 },
	}
}

// env lays out T ["Y","Z"] over x 0..495 and S ["X"] over x 505..1000.
// Tab buttons are 100px wide from the left of each header.
func env(t *testing.T, opts ...func(*lt.Builder)) interaction.Env {
	b := lt.New().
		Tabset(lt.Main, "T", 100, "Y", "Z").
		Tabset(lt.Main, "S", 100, "X")
	for _, o := range opts {
		o(b)
	}
	l := b.Build(t)
	return interaction.Env{
		Layout:  l,
		Frame:   geometry.Resolve(l, bounds, metrics()),
		Options: interaction.DefaultOptions(),
	}
}

func run(t *testing.T, e interaction.Env, events ...interaction.Event) (interaction.State, interaction.Effect) {
	t.Helper()
	var s interaction.State
	var eff interaction.Effect
	for _, ev := range events {
		s, eff = interaction.Transition(s, ev, e)
	}
	return s, eff
}

func TestClickOnTabSelects(t *testing.T) {
	e := env(t)

	s, eff := run(t, e,
		interaction.PointerDown(image.Pt(150, 10), false),
		interaction.PointerMove(image.Pt(152, 11)),
		interaction.PointerUp(image.Pt(152, 11)),
	)

	assert.True(t, s.Idle())
	require.NotNil(t, eff.Command)
	assert.Equal(t, interaction.CommandSelectTab, eff.Command.Kind)
	assert.Equal(t, entity.NodeID("Z"), eff.Command.TabID)
}

func TestClickOnCloseButtonCloses(t *testing.T) {
	s, eff := run(t, env(t),
		interaction.PointerDown(image.Pt(190, 10), false),
		interaction.PointerUp(image.Pt(190, 10)),
	)

	assert.True(t, s.Idle())
	require.NotNil(t, eff.Command)
	assert.Equal(t, interaction.CommandCloseTab, eff.Command.Kind)
	assert.Equal(t, entity.NodeID("Z"), eff.Command.TabID)
}

func TestDragTabToCenterOfTabset(t *testing.T) {
	e := env(t)

	s, eff := run(t, e,
		interaction.PointerDown(image.Pt(540, 10), false),
		interaction.PointerMove(image.Pt(247, 300)),
	)
	assert.Equal(t, interaction.ModeDraggingTab, s.Mode)
	assert.True(t, s.Dragging)
	assert.Equal(t, image.Rect(0, 20, 495, 600), eff.Outline)
	assert.Nil(t, eff.Command, "nothing is committed before release")

	s, eff = interaction.Transition(s, interaction.PointerUp(image.Pt(247, 300)), e)
	assert.True(t, s.Idle())
	require.NotNil(t, eff.Command)
	assert.Equal(t, interaction.Command{
		Kind:     interaction.CommandMoveTab,
		TabID:    "X",
		TargetID: "T",
		Index:    2,
		Edge:     entity.EdgeCenter,
	}, *eff.Command)
}

func TestDragTabOntoNothingCommitsNothing(t *testing.T) {
	e := env(t)
	_, eff := run(t, e,
		interaction.PointerDown(image.Pt(540, 10), false),
		interaction.PointerMove(image.Pt(700, 300)),
		interaction.PointerUp(image.Pt(2000, 2000)),
	)
	assert.Nil(t, eff.Command)
}

func TestNonDraggableTabNeverGetsCandidate(t *testing.T) {
	e := env(t, func(b *lt.Builder) {
		b.With("X", func(n *entity.Node) { n.EnableDrag = false })
	})

	s, eff := run(t, e,
		interaction.PointerDown(image.Pt(540, 10), false),
		interaction.PointerMove(image.Pt(247, 300)),
	)
	assert.False(t, s.HasCandidate)
	assert.True(t, eff.Outline.Empty())

	_, eff = interaction.Transition(s, interaction.PointerUp(image.Pt(247, 300)), e)
	assert.Nil(t, eff.Command)
}

func TestDragSplitter(t *testing.T) {
	e := env(t)

	s, eff := run(t, e,
		interaction.PointerDown(image.Pt(500, 300), false),
		interaction.PointerMove(image.Pt(530, 320)),
	)
	assert.Equal(t, interaction.ModeDraggingSplitter, s.Mode)
	assert.Equal(t, image.Rect(525, 0, 535, 600), eff.Preview, "preview follows the row axis only")

	s, eff = interaction.Transition(s, interaction.PointerUp(image.Pt(530, 320)), e)
	assert.True(t, s.Idle())
	require.NotNil(t, eff.Command)
	assert.Equal(t, interaction.Command{
		Kind:          interaction.CommandResizeSplitter,
		RowID:         lt.Main,
		SplitterIndex: 0,
		DeltaPixels:   30,
		Extent:        990,
	}, *eff.Command)
}

func TestSplitterReleasedInPlaceCommitsNothing(t *testing.T) {
	_, eff := run(t, env(t),
		interaction.PointerDown(image.Pt(500, 300), false),
		interaction.PointerUp(image.Pt(500, 300)),
	)
	assert.Nil(t, eff.Command)
}

func TestPointerDownWhileDraggingIsIgnored(t *testing.T) {
	e := env(t)
	s, _ := run(t, e,
		interaction.PointerDown(image.Pt(500, 300), false),
		interaction.PointerMove(image.Pt(520, 300)),
	)

	next, eff := interaction.Transition(s, interaction.PointerDown(image.Pt(150, 10), false), e)
	assert.True(t, eff.Ignored)
	assert.Equal(t, s, next)
}

func TestCancelDiscardsGesture(t *testing.T) {
	e := env(t)
	s, _ := run(t, e,
		interaction.PointerDown(image.Pt(540, 10), false),
		interaction.PointerMove(image.Pt(247, 300)),
	)

	s, eff := interaction.Transition(s, interaction.Cancel(), e)
	assert.True(t, s.Idle())
	assert.Nil(t, eff.Command)

	_, eff = interaction.Transition(s, interaction.PointerUp(image.Pt(247, 300)), e)
	assert.True(t, eff.Ignored)
	assert.Nil(t, eff.Command)
}

func TestDoubleClickHeaderTogglesMaximize(t *testing.T) {
	s, eff := run(t, env(t), interaction.PointerDown(image.Pt(300, 10), true))

	assert.True(t, s.Idle())
	require.NotNil(t, eff.Command)
	assert.Equal(t, interaction.CommandToggleMaximize, eff.Command.Kind)
	assert.Equal(t, entity.NodeID("T"), eff.Command.TabsetID)
}

func TestDoubleClickTabRenames(t *testing.T) {
	e := env(t)

	s, _ := run(t, e, interaction.PointerDown(image.Pt(50, 10), true))
	require.Equal(t, interaction.ModeRenamingTab, s.Mode)
	assert.Equal(t, entity.NodeID("Y"), s.TabID)
	assert.Equal(t, "Y", s.Draft)

	_, eff := interaction.Transition(s, interaction.PointerDown(image.Pt(300, 10), false), e)
	assert.True(t, eff.Ignored, "pointer presses wait for the rename to finish")

	s, _ = interaction.Transition(s, interaction.RenameEdit("Notes"), e)
	s, eff = interaction.Transition(s, interaction.RenameConfirm(""), e)
	assert.True(t, s.Idle())
	require.NotNil(t, eff.Command)
	assert.Equal(t, interaction.Command{Kind: interaction.CommandRenameTab, TabID: "Y", Name: "Notes"}, *eff.Command)
}

func TestRenameStartRespectsRenamable(t *testing.T) {
	e := env(t, func(b *lt.Builder) {
		b.With("Y", func(n *entity.Node) { n.Renamable = false })
	})

	s, eff := interaction.Transition(interaction.State{}, interaction.RenameStart("Y"), e)
	assert.True(t, eff.Ignored)
	assert.True(t, s.Idle())

	s, eff = interaction.Transition(interaction.State{}, interaction.RenameStart("Z"), e)
	assert.False(t, eff.Ignored)
	assert.Equal(t, interaction.ModeRenamingTab, s.Mode)

	s, eff = interaction.Transition(s, interaction.RenameCancel(), e)
	assert.True(t, s.Idle())
	assert.Nil(t, eff.Command)
}

func TestDragTabsetHeader(t *testing.T) {
	e := env(t)

	s, eff := run(t, e,
		interaction.PointerDown(image.Pt(300, 10), false),
		interaction.PointerMove(image.Pt(800, 300)),
	)
	assert.Equal(t, interaction.ModeDraggingTabset, s.Mode)
	assert.Equal(t, image.Rect(505, 20, 1000, 600), eff.Outline)

	_, eff = interaction.Transition(s, interaction.PointerUp(image.Pt(800, 300)), e)
	require.NotNil(t, eff.Command)
	assert.Equal(t, interaction.Command{
		Kind:     interaction.CommandMoveTabset,
		TabsetID: "T",
		TargetID: "S",
		Index:    1,
		Edge:     entity.EdgeCenter,
	}, *eff.Command)
}

func TestDragTabsetOntoItselfHasNoCandidate(t *testing.T) {
	_, eff := run(t, env(t),
		interaction.PointerDown(image.Pt(300, 10), false),
		interaction.PointerMove(image.Pt(250, 300)),
		interaction.PointerUp(image.Pt(250, 300)),
	)
	assert.Nil(t, eff.Command)
}

func TestHeaderClickWithoutDragActivates(t *testing.T) {
	_, eff := run(t, env(t),
		interaction.PointerDown(image.Pt(300, 10), false),
		interaction.PointerUp(image.Pt(301, 10)),
	)
	require.NotNil(t, eff.Command)
	assert.Equal(t, interaction.CommandActivate, eff.Command.Kind)
	assert.Equal(t, entity.NodeID("T"), eff.Command.TabsetID)
}

func TestContentPressActivates(t *testing.T) {
	s, eff := run(t, env(t), interaction.PointerDown(image.Pt(700, 300), false))
	assert.True(t, s.Idle())
	require.NotNil(t, eff.Command)
	assert.Equal(t, interaction.CommandActivate, eff.Command.Kind)
	assert.Equal(t, entity.NodeID("S"), eff.Command.TabsetID)
}

func TestMoveFloatingWindow(t *testing.T) {
	e := env(t, func(b *lt.Builder) {
		b.Float("F", image.Rect(100, 100, 400, 300), "f")
	})

	s, eff := run(t, e,
		interaction.PointerDown(image.Pt(350, 110), false),
		interaction.PointerMove(image.Pt(370, 150)),
	)
	assert.Equal(t, interaction.ModeDraggingFloatingWindow, s.Mode)
	assert.Equal(t, image.Rect(120, 140, 420, 340), eff.Preview)

	s, eff = interaction.Transition(s, interaction.PointerUp(image.Pt(370, 150)), e)
	assert.True(t, s.Idle())
	require.NotNil(t, eff.Command)
	assert.Equal(t, interaction.Command{
		Kind:     interaction.CommandMoveFloating,
		TabsetID: "F",
		Rect:     image.Rect(120, 140, 420, 340),
	}, *eff.Command)
}

func TestShiftDragFloatingHeaderDocks(t *testing.T) {
	e := env(t, func(b *lt.Builder) {
		b.Float("F", image.Rect(100, 100, 400, 300), "f")
	})

	down := interaction.PointerDown(image.Pt(350, 110), false)
	down.Shift = true
	s, _ := run(t, e, down)
	assert.Equal(t, interaction.ModeDraggingTabset, s.Mode)

	s, _ = interaction.Transition(s, interaction.PointerMove(image.Pt(980, 300)), e)
	_, eff := interaction.Transition(s, interaction.PointerUp(image.Pt(980, 300)), e)
	require.NotNil(t, eff.Command)
	assert.Equal(t, interaction.CommandMoveTabset, eff.Command.Kind)
	assert.Equal(t, entity.NodeID("F"), eff.Command.TabsetID)
	assert.Equal(t, entity.NodeID("S"), eff.Command.TargetID)
	assert.Equal(t, entity.EdgeRight, eff.Command.Edge)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "idle", interaction.ModeIdle.String())
	assert.Equal(t, "dragging-floating-window", interaction.ModeDraggingFloatingWindow.String())
	assert.Equal(t, "move-tab", interaction.CommandMoveTab.String())
}
