package dock_test

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/dockyard/internal/app/dock"
	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/application/port/mocks"
	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/domain/entity"
	lt "github.com/bnema/dockyard/internal/domain/entity/layouttest"
	"github.com/bnema/dockyard/internal/logging"
	"github.com/bnema/dockyard/internal/ui/interaction"
)

var bounds = image.Rect(0, 0, 800, 600)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func newEngine(t *testing.T, l *entity.Layout) *dock.Engine {
	t.Helper()
	e := dock.NewEngine(testContext(), dock.Options{
		Registry:    dock.NewStaticRegistry("text", "placeholder"),
		IDGenerator: usecase.IDGenerator(lt.SeqIDs("gen")),
		Bounds:      bounds,

		PlaceholderType: "placeholder",
	})
	if l != nil {
		require.NoError(t, e.Load(testContext(), l))
	}
	return e
}

func twoTabsets(t *testing.T) *entity.Layout {
	return lt.New().
		Tabset(lt.Main, "T1", 100, "A", "B").
		Tabset(lt.Main, "T2", 100, "C").
		Build(t)
}

func center(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

func TestNewEngine_DefaultLayout(t *testing.T) {
	e := newEngine(t, nil)

	main := e.Layout().MainRow()
	require.NotNil(t, main)
	require.Len(t, main.Children, 1)
	assert.Equal(t, main.Children[0], e.ActiveTabset())
	assert.Equal(t, uint64(0), e.Version())
	assert.True(t, e.State().Idle())
}

func TestEngine_OpenTabNotifiesListener(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)
	listener := mocks.NewMockChangeListener(ctrl)

	e := newEngine(t, twoTabsets(t))
	e.Subscribe(listener)

	var got port.ChangeEvent
	listener.EXPECT().
		LayoutChanged(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev port.ChangeEvent) error {
			got = ev
			return nil
		})

	e.Activate("T2")
	id, err := e.OpenTab(ctx, "", entity.TabSpec{Name: "Log", Content: entity.ContentRef{Type: "text"}}, -1)
	require.NoError(t, err)

	ts, _ := e.Layout().Node("T2")
	assert.Equal(t, []entity.NodeID{"C", id}, ts.Children)
	assert.Equal(t, 1, ts.Selected)

	tab, _ := e.Layout().Node(id)
	assert.Equal(t, "text", tab.Content.Handle)

	assert.Equal(t, e.Version(), got.Version)
	assert.Contains(t, got.Changed, id)
	assert.Contains(t, string(got.Document), "Log")
}

func TestEngine_OpenTabUnknownContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	listener := mocks.NewMockChangeListener(ctrl)

	e := newEngine(t, twoTabsets(t))
	e.Subscribe(listener)
	before := e.Layout()

	_, err := e.OpenTab(testContext(), "T1", entity.TabSpec{Content: entity.ContentRef{Type: "video"}}, 0)
	assert.ErrorIs(t, err, entity.ErrUnknownContentType)
	assert.Same(t, before, e.Layout())
}

func TestEngine_OpenTabWithoutContentType(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)
	listener := mocks.NewMockChangeListener(ctrl)

	e := newEngine(t, twoTabsets(t))
	e.Subscribe(listener)
	before := e.Layout()

	_, err := e.OpenTab(ctx, "", entity.TabSpec{Name: "x", Content: entity.ContentRef{Handle: "h"}, Closable: true}, -1)
	assert.ErrorIs(t, err, entity.ErrInvalidOperation)
	assert.Same(t, before, e.Layout())

	doc, err := e.Serialize()
	require.NoError(t, err)
	_, err = e.Deserialize(ctx, doc)
	require.NoError(t, err)
}

func TestEngine_FloatingWindowStaysReachable(t *testing.T) {
	ctx := testContext()
	e := newEngine(t, twoTabsets(t))

	require.NoError(t, e.FloatTabset(ctx, "T2", image.Rect(700, 550, 1000, 750)))
	ts, ok := e.Layout().Node("T2")
	require.True(t, ok)
	require.True(t, ts.IsFloating())
	assert.Equal(t, image.Rect(500, 550, 800, 750), *ts.Float)

	require.NoError(t, e.MoveFloating(ctx, "T2", image.Rect(-900, -50, -600, 150)))
	ts, _ = e.Layout().Node("T2")
	assert.Equal(t, image.Rect(0, 0, 300, 200), *ts.Float)
}

func TestEngine_SetBorderSize(t *testing.T) {
	ctx := testContext()
	l := lt.New().
		Tabset(lt.Main, "T1", 100, "A").
		Border(entity.EdgeBottom, "B", 100, "X").
		Build(t)
	e := newEngine(t, l)
	version := e.Version()

	require.NoError(t, e.SetBorderSize(ctx, "B", 150))
	b, _ := e.Layout().Node("B")
	assert.Equal(t, 150, b.Size)
	assert.Equal(t, version+1, e.Version())

	require.NoError(t, e.SetBorderSize(ctx, "B", 150))
	assert.Equal(t, version+1, e.Version(), "no-op is not committed")

	require.NoError(t, e.SetBorderSize(ctx, "B", 1))
	b, _ = e.Layout().Node("B")
	assert.Equal(t, usecase.DefaultLayoutPolicy().MinSize, b.Size)

	assert.ErrorIs(t, e.SetBorderSize(ctx, "T1", 10), entity.ErrInvalidOperation)
	assert.ErrorIs(t, e.SetBorderSize(ctx, "missing", 10), entity.ErrNotFound)
}

func TestEngine_FailedCommandKeepsLayout(t *testing.T) {
	ctx := testContext()
	l := lt.New().
		Tabset(lt.Main, "T1", 100, "A").
		With("A", func(n *entity.Node) { n.Closable = false }).
		Build(t)
	e := newEngine(t, l)
	before := e.Layout()
	version := e.Version()

	err := e.CloseTab(ctx, "A")
	assert.ErrorIs(t, err, entity.ErrInvalidOperation)

	err = e.SelectTab(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	assert.Same(t, before, e.Layout())
	assert.Equal(t, version, e.Version())
}

func TestEngine_NoOpIsNotCommitted(t *testing.T) {
	ctrl := gomock.NewController(t)
	listener := mocks.NewMockChangeListener(ctrl)

	e := newEngine(t, twoTabsets(t))
	e.Subscribe(listener)
	version := e.Version()

	// A is already selected; the listener must not be called.
	require.NoError(t, e.SelectTab(testContext(), "A"))
	assert.Equal(t, version, e.Version())
}

func TestEngine_Unsubscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	listener := mocks.NewMockChangeListener(ctrl)

	e := newEngine(t, twoTabsets(t))
	unsubscribe := e.Subscribe(listener)
	unsubscribe()

	require.NoError(t, e.SelectTab(testContext(), "B"))
}

func TestEngine_ListenerErrorDoesNotFailCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	failing := mocks.NewMockChangeListener(ctrl)
	healthy := mocks.NewMockChangeListener(ctrl)

	e := newEngine(t, twoTabsets(t))
	e.Subscribe(failing)
	e.Subscribe(healthy)

	failing.EXPECT().LayoutChanged(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
	healthy.EXPECT().LayoutChanged(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, e.SelectTab(testContext(), "B"))
	ts, _ := e.Layout().Node("T1")
	assert.Equal(t, 1, ts.Selected)
}

func TestEngine_ClosingActiveTabsetFallsBack(t *testing.T) {
	ctx := testContext()
	e := newEngine(t, twoTabsets(t))

	e.Activate("T2")
	require.NoError(t, e.CloseTabset(ctx, "T2"))
	assert.Equal(t, entity.NodeID("T1"), e.ActiveTabset())

	e.Activate("A")
	assert.Equal(t, entity.NodeID("T1"), e.ActiveTabset(), "tabs are not activatable")
}

func TestEngine_FrameIsCachedPerVersionAndBounds(t *testing.T) {
	e := newEngine(t, twoTabsets(t))

	f := e.Frame()
	assert.Same(t, f, e.Frame())

	e.SetBounds(image.Rect(0, 0, 400, 300))
	resized := e.Frame()
	assert.NotSame(t, f, resized)
	assert.Equal(t, image.Rect(0, 0, 400, 300), resized.Bounds)

	require.NoError(t, e.SelectTab(testContext(), "B"))
	assert.NotSame(t, resized, e.Frame())
}

func TestEngine_ClickTabSelectsIt(t *testing.T) {
	ctx := testContext()
	e := newEngine(t, twoTabsets(t))

	btn, ok := e.Frame().TabBars["T1"].Button("B")
	require.True(t, ok)
	// Left part of the button, clear of the close target.
	p := image.Pt(btn.Rect.Min.X+4, center(btn.Rect).Y)

	eff, err := e.HandleEvent(ctx, interaction.PointerDown(p, false))
	require.NoError(t, err)
	assert.Nil(t, eff.Command)
	assert.Equal(t, interaction.ModeDraggingTab, e.State().Mode)

	eff, err = e.HandleEvent(ctx, interaction.PointerUp(p))
	require.NoError(t, err)
	require.NotNil(t, eff.Command)
	assert.Equal(t, interaction.CommandSelectTab, eff.Command.Kind)
	assert.True(t, e.State().Idle())

	ts, _ := e.Layout().Node("T1")
	assert.Equal(t, 1, ts.Selected)
}

func TestEngine_DragSplitterResizes(t *testing.T) {
	ctx := testContext()
	e := newEngine(t, twoTabsets(t))

	sp, ok := e.Frame().Splitter(lt.Main, 0)
	require.True(t, ok)
	start := center(sp.Rect)

	_, err := e.HandleEvent(ctx, interaction.PointerDown(start, false))
	require.NoError(t, err)
	eff, err := e.HandleEvent(ctx, interaction.PointerMove(start.Add(image.Pt(50, 0))))
	require.NoError(t, err)
	assert.False(t, eff.Preview.Empty())

	_, err = e.HandleEvent(ctx, interaction.PointerUp(start.Add(image.Pt(50, 0))))
	require.NoError(t, err)

	t1, _ := e.Layout().Node("T1")
	t2, _ := e.Layout().Node("T2")
	assert.Greater(t, t1.Weight, t2.Weight)
	assert.InDelta(t, 200.0, t1.Weight+t2.Weight, 0.001)
}

func TestEngine_ResizeSplitterUsesFrameExtent(t *testing.T) {
	e := newEngine(t, twoTabsets(t))

	require.NoError(t, e.ResizeSplitter(testContext(), lt.Main, 0, -40))
	t1, _ := e.Layout().Node("T1")
	assert.Less(t, t1.Weight, 100.0)

	err := e.ResizeSplitter(testContext(), lt.Main, 3, 10)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestEngine_DoubleClickHeaderTogglesMaximize(t *testing.T) {
	ctx := testContext()
	e := newEngine(t, twoTabsets(t))

	header := e.Frame().Headers["T2"]
	// Right end of the bar, past the only tab button.
	p := image.Pt(header.Max.X-40, center(header).Y)

	eff, err := e.HandleEvent(ctx, interaction.PointerDown(p, true))
	require.NoError(t, err)
	require.NotNil(t, eff.Command)
	assert.Equal(t, interaction.CommandToggleMaximize, eff.Command.Kind)

	id, ok := e.Layout().Maximized()
	require.True(t, ok)
	assert.Equal(t, entity.NodeID("T2"), id)

	require.NoError(t, e.Apply(ctx, *eff.Command))
	_, ok = e.Layout().Maximized()
	assert.False(t, ok)
}

func TestEngine_SerializeRoundTrip(t *testing.T) {
	ctx := testContext()
	src := newEngine(t, twoTabsets(t))
	data, err := src.Serialize()
	require.NoError(t, err)

	dst := newEngine(t, nil)
	report, err := dst.Deserialize(ctx, data)
	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Equal(t, src.Layout().IDs(), dst.Layout().IDs())
}

func TestEngine_DeserializeMalformedKeepsLayout(t *testing.T) {
	e := newEngine(t, twoTabsets(t))
	before := e.Layout()

	_, err := e.Deserialize(testContext(), []byte(`{"layout": [`))
	assert.ErrorIs(t, err, entity.ErrMalformedDocument)
	assert.Same(t, before, e.Layout())
}

func TestEngine_DeserializeUnknownContentUsesPlaceholder(t *testing.T) {
	ctx := testContext()
	src := newEngine(t, twoTabsets(t))
	require.NoError(t, src.RenameTab(ctx, "C", "Chart"))
	data, err := src.Serialize()
	require.NoError(t, err)

	dst := dock.NewEngine(ctx, dock.Options{
		Registry:        dock.NewStaticRegistry("placeholder"),
		PlaceholderType: "placeholder",
	})
	report, err := dst.Deserialize(ctx, data)
	require.NoError(t, err)
	assert.False(t, report.Clean())
	assert.ElementsMatch(t, []entity.NodeID{"A", "B", "C"}, report.Placeholders)

	c, ok := dst.Layout().Node("C")
	require.True(t, ok)
	assert.True(t, c.Content.Placeholder)
	assert.Equal(t, "placeholder", c.Content.Handle)
	assert.Equal(t, "Chart", c.Name)
}

func TestStaticRegistry(t *testing.T) {
	r := dock.NewStaticRegistry("b", "a")
	r.Register("c", 42)

	assert.Equal(t, []string{"a", "b", "c"}, r.Types())
	h, ok := r.Resolve("c")
	assert.True(t, ok)
	assert.Equal(t, 42, h)
	_, ok = r.Resolve("d")
	assert.False(t, ok)
}
