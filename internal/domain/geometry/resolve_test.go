package geometry_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/domain/entity"
	lt "github.com/bnema/dockyard/internal/domain/entity/layouttest"
	"github.com/bnema/dockyard/internal/domain/geometry"
)

func testMetrics() geometry.Metrics {
	return geometry.Metrics{
		HeaderHeight:  20,
		SplitterSize:  10,
		TabGap:        0,
		OverflowWidth: 30,
		CloseWidth:    16,
		Measure:       func(string) int { return 100 },
	}
}

var bounds = image.Rect(0, 0, 1000, 600)

func TestResolve_RowSplitsByWeight(t *testing.T) {
	l := lt.New().
		Tabset(lt.Main, "a", 100, "t1").
		Tabset(lt.Main, "b", 300, "t2").
		Build(t)

	f := geometry.Resolve(l, bounds, testMetrics())

	assert.Equal(t, bounds, f.Main)
	assert.Equal(t, image.Rect(0, 0, 247, 600), f.Rects["a"])
	assert.Equal(t, image.Rect(257, 0, 1000, 600), f.Rects["b"])

	require.Len(t, f.Splitters, 1)
	s := f.Splitters[0]
	assert.Equal(t, lt.Main, s.RowID)
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, image.Rect(247, 0, 257, 600), s.Rect)
	assert.Equal(t, 990, s.Extent)
	assert.Equal(t, entity.AxisHorizontal, s.Axis)

	assert.Equal(t, image.Rect(0, 0, 247, 20), f.Headers["a"])
	assert.Equal(t, image.Rect(0, 20, 247, 600), f.Content["a"])
	assert.Equal(t, f.Content["a"], f.Rects["t1"], "selected tab fills the content area")
}

func TestResolve_NestedRowFlipsAxis(t *testing.T) {
	l := lt.New().
		Tabset(lt.Main, "a", 100, "t1").
		Row(lt.Main, "col", 100).
		Tabset("col", "top", 100, "t2").
		Tabset("col", "bottom", 100, "t3").
		Build(t)

	f := geometry.Resolve(l, bounds, testMetrics())

	assert.Equal(t, image.Rect(505, 0, 1000, 600), f.Rects["col"])
	assert.Equal(t, image.Rect(505, 0, 1000, 295), f.Rects["top"])
	assert.Equal(t, image.Rect(505, 305, 1000, 600), f.Rects["bottom"])

	s, ok := f.Splitter("col", 0)
	require.True(t, ok)
	assert.Equal(t, entity.AxisVertical, s.Axis)
	assert.Equal(t, image.Rect(505, 295, 1000, 305), s.Rect)
}

func TestResolve_BordersSubtractedInOrder(t *testing.T) {
	l := lt.New().
		Tabset(lt.Main, "a", 100, "t1").
		Border(entity.EdgeTop, "top", 50, "bt").
		With("top", func(n *entity.Node) { n.Selected = 0 }).
		Border(entity.EdgeLeft, "left", 80, "bl").
		Border(entity.EdgeRight, "right", 80).
		Build(t)

	f := geometry.Resolve(l, bounds, testMetrics())

	assert.Equal(t, image.Rect(0, 0, 1000, 70), f.Rects["top"])
	assert.Equal(t, image.Rect(0, 0, 1000, 20), f.Headers["top"])
	assert.Equal(t, image.Rect(0, 20, 1000, 70), f.Content["top"])
	assert.Equal(t, f.Content["top"], f.Rects["bt"])

	assert.Equal(t, image.Rect(0, 70, 20, 600), f.Rects["left"], "collapsed border keeps only its bar")
	_, expanded := f.Content["left"]
	assert.False(t, expanded)

	_, placed := f.Rects["right"]
	assert.False(t, placed, "border without tabs takes no space")

	assert.Equal(t, image.Rect(20, 70, 1000, 600), f.Main)
	assert.Equal(t, f.Main, f.Rects["a"])
	assert.Equal(t, entity.AxisVertical, f.TabBars["left"].Axis)
}

func TestResolve_TabBarOverflow(t *testing.T) {
	l := lt.New().
		Tabset(lt.Main, "a", 100, "t1", "t2", "t3").
		Tabset(lt.Main, "b", 300, "t4").
		Build(t)

	f := geometry.Resolve(l, bounds, testMetrics())
	bar := f.TabBars["a"]
	require.NotNil(t, bar)

	require.Len(t, bar.Buttons, 2)
	assert.Equal(t, image.Rect(0, 0, 100, 20), bar.Buttons[0].Rect)
	assert.Equal(t, image.Rect(84, 0, 100, 20), bar.Buttons[0].Close)
	assert.Equal(t, image.Rect(100, 0, 200, 20), bar.Buttons[1].Rect)
	assert.Equal(t, []entity.NodeID{"t3"}, bar.Overflow)
	assert.Equal(t, image.Rect(217, 0, 247, 20), bar.OverflowButton)

	assert.Empty(t, f.TabBars["b"].Overflow)
}

func TestResolve_MaximizedTakesMainArea(t *testing.T) {
	l := lt.New().
		Tabset(lt.Main, "a", 100, "t1").
		Tabset(lt.Main, "b", 100, "t2").
		With("b", func(n *entity.Node) { n.Maximized = true }).
		Build(t)

	f := geometry.Resolve(l, bounds, testMetrics())

	assert.Equal(t, entity.NodeID("b"), f.Maximized)
	assert.Equal(t, bounds, f.Rects["b"])
	_, ok := f.Rects["a"]
	assert.False(t, ok)
	assert.Empty(t, f.Splitters)
}

func TestHitTest(t *testing.T) {
	l := lt.New().
		Tabset(lt.Main, "a", 100, "t1").
		Tabset(lt.Main, "b", 300, "t2").
		Float("fl", image.Rect(600, 100, 800, 300), "t3").
		Build(t)

	f := geometry.Resolve(l, bounds, testMetrics())

	tests := []struct {
		name      string
		p         image.Point
		kind      geometry.HitKind
		container entity.NodeID
		tab       entity.NodeID
		floating  bool
	}{
		{"splitter", image.Pt(250, 300), geometry.HitSplitter, "", "", false},
		{"tab", image.Pt(50, 10), geometry.HitTab, "a", "t1", false},
		{"close", image.Pt(90, 10), geometry.HitTabClose, "a", "t1", false},
		{"header", image.Pt(200, 10), geometry.HitHeader, "a", "", false},
		{"content", image.Pt(100, 300), geometry.HitContent, "a", "", false},
		{"floating above main", image.Pt(700, 200), geometry.HitContent, "fl", "", true},
		{"outside", image.Pt(2000, 2000), geometry.HitNone, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := f.HitTest(tt.p)
			assert.Equal(t, tt.kind, h.Kind)
			assert.Equal(t, tt.container, h.ContainerID)
			assert.Equal(t, tt.tab, h.TabID)
			assert.Equal(t, tt.floating, h.Floating)
		})
	}
}

func TestPixelsToWeight_RoundTrip(t *testing.T) {
	w := geometry.PixelsToWeight(99, 990, 400)
	assert.InDelta(t, 40, w, 1e-9)
	assert.InDelta(t, 99, geometry.WeightToPixels(w, 990, 400), 1e-9)
	assert.Zero(t, geometry.PixelsToWeight(10, 0, 400))
}
