package dragdrop_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/domain/dragdrop"
	"github.com/bnema/dockyard/internal/domain/entity"
	lt "github.com/bnema/dockyard/internal/domain/entity/layouttest"
	"github.com/bnema/dockyard/internal/domain/geometry"
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

func dragTab(id entity.NodeID) dragdrop.Dragged {
	return dragdrop.Dragged{Kind: entity.KindTab, ID: id}
}

func TestResolve_SingleTabset(t *testing.T) {
	l := lt.New().
		Tabset(lt.Main, "T", 100, "Y", "Z").
		Tabset(lt.Main, "S", 100, "X").
		Build(t)
	// T spans x 0..495, S spans 505..1000.
	f := geometry.Resolve(l, bounds, metrics())
	opts := dragdrop.DefaultOptions()

	tests := []struct {
		name    string
		p       image.Point
		want    dragdrop.Candidate
		outline image.Rectangle
	}{
		{
			name:    "center zone inserts at the end",
			p:       image.Pt(247, 300),
			want:    dragdrop.Candidate{ContainerID: "T", Index: 2, Edge: entity.EdgeCenter},
			outline: image.Rect(0, 20, 495, 600),
		},
		{
			name:    "right edge splits",
			p:       image.Pt(470, 300),
			want:    dragdrop.Candidate{ContainerID: "T", Edge: entity.EdgeRight},
			outline: image.Rect(248, 0, 495, 600),
		},
		{
			name:    "bottom edge splits",
			p:       image.Pt(247, 580),
			want:    dragdrop.Candidate{ContainerID: "T", Edge: entity.EdgeBottom},
			outline: image.Rect(0, 300, 495, 600),
		},
		{
			name:    "tab bar after both tabs",
			p:       image.Pt(160, 10),
			want:    dragdrop.Candidate{ContainerID: "T", Index: 2, Edge: entity.EdgeCenter},
			outline: image.Rect(199, 0, 202, 20),
		},
		{
			name:    "tab bar before the first tab",
			p:       image.Pt(40, 10),
			want:    dragdrop.Candidate{ContainerID: "T", Index: 0, Edge: entity.EdgeCenter},
			outline: image.Rect(-1, 0, 2, 20),
		},
		{
			name:    "outer strip docks on the main row",
			p:       image.Pt(3, 300),
			want:    dragdrop.Candidate{ContainerID: lt.Main, Index: 0, Edge: entity.EdgeLeft},
			outline: image.Rect(0, 0, 500, 600),
		},
		{
			name:    "splitter gap resolves to the row",
			p:       image.Pt(500, 100),
			want:    dragdrop.Candidate{ContainerID: lt.Main, Index: 0, Edge: entity.EdgeTop},
			outline: image.Rect(0, 0, 1000, 300),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := dragdrop.Resolve(f, l, tt.p, dragTab("X"), opts)
			require.True(t, ok)
			assert.Equal(t, tt.want.ContainerID, c.ContainerID)
			assert.Equal(t, tt.want.Index, c.Index)
			assert.Equal(t, tt.want.Edge, c.Edge)
			assert.Equal(t, tt.outline, c.Outline)
		})
	}
}

func TestResolve_NoCandidate(t *testing.T) {
	l := lt.New().
		Tabset(lt.Main, "T", 100, "Y").
		Border(entity.EdgeLeft, "left", 100, "B").
		Build(t)
	f := geometry.Resolve(l, bounds, metrics())
	opts := dragdrop.DefaultOptions()

	_, ok := dragdrop.Resolve(f, l, image.Pt(5000, 5000), dragTab("Y"), opts)
	assert.False(t, ok, "outside every rectangle")

	self := dragdrop.Dragged{Kind: entity.KindTabset, ID: "T"}
	_, ok = dragdrop.Resolve(f, l, image.Pt(500, 300), self, opts)
	assert.False(t, ok, "a tabset cannot be dropped on itself")

	_, ok = dragdrop.Resolve(f, l, image.Pt(10, 300), self, opts)
	assert.False(t, ok, "borders only accept tabs")
}

func TestResolve_BorderBar(t *testing.T) {
	l := lt.New().
		Tabset(lt.Main, "T", 100, "Y").
		Border(entity.EdgeLeft, "left", 100, "B").
		Build(t)
	f := geometry.Resolve(l, bounds, metrics())

	// The left bar runs vertically; B occupies y 0..100.
	c, ok := dragdrop.Resolve(f, l, image.Pt(10, 80), dragTab("Y"), dragdrop.DefaultOptions())
	require.True(t, ok)
	assert.Equal(t, entity.NodeID("left"), c.ContainerID)
	assert.Equal(t, 1, c.Index)
	assert.Equal(t, entity.EdgeCenter, c.Edge)
	assert.Equal(t, image.Rect(0, 99, 20, 102), c.Outline)
}

func TestResolve_FloatingIsTopmost(t *testing.T) {
	l := lt.New().
		Tabset(lt.Main, "T", 100, "Y").
		Float("fl", image.Rect(400, 200, 700, 500), "F").
		Build(t)
	f := geometry.Resolve(l, bounds, metrics())

	c, ok := dragdrop.Resolve(f, l, image.Pt(420, 480), dragTab("Y"), dragdrop.DefaultOptions())
	require.True(t, ok)
	assert.Equal(t, entity.NodeID("fl"), c.ContainerID)
	assert.Equal(t, entity.EdgeCenter, c.Edge, "floating windows are never split")
	assert.Equal(t, 1, c.Index)
}

func TestResolve_MaximizedOnlyTargetsItself(t *testing.T) {
	l := lt.New().
		Tabset(lt.Main, "T", 100, "Y").
		Tabset(lt.Main, "S", 100, "X").
		With("S", func(n *entity.Node) { n.Maximized = true }).
		Build(t)
	f := geometry.Resolve(l, bounds, metrics())

	c, ok := dragdrop.Resolve(f, l, image.Pt(100, 300), dragTab("Y"), dragdrop.DefaultOptions())
	require.True(t, ok)
	assert.Equal(t, entity.NodeID("S"), c.ContainerID)
}
