// Package layouttest builds layouts with readable ids for tests.
package layouttest

import (
	"fmt"
	"image"
	"testing"

	"github.com/bnema/dockyard/internal/domain/entity"
)

// Root and Main are the ids of the root and main row of built layouts.
const (
	Root entity.NodeID = "root"
	Main entity.NodeID = "main"
)

// SeqIDs returns a generator yielding prefix1, prefix2, ...
func SeqIDs(prefix string) entity.IDGenerator {
	counter := 0
	return func() string {
		counter++
		return fmt.Sprintf("%s%d", prefix, counter)
	}
}

// Builder assembles a layout node by node. Tabs are named after their id.
type Builder struct {
	l   *entity.Layout
	err error
}

// New starts a layout with a root and an empty main row.
func New() *Builder {
	l := entity.NewRootLayout(Root)
	b := &Builder{l: l}
	b.add(Root, entity.NewRowNode(Main, entity.DefaultWeight))
	return b
}

// Row adds a row under parent.
func (b *Builder) Row(parent, id entity.NodeID, weight float64) *Builder {
	b.add(parent, entity.NewRowNode(id, weight))
	return b
}

// Tabset adds a tabset under parent holding tabs, the first one selected.
func (b *Builder) Tabset(parent, id entity.NodeID, weight float64, tabs ...entity.NodeID) *Builder {
	b.add(parent, entity.NewTabsetNode(id, weight))
	b.tabs(id, tabs)
	return b
}

// Border docks a collapsed border at loc holding tabs.
func (b *Builder) Border(loc entity.Edge, id entity.NodeID, size int, tabs ...entity.NodeID) *Builder {
	b.add(Root, entity.NewBorderNode(id, loc, size))
	b.tabs(id, tabs)
	if n, ok := b.l.Node(id); ok {
		n.Selected = entity.NoSelection
	}
	return b
}

// Float adds a floating tabset at r.
func (b *Builder) Float(id entity.NodeID, r image.Rectangle, tabs ...entity.NodeID) *Builder {
	ts := entity.NewTabsetNode(id, entity.DefaultWeight)
	ts.Float = &r
	b.add(Root, ts)
	b.tabs(id, tabs)
	return b
}

// With applies fn to the node id, for attributes the helpers do not cover.
func (b *Builder) With(id entity.NodeID, fn func(n *entity.Node)) *Builder {
	n, ok := b.l.Node(id)
	if !ok {
		b.fail(fmt.Errorf("with: %w: %s", entity.ErrNotFound, id))
		return b
	}
	fn(n)
	return b
}

// Layout returns the layout without validating it.
func (b *Builder) Layout() (*entity.Layout, error) {
	return b.l, b.err
}

// Build returns the layout and fails tb if it is invalid.
func (b *Builder) Build(tb testing.TB) *entity.Layout {
	tb.Helper()
	if b.err != nil {
		tb.Fatalf("layouttest: %v", b.err)
	}
	if err := b.l.Validate(); err != nil {
		tb.Fatalf("layouttest: invalid layout: %v", err)
	}
	return b.l
}

// Tab returns a spec for a tab named and typed after id.
func Tab(id entity.NodeID) entity.TabSpec {
	return entity.TabSpec{
		ID:         id,
		Name:       string(id),
		Content:    entity.ContentRef{Type: "text", Handle: string(id)},
		Closable:   true,
		Renamable:  true,
		EnableDrag: true,
	}
}

func (b *Builder) tabs(container entity.NodeID, tabs []entity.NodeID) {
	for i, id := range tabs {
		b.add(container, entity.NewTabNode(id, Tab(id)))
		if n, ok := b.l.Node(container); ok && i == 0 {
			n.Selected = 0
		}
	}
}

func (b *Builder) add(parent entity.NodeID, n *entity.Node) {
	if b.err != nil {
		return
	}
	if err := b.l.AddNode(n); err != nil {
		b.fail(err)
		return
	}
	p, _ := b.l.Node(parent)
	index := 0
	if p != nil {
		index = len(p.Children)
	}
	if err := b.l.Attach(parent, n.ID, index); err != nil {
		b.fail(err)
	}
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
