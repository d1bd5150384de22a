package codec

import (
	"fmt"
	"image"

	"github.com/bnema/dockyard/internal/domain/entity"
)

type builder struct {
	opts      Options
	layout    *entity.Layout
	report    *entity.LoadReport
	reserved  map[entity.NodeID]bool
	borders   map[entity.Edge]bool
	maximized entity.NodeID
}

func newBuilder(opts Options) *builder {
	return &builder{
		opts:     opts,
		report:   &entity.LoadReport{},
		reserved: make(map[entity.NodeID]bool),
		borders:  make(map[entity.Edge]bool),
	}
}

func malformed(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", entity.ErrMalformedDocument, path, fmt.Sprintf(format, args...))
}

func (b *builder) coerced(path, format string, args ...any) {
	b.report.Coerced = append(b.report.Coerced, path+": "+fmt.Sprintf(format, args...))
}

func (b *builder) build(doc *entity.NodeDocument) (*entity.Layout, error) {
	const path = "layout"
	if doc.Type != entity.KindRoot.String() {
		return nil, malformed(path, "top-level node must be a root, got %q", doc.Type)
	}
	if err := b.reserve(doc, path); err != nil {
		return nil, err
	}

	rows := 0
	for i := range doc.Children {
		if doc.Children[i].Type == entity.KindRow.String() {
			rows++
		}
	}
	if rows != 1 {
		return nil, malformed(path, "root must hold exactly one row, has %d", rows)
	}

	b.layout = entity.NewRootLayout(b.claim(doc.ID))
	root := b.layout.Root()
	root.MinSize = b.minSize(doc.MinSize, path)
	for i := range doc.Children {
		if _, err := b.node(&doc.Children[i], root, fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
			return nil, err
		}
	}

	if main := b.layout.MainRow(); len(main.Children) == 0 {
		ts := entity.NewTabsetNode(b.claim(""), b.opts.DefaultWeight)
		if err := b.layout.AddNode(ts); err != nil {
			return nil, err
		}
		if err := b.layout.Attach(main.ID, ts.ID, 0); err != nil {
			return nil, err
		}
		b.coerced(path, "main row was empty, added tabset %s", ts.ID)
	}

	before := b.layout.Len()
	b.layout.Normalize(nil)
	if removed := before - b.layout.Len(); removed > 0 {
		b.coerced(path, "removed %d empty or single-child containers", removed)
	}
	if err := b.layout.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrMalformedDocument, err)
	}
	return b.layout, nil
}

// reserve collects the ids the document names so generated ids never
// collide with them, and rejects duplicates.
func (b *builder) reserve(doc *entity.NodeDocument, path string) error {
	if doc.ID != "" {
		id := entity.NodeID(doc.ID)
		if b.reserved[id] {
			return malformed(path, "duplicate id %q", doc.ID)
		}
		b.reserved[id] = true
	}
	for i := range doc.Children {
		if err := b.reserve(&doc.Children[i], fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) claim(id string) entity.NodeID {
	if id != "" {
		return entity.NodeID(id)
	}
	for {
		gen := entity.NodeID(b.opts.IDGenerator())
		if !b.reserved[gen] {
			b.reserved[gen] = true
			return gen
		}
	}
}

// node loads doc under parent and returns its id, or "" when the node was
// dropped by the unknown content policy.
func (b *builder) node(doc *entity.NodeDocument, parent *entity.Node, path string) (entity.NodeID, error) {
	kind, ok := entity.ParseNodeKind(doc.Type)
	if !ok {
		return "", malformed(path, "unknown node type %q", doc.Type)
	}
	if !entity.CanContain(parent.Kind, kind) {
		return "", malformed(path, "a %s cannot hold a %s", parent.Kind, kind)
	}

	n := &entity.Node{
		ID:       b.claim(doc.ID),
		Kind:     kind,
		Weight:   b.weight(doc.Weight, path),
		MinSize:  b.minSize(doc.MinSize, path),
		Selected: entity.NoSelection,
	}

	switch kind {
	case entity.KindTabset:
		if err := b.tabset(n, doc, parent, path); err != nil {
			return "", err
		}
	case entity.KindBorder:
		if err := b.border(n, doc, path); err != nil {
			return "", err
		}
	case entity.KindTab:
		if len(doc.Children) > 0 {
			return "", malformed(path, "tab %s cannot have children", n.ID)
		}
		if doc.Component == "" {
			return "", malformed(path, "tab %s has no component", n.ID)
		}
		content, keep := b.content(n.ID, doc.Component)
		if !keep {
			return "", nil
		}
		n.Name = doc.Name
		n.Icon = doc.Icon
		n.Content = content
		n.Closable = boolOr(doc.Closable, true)
		n.Renamable = boolOr(doc.Renamable, true)
		n.EnableDrag = boolOr(doc.EnableDrag, true)
	}

	if err := b.layout.AddNode(n); err != nil {
		return "", malformed(path, "%v", err)
	}
	if err := b.layout.Attach(parent.ID, n.ID, len(parent.Children)); err != nil {
		return "", malformed(path, "%v", err)
	}

	var selectedID entity.NodeID
	for i := range doc.Children {
		id, err := b.node(&doc.Children[i], n, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return "", err
		}
		if doc.Selected != nil && *doc.Selected == i {
			selectedID = id
		}
	}
	if kind.IsContainer() {
		b.selection(n, doc, selectedID, path)
	}
	return n.ID, nil
}

func (b *builder) tabset(n *entity.Node, doc *entity.NodeDocument, parent *entity.Node, path string) error {
	switch {
	case doc.Float != nil && parent.Kind == entity.KindRoot:
		r := doc.Float
		if r.W < 1 || r.H < 1 {
			return malformed(path, "floating rectangle %dx%d is empty", r.W, r.H)
		}
		rect := image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
		n.Float = &rect
	case doc.Float != nil:
		b.coerced(path, "float ignored on docked tabset %s", n.ID)
	case parent.Kind == entity.KindRoot:
		return malformed(path, "tabset %s under the root needs a float rectangle", n.ID)
	}

	if !doc.Maximized {
		return nil
	}
	switch {
	case n.Float != nil:
		b.coerced(path, "floating tabset %s cannot be maximized", n.ID)
	case b.maximized != "":
		b.coerced(path, "tabset %s demoted, %s is already maximized", n.ID, b.maximized)
	default:
		n.Maximized = true
		b.maximized = n.ID
	}
	return nil
}

func (b *builder) border(n *entity.Node, doc *entity.NodeDocument, path string) error {
	loc, ok := entity.ParseEdge(doc.Location)
	if !ok || !loc.IsSplit() {
		return malformed(path, "border %s needs a location of top, bottom, left or right, got %q", n.ID, doc.Location)
	}
	if b.borders[loc] {
		return malformed(path, "duplicate %s border", loc)
	}
	b.borders[loc] = true
	n.Location = loc

	n.Size = doc.Size
	if n.Size <= 0 {
		if n.Size < 0 {
			b.coerced(path, "border size %d replaced by %d", doc.Size, b.opts.DefaultBorderSize)
		}
		n.Size = b.opts.DefaultBorderSize
	}
	return nil
}

// selection restores a container's selected index. The selected tab is
// followed by id so tabs dropped before it do not shift the selection.
func (b *builder) selection(n *entity.Node, doc *entity.NodeDocument, selectedID entity.NodeID, path string) {
	count := len(n.Children)
	if doc.Selected == nil {
		if n.Kind == entity.KindTabset && count > 0 {
			n.Selected = 0
		}
		return
	}
	if selectedID != "" {
		n.Selected = n.IndexOf(selectedID)
		return
	}

	raw := *doc.Selected
	lowest := 0
	if n.Kind == entity.KindBorder || count == 0 {
		lowest = entity.NoSelection
	}
	sel := min(max(raw, lowest), count-1)
	if raw < entity.NoSelection || raw >= len(doc.Children) || (raw == entity.NoSelection && lowest == 0) {
		b.coerced(path, "selection %d clamped to %d", raw, sel)
	}
	n.Selected = sel
}

func (b *builder) weight(w float64, path string) float64 {
	if w > 0 {
		return w
	}
	if w < 0 {
		b.coerced(path, "weight %v replaced by %v", w, b.opts.DefaultWeight)
	}
	return b.opts.DefaultWeight
}

func (b *builder) minSize(v int, path string) int {
	if v < 0 {
		b.coerced(path, "min size %d replaced by 0", v)
		return 0
	}
	return v
}

func (b *builder) content(id entity.NodeID, contentType string) (entity.ContentRef, bool) {
	reg := b.opts.Registry
	if reg == nil {
		return entity.ContentRef{Type: contentType}, true
	}
	if h, ok := reg.Resolve(contentType); ok {
		return entity.ContentRef{Type: contentType, Handle: h}, true
	}

	b.report.Unknown = append(b.report.Unknown,
		fmt.Errorf("%w: tab %s uses %q%s", entity.ErrUnknownContentType, id, contentType, suggest(contentType, reg.Types())))

	if b.opts.Policy == PolicyDrop {
		b.report.Dropped = append(b.report.Dropped, id)
		return entity.ContentRef{}, false
	}
	var handle entity.ContentHandle
	if b.opts.PlaceholderType != "" {
		handle, _ = reg.Resolve(b.opts.PlaceholderType)
	}
	b.report.Placeholders = append(b.report.Placeholders, id)
	return entity.ContentRef{Type: contentType, Handle: handle, Placeholder: true}, true
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
