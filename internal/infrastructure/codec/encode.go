package codec

import (
	"github.com/bnema/dockyard/internal/domain/entity"
)

// ToDocument converts a layout to its document form, children in order.
func ToDocument(l *entity.Layout) entity.Document {
	return entity.Document{
		Version: entity.DocumentVersion,
		Layout:  nodeDocument(l, l.Root()),
	}
}

func nodeDocument(l *entity.Layout, n *entity.Node) entity.NodeDocument {
	doc := entity.NodeDocument{
		Type:    n.Kind.String(),
		ID:      string(n.ID),
		MinSize: n.MinSize,
	}
	if n.Kind != entity.KindRoot {
		doc.Weight = n.Weight
	}

	switch n.Kind {
	case entity.KindTabset:
		doc.Selected = intPtr(n.Selected)
		doc.Maximized = n.Maximized
		if n.Float != nil {
			doc.Float = &entity.RectDocument{
				X: n.Float.Min.X,
				Y: n.Float.Min.Y,
				W: n.Float.Dx(),
				H: n.Float.Dy(),
			}
		}
	case entity.KindBorder:
		doc.Selected = intPtr(n.Selected)
		doc.Location = n.Location.String()
		doc.Size = n.Size
	case entity.KindTab:
		doc.Name = n.Name
		doc.Icon = n.Icon
		doc.Component = n.Content.Type
		doc.Closable = falsePtr(n.Closable)
		doc.Renamable = falsePtr(n.Renamable)
		doc.EnableDrag = falsePtr(n.EnableDrag)
	}

	if len(n.Children) > 0 {
		doc.Children = make([]entity.NodeDocument, 0, len(n.Children))
		for _, id := range n.Children {
			if c, ok := l.Node(id); ok {
				doc.Children = append(doc.Children, nodeDocument(l, c))
			}
		}
	}
	return doc
}

func intPtr(v int) *int { return &v }

// falsePtr writes a flag only when it differs from its true default.
func falsePtr(v bool) *bool {
	if v {
		return nil
	}
	return &v
}
