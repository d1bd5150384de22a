package port

import (
	"context"

	"github.com/bnema/dockyard/internal/domain/entity"
)

// ChangeEvent is emitted after every committed layout mutation.
type ChangeEvent struct {
	// Version increases by one with each commit.
	Version  uint64
	Document []byte
	Changed  []entity.NodeID
}

// ChangeListener receives committed layout changes, for persistence and
// to decide what to re-render.
type ChangeListener interface {
	LayoutChanged(ctx context.Context, event ChangeEvent) error
}
