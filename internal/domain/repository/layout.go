package repository

import (
	"context"

	"github.com/bnema/dockyard/internal/domain/entity"
)

// LayoutRepository defines operations for persisted layout documents.
type LayoutRepository interface {
	// Save creates or replaces the layout stored for a session (upsert).
	Save(ctx context.Context, record *entity.LayoutRecord) error

	// FindBySession retrieves the layout of a session.
	// Returns nil without error when nothing is stored.
	FindBySession(ctx context.Context, id entity.SessionID) (*entity.LayoutRecord, error)

	// List returns every stored layout, most recently updated first.
	List(ctx context.Context) ([]entity.LayoutInfo, error)

	// Delete removes the layout of a session.
	Delete(ctx context.Context, id entity.SessionID) error
}
