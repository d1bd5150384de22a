package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/repository"
	"github.com/bnema/dockyard/internal/logging"
)

const (
	upsertLayoutSQL = `INSERT INTO layouts (session_id, document, updated_at)
VALUES (?, ?, ?)
ON CONFLICT (session_id) DO UPDATE SET
    document = excluded.document,
    updated_at = excluded.updated_at`
	getLayoutSQL    = `SELECT session_id, document, updated_at FROM layouts WHERE session_id = ?`
	listLayoutsSQL  = `SELECT session_id, length(document), updated_at FROM layouts ORDER BY updated_at DESC, session_id`
	deleteLayoutSQL = `DELETE FROM layouts WHERE session_id = ?`
)

type layoutRepo struct {
	db *sql.DB
}

// NewLayoutRepository creates a layout repository over db.
func NewLayoutRepository(db *sql.DB) repository.LayoutRepository {
	return &layoutRepo{db: db}
}

func (r *layoutRepo) Save(ctx context.Context, record *entity.LayoutRecord) error {
	if record == nil {
		return fmt.Errorf("layout record is required")
	}
	if err := record.SessionID.Validate(); err != nil {
		return err
	}
	logging.FromContext(ctx).Debug().
		Str("session", string(record.SessionID)).
		Int("bytes", len(record.Document)).
		Msg("saving layout")

	_, err := r.db.ExecContext(ctx, upsertLayoutSQL,
		string(record.SessionID), record.Document, record.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	return nil
}

func (r *layoutRepo) FindBySession(ctx context.Context, id entity.SessionID) (*entity.LayoutRecord, error) {
	var (
		sessionID string
		doc       []byte
		updatedAt int64
	)
	err := r.db.QueryRowContext(ctx, getLayoutSQL, string(id)).Scan(&sessionID, &doc, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find layout: %w", err)
	}
	return &entity.LayoutRecord{
		SessionID: entity.SessionID(sessionID),
		Document:  doc,
		UpdatedAt: time.UnixMilli(updatedAt).UTC(),
	}, nil
}

func (r *layoutRepo) List(ctx context.Context) ([]entity.LayoutInfo, error) {
	rows, err := r.db.QueryContext(ctx, listLayoutsSQL)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer rows.Close()

	var infos []entity.LayoutInfo
	for rows.Next() {
		var (
			sessionID string
			size      int64
			updatedAt int64
		)
		if err := rows.Scan(&sessionID, &size, &updatedAt); err != nil {
			return nil, fmt.Errorf("list layouts: %w", err)
		}
		infos = append(infos, entity.LayoutInfo{
			SessionID: entity.SessionID(sessionID),
			Size:      size,
			UpdatedAt: time.UnixMilli(updatedAt).UTC(),
		})
	}
	return infos, rows.Err()
}

func (r *layoutRepo) Delete(ctx context.Context, id entity.SessionID) error {
	if _, err := r.db.ExecContext(ctx, deleteLayoutSQL, string(id)); err != nil {
		return fmt.Errorf("delete layout: %w", err)
	}
	return nil
}
