package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/repository"
	"github.com/bnema/dockyard/internal/logging"
)

// LoadLayoutUseCase restores the stored layout of a session.
type LoadLayoutUseCase struct {
	repo  repository.LayoutRepository
	codec port.LayoutCodec
}

// NewLoadLayoutUseCase creates a new LoadLayoutUseCase.
func NewLoadLayoutUseCase(repo repository.LayoutRepository, codec port.LayoutCodec) *LoadLayoutUseCase {
	return &LoadLayoutUseCase{repo: repo, codec: codec}
}

// LoadLayoutOutput contains the restored layout.
type LoadLayoutOutput struct {
	Record *entity.LayoutRecord
	Layout *entity.Layout
	Report *entity.LoadReport
}

// Execute fetches and decodes the layout of a session.
// Returns ErrLayoutNotFound when nothing is stored.
func (uc *LoadLayoutUseCase) Execute(ctx context.Context, sessionID entity.SessionID) (*LoadLayoutOutput, error) {
	if err := sessionID.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %q", err, sessionID)
	}

	record, err := uc.repo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find layout: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, sessionID)
	}

	layout, report, err := uc.codec.Decode(ctx, record.Document)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug().
		Str("session_id", string(sessionID)).
		Int("nodes", layout.Len()).
		Msg("layout loaded")
	return &LoadLayoutOutput{Record: record, Layout: layout, Report: report}, nil
}
