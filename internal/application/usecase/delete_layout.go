package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/repository"
	"github.com/bnema/dockyard/internal/logging"
)

// DeleteLayoutUseCase removes the stored layout of a session.
type DeleteLayoutUseCase struct {
	repo repository.LayoutRepository
}

// NewDeleteLayoutUseCase creates a new DeleteLayoutUseCase.
func NewDeleteLayoutUseCase(repo repository.LayoutRepository) *DeleteLayoutUseCase {
	return &DeleteLayoutUseCase{repo: repo}
}

// Execute deletes the layout. Returns ErrLayoutNotFound when nothing is stored.
func (uc *DeleteLayoutUseCase) Execute(ctx context.Context, sessionID entity.SessionID) error {
	if err := sessionID.Validate(); err != nil {
		return fmt.Errorf("%w: %q", err, sessionID)
	}

	record, err := uc.repo.FindBySession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to find layout: %w", err)
	}
	if record == nil {
		return fmt.Errorf("%w: %s", ErrLayoutNotFound, sessionID)
	}

	logging.FromContext(ctx).Info().Str("session_id", string(sessionID)).Msg("deleting layout")
	return uc.repo.Delete(ctx, sessionID)
}
