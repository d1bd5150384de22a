package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/repository"
)

// ListLayoutsUseCase lists stored layouts.
type ListLayoutsUseCase struct {
	repo repository.LayoutRepository
}

// NewListLayoutsUseCase creates a new ListLayoutsUseCase.
func NewListLayoutsUseCase(repo repository.LayoutRepository) *ListLayoutsUseCase {
	return &ListLayoutsUseCase{repo: repo}
}

// Execute returns the stored layouts, most recently updated first,
// truncated to limit when limit is positive.
func (uc *ListLayoutsUseCase) Execute(ctx context.Context, limit int) ([]entity.LayoutInfo, error) {
	infos, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	if limit > 0 && len(infos) > limit {
		infos = infos[:limit]
	}
	return infos, nil
}
