package sqlite

import (
	"context"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/repository"
)

// LazyLayoutRepository resolves the connection from a DatabaseProvider on
// every call, so the database is only opened by the first query.
type LazyLayoutRepository struct {
	provider port.DatabaseProvider
}

var _ repository.LayoutRepository = (*LazyLayoutRepository)(nil)

func NewLazyLayoutRepository(provider port.DatabaseProvider) *LazyLayoutRepository {
	return &LazyLayoutRepository{provider: provider}
}

func (r *LazyLayoutRepository) repo(ctx context.Context) (repository.LayoutRepository, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}
	return NewLayoutRepository(db), nil
}

func (r *LazyLayoutRepository) Save(ctx context.Context, record *entity.LayoutRecord) error {
	repo, err := r.repo(ctx)
	if err != nil {
		return err
	}
	return repo.Save(ctx, record)
}

func (r *LazyLayoutRepository) FindBySession(ctx context.Context, id entity.SessionID) (*entity.LayoutRecord, error) {
	repo, err := r.repo(ctx)
	if err != nil {
		return nil, err
	}
	return repo.FindBySession(ctx, id)
}

func (r *LazyLayoutRepository) List(ctx context.Context) ([]entity.LayoutInfo, error) {
	repo, err := r.repo(ctx)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

func (r *LazyLayoutRepository) Delete(ctx context.Context, id entity.SessionID) error {
	repo, err := r.repo(ctx)
	if err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}
