package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/domain/entity"
	lt "github.com/bnema/dockyard/internal/domain/entity/layouttest"
	repomocks "github.com/bnema/dockyard/internal/domain/repository/mocks"
	"github.com/bnema/dockyard/internal/infrastructure/codec"
)

func newCodec() *codec.JSONCodec {
	return codec.NewJSONCodec(codec.Options{IDGenerator: lt.SeqIDs("doc")})
}

func TestSaveLayoutUseCase_EncodesLayout(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockLayoutRepository(t)
	l := lt.New().Tabset(lt.Main, "ts", 100, "a", "b").Build(t)

	var saved *entity.LayoutRecord
	repo.EXPECT().Save(ctx, mock.AnythingOfType("*entity.LayoutRecord")).
		Run(func(_ context.Context, r *entity.LayoutRecord) { saved = r }).
		Return(nil)

	out, err := usecase.NewSaveLayoutUseCase(repo, newCodec()).Execute(ctx, usecase.SaveLayoutInput{
		SessionID: "work",
		Layout:    l,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, entity.SessionID("work"), saved.SessionID)
	assert.False(t, saved.UpdatedAt.IsZero())
	assert.Nil(t, out.Report)

	decoded, _, err := newCodec().Decode(ctx, saved.Document)
	require.NoError(t, err)
	assert.Equal(t, codec.ToDocument(l), codec.ToDocument(decoded))
}

func TestSaveLayoutUseCase_RejectsMalformedDocument(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockLayoutRepository(t)

	_, err := usecase.NewSaveLayoutUseCase(repo, newCodec()).Execute(ctx, usecase.SaveLayoutInput{
		SessionID: "work",
		Document:  []byte(`{"version": 1, "layout": {"type": "row"}}`),
	})
	assert.ErrorIs(t, err, entity.ErrMalformedDocument)
}

func TestSaveLayoutUseCase_InvalidInput(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockLayoutRepository(t)
	uc := usecase.NewSaveLayoutUseCase(repo, newCodec())

	_, err := uc.Execute(ctx, usecase.SaveLayoutInput{SessionID: "../etc", Document: []byte(`{}`)})
	assert.ErrorIs(t, err, entity.ErrInvalidSession)

	_, err = uc.Execute(ctx, usecase.SaveLayoutInput{SessionID: "work"})
	assert.Error(t, err)
}

func TestLoadLayoutUseCase_Execute(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockLayoutRepository(t)
	l := lt.New().Tabset(lt.Main, "ts", 100, "a").Build(t)
	data, err := newCodec().Encode(l)
	require.NoError(t, err)

	repo.EXPECT().FindBySession(ctx, entity.SessionID("work")).Return(&entity.LayoutRecord{
		SessionID: "work",
		Document:  data,
		UpdatedAt: time.Now(),
	}, nil)

	out, err := usecase.NewLoadLayoutUseCase(repo, newCodec()).Execute(ctx, "work")
	require.NoError(t, err)
	assert.Equal(t, l.IDs(), out.Layout.IDs())
	assert.True(t, out.Report.Clean())
}

func TestLoadLayoutUseCase_NotFound(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockLayoutRepository(t)
	repo.EXPECT().FindBySession(ctx, entity.SessionID("missing")).Return(nil, nil)

	_, err := usecase.NewLoadLayoutUseCase(repo, newCodec()).Execute(ctx, "missing")
	assert.ErrorIs(t, err, usecase.ErrLayoutNotFound)
}

func TestListLayoutsUseCase_Limit(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockLayoutRepository(t)
	repo.EXPECT().List(ctx).Return([]entity.LayoutInfo{
		{SessionID: "c"}, {SessionID: "b"}, {SessionID: "a"},
	}, nil).Times(2)

	uc := usecase.NewListLayoutsUseCase(repo)
	infos, err := uc.Execute(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, infos, 2)

	infos, err = uc.Execute(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, infos, 3)
}

func TestListLayoutsUseCase_RepositoryError(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockLayoutRepository(t)
	boom := errors.New("disk on fire")
	repo.EXPECT().List(ctx).Return(nil, boom)

	_, err := usecase.NewListLayoutsUseCase(repo).Execute(ctx, 0)
	assert.ErrorIs(t, err, boom)
}

func TestDeleteLayoutUseCase_Execute(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockLayoutRepository(t)
	repo.EXPECT().FindBySession(ctx, entity.SessionID("work")).Return(&entity.LayoutRecord{SessionID: "work"}, nil)
	repo.EXPECT().Delete(ctx, entity.SessionID("work")).Return(nil)

	require.NoError(t, usecase.NewDeleteLayoutUseCase(repo).Execute(ctx, "work"))
}

func TestDeleteLayoutUseCase_NotFound(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockLayoutRepository(t)
	repo.EXPECT().FindBySession(ctx, entity.SessionID("gone")).Return(nil, nil)

	err := usecase.NewDeleteLayoutUseCase(repo).Execute(ctx, "gone")
	assert.ErrorIs(t, err, usecase.ErrLayoutNotFound)
}
