package snapshot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ncruces/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/domain/entity"
	lt "github.com/bnema/dockyard/internal/domain/entity/layouttest"
	repomocks "github.com/bnema/dockyard/internal/domain/repository/mocks"
	"github.com/bnema/dockyard/internal/infrastructure/codec"
)

const session entity.SessionID = "20260207_120000_ab12"

func newTestService(t *testing.T, repo *repomocks.MockLayoutRepository) *Service {
	t.Helper()
	uc := usecase.NewSaveLayoutUseCase(repo, codec.NewJSONCodec(codec.Options{}))
	svc := NewService(uc, session, time.Millisecond)
	svc.retryDelay = time.Millisecond
	return svc
}

func document(t *testing.T, tabs ...entity.NodeID) []byte {
	t.Helper()
	l := lt.New().Tabset(lt.Main, "T", 100, tabs...).Build(t)
	data, err := codec.NewJSONCodec(codec.Options{}).Encode(l)
	require.NoError(t, err)
	return data
}

func TestService_SaveNow_RetriesBusyAndSucceeds(t *testing.T) {
	repo := repomocks.NewMockLayoutRepository(t)
	calls := 0
	repo.EXPECT().
		Save(mock.Anything, mock.AnythingOfType("*entity.LayoutRecord")).
		RunAndReturn(func(_ context.Context, r *entity.LayoutRecord) error {
			calls++
			if calls == 1 {
				return fmt.Errorf("save layout: %w", sqlite3.BUSY)
			}
			assert.Equal(t, session, r.SessionID)
			return nil
		})

	svc := newTestService(t, repo)
	svc.SetReady()
	require.NoError(t, svc.LayoutChanged(context.Background(), port.ChangeEvent{Version: 1, Document: document(t, "A")}))

	require.NoError(t, svc.SaveNow(context.Background()))
	assert.Equal(t, 2, calls)
	assert.False(t, svc.dirty)
}

func TestService_SaveNow_GivesUpAfterRetries(t *testing.T) {
	repo := repomocks.NewMockLayoutRepository(t)
	calls := 0
	busy := fmt.Errorf("save layout: %w", sqlite3.LOCKED)
	repo.EXPECT().
		Save(mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, *entity.LayoutRecord) error {
			calls++
			return busy
		})

	svc := newTestService(t, repo)
	svc.SetReady()
	require.NoError(t, svc.LayoutChanged(context.Background(), port.ChangeEvent{Version: 1, Document: document(t, "A")}))

	err := svc.SaveNow(context.Background())
	require.ErrorIs(t, err, busy)
	assert.Equal(t, svc.retries+1, calls)
	assert.True(t, svc.dirty, "failed snapshot stays pending")
}

func TestIsBusy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"busy", sqlite3.BUSY, true},
		{"wrapped locked", fmt.Errorf("failed to save layout: %w", sqlite3.LOCKED), true},
		{"readonly", sqlite3.READONLY, false},
		{"lock text without code", errors.New("database is locked"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isBusy(tt.err))
		})
	}
}

func TestService_SaveNow_DoesNotRetryOtherErrors(t *testing.T) {
	repo := repomocks.NewMockLayoutRepository(t)
	calls := 0
	readOnly := errors.New("attempt to write a readonly database")
	repo.EXPECT().
		Save(mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, *entity.LayoutRecord) error {
			calls++
			return readOnly
		})

	svc := newTestService(t, repo)
	svc.SetReady()
	require.NoError(t, svc.LayoutChanged(context.Background(), port.ChangeEvent{Version: 1, Document: document(t, "A")}))

	require.ErrorIs(t, svc.SaveNow(context.Background()), readOnly)
	assert.Equal(t, 1, calls)
}

func TestService_NotReadyKeepsChangePending(t *testing.T) {
	repo := repomocks.NewMockLayoutRepository(t)
	svc := newTestService(t, repo)

	require.NoError(t, svc.LayoutChanged(context.Background(), port.ChangeEvent{Version: 1, Document: document(t, "A")}))
	require.NoError(t, svc.SaveNow(context.Background()))
	assert.True(t, svc.dirty)
}

func TestService_SetReady_SavesPendingChange(t *testing.T) {
	repo := repomocks.NewMockLayoutRepository(t)
	saved := make(chan []byte, 1)
	repo.EXPECT().
		Save(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, r *entity.LayoutRecord) error {
			saved <- r.Document
			return nil
		})

	svc := newTestService(t, repo)
	svc.Start(context.Background())
	t.Cleanup(func() { _ = svc.Stop(context.Background()) })
	require.NoError(t, svc.LayoutChanged(context.Background(), port.ChangeEvent{Version: 1, Document: document(t, "A")}))

	svc.SetReady()

	select {
	case doc := <-saved:
		assert.Contains(t, string(doc), `"id": "A"`)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected pending snapshot to be saved after SetReady")
	}
}

func TestService_DebounceKeepsLatestDocument(t *testing.T) {
	repo := repomocks.NewMockLayoutRepository(t)
	saved := make(chan []byte, 4)
	repo.EXPECT().
		Save(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, r *entity.LayoutRecord) error {
			saved <- r.Document
			return nil
		})

	svc := newTestService(t, repo)
	svc.interval = 100 * time.Millisecond
	svc.Start(context.Background())
	svc.SetReady()
	t.Cleanup(func() { _ = svc.Stop(context.Background()) })

	ctx := context.Background()
	require.NoError(t, svc.LayoutChanged(ctx, port.ChangeEvent{Version: 1, Document: document(t, "A")}))
	require.NoError(t, svc.LayoutChanged(ctx, port.ChangeEvent{Version: 3, Document: document(t, "A", "C")}))
	// Stale events are ignored.
	require.NoError(t, svc.LayoutChanged(ctx, port.ChangeEvent{Version: 2, Document: document(t, "B")}))

	select {
	case doc := <-saved:
		assert.Contains(t, string(doc), `"id": "C"`)
		assert.NotContains(t, string(doc), `"id": "B"`)
	case <-time.After(time.Second):
		t.Fatal("expected a debounced snapshot")
	}
}

func TestService_StopFlushesPendingChange(t *testing.T) {
	repo := repomocks.NewMockLayoutRepository(t)
	repo.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()

	svc := newTestService(t, repo)
	svc.interval = time.Hour
	svc.Start(context.Background())
	svc.SetReady()
	require.NoError(t, svc.LayoutChanged(context.Background(), port.ChangeEvent{Version: 1, Document: document(t, "A")}))

	require.NoError(t, svc.Stop(context.Background()))
	assert.False(t, svc.dirty)
}
