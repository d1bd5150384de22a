// Package snapshot persists the engine's layout in the background.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ncruces/go-sqlite3"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/logging"
)

const (
	defaultInterval   = 2 * time.Second
	defaultRetries    = 3
	defaultRetryDelay = 50 * time.Millisecond
)

// Service is a change listener that saves the latest layout of a session,
// debounced so a burst of changes costs one write.
type Service struct {
	saveUC    *usecase.SaveLayoutUseCase
	sessionID entity.SessionID
	interval  time.Duration

	retries    int
	retryDelay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending []byte
	version uint64
	dirty   bool
	ready   bool // false until the host allows writes, e.g. after a restore
	ctx     context.Context
	cancel  context.CancelFunc
}

var _ port.ChangeListener = (*Service)(nil)

// NewService creates a snapshot service for one session.
func NewService(saveUC *usecase.SaveLayoutUseCase, sessionID entity.SessionID, interval time.Duration) *Service {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Service{
		saveUC:     saveUC,
		sessionID:  sessionID,
		interval:   interval,
		retries:    defaultRetries,
		retryDelay: defaultRetryDelay,
	}
}

// Start enables debounced saves until ctx is done or Stop is called.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctx, s.cancel = context.WithCancel(ctx)
	logging.FromContext(ctx).Debug().
		Str("session_id", string(s.sessionID)).
		Dur("interval", s.interval).
		Msg("snapshot service started")
}

// SetReady allows saves and schedules any change recorded before.
func (s *Service) SetReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
	if s.dirty {
		s.scheduleLocked()
	}
}

// Stop cancels the pending timer and saves the final state.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	return s.SaveNow(ctx)
}

// LayoutChanged records the new document and restarts the debounce timer.
func (s *Service) LayoutChanged(_ context.Context, event port.ChangeEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.Version < s.version {
		return nil
	}
	s.pending = event.Document
	s.version = event.Version
	s.dirty = true
	if s.ready {
		s.scheduleLocked()
	}
	return nil
}

func (s *Service) scheduleLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		ctx := s.ctx
		s.mu.Unlock()

		if ctx == nil || ctx.Err() != nil {
			return
		}
		if err := s.save(ctx); err != nil {
			logging.FromContext(ctx).Error().Err(err).Msg("failed to save layout snapshot")
		}
	})
}

// SaveNow writes the pending change immediately, if there is one.
func (s *Service) SaveNow(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	return s.save(ctx)
}

func (s *Service) save(ctx context.Context) error {
	s.mu.Lock()
	if !s.dirty || !s.ready {
		s.mu.Unlock()
		return nil
	}
	doc, version := s.pending, s.version
	s.dirty = false
	s.mu.Unlock()

	err := s.saveWithRetry(ctx, doc)
	if err != nil {
		s.mu.Lock()
		// A newer change may have arrived meanwhile; it stays pending either way.
		if s.version == version {
			s.dirty = true
		}
		s.mu.Unlock()
		return err
	}

	logging.FromContext(ctx).Debug().
		Str("session_id", string(s.sessionID)).
		Uint64("version", version).
		Msg("layout snapshot saved")
	return nil
}

func (s *Service) saveWithRetry(ctx context.Context, doc []byte) error {
	var err error
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.retryDelay):
			}
		}
		_, err = s.saveUC.Execute(ctx, usecase.SaveLayoutInput{SessionID: s.sessionID, Document: doc})
		if err == nil || !isBusy(err) {
			break
		}
		logging.FromContext(ctx).Debug().Err(err).Int("attempt", attempt+1).Msg("database busy, retrying snapshot")
	}
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", s.sessionID, err)
	}
	return nil
}

// isBusy matches SQLite lock contention, which clears once the other
// writer commits.
func isBusy(err error) bool {
	return errors.Is(err, sqlite3.BUSY) || errors.Is(err, sqlite3.LOCKED)
}
