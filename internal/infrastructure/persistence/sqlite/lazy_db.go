package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/logging"
)

// LazyDB opens the database on first use, so CLI commands that never read
// stored layouts skip the WASM compilation and the migrations.
//
// A failed open is not cached: the next call tries again. After Close, the
// next call reopens the database.
type LazyDB struct {
	mu     sync.Mutex
	dbPath string
	db     *sql.DB
}

var _ port.DatabaseProvider = (*LazyDB)(nil)

func NewLazyDB(dbPath string) *LazyDB {
	return &LazyDB{dbPath: dbPath}
}

// DB returns the open connection, opening it if needed.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db != nil {
		return l.db, nil
	}

	log := logging.FromContext(ctx)
	log.Debug().Str("path", l.dbPath).Msg("opening layout database")
	db, err := NewConnection(ctx, l.dbPath)
	if err != nil {
		log.Error().Err(err).Str("path", l.dbPath).Msg("layout database unavailable")
		return nil, fmt.Errorf("open layout database: %w", err)
	}
	l.db = db
	return db, nil
}

func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

func (l *LazyDB) IsInitialized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.db != nil
}

// Path returns the database file path.
func (l *LazyDB) Path() string { return l.dbPath }
