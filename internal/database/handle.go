package database

import (
	"context"
	"database/sql"
	"sync"

	"golang.org/x/sync/singleflight"

	"inkwell/internal/apperr"
)

// ErrNotConfigured is returned by Handle.DB when no DSN was provided.
var ErrNotConfigured = apperr.New(apperr.Configuration,
	"database not configured: set DATABASE_URL to enable database access")

// Handle is the per-process database reference handed to every procedure.
// It is always constructible, even without a DSN; the pool is opened on the
// first call to DB and a missing or unreachable database surfaces there as a
// configuration error. Callers that never touch the database never fail.
//
// Concurrent callers share a single connection attempt; each waits only as
// long as its own context allows.
type Handle struct {
	dsn     string
	opts    PoolOptions
	connect func(context.Context, string, PoolOptions) (*sql.DB, error)

	flight singleflight.Group

	mu sync.Mutex
	db *sql.DB
}

// NewHandle returns a lazily connecting handle. dsn may be empty.
func NewHandle(dsn string, opts PoolOptions) *Handle {
	return &Handle{dsn: dsn, opts: opts, connect: Connect}
}

// Static wraps an already opened pool.
func Static(db *sql.DB) *Handle {
	return &Handle{db: db}
}

// Configured reports whether the handle can ever yield a connection.
func (h *Handle) Configured() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.db != nil || h.dsn != ""
}

// DB returns the shared pool, connecting on first use. A failed connection
// attempt is not cached; the next call tries again. If ctx ends while the
// attempt is in flight, DB returns early and the attempt carries on for the
// other waiters.
func (h *Handle) DB(ctx context.Context) (*sql.DB, error) {
	if db := h.current(); db != nil {
		return db, nil
	}
	if h.dsn == "" {
		return nil, ErrNotConfigured
	}

	ch := h.flight.DoChan("connect", func() (any, error) {
		if db := h.current(); db != nil {
			return db, nil
		}
		// The attempt outlives any single caller; Connect bounds it with
		// the pool's connect timeout.
		db, err := h.connect(context.WithoutCancel(ctx), h.dsn, h.opts)
		if err != nil {
			return nil, err
		}
		h.mu.Lock()
		h.db = db
		h.mu.Unlock()
		return db, nil
	})

	select {
	case <-ctx.Done():
		return nil, apperr.Wrap(apperr.Configuration, "database unavailable", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, apperr.Wrap(apperr.Configuration, "database unavailable", res.Err)
		}
		return res.Val.(*sql.DB), nil
	}
}

func (h *Handle) current() *sql.DB {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.db
}

// Close releases the pool if one was opened.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}
