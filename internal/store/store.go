// Package store provides keyed JSON-document persistence with an in-memory
// cache and change notification across processes sharing the same database
// file.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/smartspend/smartspend/internal/common"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// ErrNilContext is returned when a nil context is passed to a store operation.
var ErrNilContext = errors.New("context cannot be nil")

// Entry is one key/value pair for a batch write.
type Entry struct {
	Key   string
	Value json.RawMessage
}

// rawListener receives the new raw value for a key after an external write.
// A nil value means the key is now absent.
type rawListener struct {
	id int
	fn func(json.RawMessage)
}

// Store persists JSON documents under string keys in a single SQLite
// database. All reads are served from an in-memory cache loaded at Open;
// writes go through the cache to the database. Writes from other processes
// on the same file are picked up by Watch and fed to subscribers.
type Store struct {
	db          *sql.DB
	path        string
	mu          sync.RWMutex
	cache       map[string]json.RawMessage
	subscribers map[string][]rawListener
	nextSubID   int
	dataVersion int64
}

// Open opens (creating if needed) the document store at dbPath.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath cannot be empty")
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{
		db:          db,
		path:        dbPath,
		cache:       make(map[string]json.RawMessage),
		subscribers: make(map[string][]rawListener),
	}

	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	if err := s.loadCache(); err != nil {
		return nil, err
	}
	s.dataVersion, _ = s.readDataVersion()

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) ensureSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS documents (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}
	return nil
}

func (s *Store) loadCache() error {
	rows, err := s.db.Query(`SELECT key, value FROM documents`)
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("failed to scan document: %w", err)
		}
		s.cache[key] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating documents: %w", err)
	}

	slog.Debug("loaded document cache", "path", s.path, "keys", len(s.cache))
	return nil
}

func (s *Store) readDataVersion() (int64, error) {
	var v int64
	if err := s.db.QueryRow(`PRAGMA data_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to read data version: %w", err)
	}
	return v, nil
}

// getRaw returns the cached raw value for key.
func (s *Store) getRaw(key string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.cache[key]
	return raw, ok
}

// setRaw updates the cache and writes the value through to the database.
// The cache keeps the new value even when the database write fails; the
// change then lives for the session only and the returned error wraps
// common.ErrNotPersisted.
func (s *Store) setRaw(ctx context.Context, key string, raw json.RawMessage) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[key] = raw
	s.mu.Unlock()

	query := `
		INSERT INTO documents (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := s.db.ExecContext(ctx, query, key, string(raw)); err != nil {
		slog.Error("document write failed, change is in memory only",
			"key", key, "error", err)
		return fmt.Errorf("%w: key %q: %v", common.ErrNotPersisted, key, err)
	}

	return nil
}

// SetBatch writes several documents in a single database transaction. The
// cache takes all entries regardless of the transaction outcome, matching
// the best-effort persistence policy of setRaw.
func (s *Store) SetBatch(ctx context.Context, entries []Entry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	s.mu.Lock()
	for _, e := range entries {
		s.cache[e.Key] = e.Value
	}
	s.mu.Unlock()

	err := func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		query := `
			INSERT INTO documents (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`
		for _, e := range entries {
			if _, err := tx.ExecContext(ctx, query, e.Key, string(e.Value)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}()
	if err != nil {
		slog.Error("batch document write failed, changes are in memory only",
			"keys", len(entries), "error", err)
		return fmt.Errorf("%w: batch of %d: %v", common.ErrNotPersisted, len(entries), err)
	}

	return nil
}

// subscribeRaw registers fn for external changes to key. The returned
// function unregisters it.
func (s *Store) subscribeRaw(key string, fn func(json.RawMessage)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subscribers[key] = append(s.subscribers[key], rawListener{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		listeners := s.subscribers[key]
		for i, l := range listeners {
			if l.id == id {
				s.subscribers[key] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Watch polls for writes made by other processes and refreshes the cache
// when one is detected, notifying subscribers of changed keys. It blocks
// until ctx is canceled; run it in its own goroutine. Conflicting writes
// are resolved last-writer-wins: the cache is replaced wholesale.
func (s *Store) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.refresh(ctx); err != nil {
				slog.Warn("store refresh failed", "error", err)
			}
		}
	}
}

// refresh reloads the cache from disk if another connection has written to
// the database since the last check, firing subscribers for changed keys.
func (s *Store) refresh(ctx context.Context) error {
	version, err := s.readDataVersion()
	if err != nil {
		return err
	}

	s.mu.RLock()
	unchanged := version == s.dataVersion
	s.mu.RUnlock()
	if unchanged {
		return nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM documents`)
	if err != nil {
		return fmt.Errorf("failed to reload documents: %w", err)
	}
	defer rows.Close()

	fresh := make(map[string]json.RawMessage)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("failed to scan document: %w", err)
		}
		fresh[key] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating documents: %w", err)
	}

	type notification struct {
		fn  func(json.RawMessage)
		raw json.RawMessage
	}
	var pending []notification

	s.mu.Lock()
	s.dataVersion = version
	for key, raw := range fresh {
		if string(s.cache[key]) == string(raw) {
			continue
		}
		for _, l := range s.subscribers[key] {
			pending = append(pending, notification{fn: l.fn, raw: raw})
		}
	}
	for key := range s.cache {
		if _, ok := fresh[key]; ok {
			continue
		}
		// Key removed by the other writer
		for _, l := range s.subscribers[key] {
			pending = append(pending, notification{fn: l.fn, raw: nil})
		}
	}
	s.cache = fresh
	s.mu.Unlock()

	for _, n := range pending {
		n.fn(n.raw)
	}

	if len(pending) > 0 {
		slog.Debug("applied external store changes", "notifications", len(pending))
	}
	return nil
}

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}
