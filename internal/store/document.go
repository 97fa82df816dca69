package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Document binds one key in a Store to a Go type with a default value.
// Absent or malformed stored data is treated as absence and replaced by the
// default; decode problems never surface to readers.
type Document[T any] struct {
	store     *Store
	key       string
	defaultFn func() T
}

// NewDocument creates a typed view over key. defaultFn supplies the value
// used when the key is absent or its stored form cannot be decoded.
func NewDocument[T any](s *Store, key string, defaultFn func() T) *Document[T] {
	return &Document[T]{store: s, key: key, defaultFn: defaultFn}
}

// Key returns the document's store key.
func (d *Document[T]) Key() string {
	return d.key
}

// Load returns the current value of the document, falling back to the
// default when the key is absent or holds malformed data.
func (d *Document[T]) Load(ctx context.Context) (T, error) {
	var zero T
	if err := validateContext(ctx); err != nil {
		return zero, err
	}

	raw, ok := d.store.getRaw(d.key)
	if !ok {
		return d.defaultFn(), nil
	}
	return d.decode(raw), nil
}

// Save serializes value and writes it through the store. A serialization
// failure aborts the write and leaves the cache unchanged. A database write
// failure keeps the new value in memory for the session and returns an
// error wrapping common.ErrNotPersisted.
func (d *Document[T]) Save(ctx context.Context, value T) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		slog.Error("failed to serialize document, write aborted",
			"key", d.key, "error", err)
		return fmt.Errorf("failed to serialize document %q: %w", d.key, err)
	}

	return d.store.setRaw(ctx, d.key, raw)
}

// Entry serializes value into a batch entry for Store.SetBatch.
func (d *Document[T]) Entry(value T) (Entry, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to serialize document %q: %w", d.key, err)
	}
	return Entry{Key: d.key, Value: raw}, nil
}

// Subscribe registers fn to run when another process writes this document.
// An absent or null new value delivers the default instead. The returned
// function unregisters the listener.
func (d *Document[T]) Subscribe(fn func(T)) func() {
	return d.store.subscribeRaw(d.key, func(raw json.RawMessage) {
		fn(d.decode(raw))
	})
}

// decode deserializes raw, returning the default for absent, null, or
// malformed data.
func (d *Document[T]) decode(raw json.RawMessage) T {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return d.defaultFn()
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		slog.Warn("malformed stored document, using default",
			"key", d.key, "error", err)
		return d.defaultFn()
	}
	return value
}
