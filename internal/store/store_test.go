package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func defaultDocs() []testDoc {
	return []testDoc{{Name: "seeded", Value: 1}}
}

func openTestStore(t *testing.T, dbPath string) *Store {
	t.Helper()
	s, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDocument_DefaultWhenAbsent(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	doc := NewDocument(s, "docs", defaultDocs)

	got, err := doc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, defaultDocs(), got)
}

func TestDocument_RoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s := openTestStore(t, dbPath)
	doc := NewDocument(s, "docs", defaultDocs)

	want := []testDoc{
		{Name: "rent", Value: 1200.50},
		{Name: "coffee", Value: 4.25},
	}
	require.NoError(t, doc.Save(ctx, want))

	got, err := doc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Value equality must survive a fresh open
	require.NoError(t, s.Close())
	reopened := openTestStore(t, dbPath)
	got, err = NewDocument(reopened, "docs", defaultDocs).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDocument_DefaultWhenCorrupt(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	// Plant malformed JSON under the key before the store reads it
	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE documents (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO documents (key, value) VALUES ('docs', '{not json')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	s := openTestStore(t, dbPath)
	got, err := NewDocument(s, "docs", defaultDocs).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaultDocs(), got, "malformed data should fall back to the default")
}

func TestDocument_DefaultWhenWrongShape(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE documents (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO documents (key, value) VALUES ('docs', '42')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	s := openTestStore(t, dbPath)
	got, err := NewDocument(s, "docs", defaultDocs).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaultDocs(), got, "wrong shape should fall back to the default")
}

func TestSetBatch_AllKeysVisibleAfterReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s := openTestStore(t, dbPath)
	first := NewDocument(s, "first", defaultDocs)
	second := NewDocument(s, "second", defaultDocs)

	firstVal := []testDoc{{Name: "a", Value: 1}}
	secondVal := []testDoc{{Name: "b", Value: 2}}

	e1, err := first.Entry(firstVal)
	require.NoError(t, err)
	e2, err := second.Entry(secondVal)
	require.NoError(t, err)
	require.NoError(t, s.SetBatch(ctx, []Entry{e1, e2}))

	require.NoError(t, s.Close())
	reopened := openTestStore(t, dbPath)

	got, err := NewDocument(reopened, "first", defaultDocs).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, firstVal, got)

	got, err = NewDocument(reopened, "second", defaultDocs).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, secondVal, got)
}

func TestSubscribe_ExternalWriteNotifies(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	reader := openTestStore(t, dbPath)
	writer := openTestStore(t, dbPath)

	readerDoc := NewDocument(reader, "docs", defaultDocs)
	var received [][]testDoc
	unsubscribe := readerDoc.Subscribe(func(v []testDoc) {
		received = append(received, v)
	})

	want := []testDoc{{Name: "external", Value: 7}}
	require.NoError(t, NewDocument(writer, "docs", defaultDocs).Save(ctx, want))

	require.NoError(t, reader.refresh(ctx))
	require.Len(t, received, 1)
	assert.Equal(t, want, received[0])

	// The reader's cache was replaced wholesale
	got, err := readerDoc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// After unsubscribe, further external writes stay silent
	unsubscribe()
	require.NoError(t, NewDocument(writer, "docs", defaultDocs).Save(ctx, defaultDocs()))
	require.NoError(t, reader.refresh(ctx))
	assert.Len(t, received, 1)
}

func TestSubscribe_OwnWriteDoesNotNotify(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	ctx := context.Background()

	doc := NewDocument(s, "docs", defaultDocs)
	notified := 0
	doc.Subscribe(func([]testDoc) { notified++ })

	require.NoError(t, doc.Save(ctx, []testDoc{{Name: "mine", Value: 3}}))
	require.NoError(t, s.refresh(ctx))

	assert.Zero(t, notified, "a store's own writes are not external changes")
}

func TestRefresh_ExternalDeleteDeliversDefault(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	reader := openTestStore(t, dbPath)
	writer := openTestStore(t, dbPath)

	readerDoc := NewDocument(reader, "docs", defaultDocs)
	require.NoError(t, NewDocument(writer, "docs", defaultDocs).Save(ctx, []testDoc{{Name: "x", Value: 1}}))
	require.NoError(t, reader.refresh(ctx))

	var received [][]testDoc
	readerDoc.Subscribe(func(v []testDoc) {
		received = append(received, v)
	})

	// Remove the row out from under the reader
	_, err := writer.db.ExecContext(ctx, `DELETE FROM documents WHERE key = 'docs'`)
	require.NoError(t, err)

	require.NoError(t, reader.refresh(ctx))
	require.Len(t, received, 1)
	assert.Equal(t, defaultDocs(), received[0], "an absent value delivers the default")
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	require.Error(t, err)
}
