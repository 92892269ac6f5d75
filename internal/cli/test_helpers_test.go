package cli

import (
	"bytes"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/recollect/internal/history"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// historyFixtureSchema is the minimal Chromium History layout the CLI
// commands read.
const historyFixtureSchema = `
CREATE TABLE urls (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	url LONGVARCHAR,
	title LONGVARCHAR,
	visit_count INTEGER DEFAULT 0 NOT NULL,
	typed_count INTEGER DEFAULT 0 NOT NULL,
	last_visit_time INTEGER NOT NULL,
	hidden INTEGER DEFAULT 0 NOT NULL
);

CREATE TABLE visits (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	url INTEGER NOT NULL,
	visit_time INTEGER NOT NULL,
	visit_duration INTEGER DEFAULT 0 NOT NULL,
	transition INTEGER DEFAULT 0 NOT NULL,
	external_referrer_url LONGVARCHAR
);

CREATE TABLE keyword_search_terms (
	keyword_id INTEGER NOT NULL,
	url_id INTEGER NOT NULL,
	lower_term LONGVARCHAR NOT NULL,
	term LONGVARCHAR NOT NULL
);
`

// createHistoryDB writes a History file into a temp dir and returns its
// path. seed receives a read-write handle for inserting fixture rows.
func createHistoryDB(t *testing.T, seed func(db *sql.DB)) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "History")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(historyFixtureSchema)
	require.NoError(t, err)

	if seed != nil {
		seed(db)
	}
	return path
}

func openFixtureReader(t *testing.T, path string) *history.Reader {
	t.Helper()
	reader, err := history.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { reader.Close() })
	return reader
}

func insertURL(t *testing.T, db *sql.DB, id int64, url, title string, visitCount, typedCount int, lastVisit int64) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO urls (id, url, title, visit_count, typed_count, last_visit_time, hidden) VALUES (?, ?, ?, ?, ?, ?, 0)`,
		id, url, title, visitCount, typedCount, lastVisit)
	require.NoError(t, err)
}

func insertVisit(t *testing.T, db *sql.DB, urlID, visitTime, duration int64, referrer string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO visits (url, visit_time, visit_duration, transition, external_referrer_url) VALUES (?, ?, ?, 805306368, ?)`,
		urlID, visitTime, duration, referrer)
	require.NoError(t, err)
}

func insertSearchTerm(t *testing.T, db *sql.DB, urlID int64, term string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO keyword_search_terms (keyword_id, url_id, lower_term, term) VALUES (2, ?, lower(?), ?)`,
		urlID, term, term)
	require.NoError(t, err)
}
