package history

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureSchema is the slice of the Chromium History schema the reader
// touches. Column types follow the browser's own DDL.
const fixtureSchema = `
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

type fixtureDB struct {
	t    *testing.T
	db   *sql.DB
	path string
}

// createFixture builds a History file in a temp dir and returns a handle
// for seeding rows. Tests open it afterwards through Open to exercise the
// read-only path.
func createFixture(t *testing.T) *fixtureDB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "History")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(fixtureSchema)
	require.NoError(t, err)

	return &fixtureDB{t: t, db: db, path: path}
}

func (f *fixtureDB) addURL(id int64, url string, title interface{}, visitCount, typedCount int, lastVisit int64, hidden int) {
	f.t.Helper()
	_, err := f.db.Exec(
		`INSERT INTO urls (id, url, title, visit_count, typed_count, last_visit_time, hidden) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, url, title, visitCount, typedCount, lastVisit, hidden)
	require.NoError(f.t, err)
}

func (f *fixtureDB) addVisit(urlID, visitTime, duration, transition int64, referrer interface{}) {
	f.t.Helper()
	_, err := f.db.Exec(
		`INSERT INTO visits (url, visit_time, visit_duration, transition, external_referrer_url) VALUES (?, ?, ?, ?, ?)`,
		urlID, visitTime, duration, transition, referrer)
	require.NoError(f.t, err)
}

func (f *fixtureDB) addSearchTerm(urlID int64, term string) {
	f.t.Helper()
	_, err := f.db.Exec(
		`INSERT INTO keyword_search_terms (keyword_id, url_id, lower_term, term) VALUES (2, ?, ?, ?)`,
		urlID, strings.ToLower(term), term)
	require.NoError(f.t, err)
}

func (f *fixtureDB) open() *Reader {
	f.t.Helper()
	reader, err := Open(f.path)
	require.NoError(f.t, err)
	f.t.Cleanup(func() { reader.Close() })
	return reader
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "no-such-History"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadAll(t *testing.T) {
	f := createFixture(t)
	f.addURL(1, "https://github.com/owner/repo", "repo", 3, 1, 13_300_000_200_000_000, 0)
	f.addURL(2, "https://example.org/article", "An Article", 1, 0, 13_300_000_300_000_000, 0)
	f.addURL(3, "https://hidden.example", "hidden row", 1, 0, 13_300_000_400_000_000, 1)
	f.addURL(4, "", "empty url row", 1, 0, 13_300_000_500_000_000, 0)
	f.addVisit(1, 13_300_000_100_000_000, 0, 805306376, nil)
	f.addVisit(1, 13_300_000_200_000_000, 4_500_000, 805306368, "https://news.ycombinator.com/")
	f.addSearchTerm(1, "Git Rebase")

	snap, err := f.open().ReadAll(context.Background(), Options{})
	require.NoError(t, err)

	// Hidden and empty-url rows are filtered at query time; the rest
	// arrive newest first.
	require.Len(t, snap.URLs, 2)
	assert.Equal(t, int64(2), snap.URLs[0].ID)
	assert.Equal(t, int64(1), snap.URLs[1].ID)
	assert.Equal(t, "repo", snap.URLs[1].Title)
	assert.Equal(t, 3, snap.URLs[1].VisitCount)
	assert.Equal(t, 1, snap.URLs[1].TypedCount)

	require.Len(t, snap.Visits, 2)
	assert.Equal(t, int64(13_300_000_200_000_000), snap.Visits[0].VisitTime)
	assert.Equal(t, int64(4_500_000), snap.Visits[0].Duration)
	assert.Equal(t, "https://news.ycombinator.com/", snap.Visits[0].Referrer)
	assert.Equal(t, int64(13_300_000_100_000_000), snap.Visits[1].VisitTime)

	require.Len(t, snap.SearchTerms, 1)
	assert.Equal(t, int64(1), snap.SearchTerms[0].URLID)
	assert.Equal(t, "Git Rebase", snap.SearchTerms[0].Term)
}

func TestReadAll_Since(t *testing.T) {
	f := createFixture(t)
	f.addURL(1, "https://old.example", "old", 1, 0, 100, 0)
	f.addURL(2, "https://recent.example", "recent", 1, 0, 13_300_000_000_000_000, 0)

	snap, err := f.open().ReadAll(context.Background(), Options{SinceMicros: 13_000_000_000_000_000})
	require.NoError(t, err)

	require.Len(t, snap.URLs, 1)
	assert.Equal(t, int64(2), snap.URLs[0].ID)
}

func TestReadAll_EmptyDatabase(t *testing.T) {
	f := createFixture(t)

	snap, err := f.open().ReadAll(context.Background(), Options{})
	require.NoError(t, err)

	assert.NotNil(t, snap.URLs)
	assert.NotNil(t, snap.Visits)
	assert.NotNil(t, snap.SearchTerms)
	assert.Empty(t, snap.URLs)
	assert.Empty(t, snap.Visits)
	assert.Empty(t, snap.SearchTerms)
}

func TestReadAll_NullColumns(t *testing.T) {
	f := createFixture(t)
	f.addURL(1, "https://example.org", nil, 1, 0, 100, 0)
	f.addVisit(1, 100, 0, 0, nil)

	snap, err := f.open().ReadAll(context.Background(), Options{})
	require.NoError(t, err)

	require.Len(t, snap.URLs, 1)
	assert.Equal(t, "", snap.URLs[0].Title)
	require.Len(t, snap.Visits, 1)
	assert.Equal(t, "", snap.Visits[0].Referrer)
}

func TestReadURL(t *testing.T) {
	f := createFixture(t)
	f.addURL(1, "https://example.org", "target", 2, 0, 200, 0)
	f.addURL(2, "https://other.example", "other", 1, 0, 300, 0)
	f.addVisit(1, 100, 0, 0, nil)
	f.addVisit(1, 200, 0, 0, nil)
	f.addVisit(2, 300, 0, 0, nil)
	f.addSearchTerm(2, "unrelated")

	snap, err := f.open().ReadURL(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, snap.URLs, 1)
	assert.Equal(t, "target", snap.URLs[0].Title)
	require.Len(t, snap.Visits, 2)
	assert.Equal(t, int64(200), snap.Visits[0].VisitTime)
	assert.Empty(t, snap.SearchTerms)
}

func TestReadURL_NotFound(t *testing.T) {
	f := createFixture(t)

	_, err := f.open().ReadURL(context.Background(), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "url 42 not found")
}

func TestReadURL_HiddenRowNotVisible(t *testing.T) {
	f := createFixture(t)
	f.addURL(1, "https://hidden.example", "hidden", 1, 0, 100, 1)

	_, err := f.open().ReadURL(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
