package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound reports that the history database path does not exist.
var ErrNotFound = errors.New("history database not found")

// Reader provides read-only access to a Chromium-format History database.
// It never writes: the connection is opened with mode=ro, so even a bug
// that attempted a write would fail at the driver.
type Reader struct {
	db *sql.DB
}

// Open verifies path exists and opens it read-only.
func Open(path string) (*Reader, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat history database: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	return &Reader{db: db}, nil
}

// NewReader wraps an existing handle whose lifecycle the caller manages.
func NewReader(db *sql.DB) *Reader {
	return &Reader{db: db}
}

// Close releases the underlying connection.
func (r *Reader) Close() error {
	return r.db.Close()
}

// Options narrows a read pass. SinceMicros, when positive, keeps only URL
// rows whose last visit is at or after that Chromium timestamp; visits and
// search terms are not filtered, since assembly drops any that no longer
// have an owning row.
type Options struct {
	SinceMicros int64
}

// ReadAll fetches the three record streams of one snapshot. The streams
// are independent, so they are read concurrently; the call returns only
// once all three have completed, which is the barrier assembly relies on.
func (r *Reader) ReadAll(ctx context.Context, opts Options) (*Snapshot, error) {
	snap := &Snapshot{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.URLs, err = r.readURLs(ctx, opts)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Visits, err = r.readVisits(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.SearchTerms, err = r.readSearchTerms(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snap, nil
}

// ReadURL fetches the snapshot of a single urls row: the row itself plus
// its visits and search terms.
func (r *Reader) ReadURL(ctx context.Context, id int64) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, url, title, visit_count, typed_count, last_visit_time
		FROM urls
		WHERE id = ? AND hidden = 0 AND url != ''`, id)

	var rec URLRecord
	var title sql.NullString
	err := row.Scan(&rec.ID, &rec.URL, &title, &rec.VisitCount, &rec.TypedCount, &rec.LastVisitTime)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("url %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("scan url row: %w", err)
	}
	rec.Title = title.String

	visits, err := r.queryVisits(ctx, `
		SELECT url, visit_time, visit_duration, transition, external_referrer_url
		FROM visits
		WHERE url = ?
		ORDER BY visit_time DESC`, id)
	if err != nil {
		return nil, err
	}

	terms, err := r.querySearchTerms(ctx, `
		SELECT url_id, term FROM keyword_search_terms WHERE url_id = ?`, id)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		URLs:        []URLRecord{rec},
		Visits:      visits,
		SearchTerms: terms,
	}, nil
}

func (r *Reader) readURLs(ctx context.Context, opts Options) ([]URLRecord, error) {
	query := `
		SELECT id, url, title, visit_count, typed_count, last_visit_time
		FROM urls
		WHERE hidden = 0 AND url != ''`
	var args []interface{}
	if opts.SinceMicros > 0 {
		query += ` AND last_visit_time >= ?`
		args = append(args, opts.SinceMicros)
	}
	query += ` ORDER BY last_visit_time DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query urls: %w", err)
	}
	defer rows.Close()

	// Empty slice rather than nil when no rows
	records := []URLRecord{}
	for rows.Next() {
		var rec URLRecord
		var title sql.NullString
		if err := rows.Scan(&rec.ID, &rec.URL, &title, &rec.VisitCount, &rec.TypedCount, &rec.LastVisitTime); err != nil {
			return nil, fmt.Errorf("scan url row: %w", err)
		}
		rec.Title = title.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read urls: %w", err)
	}
	return records, nil
}

func (r *Reader) readVisits(ctx context.Context) ([]VisitRecord, error) {
	return r.queryVisits(ctx, `
		SELECT url, visit_time, visit_duration, transition, external_referrer_url
		FROM visits
		ORDER BY visit_time DESC`)
}

func (r *Reader) queryVisits(ctx context.Context, query string, args ...interface{}) ([]VisitRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	records := []VisitRecord{}
	for rows.Next() {
		var rec VisitRecord
		var referrer sql.NullString
		if err := rows.Scan(&rec.URLID, &rec.VisitTime, &rec.Duration, &rec.Transition, &referrer); err != nil {
			return nil, fmt.Errorf("scan visit row: %w", err)
		}
		rec.Referrer = referrer.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read visits: %w", err)
	}
	return records, nil
}

func (r *Reader) readSearchTerms(ctx context.Context) ([]SearchTermRecord, error) {
	return r.querySearchTerms(ctx, `SELECT url_id, term FROM keyword_search_terms`)
}

func (r *Reader) querySearchTerms(ctx context.Context, query string, args ...interface{}) ([]SearchTermRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query search terms: %w", err)
	}
	defer rows.Close()

	records := []SearchTermRecord{}
	for rows.Next() {
		var rec SearchTermRecord
		if err := rows.Scan(&rec.URLID, &rec.Term); err != nil {
			return nil, fmt.Errorf("scan search term row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read search terms: %w", err)
	}
	return records, nil
}
