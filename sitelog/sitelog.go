// Package sitelog keeps a privacy-conscious, process-lifetime record of
// page visits, profile load outcomes and contact submissions for the
// admin dashboard. IP addresses are only ever stored hashed.
package sitelog

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultDSN is an in-memory database that lives as long as the process
const DefaultDSN = "file:folio?mode=memory&cache=shared"

// DefaultRetention is how long visits are kept before Cleanup drops them
const DefaultRetention = 30 * 24 * time.Hour

// MemoryDSN names a private in-memory database
func MemoryDSN(name string) string {
	return "file:" + name + "?mode=memory&cache=shared"
}

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	ts INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS visitors_ts ON visitors(ts);
CREATE TABLE IF NOT EXISTS load_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ok INTEGER NOT NULL,
	detail TEXT,
	ts INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS contact_events (
	id TEXT PRIMARY KEY,
	outcome TEXT NOT NULL,
	ts INTEGER NOT NULL
);`

// Visit is one tracked page view
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// PathCount is a page and how often it was viewed
type PathCount struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

// Stats feed the admin dashboard
type Stats struct {
	TotalVisitors    int64       `json:"total_visitors"`
	UniqueVisitors   int64       `json:"unique_visitors"`
	VisitorsToday    int64       `json:"visitors_today"`
	VisitorsThisWeek int64       `json:"visitors_this_week"`
	LoadsOK          int64       `json:"loads_ok"`
	LoadsFailed      int64       `json:"loads_failed"`
	LastLoadError    string      `json:"last_load_error,omitempty"`
	ContactsSent     int64       `json:"contacts_sent"`
	ContactsFailed   int64       `json:"contacts_failed"`
	TopPaths         []PathCount `json:"top_paths"`
	RecentVisitors   []Visit     `json:"recent_visitors"`
}

// Store wraps the sqlite handle
type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

type Option func(*Store)

// WithNow replaces the wall clock
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithSalt fixes the IP hashing salt; by default a random one is drawn
func WithSalt(salt string) Option {
	return func(s *Store) { s.salt = salt }
}

// Open creates the tables on dsn, DefaultDSN when empty
func Open(dsn string, opts ...Option) (*Store, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sitelog: %w", err)
	}
	// one connection keeps the in-memory database alive and serializes writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sitelog tables: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.salt == "" {
		s.salt = randomHex(16)
	}
	return s, nil
}

func randomHex(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// HashIP is consistent per IP for the lifetime of the store
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func (s *Store) stamp() int64 {
	return s.now().UnixMilli()
}

// RecordVisit stores a page view under the hashed ip
func (s *Store) RecordVisit(ctx context.Context, ip, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, ts) VALUES (?, ?, ?, ?)`,
		s.HashIP(ip), userAgent, path, s.stamp())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// RecordLoad stores the outcome of a profile load
func (s *Store) RecordLoad(ctx context.Context, loadErr error) error {
	ok, detail := 1, ""
	if loadErr != nil {
		ok, detail = 0, loadErr.Error()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO load_events (ok, detail, ts) VALUES (?, ?, ?)`, ok, detail, s.stamp())
	if err != nil {
		return fmt.Errorf("record load: %w", err)
	}
	return nil
}

// RecordContact stores a submission outcome; a repeated id overwrites
func (s *Store) RecordContact(ctx context.Context, id, outcome string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO contact_events (id, outcome, ts) VALUES (?, ?, ?)`,
		id, outcome, s.stamp())
	if err != nil {
		return fmt.Errorf("record contact: %w", err)
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Stats aggregates everything the dashboard shows
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now()
	st := &Stats{}

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&st.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&st.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&st.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE ts >= ?`, []any{startOfDay(now).UnixMilli()}},
		{&st.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE ts >= ?`, []any{now.Add(-7 * 24 * time.Hour).UnixMilli()}},
		{&st.LoadsOK, `SELECT COUNT(*) FROM load_events WHERE ok = 1`, nil},
		{&st.LoadsFailed, `SELECT COUNT(*) FROM load_events WHERE ok = 0`, nil},
		{&st.ContactsSent, `SELECT COUNT(*) FROM contact_events WHERE outcome = 'sent'`, nil},
		{&st.ContactsFailed, `SELECT COUNT(*) FROM contact_events WHERE outcome = 'failed'`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(detail, '') FROM load_events WHERE ok = 0 ORDER BY ts DESC, id DESC LIMIT 1`).
		Scan(&st.LastLoadError)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT path, COUNT(*) AS n FROM visitors GROUP BY path ORDER BY n DESC, path LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Count); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
		st.TopPaths = append(st.TopPaths, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	rows.Close()

	if st.RecentVisitors, err = s.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	return st, nil
}

// RecentVisitors returns the newest visits first
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), ts
		FROM visitors
		ORDER BY ts DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		var (
			v  Visit
			ts int64
		)
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("recent visitors: %w", err)
		}
		v.Timestamp = time.UnixMilli(ts)
		out = append(out, v)
	}
	return out, rows.Err()
}

// Cleanup drops visits older than retention and reports how many went
func (s *Store) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}
	cutoff := s.now().Add(-retention).UnixMilli()
	res, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE ts < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) Close() error {
	return s.db.Close()
}
