package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
)

type SQLiteDB struct {
	db *sql.DB
}

var _ ScenarioRepository = (*SQLiteDB)(nil)

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// :memory: databases are per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scenarios (
			id TEXT PRIMARY KEY,
			event_source_code TEXT NOT NULL,
			description TEXT NOT NULL,
			locstring TEXT NOT NULL,
			magnitude REAL NOT NULL,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			depth REAL NOT NULL,
			rake REAL,
			mechanism TEXT NOT NULL,
			directivity INTEGER NOT NULL,
			reference TEXT NOT NULL DEFAULT '',
			dialect TEXT NOT NULL,
			run_id TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_scenarios_magnitude ON scenarios(magnitude);
		CREATE INDEX IF NOT EXISTS idx_scenarios_run_id ON scenarios(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

const upsertScenario = `
	INSERT INTO scenarios (id, event_source_code, description, locstring, magnitude,
		lat, lon, depth, rake, mechanism, directivity, reference, dialect, run_id, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		event_source_code = excluded.event_source_code,
		description = excluded.description,
		locstring = excluded.locstring,
		magnitude = excluded.magnitude,
		lat = excluded.lat,
		lon = excluded.lon,
		depth = excluded.depth,
		rake = excluded.rake,
		mechanism = excluded.mechanism,
		directivity = excluded.directivity,
		reference = excluded.reference,
		dialect = excluded.dialect,
		run_id = excluded.run_id,
		created_at = excluded.created_at
`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, e execer, r *Record) error {
	var rake sql.NullFloat64
	if r.Rake != nil {
		rake = sql.NullFloat64{Float64: *r.Rake, Valid: true}
	}
	_, err := e.ExecContext(ctx, upsertScenario,
		r.ID, r.EventSourceCode, r.Description, r.LocString, r.Magnitude,
		r.Lat, r.Lon, r.Depth, rake, r.Mechanism, r.Directivity, r.Reference,
		r.Dialect, r.RunID, r.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert scenario %s: %w", r.ID, err)
	}
	return nil
}

// Add inserts r, replacing any row with the same id.
func (s *SQLiteDB) Add(ctx context.Context, r *Record) error {
	return insert(ctx, s.db, r)
}

const selectColumns = `SELECT id, event_source_code, description, locstring, magnitude,
	lat, lon, depth, rake, mechanism, directivity, reference, dialect, run_id, created_at
	FROM scenarios`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var (
		r       Record
		rake    sql.NullFloat64
		created string
	)
	err := row.Scan(&r.ID, &r.EventSourceCode, &r.Description, &r.LocString, &r.Magnitude,
		&r.Lat, &r.Lon, &r.Depth, &rake, &r.Mechanism, &r.Directivity, &r.Reference,
		&r.Dialect, &r.RunID, &created)
	if err != nil {
		return nil, err
	}
	if rake.Valid {
		v := rake.Float64
		r.Rake = &v
	}
	r.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	return &r, nil
}

func (s *SQLiteDB) GetByID(ctx context.Context, id string) (*Record, error) {
	r, err := scanRecord(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get scenario %s: %w", id, err)
	}
	return r, nil
}

func (s *SQLiteDB) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM scenarios WHERE id = ?", id).Scan(&n); err != nil {
		return false, fmt.Errorf("check scenario %s: %w", id, err)
	}
	return n > 0, nil
}

// List returns scenarios ordered by descending magnitude, then id.
func (s *SQLiteDB) List(ctx context.Context, opts Filter) ([]Record, error) {
	var (
		where []string
		args  []any
	)
	if opts.MinMagnitude != nil {
		where = append(where, "magnitude >= ?")
		args = append(args, *opts.MinMagnitude)
	}
	if opts.Directivity != nil {
		where = append(where, "directivity = ?")
		args = append(args, *opts.Directivity)
	}

	query := selectColumns
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY magnitude DESC, id"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list scenarios: %w", err)
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// Loader stores pipeline batches in one transaction per batch. Every
// scenario loaded through the same Loader shares its run id.
type Loader struct {
	db    *SQLiteDB
	runID string
}

// NewLoader creates a Loader with a fresh run id.
func NewLoader(db *SQLiteDB) *Loader {
	return &Loader{db: db, runID: uuid.NewString()}
}

// RunID returns the id stamped on every row written by l.
func (l *Loader) RunID() string { return l.runID }

// LoadBatch implements pipeline.BatchLoader.
func (l *Loader) LoadBatch(ctx context.Context, scenarios []domain.Scenario) error {
	tx, err := l.db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin scenario batch: %w", err)
	}
	for _, sc := range scenarios {
		if err := insert(ctx, tx, NewRecord(sc, l.runID)); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scenario batch: %w", err)
	}
	return nil
}
