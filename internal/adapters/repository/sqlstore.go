package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver
	_ "modernc.org/sqlite"             // sqlite driver

	"github.com/drillmeet/scoresheet/internal/domain/field"
	"github.com/drillmeet/scoresheet/internal/domain/model"
)

// Supported SQL driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var name string
	switch driver {
	case DriverSQLite:
		name = "sqlite"
	case DriverPostgres:
		name = "pgx"
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

// SQLStore persists templates and events as JSON documents in SQL rows,
// sharing one schema across sqlite and postgres.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// NewSQLStore wraps an open connection. Call EnsureSchema before use.
func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

// EnsureSchema creates the tables when missing.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS templates (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			event_type TEXT NOT NULL DEFAULT '',
			criteria_json TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			competition_id TEXT NOT NULL DEFAULT '',
			school_id TEXT NOT NULL DEFAULT '',
			event_type TEXT NOT NULL,
			cadet_ids_json TEXT NOT NULL,
			team_name TEXT NOT NULL DEFAULT '',
			sheet_json TEXT NOT NULL,
			total_points DOUBLE PRECISION NOT NULL,
			created_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS events_lookup
			ON events (competition_id, school_id, event_type)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// PutTemplate inserts or replaces a template by id.
func (s *SQLStore) PutTemplate(ctx context.Context, t model.Template) error {
	criteria, err := field.Marshal(t.Criteria)
	if err != nil {
		return err
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO templates (id,name,event_type,criteria_json,created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, event_type=EXCLUDED.event_type, criteria_json=EXCLUDED.criteria_json`,
		t.ID, t.Name, t.EventType, string(criteria), t.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("put template: %w", err)
	}
	return nil
}

// GetTemplate looks up a template by id.
func (s *SQLStore) GetTemplate(ctx context.Context, id string) (model.Template, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,name,event_type,criteria_json,created_at FROM templates WHERE id=$1`, id)
	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Template{}, ErrTemplateNotFound
	}
	return t, err
}

// ListTemplates returns all templates, creation time ascending.
func (s *SQLStore) ListTemplates(ctx context.Context) ([]model.Template, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,name,event_type,criteria_json,created_at FROM templates ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()
	var out []model.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// DeleteTemplate removes a template; unknown ids are a no-op.
func (s *SQLStore) DeleteTemplate(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// CreateEvent persists a new scored instance.
func (s *SQLStore) CreateEvent(ctx context.Context, e model.Event) (model.Event, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	cadets, err := json.Marshal(e.CadetIDs)
	if err != nil {
		return model.Event{}, fmt.Errorf("marshal cadet ids: %w", err)
	}
	sheet, err := json.Marshal(e.Sheet)
	if err != nil {
		return model.Event{}, fmt.Errorf("marshal score sheet: %w", err)
	}
	var exists int
	err = s.db.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id=$1`, e.ID).Scan(&exists)
	switch {
	case err == nil:
		return model.Event{}, ErrDuplicateEvent
	case !errors.Is(err, sql.ErrNoRows):
		return model.Event{}, fmt.Errorf("create event: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO events
		(id,competition_id,school_id,event_type,cadet_ids_json,team_name,sheet_json,total_points,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		e.ID, e.Competition, e.School, e.EventType, string(cadets), e.TeamName,
		string(sheet), e.TotalPoints, e.CreatedAt.Unix())
	if err != nil {
		return model.Event{}, fmt.Errorf("create event: %w", err)
	}
	return e, nil
}

// GetEvent looks up an event by id.
func (s *SQLStore) GetEvent(ctx context.Context, id string) (model.Event, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,competition_id,school_id,event_type,
		cadet_ids_json,team_name,sheet_json,total_points,created_at FROM events WHERE id=$1`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, ErrEventNotFound
	}
	return e, err
}

// UpdateEvent overwrites an existing event in full; created_at is kept.
func (s *SQLStore) UpdateEvent(ctx context.Context, e model.Event) (model.Event, error) {
	cadets, err := json.Marshal(e.CadetIDs)
	if err != nil {
		return model.Event{}, fmt.Errorf("marshal cadet ids: %w", err)
	}
	sheet, err := json.Marshal(e.Sheet)
	if err != nil {
		return model.Event{}, fmt.Errorf("marshal score sheet: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE events SET competition_id=$1, school_id=$2,
		event_type=$3, cadet_ids_json=$4, team_name=$5, sheet_json=$6, total_points=$7 WHERE id=$8`,
		e.Competition, e.School, e.EventType, string(cadets), e.TeamName,
		string(sheet), e.TotalPoints, e.ID)
	if err != nil {
		return model.Event{}, fmt.Errorf("update event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.Event{}, ErrEventNotFound
	}
	return s.GetEvent(ctx, e.ID)
}

// ListEvents returns events matching the filter, creation time ascending.
func (s *SQLStore) ListEvents(ctx context.Context, f model.Filter) ([]model.Event, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,competition_id,school_id,event_type,
		cadet_ids_json,team_name,sheet_json,total_points,created_at FROM events
		WHERE ($1 = '' OR competition_id = $1)
		  AND ($2 = '' OR school_id = $2)
		  AND ($3 = '' OR event_type = $3)
		ORDER BY created_at, id`,
		f.Competition, f.School, f.EventType)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	var out []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteEvent removes an event; unknown ids are a no-op.
func (s *SQLStore) DeleteEvent(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// CountTemplates returns the number of stored templates.
func (s *SQLStore) CountTemplates(ctx context.Context) int {
	var n int
	_ = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM templates`).Scan(&n)
	return n
}

// CountEvents returns the number of stored events.
func (s *SQLStore) CountEvents(ctx context.Context) int {
	var n int
	_ = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	return n
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row scanner) (model.Template, error) {
	var (
		t        model.Template
		criteria string
		created  int64
	)
	if err := row.Scan(&t.ID, &t.Name, &t.EventType, &criteria, &created); err != nil {
		return model.Template{}, err
	}
	fields, err := field.Unmarshal([]byte(criteria))
	if err != nil {
		return model.Template{}, err
	}
	t.Criteria = fields
	t.CreatedAt = time.Unix(created, 0).UTC()
	return t, nil
}

func scanEvent(row scanner) (model.Event, error) {
	var (
		e       model.Event
		cadets  string
		sheet   string
		created int64
	)
	if err := row.Scan(&e.ID, &e.Competition, &e.School, &e.EventType,
		&cadets, &e.TeamName, &sheet, &e.TotalPoints, &created); err != nil {
		return model.Event{}, err
	}
	if err := json.Unmarshal([]byte(cadets), &e.CadetIDs); err != nil {
		return model.Event{}, fmt.Errorf("unmarshal cadet ids: %w", err)
	}
	if err := json.Unmarshal([]byte(sheet), &e.Sheet); err != nil {
		return model.Event{}, fmt.Errorf("unmarshal score sheet: %w", err)
	}
	e.CreatedAt = time.Unix(created, 0).UTC()
	return e, nil
}
