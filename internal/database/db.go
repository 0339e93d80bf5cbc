package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jgoulah/energycalc/internal/energy"
	"github.com/jgoulah/energycalc/pkg/models"
)

// DB wraps the database connection. It holds the current session's week only;
// starting a new session drops everything recorded before it.
type DB struct {
	conn *sql.DB
}

// Session identifies one user session
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time
}

// StoredDay is a persisted day input plus when it was last written
type StoredDay struct {
	Day       models.Weekday
	Input     models.DailyUsageInput
	UpdatedAt time.Time
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// sqlite allows a single writer
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the necessary tables
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS session (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS day_usage (
		session_id TEXT NOT NULL REFERENCES session(id) ON DELETE CASCADE,
		day TEXT NOT NULL,
		bhk INTEGER NOT NULL,
		ac_count INTEGER NOT NULL,
		fridge INTEGER NOT NULL DEFAULT 0,
		washing_machine INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL,
		UNIQUE(session_id, day)
	);
	CREATE INDEX IF NOT EXISTS idx_day_usage_session ON day_usage(session_id);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// StartSession replaces any existing session with a fresh, empty one
func (db *DB) StartSession(ctx context.Context) (*Session, error) {
	s := &Session{ID: uuid.New(), StartedAt: time.Now().UTC().Truncate(time.Second)}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM day_usage`); err != nil {
		return nil, fmt.Errorf("clearing previous days: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return nil, fmt.Errorf("clearing previous session: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO session (id, started_at) VALUES (?, ?)`,
		s.ID.String(), s.StartedAt.Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing session: %w", err)
	}
	return s, nil
}

// CurrentSession returns the active session, or nil if none was started
func (db *DB) CurrentSession(ctx context.Context) (*Session, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT id, started_at FROM session ORDER BY started_at DESC LIMIT 1`)

	var idStr, startedStr string
	err := row.Scan(&idStr, &startedStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parsing session id: %w", err)
	}
	startedAt, err := time.Parse(time.RFC3339, startedStr)
	if err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	return &Session{ID: id, StartedAt: startedAt}, nil
}

// EnsureSession returns the active session, starting one if needed
func (db *DB) EnsureSession(ctx context.Context) (*Session, error) {
	s, err := db.CurrentSession(ctx)
	if err != nil || s != nil {
		return s, err
	}
	return db.StartSession(ctx)
}

// SaveDays validates and upserts a batch of days in one transaction.
// Nothing is written if any day or input is rejected.
func (db *DB) SaveDays(ctx context.Context, sessionID uuid.UUID, days map[models.Weekday]models.DailyUsageInput) error {
	for day, in := range days {
		if !day.Valid() {
			return fmt.Errorf("%w: day %q", energy.ErrInvalidInput, string(day))
		}
		if _, err := energy.Compute(in); err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO day_usage (session_id, day, bhk, ac_count, fridge, washing_machine, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(session_id, day) DO UPDATE SET
		bhk = excluded.bhk,
		ac_count = excluded.ac_count,
		fridge = excluded.fridge,
		washing_machine = excluded.washing_machine,
		updated_at = excluded.updated_at
	`
	updatedAt := time.Now().UTC().Format(time.RFC3339)
	for day, in := range days {
		_, err := tx.ExecContext(ctx, query, sessionID.String(), string(day),
			in.RoomCategory, in.ACCount, in.FridgeUsed, in.WashingMachineUsed, updatedAt)
		if err != nil {
			return fmt.Errorf("saving %s: %w", day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing days: %w", err)
	}
	return nil
}

// SaveDay upserts a single day; re-entering a day replaces it
func (db *DB) SaveDay(ctx context.Context, sessionID uuid.UUID, day models.Weekday, in models.DailyUsageInput) error {
	return db.SaveDays(ctx, sessionID, map[models.Weekday]models.DailyUsageInput{day: in})
}

// ListDays returns the session's stored days in canonical weekday order
func (db *DB) ListDays(ctx context.Context, sessionID uuid.UUID) ([]StoredDay, error) {
	query := `
	SELECT day, bhk, ac_count, fridge, washing_machine, updated_at
	FROM day_usage
	WHERE session_id = ?
	`

	rows, err := db.conn.QueryContext(ctx, query, sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("querying days: %w", err)
	}
	defer rows.Close()

	byDay := make(map[models.Weekday]StoredDay)
	for rows.Next() {
		var (
			sd         StoredDay
			dayStr     string
			updatedStr string
		)
		if err := rows.Scan(&dayStr, &sd.Input.RoomCategory, &sd.Input.ACCount,
			&sd.Input.FridgeUsed, &sd.Input.WashingMachineUsed, &updatedStr); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		sd.Day = models.Weekday(dayStr)
		if !sd.Day.Valid() {
			return nil, fmt.Errorf("stored row has unknown day %q", dayStr)
		}
		sd.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		byDay[sd.Day] = sd
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	results := make([]StoredDay, 0, len(byDay))
	for _, day := range models.Weekdays {
		if sd, ok := byDay[day]; ok {
			results = append(results, sd)
		}
	}
	return results, nil
}

// LoadWeek rebuilds the session's week by recomputing every stored input
func (db *DB) LoadWeek(ctx context.Context, sessionID uuid.UUID) (*energy.Week, error) {
	days, err := db.ListDays(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	week := energy.NewWeek()
	for _, sd := range days {
		result, err := energy.Compute(sd.Input)
		if err != nil {
			return nil, fmt.Errorf("recomputing %s: %w", sd.Day, err)
		}
		if err := week.SetDay(sd.Day, result); err != nil {
			return nil, err
		}
	}
	return week, nil
}

// ClearDays removes every day from the session, leaving the session itself in place
func (db *DB) ClearDays(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM day_usage WHERE session_id = ?`, sessionID.String())
	if err != nil {
		return 0, fmt.Errorf("clearing days: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting cleared days: %w", err)
	}
	return n, nil
}
