package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/preston-bernstein/homework-bot/internal/domain/homework"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS seen_status (
  id TEXT PRIMARY KEY,
  status TEXT NOT NULL,
  updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS cursor (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  from_date INTEGER NOT NULL
);`

// SQLiteStore persists state in a SQLite file so a restart does not re-announce
// statuses that were already sent.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening state database")
	}
	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating state schema")
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (State, error) {
	state := State{Seen: homework.SeenState{}}

	rows, err := s.db.QueryContext(ctx, `SELECT id, status FROM seen_status`)
	if err != nil {
		return State{}, errors.Wrap(err, "querying seen statuses")
	}
	defer rows.Close()
	for rows.Next() {
		var id, status string
		if err := rows.Scan(&id, &status); err != nil {
			return State{}, errors.Wrap(err, "scanning seen status")
		}
		state.Seen[id] = homework.Status(status)
	}
	if err := rows.Err(); err != nil {
		return State{}, errors.Wrap(err, "iterating seen statuses")
	}

	var fromDate int64
	err = s.db.QueryRowContext(ctx, `SELECT from_date FROM cursor WHERE id = 1`).Scan(&fromDate)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return State{}, errors.Wrap(err, "reading cursor")
	case fromDate > 0:
		state.Cursor = time.Unix(fromDate, 0).UTC()
	}
	return state, nil
}

// Save writes the full state in one transaction. Ids missing from state are
// removed so the table mirrors the in-memory view.
func (s *SQLiteStore) Save(ctx context.Context, state State) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning state transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM seen_status`); err != nil {
		return errors.Wrap(err, "clearing seen statuses")
	}
	now := s.now().Unix()
	for id, status := range state.Seen {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO seen_status (id, status, updated_at) VALUES (?, ?, ?)`,
			id, string(status), now,
		); err != nil {
			return errors.Wrapf(err, "saving status for %s", id)
		}
	}

	var fromDate int64
	if !state.Cursor.IsZero() {
		fromDate = state.Cursor.Unix()
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO cursor (id, from_date) VALUES (1, ?)`, fromDate,
	); err != nil {
		return errors.Wrap(err, "saving cursor")
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "committing state")
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
