package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/verte-zerg/trainlog/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// SQLiteStore keeps the collection in a SQLite database. Rows are ordered by
// position so the collection keeps its insertion order.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database at path and applies migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return nil, unavailable("create directory for", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, unavailable("open", path, err)
	}
	st := &SQLiteStore{db: db, path: path}
	if err := st.migrate(); err != nil {
		return nil, unavailable("migrate", path, multierr.Append(err, db.Close()))
	}
	return st, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS records (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL,
			exercise TEXT NOT NULL,
			weight TEXT NOT NULL,
			repetitions TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_records_exercise ON records(exercise);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Load returns every record in insertion order.
func (s *SQLiteStore) Load(ctx context.Context) (_ model.Collection, err error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, exercise, weight, repetitions FROM records ORDER BY position ASC`)
	if err != nil {
		return nil, unavailable("query", s.path, err)
	}
	defer func() {
		err = multierr.Append(err, rows.Close())
	}()

	records := model.Collection{}
	for rows.Next() {
		var r model.Record
		if err := rows.Scan(&r.ID, &r.Date, &r.Exercise, &r.Weight, &r.Repetitions); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logrus.WithField("records", len(records)).Debug("sqlite store loaded")
	return records, nil
}

// Save replaces all rows with records inside a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, records model.Collection) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin", s.path, err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, tx.Rollback())
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (position, id, date, exercise, weight, repetitions) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, stmt.Close())
	}()

	for i, r := range records {
		if _, err = stmt.ExecContext(ctx, i, r.ID, r.Date, r.Exercise, r.Weight, r.Repetitions); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	logrus.WithField("records", len(records)).Debug("sqlite store saved")
	return nil
}
