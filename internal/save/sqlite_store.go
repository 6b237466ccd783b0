package save

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps every slot as a row in a SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS saves (
		slot INTEGER PRIMARY KEY,
		data BLOB NOT NULL,
		saved_at INTEGER NOT NULL
	)`)
	return err
}

func (s *SQLiteStore) Read(slot int) ([]byte, error) {
	var data []byte
	err := s.db.Get(&data, `SELECT data FROM saves WHERE slot = ?`, slot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return data, err
}

func (s *SQLiteStore) Write(slot int, data []byte) error {
	_, err := s.db.Exec(`
	INSERT INTO saves (slot, data, saved_at) VALUES (?, ?, ?)
	ON CONFLICT(slot) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		slot, data, time.Now().Unix())
	return err
}

func (s *SQLiteStore) Exists(slot int) (bool, error) {
	var n int
	if err := s.db.Get(&n, `SELECT COUNT(*) FROM saves WHERE slot = ?`, slot); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error { return s.db.Close() }
