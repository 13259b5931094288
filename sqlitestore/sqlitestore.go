package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// NewDB opens a SQLite database at dbPath using modernc.org/sqlite.
func NewDB(dbPath string) (*sql.DB, error) {
	// Note: the busy_timeout pragma must be first because
	// the connection needs to be set to block on busy before WAL mode
	// is set in case it hasn't been already set by another connection.
	pragmas := "?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=temp_store(MEMORY)"

	db, err := sql.Open("sqlite", dbPath+pragmas)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// SQLiteStore is a key-value store kept in a single SQLite table.
type SQLiteStore struct {
	db        *sql.DB
	dbPath    string
	tableName string
}

func NewSQLiteStore(db *sql.DB, dbPath, tableName string) *SQLiteStore {
	return &SQLiteStore{db: db, dbPath: dbPath, tableName: tableName}
}

// Init creates the key-value table if it does not exist.
func (s *SQLiteStore) Init() error {
	query := `
		CREATE TABLE IF NOT EXISTS ` + s.tableName + ` (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	_, err := s.db.Exec(query)
	return err
}

// DBPath returns the path the database was opened with
func (s *SQLiteStore) DBPath() string {
	return s.dbPath
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key
func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	query := `SELECT value FROM ` + s.tableName + ` WHERE key = ?`
	err := s.db.QueryRow(query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("error getting %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key
func (s *SQLiteStore) Set(key, value string) error {
	return s.SetMany(map[string]string{key: value})
}

// SetMany stores all values in a single transaction
func (s *SQLiteStore) SetMany(values map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	query := `
		INSERT INTO ` + s.tableName + ` (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated = CURRENT_TIMESTAMP
	`
	for key, value := range values {
		if _, err := tx.Exec(query, key, value); err != nil {
			return fmt.Errorf("error setting %s: %w", key, err)
		}
	}

	return tx.Commit()
}
