package internal

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS expenses (
	position    INTEGER PRIMARY KEY,
	id          INTEGER NOT NULL,
	date        TEXT    NOT NULL,
	description TEXT    NOT NULL,
	amount      REAL    NOT NULL CHECK (amount > 0)
)`

// SQLiteBackend stores the collection in a single SQLite database file.
// Save rewrites every row, the same as the JSON file backend.
type SQLiteBackend struct {
	path string
}

func NewSQLiteBackend(path string) *SQLiteBackend {
	return &SQLiteBackend{path: path}
}

func (b *SQLiteBackend) Location() string {
	return b.path
}

func (b *SQLiteBackend) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", b.path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func hasExpensesTable(db *sql.DB) (bool, error) {
	var n int
	err := db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'expenses'`).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("reading schema: %w", err)
	}
	return n > 0, nil
}

func (b *SQLiteBackend) Load() ([]Expense, error) {
	// sql.Open would create the file, so check for it first
	if _, err := os.Stat(b.path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	db, err := b.open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptStore, b.path, err)
	}
	defer db.Close()

	// Load never writes, so a database without the table is an empty store
	ok, err := hasExpensesTable(db)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptStore, b.path, err)
	}
	if !ok {
		return nil, nil
	}

	rows, err := db.Query(`SELECT id, date, description, amount FROM expenses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s: %w", ErrCorruptStore, b.path, err)
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		var r expenseRecord
		if err := rows.Scan(&r.ID, &r.Date, &r.Description, &r.Amount); err != nil {
			return nil, fmt.Errorf("%w: scanning row: %w", ErrCorruptStore, err)
		}
		e, err := r.toExpense()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCorruptStore, b.path, err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading rows: %w", ErrCorruptStore, err)
	}
	return expenses, nil
}

func (b *SQLiteBackend) Save(expenses []Expense) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}

	db, err := b.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO expenses (position, id, date, description, amount) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range expenses {
		r := newExpenseRecord(e)
		if _, err := stmt.Exec(i, r.ID, r.Date, r.Description, r.Amount); err != nil {
			return fmt.Errorf("insert expense %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func init() {
	RegisterBackend("sqlite", func(path string) (Backend, error) {
		return NewSQLiteBackend(path), nil
	})
}
