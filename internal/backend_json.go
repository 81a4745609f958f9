package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// expenseRecord is the serialized form of an Expense
//
//	{"id": 4711, "date": "2025-01-15", "description": "Coffee", "amount": 3.5}
type expenseRecord struct {
	ID          int     `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

func newExpenseRecord(e Expense) expenseRecord {
	return expenseRecord{
		ID:          e.ID,
		Date:        e.Date.Format(DateLayout),
		Description: e.Description,
		Amount:      e.Amount,
	}
}

func (r expenseRecord) toExpense() (Expense, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return Expense{}, fmt.Errorf("%w %q for expense %d", ErrInvalidDate, r.Date, r.ID)
	}
	if r.Amount <= 0 {
		return Expense{}, fmt.Errorf("%w %v for expense %d", ErrInvalidAmount, r.Amount, r.ID)
	}
	return Expense{
		ID:          r.ID,
		Date:        date,
		Description: r.Description,
		Amount:      r.Amount,
	}, nil
}

// decodeExpenseRecords decodes a JSON array of expense records
func decodeExpenseRecords(data []byte) ([]Expense, error) {
	var records []expenseRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	expenses := make([]Expense, 0, len(records))
	for _, r := range records {
		e, err := r.toExpense()
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// JSONFileBackend stores the collection as a JSON array in a single file
type JSONFileBackend struct {
	path string
}

func NewJSONFileBackend(path string) *JSONFileBackend {
	return &JSONFileBackend{path: path}
}

func (b *JSONFileBackend) Location() string {
	return b.path
}

func (b *JSONFileBackend) Load() ([]Expense, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrCorruptStore, b.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	expenses, err := decodeExpenseRecords(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptStore, b.path, err)
	}
	return expenses, nil
}

func (b *JSONFileBackend) Save(expenses []Expense) error {
	records := make([]expenseRecord, 0, len(expenses))
	for _, e := range expenses {
		records = append(records, newExpenseRecord(e))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling expenses: %w", err)
	}
	data = append(data, '\n')

	// Create parent directories if they don't exist
	dir := filepath.Dir(b.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(b.path, data, 0644); err != nil {
		return fmt.Errorf("writing expense file: %w", err)
	}
	return nil
}

func init() {
	RegisterBackend("json", func(path string) (Backend, error) {
		return NewJSONFileBackend(path), nil
	})
}
