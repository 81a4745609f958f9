package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ImportRow is one expense read from an import file, before validation
type ImportRow struct {
	Line        int // 1-based row or array position, for messages
	Date        string
	Description string
	Amount      string
}

// Importer reads expense rows from a file
type Importer interface {
	Import(path string) ([]ImportRow, error)
}

// ImporterFunc is a function that implements Importer
type ImporterFunc func(path string) ([]ImportRow, error)

func (f ImporterFunc) Import(path string) ([]ImportRow, error) {
	return f(path)
}

// importers is the registry of available import sources
var importers = map[string]Importer{}

// sourceExtensions maps file extensions to import sources
var sourceExtensions = map[string]string{}

// RegisterImporter registers an importer under name, selected by default for
// files with any of the given extensions
func RegisterImporter(name string, imp Importer, extensions ...string) {
	importers[name] = imp
	for _, ext := range extensions {
		sourceExtensions[strings.ToLower(ext)] = name
	}
}

// GetImporter returns the importer for the given source type
func GetImporter(source string) (Importer, error) {
	imp, ok := importers[source]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %s (available: %v)", source, AvailableSources())
	}
	return imp, nil
}

// AvailableSources returns the registered source types, sorted
func AvailableSources() []string {
	var sources []string
	for name := range importers {
		sources = append(sources, name)
	}
	sort.Strings(sources)
	return sources
}

// IsKnownSource returns true if the name is a registered importer
func IsKnownSource(name string) bool {
	_, ok := importers[name]
	return ok
}

// ParseFileArg parses a file argument that may have a source prefix.
// Returns (source, path). If no valid prefix, source is empty.
// Example: "json:backup.json" → ("json", "backup.json")
// Example: "C:\path\file.xlsx" → ("", "C:\path\file.xlsx")
func ParseFileArg(arg string) (source, path string) {
	prefix, rest, ok := strings.Cut(arg, ":")
	if ok && IsKnownSource(prefix) {
		return prefix, rest
	}
	return "", arg
}

// ResolveSource picks the import source for a file argument: an explicit
// source wins, then a source prefix, then the file extension.
func ResolveSource(explicit, arg string) (source, path string, err error) {
	source, path = ParseFileArg(arg)
	if explicit != "" {
		source = explicit
	}
	if source == "" {
		source = sourceExtensions[strings.ToLower(filepath.Ext(path))]
	}
	if source == "" {
		return "", "", fmt.Errorf("cannot tell the format of %s, use --source (available: %v)", path, AvailableSources())
	}
	if !IsKnownSource(source) {
		return "", "", fmt.Errorf("unknown source type: %s (available: %v)", source, AvailableSources())
	}
	return source, path, nil
}

// importDateLayouts are tried in order for import dates. Spreadsheet date
// cells come back in the sheet's display format.
var importDateLayouts = []string{DateLayout, "2006/01/02", "01-02-06", "1/2/06", "1/2/2006"}

// ParseImportDate parses an import date. An empty string yields the zero time.
func ParseImportDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range importDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, s)
}

// Import validates rows like Add and appends the valid ones with fresh ids.
// Rows without a date are dated today. Invalid rows are logged and counted.
func (s *Store) Import(c Collection, rows []ImportRow) (added []Expense, updated Collection, skipped int) {
	updated = c
	for _, row := range rows {
		log := s.log.WithField("line", row.Line)

		date, err := ParseImportDate(row.Date)
		if err != nil {
			log.WithError(err).Warn("skipping row")
			skipped++
			continue
		}
		if date.IsZero() {
			date = s.Today()
		}

		e, next, err := s.AddOn(updated, row.Description, row.Amount, date)
		if err != nil {
			log.WithError(err).Warn("skipping row")
			skipped++
			continue
		}
		updated = next
		added = append(added, e)
	}
	return added, updated, skipped
}

// importJSONRecord accepts the store's own record format; ids are ignored
type importJSONRecord struct {
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
}

// ImportJSON reads a JSON array of expense records, e.g. a copy of a json store
func ImportJSON(path string) ([]ImportRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var records []importJSONRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	rows := make([]ImportRow, 0, len(records))
	for i, r := range records {
		rows = append(rows, ImportRow{
			Line:        i + 1,
			Date:        r.Date,
			Description: r.Description,
			Amount:      r.Amount.String(),
		})
	}
	return rows, nil
}

func init() {
	RegisterImporter("json", ImporterFunc(ImportJSON), ".json")
}
