package internal

import "time"

// DateLayout is the on-disk and command line date format
const DateLayout = "2006-01-02"

type Expense struct {
	ID          int
	Date        time.Time
	Description string
	Amount      float64
}

// Collection is the full store state in insertion order
type Collection []Expense

// IDs returns the set of ids currently in use
func (c Collection) IDs() map[int]bool {
	ids := make(map[int]bool, len(c))
	for _, e := range c {
		ids[e.ID] = true
	}
	return ids
}

// ParseDate parses a YYYY-MM-DD date in local time
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
