package internal

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// MaxID is the exclusive upper bound for generated expense ids
const MaxID = 10_000_000

// maxIDAttempts bounds the random draws before GenerateID falls back to max+1
const maxIDAttempts = 100

// Store loads, mutates and persists the expense collection through a Backend.
// A Store holds no collection state between calls: every command loads a
// fresh collection, transforms it and saves it back.
type Store struct {
	backend Backend
	log     logrus.FieldLogger
	now     func() time.Time
	rng     *rand.Rand
}

type StoreOption func(*Store)

func WithLogger(log logrus.FieldLogger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// WithClock overrides the clock used to date new expenses
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithRand overrides the random source used for id generation
func WithRand(rng *rand.Rand) StoreOption {
	return func(s *Store) {
		s.rng = rng
	}
}

func NewStore(backend Backend, opts ...StoreOption) *Store {
	s := &Store{
		backend: backend,
		log:     discardLogger(),
		now:     time.Now,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Load reads the whole collection. A store that does not exist yet loads as
// an empty collection; one that exists but cannot be decoded is an error.
func (s *Store) Load() (Collection, error) {
	expenses, err := s.backend.Load()
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"path":  s.backend.Location(),
		"count": len(expenses),
	}).Debug("loaded expenses")
	return Collection(expenses), nil
}

// Save overwrites the store with the given collection
func (s *Store) Save(c Collection) error {
	if err := s.backend.Save(c); err != nil {
		return fmt.Errorf("saving expenses to %s: %w", s.backend.Location(), err)
	}
	s.log.WithFields(logrus.Fields{
		"path":  s.backend.Location(),
		"count": len(c),
	}).Debug("saved expenses")
	return nil
}

// Today returns the current date according to the store's clock
func (s *Store) Today() time.Time {
	return truncateToDay(s.now())
}

// GenerateID draws a random id in [0, MaxID) that is not used by c.
// After maxIDAttempts collisions it takes the first free id after the
// largest one in c, wrapping around at MaxID.
func (s *Store) GenerateID(c Collection) int {
	used := c.IDs()
	for range maxIDAttempts {
		id := s.rng.IntN(MaxID)
		if !used[id] {
			return id
		}
	}
	highest := -1
	for _, e := range c {
		highest = max(highest, e.ID)
	}
	return nextFreeID(used, highest+1)
}

// nextFreeID returns the first id in [0, MaxID) at or after start, modulo
// MaxID, that is not in used. Only when every id in range is taken does it
// return an id past the range.
func nextFreeID(used map[int]bool, start int) int {
	for i := range MaxID {
		id := ((start+i)%MaxID + MaxID) % MaxID
		if !used[id] {
			return id
		}
	}
	return MaxID + len(used)
}

// Add creates an expense dated today. On validation failure c is returned
// unchanged along with the error.
func (s *Store) Add(c Collection, description, amount string) (Expense, Collection, error) {
	return s.AddOn(c, description, amount, s.Today())
}

// AddOn is Add with an explicit date
func (s *Store) AddOn(c Collection, description, amount string, date time.Time) (Expense, Collection, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Expense{}, c, ErrEmptyDescription
	}
	parsed, err := ParseAmount(amount)
	if err != nil {
		return Expense{}, c, err
	}

	e := Expense{
		ID:          s.GenerateID(c),
		Date:        truncateToDay(date),
		Description: description,
		Amount:      parsed,
	}
	s.log.WithFields(logrus.Fields{
		"id":     e.ID,
		"amount": e.Amount,
	}).Debug("adding expense")

	updated := make(Collection, 0, len(c)+1)
	updated = append(updated, c...)
	updated = append(updated, e)
	return e, updated, nil
}

// ParseAmount parses a user supplied amount. The value must be a finite
// number greater than zero. A single comma is accepted as decimal separator.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: not a number", ErrInvalidAmount, s)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w %q: must be greater than zero", ErrInvalidAmount, s)
	}
	// decimal only checks the syntax here. Its float conversion expands the
	// exponent into a big integer, which stalls on inputs like 1e99999999.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || f <= 0 {
		return 0, fmt.Errorf("%w %q: out of range", ErrInvalidAmount, s)
	}
	return f, nil
}

// Delete removes every expense with the given id. removed reports whether
// anything matched.
func Delete(c Collection, id int) (result Collection, removed bool) {
	result = make(Collection, 0, len(c))
	for _, e := range c {
		if e.ID != id {
			result = append(result, e)
		}
	}
	return result, len(result) != len(c)
}

// ListAll returns c and false when c has no entries
func ListAll(c Collection) (Collection, bool) {
	if len(c) == 0 {
		return nil, false
	}
	return c, true
}

// Total sums the amounts of c. Callers check for an empty collection first
// since an empty collection and a zero total look the same here.
func Total(c Collection) float64 {
	sum := decimal.Zero
	for _, e := range c {
		sum = sum.Add(decimal.NewFromFloat(e.Amount))
	}
	return sum.InexactFloat64()
}

// TotalForMonth sums the expenses dated in the given calendar month of any
// year. count is the number of matching expenses.
func TotalForMonth(c Collection, month int) (count int, sum float64) {
	matched := FilterByMonth(c, month, 0)
	return len(matched), Total(matched)
}

// FilterByMonth returns the expenses dated in month. A year of 0 matches
// every year.
func FilterByMonth(c Collection, month, year int) Collection {
	var result Collection
	for _, e := range c {
		if int(e.Date.Month()) != month {
			continue
		}
		if year != 0 && e.Date.Year() != year {
			continue
		}
		result = append(result, e)
	}
	return result
}

// ValidateMonth checks that month is in 1-12
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w %d: must be between 1 and 12", ErrInvalidMonth, month)
	}
	return nil
}
