package transactions

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const (
	payeeNameLimit = 50
	memoLimit      = 100
)

// ErrFutureDate is returned by Store.Append when the transaction date is
// after the current date. YNAB rejects future-dated imports, so they are
// caught before they ever reach the API.
var ErrFutureDate = errors.New("transaction date is in the future")

// ErrInvalidAmount is returned by Store.Append when the amount is NaN or
// infinite. Such values cannot be expressed in milliunits.
var ErrInvalidAmount = errors.New("transaction amount is not a finite number")

// Store collects transactions to be uploaded to YNAB. It owns an
// ImportIDGenerator so import ids stay unique across everything appended
// to it. Not safe for concurrent use.
type Store struct {
	transactions []Transaction
	generator    *ImportIDGenerator
	now          func() time.Time
}

// NewStore returns an empty store with a fresh import id generator.
func NewStore() *Store {
	return &Store{
		generator: NewImportIDGenerator(),
		now:       time.Now,
	}
}

// SetClock replaces the wall clock used for future-date validation.
// Intended for tests.
func (s *Store) SetClock(now func() time.Time) { s.now = now }

// Append validates and normalises one transaction and adds it to the
// store, preserving call order.
//
// The amount is a decimal currency value; it is rounded to three decimal
// places and scaled to milliunits. The payee name keeps its first 50
// characters and the memo its last 100 (bank memos tend to carry the
// useful detail at the end).
func (s *Store) Append(date time.Time, payeeName, memo string, amount float64) error {
	date = truncateToDay(date)
	if date.After(truncateToDay(s.now())) {
		return fmt.Errorf("%w: %s", ErrFutureDate, date.Format(dateFormat))
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}

	milliunits := decimal.NewFromFloat(amount).
		Round(3).
		Mul(decimal.NewFromInt(1000)).
		IntPart()

	if r := []rune(payeeName); len(r) > payeeNameLimit {
		payeeName = string(r[:payeeNameLimit])
	}
	if r := []rune(memo); len(r) > memoLimit {
		memo = string(r[len(r)-memoLimit:])
	}

	importID := s.generator.Generate(date, milliunits)
	s.transactions = append(s.transactions, New(date, payeeName, memo, milliunits, importID))
	return nil
}

// Add appends an already-built transaction without validation or id
// generation. Used when materialising transactions fetched from YNAB.
func (s *Store) Add(t Transaction) {
	s.transactions = append(s.transactions, t)
}

// Transactions returns the stored transactions in append order. The
// returned slice is shared; callers must not modify it.
func (s *Store) Transactions() []Transaction {
	return s.transactions
}

// Count reports how many transactions are currently stored.
func (s *Store) Count() int { return len(s.transactions) }

// Clear empties the store, typically after a successful upload. The
// import id counters are kept so re-appending the same rows in the same
// run would produce fresh occurrences.
func (s *Store) Clear() { s.transactions = nil }
