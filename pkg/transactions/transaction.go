// Package transactions holds the transaction model shared by the statement
// parsers, the YNAB client and the reconciliation logic: an immutable
// transaction value with a deduplication import id, a store that collects
// transactions for upload, and a fuzzy set difference used to spot
// mismatches between the bank and YNAB.
package transactions

import "time"

const (
	// MaxCompareDays is how far apart two dates may be for two
	// transactions to still be considered the same movement.
	MaxCompareDays = 7

	// BankDateRange is the fetch window, in days, used when pulling
	// existing transactions from YNAB.
	BankDateRange = 30

	dateFormat = "2006-01-02"
)

// Transaction is one financial movement as it will be sent to (or was read
// from) YNAB. Amounts are in milliunits: thousandths of the currency unit,
// so $12.34 is 12340. Values are immutable once built.
type Transaction struct {
	date       time.Time
	payeeName  string
	memo       string
	milliunits int64
	importID   string
}

// New builds a Transaction. The date is truncated to day granularity.
func New(date time.Time, payeeName, memo string, milliunits int64, importID string) Transaction {
	return Transaction{
		date:       truncateToDay(date),
		payeeName:  payeeName,
		memo:       memo,
		milliunits: milliunits,
		importID:   importID,
	}
}

func (t Transaction) Date() time.Time { return t.date }

func (t Transaction) PayeeName() string { return t.payeeName }

func (t Transaction) Memo() string { return t.memo }

func (t Transaction) Milliunits() int64 { return t.milliunits }

func (t Transaction) ImportID() string { return t.importID }

// ISODate returns the date formatted as YYYY-MM-DD.
func (t Transaction) ISODate() string { return t.date.Format(dateFormat) }

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole number of days separating two
// day-granularity dates. Negative when a is before b.
func daysBetween(a, b time.Time) int {
	return int(a.Sub(b).Hours() / 24)
}
