package transactions

import (
	"slices"
	"time"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// candidateEqual reports whether two independently-sourced records could
// describe the same real-world transaction: amounts within one milliunit
// and dates within MaxCompareDays of each other. Banks and YNAB disagree
// on posting dates often enough that exact date equality is useless here.
func candidateEqual(a, b Transaction) bool {
	milliunitDiff := a.milliunits - b.milliunits
	if milliunitDiff < 0 {
		milliunitDiff = -milliunitDiff
	}
	days := daysBetween(a.date, b.date)
	if days < 0 {
		days = -days
	}
	return milliunitDiff < 2 && days <= MaxCompareDays
}

// Difference computes the symmetric difference of two transaction lists
// under the candidateEqual relation: the first result holds elements of a
// with no match in b, the second the elements of b with no match in a.
//
// Matching is one-to-one and consuming. Every element of one list can pair
// off at most one element of the other, so duplicates are only cancelled
// as many times as they appear on both sides. When several candidates
// remain for a transaction, the one whose memo is most similar wins; on
// equal scores the earliest remaining candidate is kept. Inputs are not
// modified.
func Difference(a, b []Transaction) (onlyInA, onlyInB []Transaction) {
	return subtract(a, b), subtract(b, a)
}

// subtract returns the elements of c that no element of d consumed.
func subtract(c, d []Transaction) []Transaction {
	remaining := slices.Clone(c)
	for _, t := range d {
		best := -1
		bestScore := -1
		for i, r := range remaining {
			if !candidateEqual(t, r) {
				continue
			}
			if score := fuzzy.TokenSetRatio(t.memo, r.memo); score > bestScore {
				best = i
				bestScore = score
			}
		}
		if best >= 0 {
			remaining = slices.Delete(remaining, best, best+1)
		}
	}
	return remaining
}

// DiscardStale drops transactions dated on or before
// today - (BankDateRange - MaxCompareDays) days. Transactions that close
// to the edge of the fetch window cannot be reliably judged as missing or
// extraneous: they may simply fall outside one side's window.
func DiscardStale(ts []Transaction, today time.Time) []Transaction {
	cutoff := truncateToDay(today).AddDate(0, 0, -(BankDateRange - MaxCompareDays))
	kept := make([]Transaction, 0, len(ts))
	for _, t := range ts {
		if t.date.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
