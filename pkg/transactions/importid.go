package transactions

import (
	"fmt"
	"time"
)

// ImportIDGenerator produces import ids in the format YNAB uses for
// deduplication: "YNAB:<milliunits>:<date>:<occurrence>". The occurrence
// counter disambiguates repeated same-day, same-amount transactions and
// starts at 1 for each (amount, date) pair.
//
// The counter lives only for the lifetime of the generator, so ids are
// stable within a single run as long as append order is stable. Not safe
// for concurrent use; every Store owns its own generator.
type ImportIDGenerator struct {
	counter map[string]int
}

// NewImportIDGenerator returns a generator with an empty counter.
func NewImportIDGenerator() *ImportIDGenerator {
	return &ImportIDGenerator{counter: make(map[string]int)}
}

// Generate returns the next import id for the given date and milliunit
// amount, e.g. "YNAB:-294230:2015-12-30:1".
func (g *ImportIDGenerator) Generate(date time.Time, milliunits int64) string {
	key := fmt.Sprintf("%d:%s", milliunits, date.Format(dateFormat))
	g.counter[key]++
	return fmt.Sprintf("YNAB:%s:%d", key, g.counter[key])
}
