// Package csv renders transactions as a Date,Payee,Memo,Amount CSV,
// useful for inspecting a parsed statement or importing it elsewhere.
package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Record is the minimal read surface a transaction needs to expose to be
// exported.
type Record interface {
	ISODate() string
	PayeeName() string
	Memo() string
	Milliunits() int64
}

type FilterFunc[T Record] func(T) bool

// Create renders the records that pass the filter (nil means all) and
// returns the CSV bytes. Amounts are written in currency units with two
// decimals.
func Create[T Record](records []T, filter FilterFunc[T]) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Date", "Payee", "Memo", "Amount"})
	for _, r := range records {
		if filter == nil || filter(r) {
			_ = w.Write([]string{
				r.ISODate(),
				r.PayeeName(),
				r.Memo(),
				fmt.Sprintf("%.2f", float64(r.Milliunits())/1000),
			})
		}
	}
	w.Flush()
	return buf.Bytes()
}
