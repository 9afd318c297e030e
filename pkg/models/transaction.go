package models

import "time"

// BankTransaction is one raw row read out of a bank export file, before
// any validation or normalisation. The transaction store is responsible
// for turning these into uploadable transactions.
type BankTransaction struct {
	Date   time.Time
	Payee  string
	Memo   string
	Amount float64
}
