package csv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ynabsync/ynabsync/pkg/transactions"
)

func TestCreate(t *testing.T) {
	ts := []transactions.Transaction{
		transactions.New(time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), "REWE Markt", "groceries", -23860, "x"),
		transactions.New(time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC), "Employer, Inc", "salary", 2327000, "y"),
	}

	got := string(Create(ts, nil))
	expected := "Date,Payee,Memo,Amount\n" +
		"2025-03-17,REWE Markt,groceries,-23.86\n" +
		"2025-03-19,\"Employer, Inc\",salary,2327.00\n"
	assert.Equal(t, expected, got)
}

func TestCreateFiltered(t *testing.T) {
	ts := []transactions.Transaction{
		transactions.New(time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), "a", "", -1000, ""),
		transactions.New(time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC), "b", "", 1000, ""),
	}

	onlyOutflows := func(r transactions.Transaction) bool { return r.Milliunits() < 0 }
	got := string(Create(ts, onlyOutflows))
	assert.Equal(t, "Date,Payee,Memo,Amount\n2025-03-17,a,,-1.00\n", got)
}
