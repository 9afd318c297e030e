package ynab

import (
	"testing"
	"time"

	"github.com/brunomvsouza/ynab.go/api"
	"github.com/brunomvsouza/ynab.go/api/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ynabsync/ynabsync/pkg/transactions"
)

func TestFromRemote(t *testing.T) {
	date, err := api.DateFromString("2019-11-16")
	require.NoError(t, err)

	memo := "direct debit"
	payee := "Electric Co"
	importID := "YNAB:-9500:2019-11-16:1"

	remote := []*transaction.Transaction{
		{Date: date, Amount: -9500, Memo: &memo, PayeeName: &payee, ImportID: &importID},
		{Date: date, Amount: -9501, Memo: nil, PayeeName: nil},
		{Date: date, Amount: -9502, Deleted: true},
	}

	ts := FromRemote(remote)
	require.Len(t, ts, 2) // deleted transactions are dropped

	assert.Equal(t, "Electric Co", ts[0].PayeeName())
	assert.Equal(t, "direct debit", ts[0].Memo())
	assert.Equal(t, int64(-9500), ts[0].Milliunits())
	assert.Equal(t, importID, ts[0].ImportID())
	assert.Equal(t, time.Date(2019, 11, 16, 0, 0, 0, 0, time.UTC), ts[0].Date())

	// nil payee and memo become empty strings
	assert.Equal(t, "", ts[1].PayeeName())
	assert.Equal(t, "", ts[1].Memo())
}

func TestPayloads(t *testing.T) {
	store := transactions.NewStore()
	store.SetClock(func() time.Time { return time.Date(2018, 4, 20, 0, 0, 0, 0, time.UTC) })
	require.NoError(t, store.Append(
		time.Date(2018, 4, 13, 0, 0, 0, 0, time.UTC), "obama", "this memo is ok", -120000))

	payloads, err := Payloads(store.Transactions(), "some-account-id")
	require.NoError(t, err)
	require.Len(t, payloads, 1)

	p := payloads[0]
	assert.Equal(t, "some-account-id", p.AccountID)
	assert.Equal(t, int64(-120000000), p.Amount)
	assert.Equal(t, transaction.ClearingStatusCleared, p.Cleared)
	assert.Equal(t, "2018-04-13", p.Date.Format("2006-01-02"))
	require.NotNil(t, p.PayeeName)
	assert.Equal(t, "obama", *p.PayeeName)
	require.NotNil(t, p.Memo)
	assert.Equal(t, "this memo is ok", *p.Memo)
	require.NotNil(t, p.ImportID)
	assert.Equal(t, "YNAB:-120000000:2018-04-13:1", *p.ImportID)
}

func TestPayloadsEmpty(t *testing.T) {
	payloads, err := Payloads(nil, "some-account-id")
	require.NoError(t, err)
	assert.Empty(t, payloads)
}
