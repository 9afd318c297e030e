// Package ynab wraps the YNAB API SDK: pushing a store of transactions to
// an account and fetching the recent transactions back for reconciliation.
package ynab

import (
	"fmt"
	"time"

	"github.com/brunomvsouza/ynab.go"
	"github.com/brunomvsouza/ynab.go/api"
	"github.com/brunomvsouza/ynab.go/api/account"
	"github.com/brunomvsouza/ynab.go/api/budget"
	"github.com/brunomvsouza/ynab.go/api/transaction"

	"github.com/ynabsync/ynabsync/pkg/transactions"
)

// Client wraps the SDK client with the conversions between the SDK types
// and our transaction model.
type Client struct {
	client ynab.ClientServicer
}

// New creates a Client authenticated with the given personal access token.
func New(token string) *Client {
	return &Client{
		client: ynab.NewClient(token),
	}
}

// Push uploads every transaction in the store to the given account. The
// store is left untouched; clearing it after a successful push is the
// caller's decision.
func (c *Client) Push(store *transactions.Store, budgetID, accountID string) (*transaction.OperationSummary, error) {
	payloads, err := Payloads(store.Transactions(), accountID)
	if err != nil {
		return nil, err
	}
	if len(payloads) == 0 {
		return nil, nil
	}

	summary, err := c.client.Transaction().CreateTransactions(budgetID, payloads)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactions: %w", err)
	}
	return summary, nil
}

// Fetch returns the account's transactions from the last
// transactions.BankDateRange days, excluding deleted ones. Nil payee and
// memo come back as empty strings.
func (c *Client) Fetch(budgetID, accountID string, today time.Time) ([]transactions.Transaction, error) {
	since, err := api.DateFromString(today.AddDate(0, 0, -transactions.BankDateRange).Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	remote, err := c.client.Transaction().GetTransactionsByAccount(budgetID, accountID, &transaction.Filter{
		Since: &since,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	return FromRemote(remote), nil
}

// FromRemote converts SDK transactions into our model, dropping deleted
// entries.
func FromRemote(remote []*transaction.Transaction) []transactions.Transaction {
	ts := make([]transactions.Transaction, 0, len(remote))
	for _, rt := range remote {
		if rt.Deleted {
			continue
		}
		importID := ""
		if rt.ImportID != nil {
			importID = *rt.ImportID
		}
		ts = append(ts, transactions.New(
			rt.Date.Time,
			stringValue(rt.PayeeName),
			stringValue(rt.Memo),
			rt.Amount,
			importID,
		))
	}
	return ts
}

// Payloads projects transactions into the SDK's create-transaction
// payloads for the given account. Pure; the input is not modified.
func Payloads(ts []transactions.Transaction, accountID string) ([]transaction.PayloadTransaction, error) {
	payloads := make([]transaction.PayloadTransaction, 0, len(ts))
	for _, t := range ts {
		date, err := api.DateFromString(t.ISODate())
		if err != nil {
			return nil, err
		}

		payeeName := t.PayeeName()
		memo := t.Memo()
		importID := t.ImportID()
		payloads = append(payloads, transaction.PayloadTransaction{
			AccountID: accountID,
			Date:      date,
			Amount:    t.Milliunits(),
			Cleared:   transaction.ClearingStatusCleared,
			PayeeName: &payeeName,
			Memo:      &memo,
			ImportID:  &importID,
		})
	}
	return payloads, nil
}

// Budgets lists the budgets visible to the access token.
func (c *Client) Budgets() ([]*budget.Summary, error) {
	return c.client.Budget().GetBudgets()
}

// Accounts lists the accounts of one budget.
func (c *Client) Accounts(budgetID string) ([]*account.Account, error) {
	snapshot, err := c.client.Account().GetAccounts(budgetID, nil)
	if err != nil {
		return nil, err
	}
	return snapshot.Accounts, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
