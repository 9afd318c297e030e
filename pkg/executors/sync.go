package executors

import (
	"fmt"

	"github.com/k0kubun/pp/v3"

	"github.com/ynabsync/ynabsync/pkg/models"
	"github.com/ynabsync/ynabsync/pkg/transactions"
)

// Sync processes every statement in the manifest: push its transactions
// to YNAB, then fetch the account back and report any mismatch between
// what the bank says and what YNAB now has.
func (e *Executor) Sync(manifest *models.Manifest) error {
	for _, statement := range manifest.Statements {
		if statement.AccountID == "" {
			return fmt.Errorf("manifest error: statement %s missing account_id", statement.FilePath)
		}

		store, err := e.loadStore(&statement)
		if err != nil {
			return err
		}

		if store.Count() == 0 {
			e.logger.Info("no transactions to push", "file", statement.FilePath)
			continue
		}

		e.logger.Info("pushing transactions", "count", store.Count(), "account_id", statement.AccountID)
		summary, err := e.ynab.Push(store, e.config.YNAB.BudgetID, statement.AccountID)
		if err != nil {
			return err
		}
		if summary != nil {
			e.logger.Info("push accepted", "duplicate_import_ids", len(summary.DuplicateImportIDs))
			if e.config.Verbose {
				pp.Println(summary)
			}
		}

		pushed := store.Transactions()
		if err := e.reportMismatches(statement.AccountID, pushed); err != nil {
			return err
		}
		store.Clear()
	}

	return nil
}

// reportMismatches fetches the account's recent transactions and prints
// the fuzzy difference against the bank's view. Differences close to the
// edge of the fetch window are discarded: they cannot be told apart from
// transactions that simply fall outside one side's window.
func (e *Executor) reportMismatches(accountID string, bank []transactions.Transaction) error {
	remote, err := e.ynab.Fetch(e.config.YNAB.BudgetID, accountID, e.now())
	if err != nil {
		return err
	}

	onlyOnYNAB, onlyInBank := transactions.Difference(remote, bank)
	onlyOnYNAB = transactions.DiscardStale(onlyOnYNAB, e.now())
	onlyInBank = transactions.DiscardStale(onlyInBank, e.now())

	if len(onlyOnYNAB) == 0 && len(onlyInBank) == 0 {
		e.logger.Info("bank and YNAB agree", "account_id", accountID)
		return nil
	}

	if len(onlyOnYNAB) > 0 {
		fmt.Println(extraneousStyle.Render("Extraneous in YNAB:"))
		fmt.Println(transactions.PrettyFormat(onlyOnYNAB))
	}
	if len(onlyInBank) > 0 {
		fmt.Println(missingStyle.Render("Missing from YNAB:"))
		fmt.Println(transactions.PrettyFormat(onlyInBank))
	}
	return nil
}
