package executors

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ynabsync/ynabsync/pkg/models"
	"github.com/ynabsync/ynabsync/pkg/transactions"
)

var (
	extraneousStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	missingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
)

// Plan is the dry-run counterpart of Sync: it parses each statement,
// fetches the account from YNAB and prints what a sync would change,
// without creating anything.
func (e *Executor) Plan(manifest *models.Manifest) error {
	for _, statement := range manifest.Statements {
		if statement.AccountID == "" {
			return fmt.Errorf("manifest error: statement %s missing account_id", statement.FilePath)
		}

		store, err := e.loadStore(&statement)
		if err != nil {
			return err
		}

		remote, err := e.ynab.Fetch(e.config.YNAB.BudgetID, statement.AccountID, e.now())
		if err != nil {
			return err
		}

		onlyInBank, onlyOnYNAB := transactions.Difference(store.Transactions(), remote)
		onlyInBank = transactions.DiscardStale(onlyInBank, e.now())
		onlyOnYNAB = transactions.DiscardStale(onlyOnYNAB, e.now())

		fmt.Printf("Statement %s -> account %s\n", statement.FilePath, statement.AccountID)
		if len(onlyInBank) > 0 {
			fmt.Println(missingStyle.Render("Missing from YNAB (would be pushed):"))
			fmt.Println(transactions.PrettyFormat(onlyInBank))
		}
		if len(onlyOnYNAB) > 0 {
			fmt.Println(extraneousStyle.Render("Extraneous in YNAB:"))
			fmt.Println(transactions.PrettyFormat(onlyOnYNAB))
		}

		inSync := store.Count() - len(onlyInBank)
		fmt.Printf("Plan: %d transaction(s) missing from YNAB, %d already in sync\n", len(onlyInBank), inSync)
	}

	return nil
}
