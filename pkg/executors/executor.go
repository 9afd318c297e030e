package executors

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ynabsync/ynabsync/pkg/config"
	"github.com/ynabsync/ynabsync/pkg/models"
	"github.com/ynabsync/ynabsync/pkg/parser"
	"github.com/ynabsync/ynabsync/pkg/transactions"
	"github.com/ynabsync/ynabsync/pkg/ynab"
)

// Executor drives the statement pipeline: parse the export files, push
// new transactions to YNAB and reconcile against what YNAB reports back.
type Executor struct {
	logger *log.Logger
	config *config.Config
	ynab   *ynab.Client
	parser *parser.Parser
	now    func() time.Time
}

func New(logger *log.Logger, config *config.Config, ynab *ynab.Client) *Executor {
	return &Executor{
		logger: logger,
		config: config,
		ynab:   ynab,
		parser: parser.New(logger),
		now:    time.Now,
	}
}

// loadStore parses one statement and fills a fresh transaction store with
// its rows. Future-dated rows are skipped with a warning: YNAB would
// reject them and a bank export occasionally contains a scheduled entry.
func (e *Executor) loadStore(statement *models.Statement) (*transactions.Store, error) {
	rows, err := statement.Rows(e.parser)
	if err != nil {
		return nil, err
	}

	store := transactions.NewStore()
	for _, row := range rows {
		err := store.Append(row.Date, row.Payee, row.Memo, row.Amount)
		if errors.Is(err, transactions.ErrFutureDate) {
			e.logger.Warn("skipping future-dated row", "file", statement.FilePath, "date", row.Date.Format("2006-01-02"), "payee", row.Payee)
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return store, nil
}
