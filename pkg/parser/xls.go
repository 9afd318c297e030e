package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/extrame/xls"

	"github.com/ynabsync/ynabsync/pkg/models"
)

// Column layout of the XLS account export (SEB-style): a preamble of
// header rows, then value date, text and amount columns.
const (
	xlsHeaderRows   = 8
	xlsDateColumn   = 1
	xlsMemoColumn   = 3
	xlsAmountColumn = 4
)

// ParseXLS parses an XLS bank export. The file lists newest transactions
// first, so rows are walked in reverse to keep the output oldest-first.
func (p *Parser) ParseXLS(data []byte) ([]models.BankTransaction, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "cp1252")
	if err != nil {
		return nil, fmt.Errorf("error creating workbook: %w", err)
	}

	rows := workbook.ReadAllCells(1000)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in sheet")
	}

	return p.parseXLSRows(rows), nil
}

// parseXLSRows walks the sheet's cell rows from the bottom up, skipping
// the header preamble and any row too short to carry an amount.
func (p *Parser) parseXLSRows(rows [][]string) []models.BankTransaction {
	var transactions []models.BankTransaction
	for i := len(rows) - 1; i >= xlsHeaderRows; i-- {
		row := rows[i]
		if len(row) <= xlsAmountColumn {
			continue
		}

		date, err := parseDate(row[xlsDateColumn])
		if err != nil {
			p.logger.Debug("skipping row with bad date", "row", i+1, "error", err)
			continue
		}

		amount, err := parseAmount(row[xlsAmountColumn])
		if err != nil {
			p.logger.Debug("skipping row with bad amount", "row", i+1, "error", err)
			continue
		}

		transactions = append(transactions, models.BankTransaction{
			Date:   date,
			Memo:   strings.TrimSpace(row[xlsMemoColumn]),
			Amount: amount,
		})
	}

	return transactions
}
