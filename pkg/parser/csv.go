package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ynabsync/ynabsync/pkg/models"
)

// Banks are not consistent about column naming, so the header is located
// by scanning for a recognised date column and the remaining columns are
// resolved by name.
var (
	dateHeaders   = []string{"date", "buchungstag", "belegdatum", "value date", "data"}
	payeeHeaders  = []string{"payee", "auftraggeber", "description", "beneficiary"}
	memoHeaders   = []string{"memo", "verwendungszweck", "beschreibung", "text", "reference"}
	amountHeaders = []string{"amount", "betrag", "betrag (eur)", "value", "valor"}

	dateFormats = []string{
		"02.01.2006",
		"2006-01-02",
		"02/01/2006",
		"01/02/2006",
	}
)

// ParseCSV parses a bank account CSV export. Some banks (DKB among them)
// prepend a free-form preamble before the actual header row, so rows are
// skipped until a line with a recognised date column shows up.
func (p *Parser) ParseCSV(data []byte) ([]models.BankTransaction, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	headerIdx, cols := findHeader(records)
	if headerIdx < 0 {
		return nil, fmt.Errorf("no header row with a date column found")
	}

	var rows []models.BankTransaction
	for i := headerIdx + 1; i < len(records); i++ {
		record := records[i]
		if len(record) <= cols.date || len(record) <= cols.amount {
			continue
		}

		date, err := parseDate(record[cols.date])
		if err != nil {
			p.logger.Debug("skipping row with bad date", "line", i+1, "error", err)
			continue
		}

		amount, err := parseAmount(record[cols.amount])
		if err != nil {
			p.logger.Debug("skipping row with bad amount", "line", i+1, "error", err)
			continue
		}

		row := models.BankTransaction{Date: date, Amount: amount}
		if cols.payee >= 0 && len(record) > cols.payee {
			row.Payee = strings.TrimSpace(record[cols.payee])
		}
		if cols.memo >= 0 && len(record) > cols.memo {
			row.Memo = strings.TrimSpace(record[cols.memo])
		}
		rows = append(rows, row)
	}

	return rows, nil
}

type columns struct {
	date   int
	payee  int
	memo   int
	amount int
}

func findHeader(records [][]string) (int, columns) {
	for i, record := range records {
		cols := columns{date: -1, payee: -1, memo: -1, amount: -1}
		for j, field := range record {
			name := strings.ToLower(strings.TrimSpace(field))
			switch {
			case cols.date < 0 && matchesHeader(name, dateHeaders):
				cols.date = j
			case cols.payee < 0 && matchesHeader(name, payeeHeaders):
				cols.payee = j
			case cols.memo < 0 && matchesHeader(name, memoHeaders):
				cols.memo = j
			case cols.amount < 0 && slices.Contains(amountHeaders, name):
				cols.amount = j
			}
		}
		if cols.date >= 0 && cols.amount >= 0 {
			return i, cols
		}
	}
	return -1, columns{}
}

// matchesHeader allows qualified variants like "date (booking)". The
// amount column is matched by exact name only: the prefix rule would let
// a "value date" column be claimed for the "value" amount candidate.
func matchesHeader(name string, candidates []string) bool {
	for _, c := range candidates {
		if name == c || strings.HasPrefix(name, c+" ") {
			return true
		}
	}
	return false
}

// detectDelimiter guesses between semicolons (common in European bank
// exports) and commas.
func detectDelimiter(data []byte) rune {
	head := data
	if idx := bytes.IndexByte(head, '\n'); idx >= 0 {
		head = head[:idx]
	}
	if bytes.Count(head, []byte(";")) > bytes.Count(head, []byte(",")) {
		return ';'
	}
	return ','
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, format := range dateFormats {
		if date, err := time.Parse(format, s); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// parseAmount handles both plain decimals ("-1234.56") and the European
// convention with thousands dots and a decimal comma ("-1.234,56").
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "EUR ")
	s = strings.TrimPrefix(s, "R$ ")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	// ParseFloat accepts "nan" and "inf", which no bank export means
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite amount %q", s)
	}
	return f, nil
}
