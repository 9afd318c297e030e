package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ynabsync/ynabsync/pkg/csv"
	"github.com/ynabsync/ynabsync/pkg/parser"
	"github.com/ynabsync/ynabsync/pkg/transactions"
)

type filters struct {
	startDate string
	endDate   string
	minAmount float64
	maxAmount float64
	payee     string
}

func (f *filters) toFilterFunc() csv.FilterFunc[transactions.Transaction] {
	return func(t transactions.Transaction) bool {
		if f.startDate != "" {
			start, _ := time.Parse("2006-01-02", f.startDate)
			if t.Date().Before(start) {
				return false
			}
		}
		if f.endDate != "" {
			end, _ := time.Parse("2006-01-02", f.endDate)
			if t.Date().After(end) {
				return false
			}
		}
		amount := float64(t.Milliunits()) / 1000
		if f.minAmount != 0 && amount < f.minAmount {
			return false
		}
		if f.maxAmount != 0 && amount > f.maxAmount {
			return false
		}
		if f.payee != "" && !strings.Contains(strings.ToLower(t.PayeeName()), strings.ToLower(f.payee)) {
			return false
		}
		return true
	}
}

// FileProcessor converts statement files to CSV on stdout.
type FileProcessor struct {
	logger  *log.Logger
	parser  *parser.Parser
	filters *filters
}

func NewFileProcessor(logger *log.Logger, filters *filters) *FileProcessor {
	return &FileProcessor{
		logger:  logger,
		parser:  parser.New(logger),
		filters: filters,
	}
}

// Process expands the glob pattern and converts every matching file or
// directory.
func (p *FileProcessor) Process(inputPath string) error {
	matches, err := filepath.Glob(inputPath)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("no files found matching pattern %s", inputPath)
	}

	for _, match := range matches {
		fileInfo, err := os.Stat(match)
		if err != nil {
			p.logger.Warn("failed to stat file", "error", err, "file", match)
			continue
		}

		if fileInfo.IsDir() {
			if err := p.ProcessDirectory(match); err != nil {
				p.logger.Warn("failed to process directory", "error", err, "dir", match)
			}
		} else {
			if err := p.ProcessFile(match); err != nil {
				p.logger.Warn("failed to process file", "error", err, "file", match)
			}
		}
	}
	return nil
}

func (p *FileProcessor) ProcessDirectory(inputDir string) error {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if err := p.ProcessFile(filepath.Join(inputDir, entry.Name())); err != nil {
			p.logger.Warn("error processing file", "error", err)
		}
	}

	return nil
}

func (p *FileProcessor) ProcessFile(inputPath string) error {
	fileBytes, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	rows, err := p.parser.ProcessBytes(fileBytes, filepath.Base(inputPath))
	if err != nil {
		return fmt.Errorf("failed to process file: %w", err)
	}

	store := transactions.NewStore()
	for _, row := range rows {
		err := store.Append(row.Date, row.Payee, row.Memo, row.Amount)
		if errors.Is(err, transactions.ErrFutureDate) {
			p.logger.Warn("skipping future-dated row", "file", inputPath, "payee", row.Payee)
			continue
		}
		if err != nil {
			return err
		}
	}

	outputBytes := csv.Create(store.Transactions(), p.filters.toFilterFunc())
	fmt.Print(string(outputBytes))
	return nil
}
