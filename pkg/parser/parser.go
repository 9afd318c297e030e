// Package parser turns downloaded bank export files (CSV or XLS) into raw
// transaction rows. Each format gets its own parser; ProcessBytes picks
// one based on the file name.
package parser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ynabsync/ynabsync/pkg/models"
)

type FileType string

const (
	BankCSV FileType = "bank_csv"
	BankXLS FileType = "bank_xls"
)

type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	return &Parser{
		logger: logger,
	}
}

func (p *Parser) ProcessBytes(data []byte, filename string) ([]models.BankTransaction, error) {
	fileType := detectType(filename)
	p.logger.Debug("detected file type", "type", fileType, "filename", filename)
	return p.Parse(string(fileType), data)
}

// Parse parses data as the given statement type, bypassing filename
// detection. Manifests use it to force a format for oddly named exports.
func (p *Parser) Parse(fileType string, data []byte) ([]models.BankTransaction, error) {
	switch FileType(fileType) {
	case BankCSV:
		return p.ParseCSV(data)
	case BankXLS:
		return p.ParseXLS(data)
	default:
		return nil, fmt.Errorf("unknown file type %q", fileType)
	}
}

func detectType(filename string) FileType {
	lowerFilename := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lowerFilename, ".csv"), strings.HasSuffix(lowerFilename, ".txt"):
		return BankCSV
	case strings.HasSuffix(lowerFilename, ".xls"):
		return BankXLS
	}
	return ""
}
