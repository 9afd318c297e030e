package models

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser is the contract statement parsers implement.
type Parser interface {
	ProcessBytes(data []byte, filename string) ([]BankTransaction, error)
	Parse(fileType string, data []byte) ([]BankTransaction, error)
}

// Manifest lists the bank statements to be synced and which YNAB account
// each one belongs to.
type Manifest struct {
	Statements []Statement `yaml:"statements"`
}

// Statement is a single downloaded bank export to be processed. Type is
// optional; when set it overrides detection by file extension.
type Statement struct {
	Type      string `yaml:"type"`
	FilePath  string `yaml:"file"`
	AccountID string `yaml:"account_id"`
}

// File returns the absolute path to the statement file, expanding ~.
func (s *Statement) File() (string, error) {
	if strings.HasPrefix(s.FilePath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, s.FilePath[2:]), nil
	}
	return s.FilePath, nil
}

// Rows reads the statement file and uses the provided parser to return
// its raw transactions.
func (s *Statement) Rows(p Parser) ([]BankTransaction, error) {
	filePath, err := s.File()
	if err != nil {
		return nil, err
	}

	fileBytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read statement file %s: %w", filePath, err)
	}

	var rows []BankTransaction
	if s.Type != "" {
		rows, err = p.Parse(s.Type, fileBytes)
	} else {
		rows, err = p.ProcessBytes(fileBytes, filepath.Base(filePath))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to process statement file %s: %w", filePath, err)
	}

	return rows, nil
}

// FromFile reads a manifest from a YAML file.
func FromFile(filePath string) (*Manifest, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}

	if len(manifest.Statements) == 0 {
		return nil, fmt.Errorf("manifest %s has no statements", filePath)
	}
	return &manifest, nil
}
