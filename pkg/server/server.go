// Package server exposes the statement pipeline over a small JSON HTTP
// API, so statements can be uploaded and reconciled from a browser or a
// script without installing the CLI.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ynabsync/ynabsync/pkg/parser"
	"github.com/ynabsync/ynabsync/pkg/transactions"
	"github.com/ynabsync/ynabsync/pkg/ynab"
)

// Server handles HTTP requests for statement processing.
type Server struct {
	logger *log.Logger
	mux    *http.ServeMux
	parser *parser.Parser
	now    func() time.Time
}

// New creates a new HTTP server.
func New(logger *log.Logger) *Server {
	return &Server{
		logger: logger,
		mux:    http.NewServeMux(),
		parser: parser.New(logger),
		now:    time.Now,
	}
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	s.setupRoutes()
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/process", s.withLogging(s.handleProcess))
	s.mux.HandleFunc("/api/budgets", s.withLogging(s.handleBudgets))
	s.mux.HandleFunc("/api/budgets/", s.withLogging(s.handleBudgetAccounts))
}

// Transaction is the JSON shape of a transaction in API responses.
// Amounts are milliunits.
type Transaction struct {
	Date      string `json:"date"`
	PayeeName string `json:"payee_name"`
	Memo      string `json:"memo"`
	Amount    int64  `json:"amount"`
	ImportID  string `json:"import_id"`
}

func toJSONTransactions(ts []transactions.Transaction) []Transaction {
	out := make([]Transaction, len(ts))
	for i, t := range ts {
		out[i] = Transaction{
			Date:      t.ISODate(),
			PayeeName: t.PayeeName(),
			Memo:      t.Memo(),
			Amount:    t.Milliunits(),
			ImportID:  t.ImportID(),
		}
	}
	return out
}

// handleProcess accepts an uploaded statement, parses it and, when token,
// budget_id and account_id are supplied, reconciles it against the YNAB
// account. Nothing is ever created on YNAB from this endpoint.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	file, header, err := r.FormFile("statement")
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "statement file required", err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to read file", err)
		return
	}

	rows, err := s.parser.ProcessBytes(data, header.Filename)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "failed to process file", err)
		return
	}

	store := transactions.NewStore()
	for _, row := range rows {
		err := store.Append(row.Date, row.Payee, row.Memo, row.Amount)
		if errors.Is(err, transactions.ErrFutureDate) {
			s.logger.Warn("skipping future-dated row", "file", header.Filename, "payee", row.Payee)
			continue
		}
		if err != nil {
			s.respondError(w, r, http.StatusInternalServerError, "failed to build transactions", err)
			return
		}
	}

	response := map[string]any{
		"status":       "success",
		"transactions": toJSONTransactions(store.Transactions()),
	}

	token := r.FormValue("token")
	budgetID := r.FormValue("budget_id")
	accountID := r.FormValue("account_id")
	if token != "" && budgetID != "" && accountID != "" {
		client := ynab.New(token)
		remote, err := client.Fetch(budgetID, accountID, s.now())
		if err != nil {
			s.respondError(w, r, http.StatusBadGateway, "failed to fetch remote transactions", err)
			return
		}

		onlyInBank, onlyOnYNAB := transactions.Difference(store.Transactions(), remote)
		onlyInBank = transactions.DiscardStale(onlyInBank, s.now())
		onlyOnYNAB = transactions.DiscardStale(onlyOnYNAB, s.now())

		response["missing_from_ynab"] = toJSONTransactions(onlyInBank)
		response["extraneous_in_ynab"] = toJSONTransactions(onlyOnYNAB)
		s.logger.Info("reconciliation complete", "file", header.Filename,
			"missing", len(onlyInBank), "extraneous", len(onlyOnYNAB))
	}

	if err := s.writeJSON(w, http.StatusOK, response); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		s.respondError(w, r, http.StatusBadRequest, "token required", nil)
		return
	}

	budgets, err := ynab.New(token).Budgets()
	if err != nil {
		s.respondError(w, r, http.StatusBadGateway, "failed to fetch budgets", err)
		return
	}

	if err := s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"budgets": budgets,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) handleBudgetAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	budgetID := strings.TrimPrefix(r.URL.Path, "/api/budgets/")
	if budgetID == "" {
		s.respondError(w, r, http.StatusBadRequest, "budget_id required", nil)
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		s.respondError(w, r, http.StatusBadRequest, "token required", nil)
		return
	}

	accounts, err := ynab.New(token).Accounts(budgetID)
	if err != nil {
		s.respondError(w, r, http.StatusBadGateway, "failed to fetch accounts", err)
		return
	}

	if err := s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"accounts": accounts,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// --- helpers ---

// writeJSON encodes v as JSON with the given status and writes headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// respondError logs the error and returns a minimal JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		s.logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path)
	} else {
		s.logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path)
	}
	_ = s.writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// withLogging wraps a handler to log requests and recover panics.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				s.respondError(w, r, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
			}
		}()
		next(w, r)
	}
}
