package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartStatement(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("statement", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestHandleProcessParsesStatement(t *testing.T) {
	srv := New(log.Default())
	srv.setupRoutes()

	body, contentType := multipartStatement(t, "statement.csv",
		"Date,Description,Reference,Amount\n2020-01-02,Coffee shop,card 1234,-3.50\n")

	req := httptest.NewRequest(http.MethodPost, "/api/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Status       string        `json:"status"`
		Transactions []Transaction `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "success", response.Status)
	require.Len(t, response.Transactions, 1)
	assert.Equal(t, "2020-01-02", response.Transactions[0].Date)
	assert.Equal(t, "Coffee shop", response.Transactions[0].PayeeName)
	assert.Equal(t, int64(-3500), response.Transactions[0].Amount)
	assert.Equal(t, "YNAB:-3500:2020-01-02:1", response.Transactions[0].ImportID)
}

func TestHandleProcessRejectsUnknownFormat(t *testing.T) {
	srv := New(log.Default())
	srv.setupRoutes()

	body, contentType := multipartStatement(t, "statement.pdf", "%PDF-1.4")

	req := httptest.NewRequest(http.MethodPost, "/api/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleBudgetsRequiresToken(t *testing.T) {
	srv := New(log.Default())
	srv.setupRoutes()

	req := httptest.NewRequest(http.MethodGet, "/api/budgets", nil)
	rec := httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
