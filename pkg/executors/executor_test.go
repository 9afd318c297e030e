package executors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ynabsync/ynabsync/pkg/config"
	"github.com/ynabsync/ynabsync/pkg/models"
)

func TestLoadStoreSkipsFutureRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.csv")
	content := "Date,Description,Reference,Amount\n" +
		"2020-01-02,Coffee shop,card 1234,-3.50\n" +
		"2999-01-01,Scheduled payment,standing order,-10.00\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	exec := New(log.Default(), &config.Config{}, nil)
	store, err := exec.loadStore(&models.Statement{FilePath: path})
	require.NoError(t, err)

	// the future-dated row is dropped, not fatal
	require.Equal(t, 1, store.Count())
	assert.Equal(t, "Coffee shop", store.Transactions()[0].PayeeName())
	assert.Equal(t, int64(-3500), store.Transactions()[0].Milliunits())
}

func TestLoadStoreHonorsManifestType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.dat")
	content := "Date,Description,Reference,Amount\n2020-01-02,Coffee shop,card 1234,-3.50\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	exec := New(log.Default(), &config.Config{}, nil)

	// without a manifest type the extension decides, and .dat is unknown
	_, err := exec.loadStore(&models.Statement{FilePath: path})
	require.Error(t, err)

	store, err := exec.loadStore(&models.Statement{FilePath: path, Type: "bank_csv"})
	require.NoError(t, err)
	require.Equal(t, 1, store.Count())
	assert.Equal(t, "Coffee shop", store.Transactions()[0].PayeeName())
}

func TestLoadStoreUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	exec := New(log.Default(), &config.Config{}, nil)
	_, err := exec.loadStore(&models.Statement{FilePath: path})
	assert.Error(t, err)
}
