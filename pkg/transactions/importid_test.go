package transactions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestImportIDGenerator(t *testing.T) {
	g := NewImportIDGenerator()

	date := time.Date(2018, 4, 13, 3, 44, 0, 0, time.UTC)
	other := time.Date(2014, 8, 1, 16, 14, 0, 0, time.UTC)

	ids := []string{
		g.Generate(date, 12345),
		g.Generate(date, 12345),
		g.Generate(other, 5432),
	}

	expected := []string{
		"YNAB:12345:2018-04-13:1",
		"YNAB:12345:2018-04-13:2",
		"YNAB:5432:2014-08-01:1",
	}
	assert.Equal(t, expected, ids)
}

func TestImportIDGeneratorRepeats(t *testing.T) {
	g := NewImportIDGenerator()
	date := time.Date(2015, 12, 30, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "YNAB:-294230:2015-12-30:1", g.Generate(date, -294230))
	assert.Equal(t, "YNAB:-294230:2015-12-30:2", g.Generate(date, -294230))
	assert.Equal(t, "YNAB:-294230:2015-12-30:3", g.Generate(date, -294230))

	// a fresh generator starts its counters over
	assert.Equal(t, "YNAB:-294230:2015-12-30:1", NewImportIDGenerator().Generate(date, -294230))
}
