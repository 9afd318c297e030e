package transactions

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrettyFormat(t *testing.T) {
	ts := []Transaction{
		New(time.Date(2017, 5, 2, 0, 0, 0, 0, time.UTC), "Mr Tibbles", "Goes to market", 123456789, "foo"),
		New(time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC),
			"This is a really very long payee name",
			"Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed d",
			-962, "bar"),
		New(time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC), "", "", -962, "bar"),
	}

	got := strings.Split(PrettyFormat(ts), "\n")
	expected := []string{
		"Date       Payee                Memo                                         Amount",
		"2017-05-02 Mr Tibbles           Goes to market                            123456.79",
		"2011-01-01 This is a really ... Lorem ipsum dolor sit amet, consectet...      -0.96",
		"2012-01-01                                                                    -0.96",
	}
	assert.Equal(t, expected, got)
}

func TestPrettyFormatTruncatesToColumnWidth(t *testing.T) {
	ts := []Transaction{
		New(time.Date(1974, 7, 18, 0, 0, 0, 0, time.UTC),
			"Hubert Blaine Wolfeschlegelsteinhausenbergerdorff",
			"Cheque deposit", -1256, "baz"),
	}

	lines := strings.Split(PrettyFormat(ts), "\n")
	assert.Len(t, lines, 2)

	row := lines[1]
	payeeColumn := row[11:31]
	assert.Equal(t, "Hubert Blaine Wol...", payeeColumn)
	assert.True(t, strings.HasSuffix(row, "     -1.26"))
}

func TestPrettyFormatEmpty(t *testing.T) {
	got := PrettyFormat(nil)
	assert.Equal(t, "Date       Payee                Memo                                         Amount", got)
}
