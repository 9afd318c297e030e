package transactions

import (
	"fmt"
	"strings"
)

// Column widths for Date, Payee, Memo and Amount.
var formatWidths = [4]int{10, 20, 40, 10}

// PrettyFormat renders transactions as a fixed-width table for diagnostic
// output. Every column is left-justified except Amount, which is
// right-justified and rendered as currency units with two decimals.
// Over-long fields are cut down with a trailing "..." so each column
// keeps its exact width.
func PrettyFormat(ts []Transaction) string {
	lines := make([]string, 0, len(ts)+1)
	lines = append(lines, strings.Join([]string{
		pad(formatWidths[0], "Date"),
		pad(formatWidths[1], "Payee"),
		pad(formatWidths[2], "Memo"),
		padRight(formatWidths[3], "Amount"),
	}, " "))

	for _, t := range ts {
		amount := fmt.Sprintf("%.2f", float64(t.milliunits)/1000)
		lines = append(lines, strings.Join([]string{
			pad(formatWidths[0], t.ISODate()),
			pad(formatWidths[1], t.payeeName),
			pad(formatWidths[2], t.memo),
			padRight(formatWidths[3], amount),
		}, " "))
	}

	return strings.Join(lines, "\n")
}

func pad(width int, s string) string {
	s = truncate(width, s)
	return s + strings.Repeat(" ", width-len([]rune(s)))
}

func padRight(width int, s string) string {
	s = truncate(width, s)
	return strings.Repeat(" ", width-len([]rune(s))) + s
}

func truncate(width int, s string) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
