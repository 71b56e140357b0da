// Package currency renders and parses Chilean peso amounts. Amounts are
// integer pesos everywhere inside the service; the formatted string exists
// only at the display boundary.
package currency

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-CL"))

// Format renders an amount as "$1.990". Zero renders as "$0", which doubles
// as the no-price indicator.
func Format(amount int64) string {
	if amount <= 0 {
		return "$0"
	}
	return "$" + printer.Sprintf("%d", amount)
}

// Parse extracts an integer peso amount from a currency string by dropping
// every non-digit rune ("$1.990" -> 1990). Anything without digits parses
// to 0.
func Parse(s string) int64 {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
