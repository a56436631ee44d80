// Package format formata valores monetários e contagens para exibição.
package format

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency formata um valor como "$12,345.68" com o número de casas indicado.
// Valores negativos ficam como "-$1,234".
func Currency(value decimal.Decimal, places int32) string {
	fixed := value.StringFixed(places)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(fixed, ".")
	out := sign + "$" + groupDigits(intPart)
	if hasFrac {
		out += "." + fracPart
	}
	return out
}

// Integer formata uma contagem com separador de milhar: 12345 -> "12,345".
func Integer(n int) string {
	return printer.Sprintf("%d", n)
}

// Rating formata a avaliação como está, mantendo ao menos uma casa: 4 -> "4.0", 4.25 -> "4.25".
func Rating(r float64) string {
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
