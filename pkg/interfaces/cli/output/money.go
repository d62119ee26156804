package output

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Money formats amounts with the locale's separators and a currency symbol
type Money struct {
	printer *message.Printer
	symbol  string
}

// NewMoney creates a formatter for a BCP 47 locale such as es-AR
func NewMoney(locale, symbol string) (*Money, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Money{printer: message.NewPrinter(tag), symbol: symbol}, nil
}

// Format renders d with two decimals, e.g. $12.345,50 for es-AR
func (m *Money) Format(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + m.symbol + m.printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}
