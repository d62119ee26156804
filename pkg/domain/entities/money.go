package entities

import "github.com/shopspring/decimal"

// Cents converts an amount to hundredths, rounding half away from zero.
// Money and percentages are persisted in this form.
func Cents(amount decimal.Decimal) int64 {
	return amount.Round(2).Shift(2).IntPart()
}

// RoundMoney rounds an amount to the cent, the precision every store keeps.
// Validation runs on the rounded value so 0.004 counts as zero everywhere.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// FromCents converts hundredths back to a decimal amount
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// SumAmounts adds up a list of amounts
func SumAmounts(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
