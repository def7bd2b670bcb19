// Package valueobject defines immutable domain value objects.
package valueobject

import "github.com/shopspring/decimal"

// Balance holds the derived balances of an account.
type Balance struct {
	// Exercised is the signed sum of cleared transactions only.
	Exercised decimal.Decimal
	// Projected is the signed sum of all transactions, pending included.
	Projected decimal.Decimal
}

// ZeroBalance returns a balance with both sums at zero.
func ZeroBalance() Balance {
	return Balance{
		Exercised: decimal.Zero,
		Projected: decimal.Zero,
	}
}

// Accumulate adds a transaction amount to the projected sum, and to the
// exercised sum as well when the transaction is cleared.
func (b Balance) Accumulate(amount decimal.Decimal, exercised bool) Balance {
	next := Balance{
		Exercised: b.Exercised,
		Projected: b.Projected.Add(amount),
	}
	if exercised {
		next.Exercised = b.Exercised.Add(amount)
	}
	return next
}
