package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
)

func amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}

func TestBalanceAccumulate(t *testing.T) {
	t.Run("zero balance starts both sums at zero", func(t *testing.T) {
		b := ZeroBalance()
		if !b.Exercised.IsZero() || !b.Projected.IsZero() {
			t.Fatalf("expected zero balance, got exercised=%s projected=%s", b.Exercised, b.Projected)
		}
	})

	t.Run("cleared transactions count towards both sums", func(t *testing.T) {
		b := ZeroBalance().
			Accumulate(amount(t, "1000.00"), true).
			Accumulate(amount(t, "-250.50"), true)

		if got := b.Exercised.String(); got != "749.5" {
			t.Errorf("expected exercised 749.5, got %s", got)
		}
		if got := b.Projected.String(); got != "749.5" {
			t.Errorf("expected projected 749.5, got %s", got)
		}
	})

	t.Run("pending transactions only move the projected sum", func(t *testing.T) {
		b := ZeroBalance().
			Accumulate(amount(t, "1000.00"), true).
			Accumulate(amount(t, "-99.99"), false)

		if got := b.Exercised.String(); got != "1000" {
			t.Errorf("expected exercised 1000, got %s", got)
		}
		if got := b.Projected.String(); got != "900.01" {
			t.Errorf("expected projected 900.01, got %s", got)
		}
	})

	t.Run("accumulate does not mutate the receiver", func(t *testing.T) {
		b := ZeroBalance()
		_ = b.Accumulate(amount(t, "5"), true)

		if !b.Exercised.IsZero() || !b.Projected.IsZero() {
			t.Fatal("expected original balance to stay zero")
		}
	})
}
