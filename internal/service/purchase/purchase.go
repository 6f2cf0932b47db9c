// Package purchase holds the fixed-point token arithmetic. Every monetary
// value travels as a shopspring decimal; floats would drift across the
// divide/multiply chains and compound into balance errors.
package purchase

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Tokens converts an amount of a cryptocurrency into a token quantity given
// the token's rate in that currency.
func Tokens(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Div(rate)
}

// ApplyBonus multiplies tokens by (1 + pct/100). With pct == 0 the amount is
// returned unchanged.
func ApplyBonus(tokens, pct decimal.Decimal) decimal.Decimal {
	if pct.IsZero() {
		return tokens
	}
	return tokens.Mul(decimal.NewFromInt(1).Add(pct.Div(hundred)))
}

// CreatorBonus is the share of a bonus-adjusted purchase owed to the promo
// code creator: purchased - purchased/(1 + pct/100).
func CreatorBonus(purchased, pct decimal.Decimal) decimal.Decimal {
	multiplier := decimal.NewFromInt(1).Add(pct.Div(hundred))
	return purchased.Sub(purchased.Div(multiplier))
}
