package payroll

import "github.com/shopspring/decimal"

// roundMoney rounds to cents, half away from zero. Every monetary field
// in a result passes through here exactly once, at assembly, so repeated
// runs over the same snapshot produce byte-identical output.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
