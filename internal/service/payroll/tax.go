package payroll

import (
	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/legalparams"
	"github.com/shopspring/decimal"
)

// matchBracket finds the single bracket containing taxableBase. A
// well-formed table ends with an open-ended bracket, so a miss only
// happens on malformed input.
func matchBracket(taxableBase decimal.Decimal, brackets []legalparams.TaxBracket) (int, bool) {
	for i, b := range brackets {
		if taxableBase.LessThan(b.From) {
			continue
		}
		if b.To == nil || taxableBase.LessThanOrEqual(*b.To) {
			return i, true
		}
	}
	return 0, false
}

// CalculateTax evaluates the progressive second-category table for a
// taxable base: base * factor - rebate, floored at zero. At the lower
// edge of a bracket the rebate can exceed the product; negative tax is
// never returned. An unmatched base is treated as exempt.
func CalculateTax(taxableBase decimal.Decimal, brackets []legalparams.TaxBracket) decimal.Decimal {
	i, ok := matchBracket(taxableBase, brackets)
	if !ok {
		return decimal.Zero
	}

	b := brackets[i]
	tax := taxableBase.Mul(b.Factor).Sub(b.Rebate)
	if tax.IsNegative() {
		return decimal.Zero
	}
	return tax
}

// FindTaxBracketIndex exposes the bracket lookup for breakdown display.
// Returns 0 when no bracket matches.
func FindTaxBracketIndex(taxableBase decimal.Decimal, brackets []legalparams.TaxBracket) int {
	i, _ := matchBracket(taxableBase, brackets)
	return i
}
