package portfolio

import (
	"sort"

	"folio/internal/models"
	"folio/internal/services/override"

	"github.com/shopspring/decimal"
)

// BuildPlan decides, per balance, which canonical id to price it under.
// A contract-address override wins over a symbol override; a present
// override with a nil value excludes the token from price lookup while
// keeping it in the display list.
func BuildPlan(balances []models.TokenBalance, ov override.ResolvedOverrides) PricingPlan {
	plan := PricingPlan{
		IDs:      make([]string, len(balances)),
		Excluded: make([]bool, len(balances)),
	}

	for i, tb := range balances {
		if v, ok := ov.AddressValue(tb.TokenAddress); ok {
			if v == nil {
				plan.Excluded[i] = true
			} else {
				plan.IDs[i] = *v
			}
			continue
		}
		if v, ok := ov.SymbolValue(tb.Symbol); ok {
			if v == nil {
				plan.Excluded[i] = true
			} else {
				plan.IDs[i] = *v
			}
		}
	}
	return plan
}

// Aggregate applies prices to the balances and computes the portfolio
// total. Tokens the plan excludes keep their balance but contribute
// nothing to the total. Tokens without a plan id keep whatever PriceUSD
// they already carry (the per-symbol fallback fills it in upstream).
// Output is sorted by symbol for display stability.
func Aggregate(balances []models.TokenBalance, plan PricingPlan, prices map[string]float64) ([]models.TokenBalance, decimal.Decimal) {
	tokens := make([]models.TokenBalance, 0, len(balances))
	total := decimal.Zero

	for i, tb := range balances {
		if plan.Excluded[i] {
			tb.Excluded = true
			tb.PriceUSD = decimal.Zero
			tb.ValueUSD = decimal.Zero
			tokens = append(tokens, tb)
			continue
		}

		if id := plan.IDs[i]; id != "" {
			if p, ok := prices[id]; ok {
				tb.PriceUSD = decimal.NewFromFloat(p)
			}
		}
		tb.ValueUSD = tb.Balance.Mul(tb.PriceUSD)
		total = total.Add(tb.ValueUSD)
		tokens = append(tokens, tb)
	}

	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].Symbol < tokens[j].Symbol
	})
	return tokens, total
}
