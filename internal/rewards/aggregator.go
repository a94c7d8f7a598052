// Package rewards computes portfolio value and profit/loss from the
// raw reward ledger. Aggregates are derived fresh on every read and
// never persisted.
package rewards

import (
	"github.com/e-n-s-o/enso/internal/models"
	"github.com/e-n-s-o/enso/internal/prices"
	"github.com/shopspring/decimal"
)

// TokenAggregate sums one token's ledger rows and values them at the
// live price. When no price is known, CurrentValue is zero and
// PriceKnown is false so rendering can tell zero from unknown.
type TokenAggregate struct {
	Token               string          `json:"token"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	TotalUsdValueAtEarn decimal.Decimal `json:"total_usd_value_at_earn"`
	CurrentValue        decimal.Decimal `json:"current_value"`
	ProfitLoss          decimal.Decimal `json:"profit_loss"`
	PriceKnown          bool            `json:"price_known"`
}

type Totals struct {
	CurrentValue      decimal.Decimal `json:"current_value"`
	ValueAtEarn       decimal.Decimal `json:"value_at_earn"`
	ProfitLoss        decimal.Decimal `json:"profit_loss"`
	ProfitLossPercent decimal.Decimal `json:"profit_loss_percent"`
}

var hundred = decimal.NewFromInt(100)

// Aggregate partitions entries by token (exact match on the stored
// ticker, which handlers uppercase at entry time) and sums amounts and
// at-earn values, then values each group at the supplied live price.
// Entries without a recorded at-earn value contribute zero to that sum
// but their full amount to the total. A token without a price values
// at zero. Pure and total: an empty input yields all-zero totals, and
// the percent is defined as exactly zero when nothing was earned in
// USD terms.
func Aggregate(entries []models.RewardEntry, priceMap map[string]prices.TokenPrice) (map[string]TokenAggregate, Totals) {
	perToken := make(map[string]TokenAggregate, len(priceMap))

	for _, e := range entries {
		agg := perToken[e.Token]
		agg.Token = e.Token
		agg.TotalAmount = agg.TotalAmount.Add(e.Amount)
		if e.UsdValueAtEarn != nil {
			agg.TotalUsdValueAtEarn = agg.TotalUsdValueAtEarn.Add(*e.UsdValueAtEarn)
		}
		perToken[e.Token] = agg
	}

	var totals Totals
	for token, agg := range perToken {
		if p, ok := priceMap[token]; ok {
			agg.CurrentValue = agg.TotalAmount.Mul(p.PriceUsd)
			agg.PriceKnown = true
		}
		agg.ProfitLoss = agg.CurrentValue.Sub(agg.TotalUsdValueAtEarn)
		perToken[token] = agg

		totals.CurrentValue = totals.CurrentValue.Add(agg.CurrentValue)
		totals.ValueAtEarn = totals.ValueAtEarn.Add(agg.TotalUsdValueAtEarn)
	}

	totals.ProfitLoss = totals.CurrentValue.Sub(totals.ValueAtEarn)
	if totals.ValueAtEarn.IsPositive() {
		totals.ProfitLossPercent = totals.ProfitLoss.Mul(hundred).Div(totals.ValueAtEarn)
	}

	return perToken, totals
}

// Tokens returns the distinct ticker set of the given entries, in
// first-seen order, for the batched price lookup.
func Tokens(entries []models.RewardEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	tokens := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Token]; ok {
			continue
		}
		seen[e.Token] = struct{}{}
		tokens = append(tokens, e.Token)
	}
	return tokens
}
