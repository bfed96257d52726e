package service

import (
	"math"
	"sort"
	"strconv"

	"stockfolio/internal/database"
	"stockfolio/internal/models"
)

// Valuate joins one holding with its price resolution. Pure; resolver
// errors and non-numeric prices collapse to a NaN price, which forces the
// total to the zero-equivalent string. The price itself is rendered
// unclamped, so an unresolved price is visible as "NaN" in the line item.
func Valuate(h database.Holding, q Quote, resolveErr error) models.ValuedLineItem {
	price := math.NaN()
	if resolveErr == nil {
		if v, err := strconv.ParseFloat(q.PricePerShare, 64); err == nil {
			price = v
		}
	}

	shares, _ := h.Shares.Float64()
	total := price * shares

	item := models.ValuedLineItem{
		Symbol:        h.Symbol,
		SharesHeld:    h.Shares,
		PricePerShare: FormatPrice(price),
	}
	if math.IsNaN(total) {
		item.TotalValue = ZeroTotal
		return item
	}
	item.TotalValue = FormatTotal(total)
	// Re-parse the formatted total so ranking and aggregation see exactly
	// the value the presentation layer sees.
	item.RawTotal = ParseAmount(item.TotalValue)
	return item
}

// Aggregate ranks valued line items by total value, descending, and sums the
// portfolio total. Ties keep their input order and nothing is dropped; a
// zero-valued item stays in the snapshot.
func Aggregate(items []models.ValuedLineItem) models.PortfolioSnapshot {
	out := make([]models.ValuedLineItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].RawTotal > out[j].RawTotal })

	var total float64
	for _, it := range out {
		total += it.RawTotal
	}
	return models.PortfolioSnapshot{
		Items:          out,
		TotalValue:     total,
		FormattedTotal: FormatTotal(total),
	}
}
