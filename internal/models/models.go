package models

import "github.com/shopspring/decimal"

// Direction classifies a signed deviation for presentation.
type Direction string

const (
	Positive Direction = "positive"
	Negative Direction = "negative"
	Neutral  Direction = "neutral"
)

// Classify maps a signed value to its presentation direction. Zero is neutral.
func Classify(v float64) Direction {
	switch {
	case v > 0:
		return Positive
	case v < 0:
		return Negative
	}
	return Neutral
}

// ValuedLineItem is one holding joined with its resolved price. The display
// fields carry en-GB grouped strings; RawTotal keeps the numeric value the
// aggregation and ranking run on.
type ValuedLineItem struct {
	Symbol        string          `json:"symbol"`
	SharesHeld    decimal.Decimal `json:"sharesHeld"`
	PricePerShare string          `json:"pricePerShare"`
	TotalValue    string          `json:"totalValue"`
	RawTotal      float64         `json:"-"`
}

// PortfolioSnapshot is the ordered, aggregated result of one valuation pass.
// Items are sorted by total value, descending.
type PortfolioSnapshot struct {
	Items          []ValuedLineItem `json:"items"`
	TotalValue     float64          `json:"-"`
	FormattedTotal string           `json:"totalValue"`
}

// DeviationStats compares a portfolio total against a fixed baseline.
// AbsoluteDeviation is signed, despite the name.
type DeviationStats struct {
	AbsoluteDeviation float64   `json:"absoluteDeviation"`
	PercentageChange  float64   `json:"percentageChange"`
	Direction         Direction `json:"direction"`
}

// Draft is the add-or-update form payload.
type Draft struct {
	Symbol     string          `json:"symbol"`
	SharesHeld decimal.Decimal `json:"sharesHeld"`
}

// EditSession tracks which holding, if any, is being modified. While
// IsEditing is true the symbol is locked to EditingSymbol and a submit is an
// update, never a create. At most one session is live per portfolio.
type EditSession struct {
	IsEditing     bool   `json:"isEditing"`
	EditingSymbol string `json:"editingSymbol"`
	Draft         Draft  `json:"draft"`
}

// PortfolioView is the read-only view model served to the presentation
// layer. Snapshot may be stale while State is "loading" or "error"; State is
// authoritative for freshness.
type PortfolioView struct {
	State         string             `json:"state"`
	Snapshot      *PortfolioSnapshot `json:"snapshot,omitempty"`
	Deviation     *DeviationStats    `json:"deviation,omitempty"`
	BaselineValue string             `json:"baselineValue,omitempty"`
	EditSession   EditSession        `json:"editSession"`
	LastError     string             `json:"lastError,omitempty"`
}
