package board

import (
	"quoteboard/internal/domain/market"
	"quoteboard/internal/domain/palette"
	"quoteboard/internal/domain/quote"
	"quoteboard/internal/presentation/format"
)

// View is a quote with everything a frontend needs to draw it.
type View struct {
	quote.Quote
	PriceText  string            `json:"price_text"`
	ChangeText string            `json:"change_text"`
	ChangeType market.ChangeType `json:"change_type"`
	Color      string            `json:"color"`
	Gradient   palette.Gradient  `json:"gradient"`
	Badge      palette.Badge     `json:"badge"`
}

// Precision controls the number of fractional digits in rendered values.
type Precision struct {
	Price  int
	Change int
}

// DefaultPrecision renders prices and changes with two decimals.
var DefaultPrecision = Precision{Price: format.DefaultDecimals, Change: format.DefaultDecimals}

// NewView formats q. Rows without a price render "--" and are neutral.
func NewView(q quote.Quote, p Precision) View {
	v := View{Quote: q, PriceText: "--", ChangeText: "--", ChangeType: market.Neutral}
	if q.HasPrice {
		v.PriceText = format.FormatPrice(q.Price, q.Currency, p.Price)
		v.ChangeText = format.FormatChange(q.ChangePercent, "%", p.Change)
		v.ChangeType = q.ChangeType()
	}
	v.Color = palette.Solid(v.ChangeType)
	v.Gradient = palette.GradientFor(v.ChangeType)
	v.Badge = palette.BadgeFor(v.ChangeType)
	return v
}

// Views formats every quote.
func Views(quotes []quote.Quote, p Precision) []View {
	out := make([]View, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, NewView(q, p))
	}
	return out
}
