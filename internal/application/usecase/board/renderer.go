package board

import (
	"encoding/json"
	"strings"

	"quoteboard/internal/domain/palette"
	"quoteboard/internal/domain/quote"
)

type RenderMode int

const (
	RenderLive RenderMode = iota
	RenderSnapshot
)

type Renderer struct {
	Precision Precision
}

func NewRenderer(p Precision) *Renderer {
	return &Renderer{Precision: p}
}

// Render draws the board as a single terminal line. Live lines start with
// a carriage return and clear the rest of the line so they can overwrite
// the previous one.
func (r *Renderer) Render(quotes []quote.Quote, mode RenderMode) string {
	var sb strings.Builder
	if mode == RenderLive {
		sb.WriteString("\r")
	}

	sb.WriteString(palette.Dim("[QB] "))

	for i, q := range quotes {
		if i > 0 {
			sb.WriteString(palette.Dim("  ||  "))
		}
		v := NewView(q, r.Precision)

		label := q.Symbol
		if label == "" {
			label = q.Ticker
		}
		sb.WriteString(label)
		sb.WriteString(" ")
		if !q.HasPrice {
			sb.WriteString(palette.Dim(v.PriceText))
			continue
		}
		sb.WriteString(palette.Colorize(v.PriceText, v.ChangeType))
		sb.WriteString(" ")
		sb.WriteString(palette.Colorize(v.ChangeText, v.ChangeType))
	}

	if mode == RenderLive {
		sb.WriteString(palette.AnsiClearEOL)
	}
	return sb.String()
}

// Payload encodes the board as JSON for snapshot storage.
func (r *Renderer) Payload(quotes []quote.Quote) (string, error) {
	b, err := json.Marshal(Views(quotes, r.Precision))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
