// Package palette holds the color tables for price changes.
//
// Colors are keyed by market.ChangeType, never by raw direction, so the
// Chinese red-up convention is already handled by market.Classify and the
// tables stay the same for every market: Positive is green and Negative is
// red.
package palette

import (
	"fmt"

	"quoteboard/internal/domain/market"
)

// Gradient is an area-fill pair: Start is the opaque end, End is transparent.
type Gradient struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Badge is the background/text pair of a compact percentage badge.
type Badge struct {
	Background string `json:"bg"`
	Text       string `json:"text"`
}

var solids = map[market.ChangeType]string{
	market.Positive: "#15803d",
	market.Negative: "#E25C5C",
	market.Neutral:  "#707070",
}

var gradients = map[market.ChangeType]Gradient{
	market.Positive: {Start: "rgba(21, 128, 61, 0.6)", End: "rgba(21, 128, 61, 0)"},
	market.Negative: {Start: "rgba(226, 92, 92, 0.5)", End: "rgba(226, 92, 92, 0)"},
	market.Neutral:  {Start: "rgba(112, 112, 112, 0.5)", End: "rgba(112, 112, 112, 0)"},
}

var badges = map[market.ChangeType]Badge{
	market.Positive: {Background: "#f0fdf4", Text: "#15803d"},
	market.Negative: {Background: "#FFEAEA", Text: "#E25C5C"},
	market.Neutral:  {Background: "#F5F5F5", Text: "#707070"},
}

func init() {
	if err := verify(); err != nil {
		panic(err)
	}
}

// verify checks that every table covers exactly the known change types.
func verify() error {
	types := market.ChangeTypes()
	if len(solids) != len(types) || len(gradients) != len(types) || len(badges) != len(types) {
		return fmt.Errorf("palette: tables must have exactly %d entries", len(types))
	}
	for _, ct := range types {
		if solids[ct] == "" {
			return fmt.Errorf("palette: missing solid color for %s", ct)
		}
		if g := gradients[ct]; g.Start == "" || g.End == "" {
			return fmt.Errorf("palette: missing gradient for %s", ct)
		}
		if b := badges[ct]; b.Background == "" || b.Text == "" {
			return fmt.Errorf("palette: missing badge for %s", ct)
		}
	}
	return nil
}

// Solid returns the single color for ct. It panics on an unknown change
// type: there is no fallback color.
func Solid(ct market.ChangeType) string {
	c, ok := solids[ct]
	if !ok {
		panic(fmt.Sprintf("palette: no solid color for change type %q", ct))
	}
	return c
}

// GradientFor returns the area-fill gradient for ct. It panics on an
// unknown change type.
func GradientFor(ct market.ChangeType) Gradient {
	g, ok := gradients[ct]
	if !ok {
		panic(fmt.Sprintf("palette: no gradient for change type %q", ct))
	}
	return g
}

// BadgeFor returns the badge colors for ct. It panics on an unknown
// change type.
func BadgeFor(ct market.ChangeType) Badge {
	b, ok := badges[ct]
	if !ok {
		panic(fmt.Sprintf("palette: no badge for change type %q", ct))
	}
	return b
}

// Solids returns a copy of the solid color table.
func Solids() map[market.ChangeType]string {
	out := make(map[market.ChangeType]string, len(solids))
	for k, v := range solids {
		out[k] = v
	}
	return out
}

// Gradients returns a copy of the gradient table.
func Gradients() map[market.ChangeType]Gradient {
	out := make(map[market.ChangeType]Gradient, len(gradients))
	for k, v := range gradients {
		out[k] = v
	}
	return out
}

// Badges returns a copy of the badge table.
func Badges() map[market.ChangeType]Badge {
	out := make(map[market.ChangeType]Badge, len(badges))
	for k, v := range badges {
		out[k] = v
	}
	return out
}
