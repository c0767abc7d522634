package palette

import (
	"fmt"
	"strconv"
	"strings"

	"quoteboard/internal/domain/market"
)

const (
	AnsiReset    = "\033[0m"
	AnsiDim      = "\033[2m"
	AnsiClearEOL = "\033[K"
)

// TrueColor turns a "#rrggbb" color into a 24-bit ANSI foreground escape.
func TrueColor(hex string) (string, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) != 6 {
		return "", fmt.Errorf("palette: bad hex color %q", hex)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return "", fmt.Errorf("palette: bad hex color %q: %w", hex, err)
	}
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", v>>16&0xff, v>>8&0xff, v&0xff), nil
}

// Ansi returns the terminal escape for ct's solid color.
func Ansi(ct market.ChangeType) string {
	esc, err := TrueColor(Solid(ct))
	if err != nil {
		// only reachable with a malformed solid color
		panic(err)
	}
	return esc
}

// Colorize wraps s in ct's terminal color.
func Colorize(s string, ct market.ChangeType) string {
	return Ansi(ct) + s + AnsiReset
}

// Dim renders s with the dim attribute.
func Dim(s string) string {
	return AnsiDim + s + AnsiReset
}
