package port

import "time"

// Sink receives rendered board lines.
type Sink interface {
	// WriteLive replaces the current line in place.
	WriteLive(line string) error
	// WriteSnapshot prints a timestamped board that stays on screen.
	WriteSnapshot(ts time.Time, line string) error
	// NewLine ends the live line, e.g. on shutdown.
	NewLine() error
}
