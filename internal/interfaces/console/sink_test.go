package console

import (
	"bytes"
	"testing"
	"time"
)

func TestSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf)

	_ = s.WriteLive("\rlive")
	_ = s.WriteSnapshot(time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), "snap")
	_ = s.NewLine()

	want := "\rlive\n2024-03-01 09:30:00 snap\n\n\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
