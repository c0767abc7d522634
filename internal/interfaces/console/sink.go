package console

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"quoteboard/internal/application/port"
)

type Sink struct {
	mu  sync.Mutex
	out io.Writer
}

func NewSink() port.Sink { return NewWriterSink(os.Stdout) }

func NewWriterSink(w io.Writer) *Sink { return &Sink{out: w} }

func (s *Sink) WriteLive(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprint(s.out, line) // no newline
	return err
}

// WriteSnapshot prints the timestamped line and leaves an empty line; the
// live line is redrawn on the next change.
func (s *Sink) WriteSnapshot(ts time.Time, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.out, "\n%s %s\n\n", ts.Format("2006-01-02 15:04:05"), line)
	return err
}

func (s *Sink) NewLine() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprint(s.out, "\n")
	return err
}
