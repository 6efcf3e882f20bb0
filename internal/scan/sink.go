package scan

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// resultSink serializes match and error output from all workers onto two
// streams. A single mutex guards each full record write so the bytes of two
// records never interleave; the lock is distinct from the queue's lock so an
// I/O stall never throttles queue throughput.
type resultSink struct {
	mu       sync.Mutex
	matchOut io.Writer
	errOut   io.Writer
	dedupe   bool
	seen     map[uint64]bool
	matches  uint64
	errors   uint64

	matchColor *color.Color
	errColor   *color.Color
}

func newResultSink(opts Options) *resultSink {
	s := &resultSink{
		matchOut: opts.MatchOut,
		errOut:   opts.ErrOut,
		dedupe:   opts.Dedupe,
		seen:     make(map[uint64]bool),
	}
	if s.matchOut == nil {
		s.matchOut = os.Stdout
	}
	if s.errOut == nil {
		s.errOut = os.Stderr
	}
	// fatih/color disables itself for non-TTY output; only wire the colored
	// path for the process streams so tests against buffers see plain text.
	if s.matchOut == os.Stdout {
		s.matchColor = color.New(color.FgGreen)
	}
	if s.errOut == os.Stderr {
		s.errColor = color.New(color.FgRed)
	}
	return s
}

// Match emits one line for a matching file. With deduplication enabled,
// records whose content hash was already emitted are dropped.
func (s *resultSink) Match(rec MatchRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dedupe {
		if s.seen[rec.Hash] {
			logDebug("Duplicate content suppressed: %s", rec.Path)
			return
		}
		s.seen[rec.Hash] = true
	}
	s.matches++

	if s.matchColor != nil {
		s.matchColor.Fprintln(s.matchOut, rec.Path)
		return
	}
	fmt.Fprintln(s.matchOut, rec.Path)
}

// Error emits one diagnostic line for a file that could not be processed.
func (s *resultSink) Error(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errors++
	if s.errColor != nil {
		s.errColor.Fprintf(s.errOut, "[error] %s: %v\n", path, err)
		return
	}
	fmt.Fprintf(s.errOut, "[error] %s: %v\n", path, err)
}

// Counts returns the number of match and error records emitted so far.
func (s *resultSink) Counts() (matches, errors uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matches, s.errors
}
