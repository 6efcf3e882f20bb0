package scan

import (
	"io"
	"time"
)

// Options contains scan parameters
type Options struct {
	Root        string        // Root directory to scan
	Predicate   Predicate     // Content match predicate applied by workers
	Workers     int           // Number of worker goroutines (coerced to 1 if <= 0)
	UseMMap     bool          // Use memory mapping for large files
	MinMMapSize int64         // Minimum file size for using mmap
	Dedupe      bool          // Suppress matches with an already-seen content hash
	MatchOut    io.Writer     // Destination for match lines (default os.Stdout)
	ErrOut      io.Writer     // Destination for per-file error lines (default os.Stderr)
	OnScan      func()        // Called once per scanned regular file (progress hook)
}

// MatchRecord represents a single matching file
type MatchRecord struct {
	Path string
	Size int64
	Hash uint64 // Quick content hash for duplicate detection
}

// Summary reports the outcome of a completed scan
type Summary struct {
	FilesScanned uint64
	Matches      uint64
	Errors       uint64
	Elapsed      time.Duration
	WalkErr      error // Root-level walk failure, if any; the scan still drains
}
