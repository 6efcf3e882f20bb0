package scan

import (
	"bytes"
	"fmt"
	"regexp"
)

// Predicate reports whether file content matches the configured pattern.
// Predicates are stateless and safe for concurrent use by all workers.
type Predicate func(data []byte) bool

// Mode selects the built-in predicate variant.
type Mode int

const (
	ModeLiteral Mode = iota // raw byte substring
	ModeRegex               // regular expression, matched anywhere in content
)

// NewPredicate builds the predicate for the given mode and pattern. An
// invalid regex is a configuration error reported here, before any worker
// starts; it is never a per-file error.
func NewPredicate(mode Mode, pattern string, ignoreCase bool) (Predicate, error) {
	switch mode {
	case ModeLiteral:
		if ignoreCase {
			// Case folding over raw bytes is rune-sensitive, so the
			// insensitive literal goes through the regexp engine.
			re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(pattern))
			if err != nil {
				return nil, fmt.Errorf("compile literal pattern: %w", err)
			}
			return re.Match, nil
		}
		needle := []byte(pattern)
		return func(data []byte) bool {
			return bytes.Contains(data, needle)
		}, nil
	case ModeRegex:
		expr := pattern
		if ignoreCase {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		return re.Match, nil
	default:
		return nil, fmt.Errorf("unknown match mode %d", mode)
	}
}
