package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralPredicate(t *testing.T) {
	pred, err := NewPredicate(ModeLiteral, "needle", false)
	require.NoError(t, err)

	assert.True(t, pred([]byte("needle")))
	assert.True(t, pred([]byte("a haystack with a needle in it")))
	assert.False(t, pred([]byte("hay")))
	assert.False(t, pred(nil))
}

func TestLiteralPredicateRawBytes(t *testing.T) {
	// Substring match over raw bytes, no encoding interpretation.
	pred, err := NewPredicate(ModeLiteral, "\x00\xff", false)
	require.NoError(t, err)

	assert.True(t, pred([]byte{0x01, 0x00, 0xff, 0x02}))
	assert.False(t, pred([]byte{0x00, 0x01, 0xff}))
}

func TestLiteralPredicateIgnoreCase(t *testing.T) {
	pred, err := NewPredicate(ModeLiteral, "Needle", true)
	require.NoError(t, err)

	assert.True(t, pred([]byte("NEEDLE")))
	assert.True(t, pred([]byte("a needle")))
	assert.False(t, pred([]byte("thread")))
}

func TestLiteralPredicateIgnoreCaseQuotesMetaChars(t *testing.T) {
	pred, err := NewPredicate(ModeLiteral, "a.b", true)
	require.NoError(t, err)

	assert.True(t, pred([]byte("xA.By")))
	assert.False(t, pred([]byte("aXb")), "dot must match literally, not as a wildcard")
}

func TestRegexPredicateAnchored(t *testing.T) {
	pred, err := NewPredicate(ModeRegex, "^abc", false)
	require.NoError(t, err)

	assert.True(t, pred([]byte("abcdef")))
	assert.False(t, pred([]byte("xabcdef")))
}

func TestRegexPredicateMatchesAnywhere(t *testing.T) {
	pred, err := NewPredicate(ModeRegex, "ab+c", false)
	require.NoError(t, err)

	assert.True(t, pred([]byte("xx abbbc yy")))
	assert.False(t, pred([]byte("ac")))
}

func TestRegexPredicateIgnoreCase(t *testing.T) {
	pred, err := NewPredicate(ModeRegex, "^abc", true)
	require.NoError(t, err)

	assert.True(t, pred([]byte("ABCdef")))
	assert.False(t, pred([]byte("xABC")))
}

func TestInvalidRegexIsConfigurationError(t *testing.T) {
	pred, err := NewPredicate(ModeRegex, "[unclosed", false)
	assert.Error(t, err)
	assert.Nil(t, pred)
}

func TestUnknownModeIsConfigurationError(t *testing.T) {
	pred, err := NewPredicate(Mode(42), "x", false)
	assert.Error(t, err)
	assert.Nil(t, pred)
}
