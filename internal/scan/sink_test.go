package scan

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer guards a bytes.Buffer so the test can hand the same writer to
// the sink and read it back afterwards.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSinkWritesMatchAndErrorLines(t *testing.T) {
	var out, errOut bytes.Buffer
	sink := newResultSink(Options{MatchOut: &out, ErrOut: &errOut})

	sink.Match(MatchRecord{Path: "/tmp/a.txt", Size: 3, Hash: 1})
	sink.Error("/tmp/c.txt", errors.New("permission denied"))

	assert.Equal(t, "/tmp/a.txt\n", out.String())
	assert.Equal(t, "[error] /tmp/c.txt: permission denied\n", errOut.String())

	matches, errs := sink.Counts()
	assert.Equal(t, uint64(1), matches)
	assert.Equal(t, uint64(1), errs)
}

func TestSinkRecordsNeverInterleave(t *testing.T) {
	out := &syncBuffer{}
	errOut := &syncBuffer{}
	sink := newResultSink(Options{MatchOut: out, ErrOut: errOut})

	const writers = 8
	const perWriter = 200

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				path := fmt.Sprintf("/w%d/file-%d.txt", id, j)
				sink.Match(MatchRecord{Path: path, Hash: uint64(id*perWriter + j)})
				sink.Error(path, errors.New("boom"))
			}
		}(i)
	}
	wg.Wait()

	matchLines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, matchLines, writers*perWriter)
	for _, line := range matchLines {
		assert.Regexp(t, `^/w\d+/file-\d+\.txt$`, line)
	}

	errLines := strings.Split(strings.TrimRight(errOut.String(), "\n"), "\n")
	require.Len(t, errLines, writers*perWriter)
	for _, line := range errLines {
		assert.Regexp(t, `^\[error\] /w\d+/file-\d+\.txt: boom$`, line)
	}
}

func TestSinkDedupeSuppressesRepeatedHashes(t *testing.T) {
	var out bytes.Buffer
	sink := newResultSink(Options{MatchOut: &out, ErrOut: &bytes.Buffer{}, Dedupe: true})

	sink.Match(MatchRecord{Path: "/a", Hash: 7})
	sink.Match(MatchRecord{Path: "/b", Hash: 7})
	sink.Match(MatchRecord{Path: "/c", Hash: 8})

	assert.Equal(t, "/a\n/c\n", out.String())

	matches, _ := sink.Counts()
	assert.Equal(t, uint64(2), matches)
}

func TestSinkWithoutDedupeReportsEveryMatch(t *testing.T) {
	var out bytes.Buffer
	sink := newResultSink(Options{MatchOut: &out, ErrOut: &bytes.Buffer{}})

	sink.Match(MatchRecord{Path: "/a", Hash: 7})
	sink.Match(MatchRecord{Path: "/b", Hash: 7})

	assert.Equal(t, "/a\n/b\n", out.String())
}
