package scan

import (
	"os"
	"sync/atomic"

	"github.com/cespare/xxhash"
	"github.com/edsrzf/mmap-go"
)

// worker drains the queue until it signals no more work. For each entry it
// classifies the path, counts regular files, loads content, and applies the
// predicate. A failure on one file is reported and never stops the loop.
type worker struct {
	queue   *workQueue
	pred    Predicate
	sink    *resultSink
	scanned *atomic.Uint64
	opts    Options
}

func (w *worker) run() {
	for {
		path, ok := w.queue.Pop()
		if !ok {
			return
		}
		w.process(path)
	}
}

func (w *worker) process(path string) {
	info, err := os.Lstat(path)
	if err != nil {
		// The entry vanished between walk and dequeue, or stat is
		// forbidden. Not a regular file as far as the counter goes.
		w.sink.Error(path, err)
		return
	}

	// Lstat never follows symlinks, so links to files are skipped along
	// with directories, sockets and devices.
	if !info.Mode().IsRegular() {
		logDebug("Skipping non-regular entry: %s", path)
		return
	}

	// The counter covers every regular file examined, including ones
	// whose read fails below.
	w.scanned.Add(1)
	if w.opts.OnScan != nil {
		w.opts.OnScan()
	}

	if w.opts.UseMMap && info.Size() >= w.opts.MinMMapSize {
		if w.processByMMap(path, info) {
			return
		}
		// mmap failed, fall through to the buffered read.
	}

	data, err := os.ReadFile(path)
	if err != nil {
		w.sink.Error(path, err)
		return
	}

	if w.pred(data) {
		w.sink.Match(MatchRecord{
			Path: path,
			Size: info.Size(),
			Hash: xxhash.Sum64(data),
		})
	}
}

// processByMMap tests a file through a memory mapping instead of a buffered
// read. Match semantics are identical: the predicate sees the whole content.
// Returns false if the file should be retried via the regular path.
func (w *worker) processByMMap(path string, info os.FileInfo) bool {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		w.sink.Error(path, err)
		return true // open will not succeed for ReadFile either
	}
	defer f.Close()

	if info.Size() == 0 {
		// Zero-length mappings fail on some platforms; the buffered path
		// handles empty files fine.
		return false
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		logError("Failed to mmap %s: %v", path, err)
		return false
	}
	defer data.Unmap()

	if w.pred(data) {
		w.sink.Match(MatchRecord{
			Path: path,
			Size: info.Size(),
			Hash: xxhash.Sum64(data),
		})
	}
	return true
}
