package scan

import (
	"io/fs"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

const defaultMinMMapSize = 1 << 20 // 1MB

// Run performs a concurrent content scan rooted at opts.Root.
//
// It starts the worker pool first, walks the tree pushing every entry it
// encounters (type filtering happens in the workers), closes the queue once
// the walk finishes, and joins the pool. Per-entry walk errors are reported
// and skipped; a root-level failure truncates the walk, but the queue is
// still closed and the workers still drained so nothing blocks forever.
func Run(opts Options) Summary {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.MinMMapSize <= 0 {
		opts.MinMMapSize = defaultMinMMapSize
	}

	queue := newWorkQueue()
	sink := newResultSink(opts)
	var scanned atomic.Uint64

	start := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		w := &worker{
			queue:   queue,
			pred:    opts.Predicate,
			sink:    sink,
			scanned: &scanned,
			opts:    opts,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.run()
		}()
	}

	walkErr := walk(opts.Root, queue, sink)

	queue.Close()
	wg.Wait()

	matches, errors := sink.Counts()
	return Summary{
		FilesScanned: scanned.Load(),
		Matches:      matches,
		Errors:       errors,
		Elapsed:      time.Since(start),
		WalkErr:      walkErr,
	}
}

// walk pushes every reachable entry under root onto the queue. The root
// itself is not pushed; its children are. Subtree errors (permission denied,
// vanished entries, broken links) are reported per entry and skipped. Only a
// failure on the root itself is returned to the caller.
func walk(root string, queue *workQueue, sink *resultSink) error {
	var rootErr error

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				logError("Failed to walk root %s: %v", root, err)
				rootErr = err
				return err
			}
			logError("Failed to walk %s: %v", path, err)
			sink.Error(path, err)
			return nil
		}
		if path == root && d.IsDir() {
			return nil
		}
		queue.Push(path)
		return nil
	})

	return rootErr
}
