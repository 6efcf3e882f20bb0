package scan

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Diagnostic logging goes to a file under the system temp directory, never
// to the output streams the sink owns. Messages are queued on a buffered
// channel and written by a single goroutine so workers never block on log
// I/O; debug messages are dropped when the buffer is full.

const (
	maxLogSize    = 10 * 1024 * 1024 // 10MB
	logBufferSize = 32 * 1024        // 32KB
)

type fileLogger struct {
	mu       sync.Mutex
	writer   *bufio.Writer
	file     *os.File
	disabled bool
}

var (
	globalLogger *fileLogger
	loggerOnce   sync.Once
	loggerBuffer = make(chan string, 1000)
)

func init() {
	go processLogs()
}

func processLogs() {
	for msg := range loggerBuffer {
		l := getLogger()
		if l == nil || l.disabled {
			continue
		}
		l.mu.Lock()
		if l.writer != nil {
			l.writer.WriteString(msg)
			if len(loggerBuffer) == 0 {
				l.writer.Flush()
			}
		}
		l.mu.Unlock()
	}
}

func getLogger() *fileLogger {
	loggerOnce.Do(initLogger)
	return globalLogger
}

func initLogger() {
	logDir := filepath.Join(os.TempDir(), "contentsearch-logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		globalLogger = &fileLogger{disabled: true}
		return
	}

	logPath := filepath.Join(logDir, "scan.log")
	rotateLogFile(logPath)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		globalLogger = &fileLogger{disabled: true}
		return
	}

	writer := bufio.NewWriterSize(file, logBufferSize)
	globalLogger = &fileLogger{writer: writer, file: file}

	fmt.Fprintf(writer, "\n=== Log started at %s ===\n", time.Now().Format("2006-01-02 15:04:05"))
	writer.Flush()
}

// rotateLogFile shifts the current log aside when it grows past maxLogSize
func rotateLogFile(logPath string) {
	if fi, err := os.Stat(logPath); err == nil && fi.Size() > maxLogSize {
		os.Rename(logPath, logPath+".1")
	}
}

// logDebug writes a debug message to the log file; dropped if the buffer is full
func logDebug(format string, args ...interface{}) {
	if l := getLogger(); l != nil && !l.disabled {
		select {
		case loggerBuffer <- fmt.Sprintf("[DEBUG] "+format+"\n", args...):
		default:
		}
	}
}

// logError writes an error message to the log file
func logError(format string, args ...interface{}) {
	if l := getLogger(); l != nil && !l.disabled {
		loggerBuffer <- fmt.Sprintf("[ERROR] "+format+"\n", args...)
	}
}

// CloseLogger flushes and closes the log file
func CloseLogger() {
	l := getLogger()
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer != nil {
		l.writer.Flush()
	}
	if l.file != nil {
		l.file.Sync()
		l.file.Close()
		l.file = nil
	}
	l.disabled = true
}
