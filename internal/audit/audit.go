// Package audit implements the operation log: one timestamped entry per
// mutation, appended to a file. Recording is fire-and-forget: the caller
// never blocks on the file and never sees a write failure.
package audit

import (
	"log/slog"
	"os"
	"sync"
)

// Operation kinds recorded in the log.
const (
	KindCreate = "create"
	KindUpdate = "update"
	KindDelete = "delete"
	KindError  = "error"
)

// Entry is a single operation record.
type Entry struct {
	Kind        string
	Description string
	Details     map[string]any
}

// Recorder is the one-way sink mutation code reports to. Record must
// never block and never fail the caller.
type Recorder interface {
	Record(entry Entry)
}

// Logger appends entries to a file through a buffered channel and a
// single writer goroutine. When the buffer is full, entries are dropped
// rather than delaying the response.
type Logger struct {
	entries chan Entry
	done    chan struct{}
	file    *os.File
	sink    *slog.Logger
	diag    *slog.Logger
	closed  sync.Once
}

var _ Recorder = (*Logger)(nil)

// New opens (or creates) the audit file in append mode and starts the
// writer. bufferSize bounds the number of in-flight entries.
func New(path string, bufferSize int, diag *slog.Logger) (*Logger, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	if diag == nil {
		diag = slog.Default()
	}

	l := &Logger{
		entries: make(chan Entry, bufferSize),
		done:    make(chan struct{}),
		file:    file,
		sink:    slog.New(slog.NewJSONHandler(file, nil)),
		diag:    diag.With(slog.String("component", "audit")),
	}
	go l.run()
	return l, nil
}

// Record queues the entry. Drops it when the buffer is full or the
// logger is already closed; either way the caller proceeds untouched.
func (l *Logger) Record(entry Entry) {
	defer func() {
		// Send on closed channel after shutdown: swallow, per contract.
		_ = recover()
	}()

	select {
	case l.entries <- entry:
	default:
		l.diag.Warn("audit buffer full, entry dropped",
			slog.String("kind", entry.Kind),
			slog.String("description", entry.Description))
	}
}

// Close stops accepting entries, drains the queue and closes the file.
func (l *Logger) Close() {
	l.closed.Do(func() {
		close(l.entries)
		<-l.done
		if err := l.file.Close(); err != nil {
			l.diag.Warn("closing audit file", slog.String("error", err.Error()))
		}
	})
}

func (l *Logger) run() {
	defer close(l.done)
	for entry := range l.entries {
		attrs := make([]any, 0, len(entry.Details)+1)
		attrs = append(attrs, slog.String("kind", entry.Kind))
		for key, value := range entry.Details {
			attrs = append(attrs, slog.Any(key, value))
		}
		// slog handlers report write errors through their own path; a
		// failed append is invisible here and that is the contract.
		l.sink.Info(entry.Description, attrs...)
	}
}

// Discard is a Recorder that ignores everything. Used in tests and as a
// fallback when the audit file cannot be opened.
type Discard struct{}

func (Discard) Record(Entry) {}
