package logger

import (
	"fmt"
	"sync"
)

// Reporter is the logging and progress sink handed to the analysis core.
type Reporter interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Progress(done, total int, label string)
}

type globalReporter struct{}

// Global returns a Reporter backed by the package-level logger.
func Global() Reporter { return globalReporter{} }

func (globalReporter) Debug(format string, args ...interface{}) { Debug(format, args...) }
func (globalReporter) Info(format string, args ...interface{})  { Info(format, args...) }
func (globalReporter) Warn(format string, args ...interface{})  { Warn(format, args...) }
func (globalReporter) Error(format string, args ...interface{}) { Error(format, args...) }
func (globalReporter) Progress(done, total int, label string)   { Progress(done, total, label) }

type nopReporter struct{}

// Nop returns a Reporter that drops everything.
func Nop() Reporter { return nopReporter{} }

func (nopReporter) Debug(string, ...interface{}) {}
func (nopReporter) Info(string, ...interface{})  {}
func (nopReporter) Warn(string, ...interface{})  {}
func (nopReporter) Error(string, ...interface{}) {}
func (nopReporter) Progress(int, int, string)    {}

// Entry is one message captured by a Recorder.
type Entry struct {
	Level   LogLevel
	Message string
}

// Recorder keeps every reported message in memory. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(level LogLevel, format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (r *Recorder) Debug(format string, args ...interface{}) { r.add(DEBUG, format, args...) }
func (r *Recorder) Info(format string, args ...interface{})  { r.add(INFO, format, args...) }
func (r *Recorder) Warn(format string, args ...interface{})  { r.add(WARN, format, args...) }
func (r *Recorder) Error(format string, args ...interface{}) { r.add(ERROR, format, args...) }
func (r *Recorder) Progress(done, total int, label string) {
	r.add(PROGRESS, "%s %d/%d", label, done, total)
}

// Entries returns a copy of the captured messages, optionally filtered by level.
func (r *Recorder) Entries(levels ...LogLevel) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if len(levels) == 0 {
			out = append(out, e)
			continue
		}
		for _, l := range levels {
			if e.Level == l {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
