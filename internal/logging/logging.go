package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Logger is the component-scoped logger shared by every layer and host.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// FileLogger writes one line per call. The soundtrack callback and the frame
// loop can log concurrently, so writes are serialized.
type FileLogger struct {
	w   io.Writer
	mu  *sync.Mutex
	now func() time.Time
}

func NewFileLogger(w io.Writer) FileLogger {
	return FileLogger{w: w, mu: &sync.Mutex{}, now: time.Now}
}

func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	l.write("INFO", component, format, args...)
}

func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	l.write("ERROR", component, format, args...)
}

func (l FileLogger) write(level, component, format string, args ...interface{}) {
	if l.w == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	writeLog(l.w, l.now(), level, component, format, args...)
}

func writeLog(w io.Writer, at time.Time, level, component, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, at.Format(time.RFC3339)+" ["+level+"] "+component+": "+msg+"\n")
}

// OrNoop returns l, or a NoopLogger when l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return l
}

// OpenDebugLog appends to path when debug is set. An open failure is
// reported on stderr and leaves logging off. The close func is never nil.
func OpenDebugLog(debug bool, path string, stderr io.Writer) (Logger, func() error) {
	noClose := func() error { return nil }
	if !debug {
		return NoopLogger{}, noClose
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		if stderr != nil {
			fmt.Fprintln(stderr, "debug log open error:", err)
		}
		return NoopLogger{}, noClose
	}
	l := NewFileLogger(f)
	l.Infof("main", "debug logging enabled")
	return l, f.Close
}
