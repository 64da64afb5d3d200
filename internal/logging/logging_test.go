package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewFileLogger(&buf)
	l.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	l.Infof("starfield", "mounted %dx%d", 800, 600)
	l.Errorf("soundtrack", "decode failed: %v", "bad header")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if want := "2024-03-01T12:00:00Z [INFO] starfield: mounted 800x600"; lines[0] != want {
		t.Errorf("line 0 = %q, want %q", lines[0], want)
	}
	if want := "2024-03-01T12:00:00Z [ERROR] soundtrack: decode failed: bad header"; lines[1] != want {
		t.Errorf("line 1 = %q, want %q", lines[1], want)
	}
}

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Error("nil logger should become NoopLogger")
	}
	var buf bytes.Buffer
	l := NewFileLogger(&buf)
	if _, ok := OrNoop(l).(FileLogger); !ok {
		t.Error("non-nil logger should be returned unchanged")
	}
}

func TestZeroFileLoggerIsSilent(t *testing.T) {
	var l FileLogger
	l.Infof("x", "ignored")
}

func TestOpenDebugLog(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		var stderr bytes.Buffer
		l, closeLog := OpenDebugLog(false, filepath.Join(t.TempDir(), "debug.log"), &stderr)
		if _, ok := l.(NoopLogger); !ok {
			t.Errorf("logger = %T, want NoopLogger", l)
		}
		if err := closeLog(); err != nil {
			t.Fatal(err)
		}
		if stderr.Len() != 0 {
			t.Errorf("stderr = %q", stderr.String())
		}
	})

	t.Run("enabled", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "debug.log")
		var stderr bytes.Buffer
		l, closeLog := OpenDebugLog(true, path, &stderr)
		l.Infof("game", "resize %dx%d", 10, 20)
		if err := closeLog(); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{"[INFO] main: debug logging enabled", "[INFO] game: resize 10x20"} {
			if !strings.Contains(string(data), want) {
				t.Errorf("log missing %q:\n%s", want, data)
			}
		}
	})

	t.Run("open failure goes to stderr", func(t *testing.T) {
		var stderr bytes.Buffer
		path := filepath.Join(t.TempDir(), "missing", "debug.log")
		l, closeLog := OpenDebugLog(true, path, &stderr)
		if _, ok := l.(NoopLogger); !ok {
			t.Errorf("logger = %T, want NoopLogger", l)
		}
		if err := closeLog(); err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(stderr.String(), "debug log open error:") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})
}
