package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	Initialize(LevelDebug, &buf)

	Info("test info", "key", "value")
	Debug("test debug", "key", "value")
	Warn("test warn", "key", "value")
	Error("test error", "key", "value")

	if buf.Len() == 0 {
		t.Error("expected log output, got none")
	}
}

func TestQuietSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	Initialize(LevelQuiet, &buf)

	Info("should not appear")
	Debug("should not appear")

	if buf.Len() != 0 {
		t.Errorf("expected no output at quiet level, got %q", buf.String())
	}

	Warn("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("expected warn output at quiet level")
	}
}

func TestIsDebug(t *testing.T) {
	var buf bytes.Buffer

	Initialize(LevelInfo, &buf)
	if IsDebug() {
		t.Error("expected IsDebug() to be false at info level")
	}

	Initialize(LevelDebug, &buf)
	if !IsDebug() {
		t.Error("expected IsDebug() to be true at debug level")
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	Initialize(LevelInfo, &buf)

	Progress("fetching %d/%d", 1, 2)
	ProgressDone()

	out := buf.String()
	if !strings.Contains(out, "fetching 1/2") {
		t.Errorf("expected progress text in output, got %q", out)
	}
	if !strings.Contains(out, "done") {
		t.Errorf("expected done marker in output, got %q", out)
	}
}
