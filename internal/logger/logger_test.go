package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestDebugToggle(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, "json")
	SetDebug(false)

	Debug("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("debug log should be suppressed, got %q", buf.String())
	}

	SetDebug(true)
	Debug("visible %d", 2)
	if !strings.Contains(buf.String(), "visible 2") {
		t.Errorf("expected debug output, got %q", buf.String())
	}

	buf.Reset()
	Error("boom: %s", "x")
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Errorf("expected error level field, got %q", buf.String())
	}
	SetDebug(false)
}
