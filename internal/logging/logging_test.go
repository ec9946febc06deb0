// Package logging provides tests for logger construction.
package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"bogus", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		in   string
		want log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
	}
	for _, tt := range tests {
		if got := ParseFormatter(tt.in); got != tt.want {
			t.Errorf("ParseFormatter(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidLevelAndFormat(t *testing.T) {
	if !ValidLevel("warn") || ValidLevel("loud") {
		t.Error("ValidLevel gave unexpected results")
	}
	if !ValidFormat("logfmt") || ValidFormat("xml") {
		t.Error("ValidFormat gave unexpected results")
	}
}

func TestNew(t *testing.T) {
	t.Run("text output respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, Options{Level: "info", Format: "text", Prefix: "tasks"})

		logger.Debug("hidden")
		logger.Info("task added", "id", "abc")

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("debug line should be filtered: %s", out)
		}
		if !strings.Contains(out, "task added") || !strings.Contains(out, "abc") {
			t.Errorf("missing info line: %s", out)
		}
		if !strings.Contains(out, "tasks") {
			t.Errorf("missing prefix: %s", out)
		}
	})

	t.Run("json output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, Options{Level: "debug", Format: "json"})
		logger.Debug("undo", "index", 2)

		out := buf.String()
		if !strings.Contains(out, `"msg":"undo"`) {
			t.Errorf("expected JSON message, got %s", out)
		}
	})
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing should happen")
}

func TestOpenFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	f, err := OpenFile(dir)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	logger := New(f, Options{Level: "info"})
	logger.Info("session started")
	f.Close()

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "session started") {
		t.Errorf("log file missing entry: %s", data)
	}

	if _, err := OpenFile(""); err == nil {
		t.Error("expected error for empty dir")
	}
}
