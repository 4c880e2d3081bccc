package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Info("layout run complete", Component("layout"), Iteration(42))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("Expected INFO, got %s", entry.Level)
	}
	if entry.Message != "layout run complete" {
		t.Errorf("Unexpected message: %s", entry.Message)
	}
	if entry.Fields["component"] != "layout" {
		t.Errorf("Expected component field, got %v", entry.Fields)
	}
	if entry.Fields["iteration"] != float64(42) {
		t.Errorf("Expected iteration 42, got %v", entry.Fields["iteration"])
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Messages below the level must be suppressed")
	}
	if !strings.Contains(out, "visible") {
		t.Error("Messages at the level must appear")
	}
}

func TestJSONLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(NodeID("def-ebitda"))
	child.Info("impact query")

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if entry.Fields["node_id"] != "def-ebitda" {
		t.Errorf("Expected pre-set node_id field, got %v", entry.Fields)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"warning": WarnLevel,
		"ERROR":   ErrorLevel,
		"bogus":   InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	// Must not panic and must accept fields.
	logger.Error("ignored", Error(nil), Score(1.5))
	if logger.With(Component("x")).GetLevel() != InfoLevel {
		t.Error("NopLogger level should report InfoLevel")
	}
}
