package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Level:  WarnLevel,
		Format: HumanFormat,
		Output: &buf,
	})

	logger.Debug("debug msg", nil)
	logger.Info("info msg", nil)
	logger.Warn("warn msg", nil)
	logger.Error("error msg", nil)

	out := buf.String()
	if strings.Contains(out, "debug msg") || strings.Contains(out, "info msg") {
		t.Errorf("messages below warn should be suppressed, got: %s", out)
	}
	if !strings.Contains(out, "warn msg") || !strings.Contains(out, "error msg") {
		t.Errorf("warn and error messages should be logged, got: %s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Level:  InfoLevel,
		Format: JSONFormat,
		Output: &buf,
	})

	logger.Info("shell invoked", map[string]interface{}{
		"binary":   "pwsh",
		"exitCode": 0,
	})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["message"] != "shell invoked" {
		t.Errorf("message = %v, want 'shell invoked'", entry["message"])
	}

	fields, ok := entry["fields"].(map[string]interface{})
	if !ok {
		t.Fatal("fields missing from JSON entry")
	}
	if fields["binary"] != "pwsh" {
		t.Errorf("fields.binary = %v, want pwsh", fields["binary"])
	}
}

func TestHumanFormatFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Level:  DebugLevel,
		Format: HumanFormat,
		Output: &buf,
	})

	logger.Debug("attempt recorded", map[string]interface{}{"pattern": "Data\\*"})

	out := buf.String()
	if !strings.Contains(out, "attempt recorded") {
		t.Errorf("message missing from output: %s", out)
	}
	if !strings.Contains(out, "pattern=Data\\*") {
		t.Errorf("field missing from output: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"", InfoLevel},
		{"verbose", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
