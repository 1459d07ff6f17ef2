package logging

import (
	"bytes"
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
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"bogus", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	if got := ParseFormatter("json"); got != log.JSONFormatter {
		t.Errorf("ParseFormatter(json) = %v", got)
	}
	if got := ParseFormatter("logfmt"); got != log.LogfmtFormatter {
		t.Errorf("ParseFormatter(logfmt) = %v", got)
	}
	if got := ParseFormatter("text"); got != log.TextFormatter {
		t.Errorf("ParseFormatter(text) = %v", got)
	}
	if got := ParseFormatter(""); got != log.TextFormatter {
		t.Errorf("ParseFormatter(\"\") = %v", got)
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Level = log.WarnLevel
	logger := NewWithWriter(&buf, opts)

	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info message leaked through: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Errorf("warn message missing: %q", out)
	}
}
