package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Output: &buf})

	l.Info("hidden")
	l.Warn("shown %d", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info written below warn level: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown 1") {
		t.Errorf("warn missing: %q", out)
	}

	l.SetLevel(LevelDebug)
	l.Debug("now visible")
	if !strings.Contains(buf.String(), "[DEBUG] now visible") {
		t.Errorf("debug missing after SetLevel: %q", buf.String())
	}
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: LevelDebug, Output: &buf, Prefix: "bb"})
	l := base.WithComponent("engine").WithField("tx", "paste")

	l.Info("applied")
	want := "bb: applied {component=engine, tx=paste}\n"
	if !strings.HasSuffix(buf.String(), want) {
		t.Errorf("got %q, want suffix %q", buf.String(), want)
	}

	// Derived loggers share the level of their parent.
	base.SetLevel(LevelError)
	if l.Enabled(LevelInfo) {
		t.Error("derived logger should follow parent level")
	}
}

func TestNull(t *testing.T) {
	l := Null()
	if l.Enabled(LevelError) {
		t.Error("Null logger should be disabled")
	}
	l.Error("dropped")
}
