package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, INFO)

	logger.Info("test message")

	output := buf.String()
	if !strings.Contains(output, "INFO") {
		t.Errorf("Expected INFO in output, got: %s", output)
	}
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected 'test message' in output, got: %s", output)
	}
}

func TestLogger_Infof(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, INFO)

	logger.Infof("test %s %d", "message", 42)

	output := buf.String()
	if !strings.Contains(output, "test message 42") {
		t.Errorf("Expected 'test message 42' in output, got: %s", output)
	}
}

func TestLogger_Warning(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, WARNING)

	logger.Warning("warning message")

	output := buf.String()
	if !strings.Contains(output, "WARN") {
		t.Errorf("Expected WARN in output, got: %s", output)
	}
}

func TestLogger_MinLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, WARNING)

	logger.Info("hidden")
	logger.Debugf("hidden %d", 1)

	if buf.Len() != 0 {
		t.Errorf("Expected no output below WARNING, got: %s", buf.String())
	}

	logger.SetLevel(DEBUG)
	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("Expected debug output after SetLevel, got: %s", buf.String())
	}
}

func TestLogger_ErrorGoesToErrorOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewSplit(&out, &errOut, ERROR)

	logger.Error("error message")

	if !strings.Contains(errOut.String(), "ERROR") || !strings.Contains(errOut.String(), "error message") {
		t.Errorf("Expected error in error output, got: %s", errOut.String())
	}
	if out.Len() != 0 {
		t.Errorf("Expected nothing on main output, got: %s", out.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, INFO).With("component", "engine")

	logger.Info("started")

	if !strings.Contains(buf.String(), "engine") {
		t.Errorf("Expected component field in output, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"debug": DEBUG, "INFO": INFO, "warn": WARNING, "Warning": WARNING, "error": ERROR, "": INFO}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	// must not panic
	Info("test info")
	Infof("test %s", "infof")
	Warning("test warning")
	Warningf("test %s", "warningf")
	Error("test error")
	Errorf("test %s", "errorf")
	Named("test").Info("named")
}
