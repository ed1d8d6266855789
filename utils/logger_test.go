package utils

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerDebugGated(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLoggerTo(&out, &errOut, false)

	l.Debug("hidden %d", 1)
	if out.Len() != 0 {
		t.Errorf("debug disabled: got output %q", out.String())
	}

	l.SetDebug(true)
	l.Debug("shown %d", 2)
	if !strings.Contains(out.String(), "shown 2") {
		t.Errorf("debug enabled: got %q, want it to contain %q", out.String(), "shown 2")
	}
}

func TestLoggerErrorGoesToErrWriter(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLoggerTo(&out, &errOut, false)

	l.Error("boom: %s", "disk")
	l.Info("fine")

	if !strings.Contains(errOut.String(), "boom: disk") {
		t.Errorf("error writer: got %q", errOut.String())
	}
	if strings.Contains(out.String(), "boom") {
		t.Errorf("stdout should not carry error lines: %q", out.String())
	}
	if !strings.Contains(out.String(), "INFO") {
		t.Errorf("info line missing level: %q", out.String())
	}
}
