package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

type bufferCloser struct {
	sync.Mutex
	bytes.Buffer
	closed bool
}

func (b *bufferCloser) Write(p []byte) (int, error) {
	b.Lock()
	defer b.Unlock()
	return b.Buffer.Write(p)
}

func (b *bufferCloser) Close() error {
	b.Lock()
	defer b.Unlock()
	b.closed = true
	return nil
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		ok       bool
	}{
		{"trace", LevelTrace, true},
		{"DBG", LevelDebug, true},
		{"info", LevelInfo, true},
		{"wrn", LevelWarn, true},
		{"error", LevelError, true},
		{"critical", LevelCritical, true},
		{"off", LevelOff, true},
		{"loud", LevelInfo, false},
	}
	for _, test := range tests {
		level, ok := LevelFromString(test.input)
		if level != test.expected || ok != test.ok {
			t.Errorf("LevelFromString(%q): expected (%s, %t), got (%s, %t)",
				test.input, test.expected, test.ok, level, ok)
		}
	}
}

func TestBackendFiltersByLevel(t *testing.T) {
	backend := NewBackend()
	all := &bufferCloser{}
	warnings := &bufferCloser{}
	if err := backend.AddLogWriter(all, LevelTrace); err != nil {
		t.Fatalf("AddLogWriter: %+v", err)
	}
	if err := backend.AddLogWriter(warnings, LevelWarn); err != nil {
		t.Fatalf("AddLogWriter: %+v", err)
	}
	if err := backend.Run(); err != nil {
		t.Fatalf("Run: %+v", err)
	}
	if err := backend.Run(); err == nil {
		t.Fatalf("Run: expected an error on the second call")
	}
	if err := backend.AddLogWriter(&bufferCloser{}, LevelInfo); err == nil {
		t.Fatalf("AddLogWriter: expected an error while running")
	}

	log := backend.Logger("TEST")
	log.Infof("dropped while off")
	log.SetLevel(LevelDebug)
	log.Tracef("dropped below level")
	log.Debugf("debug %d", 1)
	log.Warnf("warn %d", 2)
	backend.Close()

	if !all.closed || !warnings.closed {
		t.Fatalf("Close: expected all writers to be closed")
	}
	allOutput := all.String()
	if strings.Contains(allOutput, "dropped") {
		t.Fatalf("unexpected filtered line in output: %q", allOutput)
	}
	if !strings.Contains(allOutput, "[DBG] TEST: debug 1\n") || !strings.Contains(allOutput, "[WRN] TEST: warn 2\n") {
		t.Fatalf("missing lines in output: %q", allOutput)
	}
	if warningsOutput := warnings.String(); strings.Contains(warningsOutput, "debug") ||
		!strings.Contains(warningsOutput, "warn 2") {
		t.Fatalf("unexpected warnings output: %q", warningsOutput)
	}

	// Writing after Close must not panic.
	log.Errorf("after close")
}

func TestParseAndSetLogLevels(t *testing.T) {
	first := RegisterSubSystem("TSTA")
	second := RegisterSubSystem("TSTB")
	if RegisterSubSystem("TSTA") != first {
		t.Fatalf("RegisterSubSystem: expected the same logger for the same tag")
	}

	if err := ParseAndSetLogLevels("debug"); err != nil {
		t.Fatalf("ParseAndSetLogLevels: %+v", err)
	}
	if first.Level() != LevelDebug || second.Level() != LevelDebug {
		t.Fatalf("expected both loggers at debug, got %s and %s", first.Level(), second.Level())
	}

	if err := ParseAndSetLogLevels("TSTA=trace,TSTB=error"); err != nil {
		t.Fatalf("ParseAndSetLogLevels: %+v", err)
	}
	if first.Level() != LevelTrace || second.Level() != LevelError {
		t.Fatalf("unexpected levels %s and %s", first.Level(), second.Level())
	}

	for _, spec := range []string{"loud", "TSTA=loud", "NOPE=info", "TSTA"} {
		if err := ParseAndSetLogLevels(spec); err == nil {
			t.Errorf("ParseAndSetLogLevels(%q): expected an error", spec)
		}
	}
}
