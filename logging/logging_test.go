package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestDefaultLoggerLevels(t *testing.T) {
	var info, errs bytes.Buffer
	logger := NewWriterLogger(&info, &errs, false)

	logger.Debug("hidden")
	logger.Info("phase finished", Fields{"phase": "loudness", "frames": 12})
	logger.Warn("input rejected")
	logger.Error(errors.New("boom"), "spectrogram failed")

	if strings.Contains(info.String(), "hidden") {
		t.Errorf("debug line written at info level: %q", info.String())
	}
	if !strings.Contains(info.String(), "[INFO] phase finished frames=12 phase=loudness") {
		t.Errorf("unexpected info output: %q", info.String())
	}
	if !strings.Contains(errs.String(), "[WARN] input rejected") {
		t.Errorf("warn missing from error writer: %q", errs.String())
	}
	if !strings.Contains(errs.String(), "spectrogram failed: boom") {
		t.Errorf("error missing from error writer: %q", errs.String())
	}
}

func TestChildSharesLevel(t *testing.T) {
	var info bytes.Buffer
	parent := NewWriterLogger(&info, &info, false)
	child := parent.WithFields(Fields{"component": "engine"})

	parent.SetLevel(DebugLevel)
	child.Debug("now visible")

	if !strings.Contains(info.String(), "component=engine") {
		t.Errorf("child did not inherit level change: %q", info.String())
	}
}

func TestWithContextFields(t *testing.T) {
	var info bytes.Buffer
	logger := NewWriterLogger(&info, &info, false)

	ctx := ContextWithFields(context.Background(), Fields{"request": "a"})
	ctx = ContextWithFields(ctx, Fields{"platform": "spotify"})
	logger.WithContext(ctx).Info("analysis")

	out := info.String()
	if !strings.Contains(out, "platform=spotify") || !strings.Contains(out, "request=a") {
		t.Errorf("context fields missing: %q", out)
	}
}

func TestFatalUsesExitHook(t *testing.T) {
	var errs bytes.Buffer
	logger := NewWriterLogger(&errs, &errs, false)
	code := -1
	logger.exit = func(c int) { code = c }

	logger.Fatal(errors.New("bad"), "giving up")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   DebugLevel,
		"warn":    WarnLevel,
		"error":   ErrorLevel,
		"unknown": InfoLevel,
	}
	for name, want := range tests {
		if got := ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}
