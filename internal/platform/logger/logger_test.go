package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		" INFO ":  Info,
		"":        Info,
		"warning": Warn,
		"error":   Error,
		"verbose": Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestZeroLogger_JSONFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Info, Format: FormatJSON, App: "zoo-test", Out: &buf})

	log.Debug("hidden", nil)
	child := log.With(map[string]any{"module": "animals"})
	child.Info("created", map[string]any{"animal_id": "a-1", "error": errors.New("boom")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (debug filtered), got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for k, want := range map[string]string{
		"level":     "info",
		"message":   "created",
		"app":       "zoo-test",
		"module":    "animals",
		"animal_id": "a-1",
		"error":     "boom",
	} {
		if entry[k] != want {
			t.Fatalf("field %s = %v, want %q", k, entry[k], want)
		}
	}
}

func TestZeroLogger_SetLevelAffectsChildren(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Error, Format: FormatJSON, Out: &buf})
	child := log.With(map[string]any{"module": "x"})

	child.Info("before", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected info filtered at error level, got %q", buf.String())
	}

	setter, ok := log.(LevelSetter)
	if !ok {
		t.Fatalf("ZeroLogger must implement LevelSetter")
	}
	setter.SetLevel(Debug)

	child.Debug("after", nil)
	if !strings.Contains(buf.String(), `"after"`) {
		t.Fatalf("expected child to log after SetLevel, got %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	// no debe paniquear ni escribir
	Nop().With(map[string]any{"a": 1}).Error("ignored", map[string]any{"b": 2})
}
