package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSink_PutWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups")
	s, err := NewSink(dir)
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}

	if err := s.Put(context.Background(), "zoo.json", strings.NewReader(`{"ok":true}`), "application/json"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "zoo.json"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Fatalf("unexpected content %q", data)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected only the final file, got %d entries", len(entries))
	}
}

func TestSink_RejectsPathKeys(t *testing.T) {
	s, err := NewSink(t.TempDir())
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}
	for _, key := range []string{"", "..", "../x.json", "a/b.json"} {
		if err := s.Put(context.Background(), key, strings.NewReader("x"), ""); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}
