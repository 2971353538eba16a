package commands

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"zoo-admin/internal/platform/config"
	"zoo-admin/internal/platform/httpclient"
	"zoo-admin/internal/platform/logger"
	"zoo-admin/internal/router"
)

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	err := printStatus(&buf, []httpclient.AnimalStatus{
		{Name: "Lion", Species: "Panthera leo", ActivityPattern: "diurnal", Hour: 9, IsActive: true},
	})
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"NAME", "Lion", "09:00", "yes", "no"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestStatusCommand_AgainstServer(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	client, err := httpclient.New(ts.URL, 0)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	client.DebugUserID = "keeper"
	if err := client.DoJSON(context.Background(), "POST", "/animals", nil,
		map[string]any{"name": "Meerkat", "feeding_schedule": "9"}, nil); err != nil {
		t.Fatalf("create animal: %v", err)
	}

	cmd := newRootCommand("test", "none")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"status", "--server", ts.URL, "--hour", "9"})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("status command: %v", err)
	}
	if !strings.Contains(out.String(), "Meerkat") || !strings.Contains(out.String(), "09:00") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestMigrateCommand_RejectsUnknownDirection(t *testing.T) {
	cmd := newRootCommand("test", "none")
	cmd.SetArgs([]string{"migrate", "sideways"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	if err == nil || !strings.Contains(err.Error(), "sideways") {
		t.Fatalf("expected unknown direction error, got %v", err)
	}
}

func TestRunBackup_LocalDir(t *testing.T) {
	cfg := config.Defaults()
	cfg.Backup.Dir = t.TempDir()

	var out bytes.Buffer
	if err := runBackup(context.Background(), cfg, logger.Nop(), &out); err != nil {
		t.Fatalf("backup: %v", err)
	}

	path := strings.TrimSpace(out.String())
	if !strings.HasPrefix(path, cfg.Backup.Dir+"/zoo-backup-") {
		t.Fatalf("unexpected output %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !strings.Contains(string(data), `"format_version": 1`) {
		t.Fatalf("unexpected backup content: %s", data)
	}
}
