package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"zoo-admin/internal/adapters/storage/memory"
	"zoo-admin/internal/domain/animals"
	"zoo-admin/internal/domain/backup"
	"zoo-admin/internal/domain/categories"
	"zoo-admin/internal/domain/enclosures"
)

// fakeS3 acepta PUT path-style (/bucket/key) y guarda lo recibido.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
	types   map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.objects[r.URL.Path] = string(body)
	f.types[r.URL.Path] = r.Header.Get("Content-Type")
	f.mu.Unlock()
	w.Header().Set("ETag", `"abc"`)
	w.WriteHeader(http.StatusOK)
}

func newFakeSink(t *testing.T, prefix string) (*Sink, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: map[string]string{}, types: map[string]string{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	sink, err := NewSink(context.Background(), Config{
		Bucket:          "zoo-backups",
		Prefix:          prefix,
		Endpoint:        srv.URL,
		PathStyle:       true,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		HTTPClient:      srv.Client(),
	})
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}
	return sink, fake
}

func TestSink_PutAcceptsNonSeekableBody(t *testing.T) {
	sink, fake := newFakeSink(t, "")

	buf := bytes.NewBufferString(`{"enclosures":["Aviary"]}`)
	if err := sink.Put(context.Background(), "zoo.json", buf, "application/json"); err != nil {
		t.Fatalf("Put with bytes.Buffer: %v", err)
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if body := fake.objects["/zoo-backups/zoo.json"]; !strings.Contains(body, `"Aviary"`) {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestSink_BackupRunUploadsSnapshot(t *testing.T) {
	ctx := context.Background()
	sink, fake := newFakeSink(t, "nightly")

	st := memory.NewStore()
	enclSvc := enclosures.NewService(st.Enclosures())
	catSvc := categories.NewService(st.Categories())
	animalsSvc := animals.NewService(st.Animals(), enclSvc, catSvc)
	if _, err := animalsSvc.Create(ctx, animals.Input{Name: "Leo"}); err != nil {
		t.Fatalf("create animal: %v", err)
	}

	now := func() time.Time { return time.Date(2024, 3, 9, 17, 5, 6, 0, time.UTC) }
	res, err := backup.NewService(animalsSvc, enclSvc, catSvc, now).Run(ctx, sink)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()
	body, ok := fake.objects["/zoo-backups/nightly/"+res.Key]
	if !ok {
		t.Fatalf("backup not uploaded, got %v", fake.objects)
	}
	var snap backup.Snapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		t.Fatalf("decode uploaded backup: %v", err)
	}
	if len(snap.Animals) != 1 || snap.Animals[0].Name != "Leo" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestSink_PutUploadsUnderPrefix(t *testing.T) {
	sink, fake := newFakeSink(t, "/nightly/")

	if got := sink.ObjectKey("zoo.json"); got != "nightly/zoo.json" {
		t.Fatalf("unexpected object key %q", got)
	}

	err := sink.Put(context.Background(), "zoo.json", strings.NewReader(`{"animals":["Leo"]}`), "application/json")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()
	body, ok := fake.objects["/zoo-backups/nightly/zoo.json"]
	if !ok {
		t.Fatalf("object not uploaded, got %v", fake.objects)
	}
	if !strings.Contains(body, `"Leo"`) {
		t.Fatalf("unexpected body %q", body)
	}
	if ct := fake.types["/zoo-backups/nightly/zoo.json"]; ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestNewSink_RequiresBucket(t *testing.T) {
	if _, err := NewSink(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error")
	}
}
