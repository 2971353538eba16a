package backup_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"zoo-admin/internal/adapters/storage/memory"
	"zoo-admin/internal/domain/animals"
	"zoo-admin/internal/domain/backup"
	"zoo-admin/internal/domain/categories"
	"zoo-admin/internal/domain/enclosures"
)

type memorySink struct {
	key         string
	contentType string
	body        []byte
	err         error
}

func (m *memorySink) Put(_ context.Context, key string, r io.Reader, contentType string) error {
	if m.err != nil {
		return m.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.key, m.contentType, m.body = key, contentType, data
	return nil
}

func newBackupService(t *testing.T) (*backup.Service, *animals.Service, *enclosures.Service, *categories.Service) {
	t.Helper()
	st := memory.NewStore()
	enclSvc := enclosures.NewService(st.Enclosures())
	catSvc := categories.NewService(st.Categories())
	animalsSvc := animals.NewService(st.Animals(), enclSvc, catSvc)
	now := func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 0, time.FixedZone("ART", -3*3600)) }
	return backup.NewService(animalsSvc, enclSvc, catSvc, now), animalsSvc, enclSvc, catSvc
}

func TestRun_WritesSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, animalsSvc, enclSvc, catSvc := newBackupService(t)

	savanna, err := enclSvc.Create(ctx, "Savanna")
	if err != nil {
		t.Fatalf("create enclosure: %v", err)
	}
	if _, err := catSvc.Create(ctx, "Mammals"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := animalsSvc.Create(ctx, animals.Input{Name: "Leo", EnclosureID: &savanna.ID, FeedingSchedule: "12-13"}); err != nil {
		t.Fatalf("create animal: %v", err)
	}

	sink := &memorySink{}
	res, err := svc.Run(ctx, sink)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Key != "zoo-backup-20240309T170506Z.json" || sink.key != res.Key {
		t.Fatalf("unexpected key %q (sink %q)", res.Key, sink.key)
	}
	if sink.contentType != "application/json" {
		t.Fatalf("unexpected content type %q", sink.contentType)
	}
	if res.Animals != 1 || res.Enclosures != 1 || res.Categories != 1 || res.Bytes != len(sink.body) {
		t.Fatalf("unexpected result %+v", res)
	}

	var snap backup.Snapshot
	if err := json.NewDecoder(bytes.NewReader(sink.body)).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.FormatVersion != backup.FormatVersion {
		t.Fatalf("unexpected format version %d", snap.FormatVersion)
	}
	if len(snap.Animals) != 1 || snap.Animals[0].Name != "Leo" || snap.Animals[0].ActivityPattern != "diurnal" {
		t.Fatalf("unexpected animals %+v", snap.Animals)
	}
	if snap.Animals[0].EnclosureID == nil || *snap.Animals[0].EnclosureID != savanna.ID {
		t.Fatalf("expected enclosure reference to survive")
	}
}

func TestRun_EmptyZoo(t *testing.T) {
	svc, _, _, _ := newBackupService(t)
	sink := &memorySink{}
	if _, err := svc.Run(context.Background(), sink); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !bytes.Contains(sink.body, []byte(`"animals": []`)) {
		t.Fatalf("expected empty arrays, got %s", sink.body)
	}
}

func TestRun_SinkErrors(t *testing.T) {
	svc, _, _, _ := newBackupService(t)

	if _, err := svc.Run(context.Background(), nil); !errors.Is(err, backup.ErrNoSink) {
		t.Fatalf("expected ErrNoSink, got %v", err)
	}

	boom := errors.New("disk full")
	if _, err := svc.Run(context.Background(), &memorySink{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped sink error, got %v", err)
	}
}
