package index

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Leochens/LifeOs-sub001/internal/storage"
)

// watcherTestEnv sets up a vault dir, storage, and DB for watcher tests.
func watcherTestEnv(t *testing.T) (string, storage.Provider, *DB) {
	t.Helper()
	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}
	return vaultDir, store, testDB(t)
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestWatcher_NewFileIndexed(t *testing.T) {
	vaultDir, store, db := watcherTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var events []string
	go Watch(ctx, db, store, vaultDir, quietLogger(), func(kind, path string) { //nolint:errcheck
		mu.Lock()
		events = append(events, kind+":"+path)
		mu.Unlock()
	})
	time.Sleep(100 * time.Millisecond) // let the watcher attach

	if err := store.Write("diary/2026-03-01.md", []byte("# Entry\nbody")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	eventually(t, 3*time.Second, 50*time.Millisecond, func() bool {
		checksums, err := db.AllChecksums()
		return err == nil && checksums["diary/2026-03-01.md"] != ""
	}, "new file was not indexed")

	eventually(t, 3*time.Second, 50*time.Millisecond, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(events) > 0
	}, "no callback events received")
}

func TestWatcher_RemovedFileDeleted(t *testing.T) {
	vaultDir, store, db := watcherTestEnv(t)

	if err := store.Write("note.md", []byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Watch(ctx, db, store, vaultDir, quietLogger(), nil) //nolint:errcheck
	time.Sleep(100 * time.Millisecond)

	if err := store.Delete("note.md"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	eventually(t, 3*time.Second, 50*time.Millisecond, func() bool {
		checksums, err := db.AllChecksums()
		if err != nil {
			return false
		}
		_, ok := checksums["note.md"]
		return !ok
	}, "removed file still indexed")
}
