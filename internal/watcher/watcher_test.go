package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func startWatcher(t *testing.T, path string, calls *atomic.Int32) *Watcher {
	t.Helper()
	w := NewWatcher(path, func(string) { calls.Add(1) }, WithDebounce(100*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	if err := writeFile(path, "[]"); err != nil {
		t.Fatal(err)
	}
	var calls atomic.Int32
	startWatcher(t, path, &calls)

	for i := 0; i < 5; i++ {
		if err := writeFile(path, "[ ]"); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(500 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("expected one debounced reload, got %d", got)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	var calls atomic.Int32
	startWatcher(t, path, &calls)

	if err := writeFile(filepath.Join(dir, "other.json"), "[]"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(400 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("unrelated file triggered %d reloads", got)
	}
}

func TestWatcher_DetectsReplaceByRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	if err := writeFile(path, "[]"); err != nil {
		t.Fatal(err)
	}
	var calls atomic.Int32
	startWatcher(t, path, &calls)

	tmp := filepath.Join(dir, "catalog.json.tmp")
	if err := writeFile(tmp, `[{"id": 1}]`); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
	time.Sleep(500 * time.Millisecond)

	if got := calls.Load(); got < 1 {
		t.Errorf("expected a reload after rename, got %d", got)
	}
}

func TestWatcher_StopDropsPendingReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	var calls atomic.Int32
	w := NewWatcher(path, func(string) { calls.Add(1) }, WithDebounce(300*time.Millisecond))
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := writeFile(path, "[]"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
	w.Stop()
	w.Stop()
	time.Sleep(500 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("reload ran after Stop: %d calls", got)
	}
}

func TestWatcher_StartMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "catalog.json")
	w := NewWatcher(path, nil)
	if err := w.Start(context.Background()); err == nil {
		w.Stop()
		t.Error("expected error watching a missing directory")
	}
}

func TestNewWatcher_Options(t *testing.T) {
	w := NewWatcher("catalog.json", nil, WithDebounce(0), WithLogger(nil))
	if w.debounce != defaultDebounce {
		t.Errorf("debounce = %v, want default", w.debounce)
	}
	if w.logger == nil {
		t.Error("nil logger should fall back to a no-op logger")
	}
	if !filepath.IsAbs(w.Path()) {
		t.Errorf("Path() = %q, want absolute", w.Path())
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}
