package source

import (
	"path/filepath"
	"testing"

	"github.com/hyperjump/erabu/internal/catalog"
)

func TestLoader_Reload(t *testing.T) {
	path := writeFile(t, "catalog.json", rawCatalog)
	store := catalog.NewStore()
	l := NewLoader(path, "", store, nil)

	report, err := l.Reload()
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if report.Loaded != 2 || len(report.Rejected) != 1 {
		t.Errorf("report = %+v", report)
	}
	if report.Format != FormatRaw {
		t.Errorf("format = %q, want raw", report.Format)
	}
	if store.Count() != 2 || store.Snapshot().Version != report.Version {
		t.Errorf("store not updated: count=%d version=%s", store.Count(), store.Snapshot().Version)
	}
}

func TestLoader_ReloadErrorKeepsSnapshot(t *testing.T) {
	path := writeFile(t, "catalog.json", rawCatalog)
	store := catalog.NewStore()
	if _, err := NewLoader(path, FormatRaw, store, nil).Reload(); err != nil {
		t.Fatal(err)
	}
	before := store.Snapshot()

	missing := NewLoader(filepath.Join(t.TempDir(), "gone.json"), FormatRaw, store, nil)
	if _, err := missing.Reload(); err == nil {
		t.Fatal("expected error for missing catalog")
	}
	if store.Snapshot() != before {
		t.Error("failed reload replaced the snapshot")
	}
}
