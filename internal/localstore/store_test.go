package localstore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestStore_LoadEmpty(t *testing.T) {
	store := New(t.TempDir())

	values, err := store.Load()
	if err != nil {
		t.Fatalf("failed to load empty store: %v", err)
	}
	if len(values) != 0 {
		t.Fatalf("expected no values, got %v", values)
	}

	if _, ok, err := store.Get("deviceId"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
}

func TestStore_SetGetAcrossInstances(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")

	if err := New(dir).Set("deviceId", "device_abc"); err != nil {
		t.Fatalf("set: %v", err)
	}

	value, ok, err := New(dir).Get("deviceId")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || value != "device_abc" {
		t.Fatalf("expected device_abc, got %q (ok=%v)", value, ok)
	}

	if _, err := os.Stat(filepath.Join(dir, "local.json")); err != nil {
		t.Fatalf("expected local.json to exist: %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Set("a", "1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Delete("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete("missing"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if _, ok, _ := store.Get("a"); ok {
		t.Fatal("expected key to be deleted")
	}
}

func TestStore_GetOrCreateKeepsExisting(t *testing.T) {
	store := New(t.TempDir())

	first, err := store.GetOrCreate("deviceId", func() string { return "first" })
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	second, err := store.GetOrCreate("deviceId", func() string { return "second" })
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}

	if first != "first" || second != "first" {
		t.Fatalf("expected both calls to return first, got %q and %q", first, second)
	}
}

func TestStore_ConcurrentGetOrCreateAgrees(t *testing.T) {
	dir := t.TempDir()

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value, err := New(dir).GetOrCreate("deviceId", func() string {
				return string(rune('a' + i))
			})
			if err != nil {
				t.Errorf("get or create: %v", err)
				return
			}
			results[i] = value
		}(i)
	}
	wg.Wait()

	for _, value := range results {
		if value != results[0] {
			t.Fatalf("expected all results to agree, got %v", results)
		}
	}
}

func TestStore_LoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "local.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := New(dir).Load(); err == nil {
		t.Fatal("expected error for corrupt file")
	}
}
