package save

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreLoadMissing(t *testing.T) {
	s := NewFileStore(t.TempDir())
	data, found, err := s.Load(context.Background())
	if err != nil || found || data != nil {
		t.Fatalf("Load = %v, %v, %v; want nil, false, nil", data, found, err)
	}
}

func TestFileStoreSaveReplacesAtomically(t *testing.T) {
	root := t.TempDir()
	s := NewFileStore(root)
	ctx := context.Background()

	if err := s.Save(ctx, []byte("first")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, []byte("second")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, found, err := s.Load(ctx)
	if err != nil || !found {
		t.Fatalf("Load: found=%v err=%v", found, err)
	}
	if !bytes.Equal(data, []byte("second")) {
		t.Fatalf("data = %q", data)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != SaveFileName {
		t.Fatalf("save root holds %v, want only %s", entries, SaveFileName)
	}
}

func TestFileStorePrepareIsRecursiveAndIdempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b", "world_saves")
	s := NewFileStore(root)
	for i := 0; i < 2; i++ {
		if err := s.Prepare(context.Background()); err != nil {
			t.Fatalf("Prepare #%d: %v", i, err)
		}
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		t.Fatalf("save root not created: %v", err)
	}
}

func TestFileStoreSaveFailsWithoutRoot(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "missing"))
	if err := s.Save(context.Background(), []byte("x")); err == nil {
		t.Fatal("Save into a missing root succeeded")
	}
}

func TestFileStoreSaveIsWorldReadable(t *testing.T) {
	s := NewFileStore(t.TempDir())
	if err := s.Save(context.Background(), []byte{1, 2, 3}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	fi, err := os.Stat(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if perm := fi.Mode().Perm(); perm != 0o644 {
		t.Fatalf("mode = %o, want 644", perm)
	}
}
