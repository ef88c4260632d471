package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.smelt.dev/smelt/internal/adapters/fs"
)

// writeTree creates the given relative files under root with fixed content.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}
}

func TestWalker_Collect(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/main.x":          "fn main() {}",
		"Cargo.toml":          "[package]",
		"target/debug/main.x": "binary",
		".jj/state":           "state",
	})

	filter, err := fs.NewFilter([]string{"^target/", `^\.jj/`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	files, err := fs.NewWalker().Collect(root, filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Cargo.toml", "src/main.x"}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("file %d: expected %q, got %q", i, want[i], files[i])
		}
	}
}

func TestSnapshotter_Snapshot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/main.x":          "fn main() {}",
		"src/lib.x":           "pub mod lib;",
		"target/debug/main.x": "binary",
	})

	filter, err := fs.NewFilter([]string{"^target/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dest := t.TempDir()
	count, err := fs.NewSnapshotter(fs.NewWalker()).Snapshot(context.Background(), root, dest, filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 files copied, got %d", count)
	}

	data, err := os.ReadFile(filepath.Join(dest, "src", "main.x"))
	if err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}
	if string(data) != "fn main() {}" {
		t.Errorf("unexpected snapshot content: %q", data)
	}

	if _, err := os.Stat(filepath.Join(dest, "target")); !os.IsNotExist(err) {
		t.Error("excluded directory should not appear in snapshot")
	}
}

func TestHasher_SnapshotDigest_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/main.x": "fn main() {}",
		"Cargo.toml": "[package]",
	})

	filter, err := fs.NewFilter(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hasher := fs.NewHasher(fs.NewWalker())
	first, count, err := hasher.SnapshotDigest(root, filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected digest over 2 files, got %d", count)
	}

	second, _, err := hasher.SnapshotDigest(root, filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("digest not deterministic: %q vs %q", first, second)
	}
}

func TestHasher_SnapshotDigest_ContentSensitive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"src/main.x": "fn main() {}"})

	filter, err := fs.NewFilter(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hasher := fs.NewHasher(fs.NewWalker())
	before, _, err := hasher.SnapshotDigest(root, filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	writeTree(t, root, map[string]string{"src/main.x": "fn main() { changed }"})
	after, _, err := hasher.SnapshotDigest(root, filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if before == after {
		t.Error("digest should change when file content changes")
	}
}

func TestHasher_SnapshotDigest_FilterSensitive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/main.x":          "fn main() {}",
		"target/debug/main.x": "binary",
	})

	unfiltered, err := fs.NewFilter(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	filtered, err := fs.NewFilter([]string{"^target/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hasher := fs.NewHasher(fs.NewWalker())
	all, _, err := hasher.SnapshotDigest(root, unfiltered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	subset, count, err := hasher.SnapshotDigest(root, filtered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count != 1 {
		t.Errorf("expected 1 file in filtered digest, got %d", count)
	}
	if all == subset {
		t.Error("digest should differ when the filter drops files")
	}
}
