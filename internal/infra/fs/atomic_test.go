package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Fatalf("temporary files left behind: %v", matches)
	}
}

func TestWriteFileAtomicReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.png")

	if err := WriteFileAtomic(path, []byte("first"), 0644); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second"), 0644); err != nil {
		t.Fatalf("second write: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "second" {
		t.Fatalf("content = %q, want %q", got, "second")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0644 {
		t.Fatalf("mode = %v, want 0644", info.Mode().Perm())
	}
	assertNoTempFiles(t, dir)
}

func TestWriteFileAtomicLeavesSiblingTmpAlone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.png")
	user := path + ".tmp"
	if err := os.WriteFile(user, []byte("keep me"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := WriteFileAtomic(path, []byte("data"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := os.ReadFile(user)
	if err != nil || string(got) != "keep me" {
		t.Fatalf("%s clobbered: %q, %v", user, got, err)
	}
}

func TestWriteFileAtomicConcurrentWriters(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.png")

	const writers = 8
	payloads := make(map[string]bool, writers)
	for i := 0; i < writers; i++ {
		payloads[fmt.Sprintf("payload-%d", i)] = true
	}

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for p := range payloads {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			errs <- WriteFileAtomic(path, []byte(p), 0644)
		}(p)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent write: %v", err)
		}
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !payloads[string(got)] {
		t.Fatalf("content %q is not one complete payload", got)
	}
	assertNoTempFiles(t, dir)
}

func TestWriteFileAtomicMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "chart.png")

	if err := WriteFileAtomic(path, []byte("data"), 0644); err == nil {
		t.Fatal("expected error for missing directory")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("no file expected, stat err = %v", err)
	}
}

func TestWriteFileAtomicTargetIsDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out")
	if err := os.Mkdir(path, 0755); err != nil {
		t.Fatal(err)
	}

	if err := WriteFileAtomic(path, []byte("data"), 0644); err == nil {
		t.Fatal("expected rename onto a directory to fail")
	}
	assertNoTempFiles(t, dir)
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		t.Fatalf("target directory must survive, err = %v", err)
	}
}
