package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "tags.xml")

	if err := WriteFileAtomic(dst, []byte("first"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(dst, []byte("second"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Fatalf("content mismatch: got %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the destination file, found %d entries", len(entries))
	}
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "missing", "tags.xml")
	if err := WriteFileAtomic(dst, []byte("x"), 0o644); err == nil {
		t.Fatal("expected error for missing directory")
	}
	if Exists(dst) {
		t.Fatal("destination should not exist after failed write")
	}
}

func TestLockPath(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "tags.xml")

	unlock, err := LockPath(dst)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := LockPath(dst); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked on second lock, got %v", err)
	}
	if err := unlock(); err != nil {
		t.Fatal(err)
	}
	if Exists(dst + ".lock") {
		t.Fatal("lock file should be removed after unlock")
	}

	unlock, err = LockPath(dst)
	if err != nil {
		t.Fatalf("relock after release: %v", err)
	}
	_ = unlock()
}

func TestNonEmptyFile(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.xml")
	full := filepath.Join(dir, "full.xml")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte("<Tags/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	if NonEmptyFile(empty) {
		t.Fatal("empty file reported non-empty")
	}
	if !NonEmptyFile(full) {
		t.Fatal("full file reported empty")
	}
	if NonEmptyFile(filepath.Join(dir, "absent.xml")) || NonEmptyFile(dir) {
		t.Fatal("missing file or directory reported non-empty")
	}
}

func TestCheckParentDir(t *testing.T) {
	dir := t.TempDir()
	if err := CheckParentDir(filepath.Join(dir, "tags.xml")); err != nil {
		t.Fatalf("expected writable temp dir, got %v", err)
	}
	if err := CheckParentDir(filepath.Join(dir, "nope", "tags.xml")); err == nil {
		t.Fatal("expected error for missing parent")
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CheckParentDir(filepath.Join(file, "tags.xml")); err == nil {
		t.Fatal("expected error when parent is a file")
	}
}
