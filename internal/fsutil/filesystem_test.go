package fsutil

import (
	"io"
	"path/filepath"
	"testing"
)

func TestMemoryFileSystemWriteRead(t *testing.T) {
	m := NewMemoryFileSystem()

	if err := m.WriteFile("out/data.txt", []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := m.ReadFile("out/data.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("ReadFile = %q, want %q", data, "hello")
	}
	if !m.Exists("out/data.txt") {
		t.Error("Exists = false after WriteFile")
	}
	if m.Exists("out/other.txt") {
		t.Error("Exists = true for missing file")
	}
}

func TestMemoryFileSystemCreateFlushesOnClose(t *testing.T) {
	m := NewMemoryFileSystem()

	w, err := m.Create("a/b.txt")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := io.WriteString(w, "line 1\n"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := io.WriteString(w, "line 2\n"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := m.ReadFile("a/b.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "line 1\nline 2\n" {
		t.Errorf("contents = %q", data)
	}
}

func TestMemoryFileSystemMkdirAll(t *testing.T) {
	m := NewMemoryFileSystem()
	if err := m.MkdirAll("a/b/c", 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	for _, dir := range []string{"a", "a/b", "a/b/c"} {
		if !m.Exists(dir) {
			t.Errorf("Exists(%q) = false after MkdirAll", dir)
		}
	}
}

func TestMemoryFileSystemReadMissing(t *testing.T) {
	m := NewMemoryFileSystem()
	if _, err := m.ReadFile("missing.txt"); err == nil {
		t.Error("expected error reading missing file")
	}
}

func TestOSFileSystemRoundTrip(t *testing.T) {
	var osfs OSFileSystem
	path := filepath.Join(t.TempDir(), "sub", "f.txt")

	if err := osfs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := osfs.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := osfs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "x" {
		t.Errorf("contents = %q, want %q", data, "x")
	}
	if !osfs.Exists(path) {
		t.Error("Exists = false")
	}
}
