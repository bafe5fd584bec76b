package testsupport

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = 0x42
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteArchive creates a zip archive at path holding the given entries. Keys
// are slash-separated entry names; a key ending in "/" becomes a directory
// entry. Entries are written in sorted order so archives are reproducible.
func WriteArchive(t testing.TB, path string, entries map[string]string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	zw := zip.NewWriter(f)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("add %s to archive: %v", name, err)
		}
		if name[len(name)-1] == '/' {
			continue
		}
		if _, err := w.Write([]byte(entries[name])); err != nil {
			t.Fatalf("write %s to archive: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("finalize archive %s: %v", path, err)
	}
}

// EyeImages builds archive entries for a synthetic MRL-style dataset with
// the requested number of open and closed images spread over two subject
// folders. Each image body is its own entry name so copies can be checked.
func EyeImages(open, closed int) map[string]string {
	entries := make(map[string]string, open+closed)
	add := func(state string, idx int) {
		subject := "s0001"
		if idx%2 == 1 {
			subject = "s0002"
		}
		// Segment 5 carries the eye state.
		name := fmt.Sprintf("%s/%s_%05d_0_0_%s_%s_0_01.png", subject, subject, idx, state, state)
		entries["mrlEyes_2018_01/"+name] = name
	}
	idx := 0
	for i := 0; i < open; i++ {
		add("0", idx)
		idx++
	}
	for i := 0; i < closed; i++ {
		add("1", idx)
		idx++
	}
	return entries
}
