// Package testsupport holds helpers shared by package tests.
package testsupport

import (
	"encoding/json"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/storage"
)

// LoadFixture returns the contents of the file at path or fails the test.
func LoadFixture(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load fixture %s: %v", path, err)
	}
	return data
}

// LoadGolden decodes the JSON golden file at path into v.
func LoadGolden(t testing.TB, path string, v any) {
	t.Helper()
	if err := json.Unmarshal(LoadFixture(t, path), v); err != nil {
		t.Fatalf("decode golden %s: %v", path, err)
	}
}

// FixtureRepository copies a content tree laid out as <kind>/<file> into a
// memory repository so tests can add or remove documents without touching
// the fixture directory.
func FixtureRepository(t testing.TB, dir string) *storage.MemoryRepository {
	t.Helper()
	repo := storage.NewMemoryRepository()
	err := fs.WalkDir(os.DirFS(dir), ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		kind, file := path.Split(name)
		if kind == "" {
			return nil
		}
		repo.Put(path.Clean(kind), file, LoadFixture(t, filepath.Join(dir, filepath.FromSlash(name))))
		return nil
	})
	if err != nil {
		t.Fatalf("load fixture repository %s: %v", dir, err)
	}
	return repo
}
