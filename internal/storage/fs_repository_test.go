package storage

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"
)

func TestFSRepositoryListFiltersAndSorts(t *testing.T) {
	repo := NewFSRepository("testdata/content")

	names, err := repo.List(context.Background(), "notes")
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []string{"hello-world.md", "hello-world.mdx", "plain.md"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
}

func TestFSRepositoryListMissingCollectionIsEmpty(t *testing.T) {
	repo := NewFSRepositoryFromFS(fstest.MapFS{})

	names, err := repo.List(context.Background(), "demos")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if names == nil || len(names) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", names)
	}
}

func TestFSRepositoryReadPrefersMDX(t *testing.T) {
	repo := NewFSRepository("testdata/content")

	doc, err := repo.Read(context.Background(), "notes", "hello-world")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if doc.FileName != "hello-world.mdx" {
		t.Fatalf("expected mdx to win, got %s", doc.FileName)
	}
	if doc.Kind != "notes" || doc.Slug != "hello-world" {
		t.Fatalf("unexpected identity %s/%s", doc.Kind, doc.Slug)
	}
	if !strings.Contains(string(doc.Source), "title: Hello") {
		t.Fatalf("expected mdx source, got %q", doc.Source)
	}
}

func TestFSRepositoryReadFallsBackToMD(t *testing.T) {
	repo := NewFSRepository("testdata/content")

	doc, err := repo.Read(context.Background(), "demos", "widget")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if doc.FileName != "widget.md" {
		t.Fatalf("expected widget.md, got %s", doc.FileName)
	}
}

func TestFSRepositoryReadMissingIsNotFound(t *testing.T) {
	repo := NewFSRepository("testdata/content")

	cases := []string{"absent", "../notes/plain", "nested/plain", "", "readme"}
	for _, slug := range cases {
		_, err := repo.Read(context.Background(), "notes", slug)
		if err == nil {
			t.Fatalf("Read(%q): expected error", slug)
		}
		if !IsNotFound(err) {
			t.Fatalf("Read(%q): expected not found, got %v", slug, err)
		}
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("Read(%q): expected ErrNotFound in chain", slug)
		}
		if !goerrors.IsNotFound(err) {
			t.Fatalf("Read(%q): expected not_found category, got %v", slug, err)
		}
	}
}

func TestFSRepositoryHonoursCancelledContext(t *testing.T) {
	repo := NewFSRepository("testdata/content")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.List(ctx, "notes"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := repo.Read(ctx, "notes", "plain"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()
	repo.Put("notes", "b.md", []byte("b"))
	repo.Put("notes", "a.mdx", []byte("a"))
	repo.Put("notes", "a.md", []byte("shadowed"))
	repo.Put("notes", "image.png", []byte("skip"))

	names, err := repo.List(context.Background(), "notes")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if want := []string{"a.md", "a.mdx", "b.md"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}

	doc, err := repo.Read(context.Background(), "notes", "a")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if doc.FileName != "a.mdx" || string(doc.Source) != "a" {
		t.Fatalf("expected a.mdx, got %s %q", doc.FileName, doc.Source)
	}

	repo.Delete("notes", "a.mdx")
	doc, err = repo.Read(context.Background(), "notes", "a")
	if err != nil {
		t.Fatalf("Read after delete: %v", err)
	}
	if doc.FileName != "a.md" {
		t.Fatalf("expected fallback to a.md, got %s", doc.FileName)
	}

	if _, err := repo.Read(context.Background(), "demos", "a"); !IsNotFound(err) {
		t.Fatalf("expected not found for empty collection, got %v", err)
	}

	empty, err := repo.List(context.Background(), "demos")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty list, got %v %v", empty, err)
	}
}

func TestMatchDocument(t *testing.T) {
	cases := map[string]bool{
		"post.md":       true,
		"post.mdx":      true,
		"post.markdown": false,
		"post.md.bak":   false,
		"notes.txt":     false,
	}
	for name, want := range cases {
		if got := MatchDocument(name); got != want {
			t.Fatalf("MatchDocument(%q): expected %v, got %v", name, want, got)
		}
	}
}
