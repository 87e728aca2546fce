package routes

import (
	"reflect"
	"testing"
)

func TestResolverPermalink(t *testing.T) {
	resolver := NewResolver(Config{
		BaseURL: "https://example.com/",
		Paths: map[string]string{
			"notes": "/notes/:slug",
			"demos": "/demos/:slug",
		},
	})

	url, err := resolver.Permalink("notes", "hello-world")
	if err != nil {
		t.Fatalf("Permalink: %v", err)
	}
	if url != "https://example.com/notes/hello-world" {
		t.Fatalf("unexpected url %q", url)
	}

	url, err = resolver.Permalink("demos", "widget")
	if err != nil {
		t.Fatalf("Permalink: %v", err)
	}
	if url != "https://example.com/demos/widget" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestResolverRejectsUnknownKindAndEmptySlug(t *testing.T) {
	resolver := NewResolver(Config{
		BaseURL: "https://example.com",
		Paths:   map[string]string{"notes": "/notes/:slug", " ": "/blank/:slug"},
	})

	if _, err := resolver.Permalink("talks", "intro"); err == nil {
		t.Fatal("expected error for kind without route")
	}
	if _, err := resolver.Permalink("notes", " "); err == nil {
		t.Fatal("expected error for empty slug")
	}
	if got := resolver.Kinds(); !reflect.DeepEqual(got, []string{"notes"}) {
		t.Fatalf("unexpected kinds %v", got)
	}
}

func TestNilResolver(t *testing.T) {
	var resolver *Resolver
	if _, err := resolver.Permalink("notes", "a"); err == nil {
		t.Fatal("expected error from nil resolver")
	}
}
