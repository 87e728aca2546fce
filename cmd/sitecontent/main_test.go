package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	site "github.com/littlemoon-zh/littlemoon-zh.github.io"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/logging"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/pkg/interfaces"
)

type quietProvider struct{}

func (quietProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }

func writeContent(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return root
}

func sampleContent(t *testing.T) string {
	return writeContent(t, map[string]string{
		"notes/first.md":  "---\ntitle: First\ndate: 2024-01-01\ntags: [go]\n---\n# One\n\nHello.",
		"notes/second.md": "---\ntitle: Second\ndate: 2024-02-01\n---\n# Two",
		"notes/wip.md":    "---\ntitle: Soon\ndate: 2024-03-01\ndraft: true\n---\nLater",
		"demos/tool.mdx":  "---\ntitle: Tool\nliveUrl: https://example.com/tool\nstack: [go, htmx]\n---\nA tool.",
	})
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })
	moduleBuilder = func(cfg site.Config, opts ...site.Option) (*site.Module, error) {
		return site.New(cfg, append(opts, site.WithLoggerProvider(quietProvider{}))...)
	}

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListPrintsTableNewestFirst(t *testing.T) {
	root := sampleContent(t)

	out, err := runCLI(t, "", "list", "notes", "--root", root)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "DATE"))
	assert.Contains(t, lines[1], "wip")
	assert.Contains(t, lines[1], "draft")
	assert.Contains(t, lines[2], "second")
	assert.Contains(t, lines[3], "first")
	assert.Contains(t, lines[3], "2024年1月1日")
	assert.Contains(t, lines[3], "tags=go")
}

func TestListJSONInProduction(t *testing.T) {
	root := sampleContent(t)

	out, err := runCLI(t, "", "list", "notes", "--root", root, "--production", "--json")
	require.NoError(t, err)

	var entries []site.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Slug)
	assert.Equal(t, "first", entries[1].Slug)
	assert.Equal(t, "https://littlemoon-zh.github.io/notes/second", entries[0].URL)
}

func TestLatestHonoursLimit(t *testing.T) {
	root := sampleContent(t)

	out, err := runCLI(t, "", "latest", "notes", "-n", "1", "--root", root, "--json")
	require.NoError(t, err)

	var entries []site.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "wip", entries[0].Slug)

	_, err = runCLI(t, "", "latest", "notes", "-n", "-1", "--root", root)
	assert.Error(t, err)
}

func TestSlugsPrintsOnePerLine(t *testing.T) {
	root := sampleContent(t)

	out, err := runCLI(t, "", "slugs", "Notes", "--root", root, "--production")
	require.NoError(t, err)
	assert.Equal(t, "second\nfirst\n", out)
}

func TestUnknownKindFails(t *testing.T) {
	root := sampleContent(t)

	_, err := runCLI(t, "", "slugs", "posts", "--root", root)
	assert.Error(t, err)
}

func TestShowRendersDocument(t *testing.T) {
	root := sampleContent(t)

	out, err := runCLI(t, "", "show", "notes", "first", "--root", root)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "First\n"))
	assert.Contains(t, out, "date: 2024-01-01")
	assert.Contains(t, out, "- One (#one)")
	assert.Contains(t, out, `<h1 id="one">`)
	assert.Contains(t, out, "<p>Hello.</p>")

	out, err = runCLI(t, "", "show", "demos", "tool", "--root", root, "--json")
	require.NoError(t, err)
	var doc site.RenderedDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Tool", doc.Title)
	require.NotNil(t, doc.LiveURL)
	assert.Equal(t, "https://example.com/tool", *doc.LiveURL)
}

func TestShowHidesDraftsInProduction(t *testing.T) {
	root := sampleContent(t)

	_, err := runCLI(t, "", "show", "notes", "wip", "--root", root, "--production")
	require.Error(t, err)
	assert.True(t, site.IsNotFound(err))

	_, err = runCLI(t, "", "show", "notes", "missing", "--root", root)
	assert.True(t, site.IsNotFound(err))
}

func TestCheckPassesOnValidContent(t *testing.T) {
	root := sampleContent(t)

	out, err := runCLI(t, "", "check", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "notes: 3 rendered, 0 hidden, 0 invalid")
	assert.Contains(t, out, "demos: 1 rendered, 0 hidden, 0 invalid")

	out, err = runCLI(t, "", "check", "--root", root, "--production")
	require.NoError(t, err)
	assert.Contains(t, out, "notes: 2 rendered, 1 hidden, 0 invalid")
}

func TestCheckReportsInvalidDocuments(t *testing.T) {
	root := writeContent(t, map[string]string{
		"notes/ok.md":    "---\ntitle: Ok\n---\nFine",
		"demos/bad.md":   "---\nrepoUrl: github.com/nope\n---\nBroken",
		"demos/good.mdx": "---\ntitle: Good\n---\nFine",
	})

	out, err := runCLI(t, "", "check", "--root", root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCheckFailed))
	assert.Contains(t, out, "demos/bad.md")
	assert.Contains(t, out, "demos: 1 rendered, 0 hidden, 1 invalid")

	_, err = runCLI(t, "", "list", "demos", "--root", root, "--strict")
	require.Error(t, err)
	assert.True(t, site.IsInvalid(err))
}

func TestStylesPrintsBothThemes(t *testing.T) {
	root := sampleContent(t)

	out, err := runCLI(t, "", "styles", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, ".chroma")
	assert.Contains(t, out, "prefers-color-scheme: dark")
}

func TestConfigFileIsApplied(t *testing.T) {
	root := sampleContent(t)
	config := filepath.Join(t.TempDir(), "site.yaml")
	body := "content:\n  rootDir: " + root + "\n  latestLimit: 2\nroutes:\n  baseURL: https://example.com\n"
	require.NoError(t, os.WriteFile(config, []byte(body), 0o644))

	out, err := runCLI(t, "", "latest", "notes", "--config", config, "--json")
	require.NoError(t, err)

	var entries []site.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "https://example.com/notes/wip", entries[0].URL)
}

func TestMCPServesToolsOverStdio(t *testing.T) {
	root := sampleContent(t)
	stdin := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0.0.1"}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
	}, "\n") + "\n"

	out, err := runCLI(t, stdin, "mcp", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, `"list_entries"`)
	assert.Contains(t, out, `"get_entry"`)
}

func TestContentWatcherDebouncesEvents(t *testing.T) {
	root := writeContent(t, map[string]string{"notes/a.md": "A"})
	notes := filepath.Join(root, "notes")

	watcher, err := newContentWatcher(root, []string{"notes", "demos"}, 50*time.Millisecond, logging.NoOp())
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- watcher.Run(ctx, func() { changes <- struct{}{} })
	}()

	require.NoError(t, os.WriteFile(filepath.Join(notes, "ignored.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(notes, "b.md"), []byte("B"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(notes, "a.md"), []byte("A2"), 0o644))

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestContentWatcherPicksUpNewKindDirectory(t *testing.T) {
	root := writeContent(t, map[string]string{"notes/a.md": "A"})

	watcher, err := newContentWatcher(root, []string{"notes", "demos"}, 50*time.Millisecond, logging.NoOp())
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 8)
	go func() {
		_ = watcher.Run(ctx, func() { changes <- struct{}{} })
	}()

	demos := filepath.Join(root, "demos")
	require.NoError(t, os.Mkdir(demos, 0o755))
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification for the new directory")
	}

	require.NoError(t, os.WriteFile(filepath.Join(demos, "tool.md"), []byte("T"), 0o644))
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification for a document in the new directory")
	}
}

func TestContentWatcherRequiresDirectory(t *testing.T) {
	_, err := newContentWatcher(filepath.Join(t.TempDir(), "missing"), []string{"notes"}, 0, logging.NoOp())
	assert.Error(t, err)
}
