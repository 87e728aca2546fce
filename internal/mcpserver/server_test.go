package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/content"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/logging"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/markdown"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/storage"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/pkg/interfaces"
)

func newService(t *testing.T) content.Service {
	t.Helper()
	repo := storage.NewMemoryRepository()
	repo.Put("notes", "first.md", []byte("---\ntitle: First\ndate: 2024-01-01\n---\n# One"))
	repo.Put("notes", "second.md", []byte("---\ntitle: Second\ndate: 2024-02-01\n---\n# Two"))
	repo.Put("notes", "draft.md", []byte("---\ndate: 2024-03-01\ndraft: true\n---\nWIP"))

	renderer, err := markdown.NewRenderer(interfaces.RenderOptions{})
	require.NoError(t, err)
	return content.NewService(repo, renderer, content.WithPolicy(content.Policy{Production: true}))
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func callRequest(name string, args any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Request: mcp.Request{Method: "tools/call"},
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func TestNewServerRegistersTools(t *testing.T) {
	s := NewServer(newService(t), Options{})
	require.NotNil(t, s)

	tools := s.ListTools()
	for _, name := range []string{ToolListEntries, ToolLatestEntries, ToolGetEntry, ToolListSlugs} {
		assert.Contains(t, tools, name)
	}
}

func TestListEntriesHandler(t *testing.T) {
	handler := listEntriesHandler(newService(t), logging.NoOp())
	args := KindRequest{Kind: "Notes"}

	result, err := handler(context.Background(), callRequest(ToolListEntries, args), args)
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var response ListResponse
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &response))
	assert.Equal(t, "notes", response.Kind)
	require.Len(t, response.Entries, 2)
	assert.Equal(t, "second", response.Entries[0].Slug)
	assert.Equal(t, "first", response.Entries[1].Slug)
}

func TestLatestEntriesHandler(t *testing.T) {
	handler := latestEntriesHandler(newService(t), logging.NoOp())

	args := LatestRequest{Kind: "notes", Limit: 1}
	result, err := handler(context.Background(), callRequest(ToolLatestEntries, args), args)
	require.NoError(t, err)

	var response ListResponse
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &response))
	require.Len(t, response.Entries, 1)
	assert.Equal(t, "second", response.Entries[0].Slug)

	args = LatestRequest{Kind: "notes", Limit: -2}
	result, err = handler(context.Background(), callRequest(ToolLatestEntries, args), args)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestGetEntryHandler(t *testing.T) {
	handler := getEntryHandler(newService(t), logging.NoOp())

	args := EntryRequest{Kind: "notes", Slug: "first"}
	result, err := handler(context.Background(), callRequest(ToolGetEntry, args), args)
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var response EntryResponse
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &response))
	require.NotNil(t, response.Document)
	assert.Equal(t, "First", response.Document.Title)
	assert.Contains(t, response.Document.HTML, `<h1 id="one">`)
	require.Len(t, response.Document.Headings, 1)
	assert.Equal(t, "one", response.Document.Headings[0].ID)
}

func TestGetEntryHandlerHidesDraftsAndMissing(t *testing.T) {
	handler := getEntryHandler(newService(t), logging.NoOp())

	for _, slug := range []string{"draft", "missing", ""} {
		args := EntryRequest{Kind: "notes", Slug: slug}
		result, err := handler(context.Background(), callRequest(ToolGetEntry, args), args)
		require.NoError(t, err)
		assert.True(t, result.IsError, "slug %q", slug)
	}
}

func TestListSlugsHandler(t *testing.T) {
	handler := listSlugsHandler(newService(t), logging.NoOp())

	args := KindRequest{Kind: "notes"}
	result, err := handler(context.Background(), callRequest(ToolListSlugs, args), args)
	require.NoError(t, err)

	var response SlugsResponse
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &response))
	assert.Equal(t, []string{"second", "first"}, response.Slugs)
}

func TestHandlersRejectUnknownKind(t *testing.T) {
	handler := listSlugsHandler(newService(t), logging.NoOp())

	args := KindRequest{Kind: "posts"}
	result, err := handler(context.Background(), callRequest(ToolListSlugs, args), args)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
