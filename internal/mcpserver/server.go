package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/content"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/frontmatter"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/logging"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/pkg/interfaces"
)

const (
	DefaultName    = "site-content"
	DefaultVersion = "0.1.0"
)

// Tool names.
const (
	ToolListEntries   = "list_entries"
	ToolLatestEntries = "latest_entries"
	ToolGetEntry      = "get_entry"
	ToolListSlugs     = "list_slugs"
)

type KindRequest struct {
	Kind string `json:"kind"`
}

type LatestRequest struct {
	Kind  string `json:"kind"`
	Limit int    `json:"limit"`
}

type EntryRequest struct {
	Kind string `json:"kind"`
	Slug string `json:"slug"`
}

type ListResponse struct {
	Kind    string            `json:"kind"`
	Entries []content.Summary `json:"entries"`
}

type SlugsResponse struct {
	Kind  string   `json:"kind"`
	Slugs []string `json:"slugs"`
}

type EntryResponse struct {
	Document *content.RenderedDocument `json:"document"`
}

// Options names the server and routes its diagnostics.
type Options struct {
	Name    string
	Version string
	Logger  interfaces.Logger
}

// NewServer exposes the read operations of svc as MCP tools.
func NewServer(svc content.Service, opts Options) *server.MCPServer {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.MCPLogger(nil)
	}

	s := server.NewMCPServer(
		opts.Name,
		opts.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	kinds := kindNames()
	kindOption := mcp.WithString("kind",
		mcp.Required(),
		mcp.Enum(kinds...),
		mcp.Description("Content collection to read"),
	)

	s.AddTool(mcp.NewTool(ToolListEntries,
		mcp.WithDescription("List visible entries of a collection, newest first"),
		kindOption,
	), mcp.NewTypedToolHandler(listEntriesHandler(svc, logger)))

	s.AddTool(mcp.NewTool(ToolLatestEntries,
		mcp.WithDescription("List the newest visible entries of a collection"),
		kindOption,
		mcp.WithNumber("limit",
			mcp.Min(0),
			mcp.Description(fmt.Sprintf("Number of entries; %d when omitted or zero", content.DefaultLatestLimit)),
		),
	), mcp.NewTypedToolHandler(latestEntriesHandler(svc, logger)))

	s.AddTool(mcp.NewTool(ToolGetEntry,
		mcp.WithDescription("Fetch one entry with its rendered HTML and heading outline"),
		kindOption,
		mcp.WithString("slug",
			mcp.Required(),
			mcp.Description("Entry slug, the file name without extension"),
		),
	), mcp.NewTypedToolHandler(getEntryHandler(svc, logger)))

	s.AddTool(mcp.NewTool(ToolListSlugs,
		mcp.WithDescription("List the slugs of visible entries, newest first"),
		kindOption,
	), mcp.NewTypedToolHandler(listSlugsHandler(svc, logger)))

	return s
}

// ServeStdio runs s over the given streams until ctx is cancelled.
func ServeStdio(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s).Listen(ctx, in, out)
}

func listEntriesHandler(svc content.Service, logger interfaces.Logger) mcp.TypedToolHandlerFunc[KindRequest] {
	return func(ctx context.Context, request mcp.CallToolRequest, args KindRequest) (*mcp.CallToolResult, error) {
		kind, err := frontmatter.ParseKind(args.Kind)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		entries, err := svc.List(ctx, kind)
		if err != nil {
			return toolFailure(logger, ToolListEntries, err), nil
		}
		return jsonResult(ListResponse{Kind: kind.String(), Entries: entries})
	}
}

func latestEntriesHandler(svc content.Service, logger interfaces.Logger) mcp.TypedToolHandlerFunc[LatestRequest] {
	return func(ctx context.Context, request mcp.CallToolRequest, args LatestRequest) (*mcp.CallToolResult, error) {
		kind, err := frontmatter.ParseKind(args.Kind)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if args.Limit < 0 {
			return mcp.NewToolResultError("limit must not be negative"), nil
		}
		entries, err := svc.Latest(ctx, kind, args.Limit)
		if err != nil {
			return toolFailure(logger, ToolLatestEntries, err), nil
		}
		return jsonResult(ListResponse{Kind: kind.String(), Entries: entries})
	}
}

func getEntryHandler(svc content.Service, logger interfaces.Logger) mcp.TypedToolHandlerFunc[EntryRequest] {
	return func(ctx context.Context, request mcp.CallToolRequest, args EntryRequest) (*mcp.CallToolResult, error) {
		kind, err := frontmatter.ParseKind(args.Kind)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if args.Slug == "" {
			return mcp.NewToolResultError("slug is required"), nil
		}
		doc, err := svc.Get(ctx, kind, args.Slug)
		if err != nil {
			if content.IsNotFound(err) {
				return mcp.NewToolResultError(fmt.Sprintf("%s/%s not found", kind, args.Slug)), nil
			}
			return toolFailure(logger, ToolGetEntry, err), nil
		}
		return jsonResult(EntryResponse{Document: doc})
	}
}

func listSlugsHandler(svc content.Service, logger interfaces.Logger) mcp.TypedToolHandlerFunc[KindRequest] {
	return func(ctx context.Context, request mcp.CallToolRequest, args KindRequest) (*mcp.CallToolResult, error) {
		kind, err := frontmatter.ParseKind(args.Kind)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		slugs, err := svc.Slugs(ctx, kind)
		if err != nil {
			return toolFailure(logger, ToolListSlugs, err), nil
		}
		return jsonResult(SlugsResponse{Kind: kind.String(), Slugs: slugs})
	}
}

func toolFailure(logger interfaces.Logger, tool string, err error) *mcp.CallToolResult {
	logger.Error("mcp.tool.failed", "tool", tool, "error", err.Error())
	return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", tool, err))
}

func jsonResult(response any) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func kindNames() []string {
	kinds := frontmatter.Kinds()
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, kind.String())
	}
	return names
}
