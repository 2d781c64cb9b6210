// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the catalog reorganization and diff tooling as MCP tools
// over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	apidogsync "github.com/akhelij/apidog-sync-mcp-server"
)

const serverInstructions = `apidog-sync MCP server — analyzes, reorganizes, and diffs an Apidog API catalog.

Workflow: export_project (or provide an exported document via file/url/content), analyze_folders to see the current taxonomy, plan_reorganization to get a proposed plan, review the plan's changes, apply_reorganization with the approved changes, then import_project to commit. Use diff_operations to preview what an edit to a single endpoint definition would change before writing it back.

Configuration: defaults are configurable via environment variables set in your MCP client config.

Key settings:
- APIDOG_API_TOKEN / APIDOG_PROJECT_ID — credentials for the live project tools
- APIDOG_SYNC_CACHE_TTL (default: 5m) — cache TTL for resolved documents
- APIDOG_SYNC_CACHE_ENABLED (default: true) — disable document caching entirely
- APIDOG_SYNC_LIST_LIMIT (default: 100) — default result limit for list_endpoints
- APIDOG_SYNC_DEFAULT_STRATEGY — default reorganization strategy (path-based, preserve-top-level, flat)

Caching: resolved documents are cached per session with a TTL. File entries use path+mtime as key (auto-invalidated on change).`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "apidog-sync", Version: apidogsync.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_folders",
		Description: "Analyze the folder organization of a catalog document. Groups endpoints by their current folder assignment and reports endpoints with no folder. Purely a partition of the existing state — use plan_reorganization to get a proposal.",
	}, handleAnalyzeFolders)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "plan_reorganization",
		Description: "Plan a folder reorganization for a catalog document. Strategies: path-based (infer folders from URL paths), preserve-top-level (keep existing top-level folders, reorganize beneath them), flat (one folder level from the first path segment). Custom mappings (ordered path-prefix to folder overrides) take precedence over any strategy. The plan classifies every endpoint as changed or unchanged; nothing is modified until apply_reorganization is called with approved changes.",
	}, handlePlanReorganization)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "apply_reorganization",
		Description: "Apply an approved list of folder changes (from plan_reorganization) to a catalog document and return the updated document. The input document is never modified; changes whose endpoint no longer exists are skipped and reported in skipped_count. Use output to write the updated document to a file instead of returning it inline.",
	}, handleApplyReorganization)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "diff_operations",
		Description: "Compare two versions of an endpoint operation definition and report field-level differences (added, removed, changed) before a write is issued. Provide the old operation via old_content, or via spec+method+path to take it from a catalog document; provide the edited version via new_content. Lists are compared whole (order-sensitive); the x-apidog-refs bookkeeping annotation is ignored.",
	}, handleDiffOperations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_endpoints",
		Description: "List and query endpoints in a catalog document. Filter by method, folder, or tag. Returns summaries (method, path, summary, folder, status) by default or full operation objects with detail=true. Use group_by (folder, method, or tag) to get distribution counts instead of individual items. Use offset/limit to paginate. Default limit is configurable via APIDOG_SYNC_LIST_LIMIT (default 100, 25 in detail mode).",
	}, handleListEndpoints)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_project",
		Description: "Export the configured Apidog project as an OpenAPI catalog document. Requires APIDOG_API_TOKEN and APIDOG_PROJECT_ID (or project_id input). Use output to write the export to a file for use with the file-based tools.",
	}, handleExportProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_project",
		Description: "Import a catalog document back into the configured Apidog project, committing folder changes and endpoint edits. Requires APIDOG_API_TOKEN and APIDOG_PROJECT_ID (or project_id input). Returns the remote counters (endpoints created/updated/failed).",
	}, handleImportProject)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) []string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		for _, key := range keyFn(item) {
			counts[key]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is a valid value and is not combined with detail.
func validateGroupBy(groupBy string, detail bool, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	if detail {
		return fmt.Errorf("cannot use both group_by and detail")
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
