package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akhelij/apidog-sync-mcp-server/catalog"
	"github.com/akhelij/apidog-sync-mcp-server/reorganizer"
)

type listInput struct {
	Spec    docInput `json:"spec"               jsonschema:"The catalog document to query"`
	Method  string   `json:"method,omitempty"   jsonschema:"Filter by HTTP method (get\\, post\\, ...)"`
	Folder  string   `json:"folder,omitempty"   jsonschema:"Filter by current folder assignment; use (none) for unfoldered endpoints"`
	Tag     string   `json:"tag,omitempty"      jsonschema:"Filter by tag"`
	GroupBy string   `json:"group_by,omitempty" jsonschema:"Return distribution counts instead of items: folder\\, method\\, or tag"`
	Detail  bool     `json:"detail,omitempty"   jsonschema:"Return full operation objects instead of summaries"`
	Offset  int      `json:"offset,omitempty"   jsonschema:"Skip the first N results (for pagination)"`
	Limit   int      `json:"limit,omitempty"    jsonschema:"Maximum number of results to return"`
}

type endpointSummary struct {
	Method  string   `json:"method"`
	Path    string   `json:"path"`
	Summary string   `json:"summary,omitempty"`
	Folder  string   `json:"folder,omitempty"`
	Status  string   `json:"status,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	// Operation is only populated in detail mode.
	Operation map[string]any `json:"operation,omitempty"`
}

type listOutput struct {
	TotalMatched int               `json:"total_matched"`
	Returned     int               `json:"returned"`
	Endpoints    []endpointSummary `json:"endpoints,omitempty"`
	Groups       []groupCount      `json:"groups,omitempty"`
}

func handleListEndpoints(ctx context.Context, _ *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, listOutput, error) {
	if err := validateGroupBy(input.GroupBy, input.Detail, []string{"folder", "method", "tag"}); err != nil {
		return errResult(err), listOutput{}, nil
	}

	doc, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), listOutput{}, nil
	}

	matched := filterEndpoints(doc.Endpoints, input)
	output := listOutput{TotalMatched: len(matched)}

	if input.GroupBy != "" {
		output.Groups = groupAndSort(matched, groupKeyFunc(input.GroupBy))
		output.Returned = len(output.Groups)
		return nil, output, nil
	}

	limit := input.Limit
	if input.Detail && limit <= 0 {
		limit = cfg.ListDetailLimit
	}
	page := paginate(matched, input.Offset, limit)

	output.Endpoints = makeSlice[endpointSummary](len(page))
	for _, ep := range page {
		summary := endpointSummary{
			Method:  ep.Method,
			Path:    ep.Path,
			Summary: ep.Summary,
			Folder:  ep.CurrentFolder(),
			Status:  ep.Status,
			Tags:    ep.Tags,
		}
		if input.Detail {
			summary.Operation = ep.Operation
		}
		output.Endpoints = append(output.Endpoints, summary)
	}
	output.Returned = len(output.Endpoints)

	return nil, output, nil
}

func filterEndpoints(endpoints []catalog.Endpoint, input listInput) []catalog.Endpoint {
	matched := make([]catalog.Endpoint, 0, len(endpoints))
	for _, ep := range endpoints {
		if input.Method != "" && !strings.EqualFold(ep.Method, input.Method) {
			continue
		}
		if input.Folder != "" && !matchFolder(ep, input.Folder) {
			continue
		}
		if input.Tag != "" && !hasTag(ep, input.Tag) {
			continue
		}
		matched = append(matched, ep)
	}
	return matched
}

func matchFolder(ep catalog.Endpoint, folder string) bool {
	current := ep.CurrentFolder()
	if folder == reorganizer.NoFolder {
		return current == ""
	}
	return current == folder
}

func hasTag(ep catalog.Endpoint, tag string) bool {
	for _, t := range ep.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// groupKeyFunc returns the key extractor for a validated group_by value.
func groupKeyFunc(groupBy string) func(catalog.Endpoint) []string {
	switch strings.ToLower(groupBy) {
	case "method":
		return func(ep catalog.Endpoint) []string { return []string{ep.Method} }
	case "tag":
		return func(ep catalog.Endpoint) []string { return ep.Tags }
	default: // folder
		return func(ep catalog.Endpoint) []string {
			folder := ep.CurrentFolder()
			if folder == "" {
				folder = reorganizer.NoFolder
			}
			return []string{folder}
		}
	}
}
