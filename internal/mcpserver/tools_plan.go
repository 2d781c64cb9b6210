package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akhelij/apidog-sync-mcp-server/reorganizer"
)

type mappingInput struct {
	Prefix string `json:"prefix" jsonschema:"Literal path prefix to match (startsWith)"`
	Folder string `json:"folder" jsonschema:"Folder to assign when the prefix matches"`
}

type planInput struct {
	Spec           docInput       `json:"spec"                       jsonschema:"The catalog document to plan against"`
	Strategy       string         `json:"strategy,omitempty"         jsonschema:"Reorganization strategy: path-based (default)\\, preserve-top-level\\, or flat"`
	GroupByVersion bool           `json:"group_by_version,omitempty" jsonschema:"Keep version segments (v1\\, v2) as folder levels instead of stripping them"`
	KeepAPIPrefix  bool           `json:"keep_api_prefix,omitempty"  jsonschema:"Keep a leading literal api path segment instead of stripping it"`
	MaxDepth       int            `json:"max_depth,omitempty"        jsonschema:"Maximum folder depth (default 3)"`
	CustomMappings []mappingInput `json:"custom_mappings,omitempty"  jsonschema:"Ordered path-prefix to folder overrides; first matching prefix wins and takes precedence over the strategy"`
}

type planChange struct {
	Method    string `json:"method"`
	Path      string `json:"path"`
	Summary   string `json:"summary,omitempty"`
	OldFolder string `json:"old_folder"`
	NewFolder string `json:"new_folder"`
}

type planOutput struct {
	Strategy        string              `json:"strategy"`
	TotalEndpoints  int                 `json:"total_endpoints"`
	ChangesCount    int                 `json:"changes_count"`
	UnchangedCount  int                 `json:"unchanged_count"`
	ProposedFolders map[string][]string `json:"proposed_folders,omitempty"`
	Changes         []planChange        `json:"changes,omitempty"`
	Unchanged       []string            `json:"unchanged,omitempty"`
	Summary         string              `json:"summary"`
}

func handlePlanReorganization(ctx context.Context, _ *mcp.CallToolRequest, input planInput) (*mcp.CallToolResult, planOutput, error) {
	doc, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), planOutput{}, nil
	}

	opts := reorganizer.DefaultPlanOptions()
	strategy := input.Strategy
	if strategy == "" {
		strategy = cfg.DefaultStrategy
	}
	if strategy != "" {
		opts.Strategy = reorganizer.Strategy(strategy)
	}
	opts.GroupByVersion = input.GroupByVersion
	opts.StripAPIPrefix = !input.KeepAPIPrefix
	if input.MaxDepth > 0 {
		opts.MaxDepth = input.MaxDepth
	}
	for _, m := range input.CustomMappings {
		opts.CustomMappings = append(opts.CustomMappings, reorganizer.Mapping{Prefix: m.Prefix, Folder: m.Folder})
	}

	plan := reorganizer.Plan(doc.Endpoints, opts)

	output := planOutput{
		Strategy:        string(plan.Strategy),
		TotalEndpoints:  plan.TotalEndpoints,
		ChangesCount:    plan.ChangesCount,
		UnchangedCount:  plan.UnchangedCount,
		ProposedFolders: plan.ProposedFolders,
		Unchanged:       plan.Unchanged,
		Changes:         makeSlice[planChange](len(plan.Changes)),
	}
	for _, c := range plan.Changes {
		output.Changes = append(output.Changes, planChange{
			Method:    c.Method,
			Path:      c.Path,
			Summary:   c.Summary,
			OldFolder: c.OldFolder,
			NewFolder: c.NewFolder,
		})
	}
	output.Summary = buildPlanSummary(plan)

	return nil, output, nil
}

func buildPlanSummary(plan *reorganizer.PlanResult) string {
	if plan.ChangesCount == 0 {
		return "All endpoints already match the proposed organization."
	}
	return formatCount(plan.ChangesCount, "endpoint") + " would move to a new folder; " +
		formatCount(plan.UnchangedCount, "endpoint") + " stay where they are. " +
		"Review changes and pass the approved list to apply_reorganization."
}
