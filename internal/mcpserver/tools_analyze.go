package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akhelij/apidog-sync-mcp-server/reorganizer"
)

type analyzeInput struct {
	Spec docInput `json:"spec" jsonschema:"The catalog document to analyze"`
}

type analyzeOutput struct {
	TotalEndpoints  int                 `json:"total_endpoints"`
	TotalFolders    int                 `json:"total_folders"`
	UnfolderedCount int                 `json:"unfoldered_count"`
	Folders         map[string][]string `json:"folders,omitempty"`
	Unfoldered      []string            `json:"unfoldered,omitempty"`
	Summary         string              `json:"summary"`
}

func handleAnalyzeFolders(ctx context.Context, _ *mcp.CallToolRequest, input analyzeInput) (*mcp.CallToolResult, analyzeOutput, error) {
	doc, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), analyzeOutput{}, nil
	}

	analysis := reorganizer.Analyze(doc.Endpoints)

	output := analyzeOutput{
		TotalEndpoints:  analysis.TotalEndpoints,
		TotalFolders:    analysis.TotalFolders,
		UnfolderedCount: analysis.UnfolderedCount,
		Folders:         analysis.Folders,
		Unfoldered:      analysis.Unfoldered,
	}
	output.Summary = buildAnalyzeSummary(analysis)

	return nil, output, nil
}

func buildAnalyzeSummary(analysis *reorganizer.Analysis) string {
	summary := formatCount(analysis.TotalEndpoints, "endpoint") + " across " + formatCount(analysis.TotalFolders, "folder") + "."
	if analysis.UnfolderedCount > 0 {
		summary += " " + formatCount(analysis.UnfolderedCount, "endpoint") + " have no folder assignment."
	}
	return summary
}
