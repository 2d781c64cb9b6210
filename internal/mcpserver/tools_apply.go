package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akhelij/apidog-sync-mcp-server/reorganizer"
)

type applyInput struct {
	Spec            docInput     `json:"spec"                       jsonschema:"The authoritative catalog document to update"`
	Changes         []planChange `json:"changes"                    jsonschema:"The approved folder changes from plan_reorganization"`
	Output          string       `json:"output,omitempty"           jsonschema:"File path to write the updated document. If omitted the document is returned inline when include_document is true."`
	IncludeDocument bool         `json:"include_document,omitempty" jsonschema:"Include the full updated document in the output"`
}

type applyOutput struct {
	TotalChanges int    `json:"total_changes"`
	AppliedCount int    `json:"applied_count"`
	SkippedCount int    `json:"skipped_count"`
	WrittenTo    string `json:"written_to,omitempty"`
	Document     string `json:"document,omitempty"`
	Summary      string `json:"summary"`
}

func handleApplyReorganization(ctx context.Context, _ *mcp.CallToolRequest, input applyInput) (*mcp.CallToolResult, applyOutput, error) {
	doc, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), applyOutput{}, nil
	}

	changes := make([]reorganizer.Change, 0, len(input.Changes))
	for _, c := range input.Changes {
		changes = append(changes, reorganizer.Change{
			Method:    c.Method,
			Path:      c.Path,
			Summary:   c.Summary,
			OldFolder: c.OldFolder,
			NewFolder: c.NewFolder,
		})
	}

	updated, applied := reorganizer.Apply(*doc, changes)

	output := applyOutput{
		TotalChanges: len(changes),
		AppliedCount: applied,
		SkippedCount: len(changes) - applied,
	}

	if input.Output != "" || input.IncludeDocument {
		data, err := updated.Marshal(updated.Format)
		if err != nil {
			return errResult(err), applyOutput{}, nil
		}
		if input.Output != "" {
			if err := os.WriteFile(input.Output, data, 0o644); err != nil {
				return errResult(fmt.Errorf("failed to write output file: %w", err)), applyOutput{}, nil
			}
			output.WrittenTo = input.Output
		}
		if input.IncludeDocument {
			output.Document = string(data)
		}
	}

	output.Summary = buildApplySummary(output)
	return nil, output, nil
}

func buildApplySummary(output applyOutput) string {
	summary := "Applied " + formatCount(output.AppliedCount, "folder change") + "."
	if output.SkippedCount > 0 {
		summary += " Skipped " + formatCount(output.SkippedCount, "change") + " whose endpoint no longer exists in the document."
	}
	summary += " Use import_project to commit the updated document."
	return summary
}
