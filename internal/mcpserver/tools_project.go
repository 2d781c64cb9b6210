package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akhelij/apidog-sync-mcp-server/apidog"
	"github.com/akhelij/apidog-sync-mcp-server/catalog"
	"github.com/akhelij/apidog-sync-mcp-server/reorganizer"
)

type exportInput struct {
	ProjectID       string `json:"project_id,omitempty"       jsonschema:"Apidog project ID; defaults to APIDOG_PROJECT_ID"`
	Output          string `json:"output,omitempty"           jsonschema:"File path to write the exported document to"`
	IncludeDocument bool   `json:"include_document,omitempty" jsonschema:"Include the full exported document in the output"`
}

type exportOutput struct {
	ProjectID       string `json:"project_id"`
	EndpointCount   int    `json:"endpoint_count"`
	FolderCount     int    `json:"folder_count"`
	UnfolderedCount int    `json:"unfoldered_count"`
	WrittenTo       string `json:"written_to,omitempty"`
	Document        string `json:"document,omitempty"`
}

func handleExportProject(ctx context.Context, _ *mcp.CallToolRequest, input exportInput) (*mcp.CallToolResult, exportOutput, error) {
	client, err := newProjectClient(input.ProjectID)
	if err != nil {
		return errResult(err), exportOutput{}, nil
	}

	doc, err := client.ExportOpenAPI(ctx, apidog.ExportOptions{})
	if err != nil {
		return errResult(err), exportOutput{}, nil
	}

	analysis := reorganizer.Analyze(doc.Endpoints)
	output := exportOutput{
		ProjectID:       client.ProjectID,
		EndpointCount:   analysis.TotalEndpoints,
		FolderCount:     analysis.TotalFolders,
		UnfolderedCount: analysis.UnfolderedCount,
	}

	if input.Output != "" || input.IncludeDocument {
		data, err := doc.Marshal(catalog.FormatJSON)
		if err != nil {
			return errResult(err), exportOutput{}, nil
		}
		if input.Output != "" {
			if err := os.WriteFile(input.Output, data, 0o644); err != nil {
				return errResult(fmt.Errorf("failed to write output file: %w", err)), exportOutput{}, nil
			}
			output.WrittenTo = input.Output
		}
		if input.IncludeDocument {
			output.Document = string(data)
		}
	}

	return nil, output, nil
}

type importInput struct {
	Spec              docInput `json:"spec"                         jsonschema:"The catalog document to import"`
	ProjectID         string   `json:"project_id,omitempty"         jsonschema:"Apidog project ID; defaults to APIDOG_PROJECT_ID"`
	OverwriteBehavior string   `json:"overwrite_behavior,omitempty" jsonschema:"How colliding endpoints are handled (default OVERWRITE_EXISTING)"`
}

type importOutput struct {
	ProjectID       string `json:"project_id"`
	EndpointCreated int    `json:"endpoint_created"`
	EndpointUpdated int    `json:"endpoint_updated"`
	EndpointFailed  int    `json:"endpoint_failed"`
	FolderCreated   int    `json:"folder_created"`
	FolderUpdated   int    `json:"folder_updated"`
	Summary         string `json:"summary"`
}

func handleImportProject(ctx context.Context, _ *mcp.CallToolRequest, input importInput) (*mcp.CallToolResult, importOutput, error) {
	client, err := newProjectClient(input.ProjectID)
	if err != nil {
		return errResult(err), importOutput{}, nil
	}

	doc, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), importOutput{}, nil
	}

	result, err := client.ImportOpenAPI(ctx, doc, apidog.ImportOptions{
		OverwriteBehavior: input.OverwriteBehavior,
	})
	if err != nil {
		return errResult(err), importOutput{}, nil
	}

	output := importOutput{
		ProjectID:       client.ProjectID,
		EndpointCreated: result.Counters.EndpointCreated,
		EndpointUpdated: result.Counters.EndpointUpdated,
		EndpointFailed:  result.Counters.EndpointFailed,
		FolderCreated:   result.Counters.FolderCreated,
		FolderUpdated:   result.Counters.FolderUpdated,
	}
	output.Summary = buildImportSummary(output)

	return nil, output, nil
}

func buildImportSummary(output importOutput) string {
	summary := formatCount(output.EndpointCreated, "endpoint") + " created, " +
		formatCount(output.EndpointUpdated, "endpoint") + " updated."
	if output.EndpointFailed > 0 {
		summary += " " + formatCount(output.EndpointFailed, "endpoint") + " failed to import."
	}
	return summary
}

// newProjectClient builds an API client from configuration, preferring an
// explicit project ID from the tool input.
func newProjectClient(projectID string) (*apidog.Client, error) {
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("APIDOG_API_TOKEN is not set; live project tools require an API token")
	}
	if projectID == "" {
		projectID = cfg.ProjectID
	}
	if projectID == "" {
		return nil, fmt.Errorf("no project ID: set APIDOG_PROJECT_ID or pass project_id")
	}

	client := apidog.New(cfg.APIToken, projectID)
	if cfg.BaseURL != "" {
		client.BaseURL = cfg.BaseURL
	}
	return client, nil
}
