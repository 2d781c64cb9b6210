package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.yaml.in/yaml/v4"

	"github.com/akhelij/apidog-sync-mcp-server/structdiff"
)

type diffInput struct {
	Spec       *docInput `json:"spec,omitempty"        jsonschema:"Catalog document to take the old operation from (together with method and path)"`
	Method     string    `json:"method,omitempty"      jsonschema:"HTTP method of the endpoint to diff (with spec)"`
	Path       string    `json:"path,omitempty"        jsonschema:"URL path of the endpoint to diff (with spec)"`
	OldContent string    `json:"old_content,omitempty" jsonschema:"The old operation definition (JSON or YAML)\\, as an alternative to spec+method+path"`
	NewContent string    `json:"new_content"           jsonschema:"The edited operation definition (JSON or YAML)"`
}

type diffChange struct {
	Type     string `json:"type"`
	Path     string `json:"path"`
	Value    any    `json:"value,omitempty"`
	OldValue any    `json:"oldValue,omitempty"`
	NewValue any    `json:"newValue,omitempty"`
}

type diffOutput struct {
	TotalChanges int          `json:"total_changes"`
	AddedCount   int          `json:"added_count"`
	RemovedCount int          `json:"removed_count"`
	ChangedCount int          `json:"changed_count"`
	Changes      []diffChange `json:"changes,omitempty"`
	Formatted    string       `json:"formatted"`
	Summary      string       `json:"summary"`
}

func handleDiffOperations(ctx context.Context, _ *mcp.CallToolRequest, input diffInput) (*mcp.CallToolResult, diffOutput, error) {
	oldOp, err := resolveOldOperation(ctx, input)
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	newOp, err := parseOperation(input.NewContent, "new_content")
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	changes := structdiff.Diff(oldOp, newOp)

	output := diffOutput{
		TotalChanges: len(changes),
		Formatted:    structdiff.Format(changes),
		Changes:      makeSlice[diffChange](len(changes)),
	}
	for _, c := range changes {
		output.Changes = append(output.Changes, diffChange{
			Type:     string(c.Kind),
			Path:     c.Path,
			Value:    c.Value,
			OldValue: c.OldValue,
			NewValue: c.NewValue,
		})
		switch c.Kind {
		case structdiff.KindAdded:
			output.AddedCount++
		case structdiff.KindRemoved:
			output.RemovedCount++
		case structdiff.KindChanged:
			output.ChangedCount++
		}
	}
	output.Summary = buildDiffSummary(output)

	return nil, output, nil
}

// resolveOldOperation takes the old side of the diff from either the
// inline old_content or a catalog document plus endpoint identity.
func resolveOldOperation(ctx context.Context, input diffInput) (map[string]any, error) {
	switch {
	case input.OldContent != "" && input.Spec != nil:
		return nil, fmt.Errorf("provide either old_content or spec+method+path, not both")
	case input.OldContent != "":
		return parseOperation(input.OldContent, "old_content")
	case input.Spec != nil:
		if input.Method == "" || input.Path == "" {
			return nil, fmt.Errorf("method and path are required when spec is provided")
		}
		doc, err := input.Spec.resolve(ctx)
		if err != nil {
			return nil, err
		}
		ep := doc.FindEndpoint(strings.ToLower(input.Method), input.Path)
		if ep == nil {
			return nil, fmt.Errorf("endpoint %s %s not found in document", strings.ToUpper(input.Method), input.Path)
		}
		return ep.Operation, nil
	default:
		return nil, fmt.Errorf("either old_content or spec+method+path must be provided")
	}
}

// parseOperation decodes an operation definition. YAML is a superset of
// JSON, so a single decode path covers both formats and keeps scalar
// typing consistent across the two sides of the diff.
func parseOperation(content, field string) (map[string]any, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%s must not be empty", field)
	}
	op := make(map[string]any)
	if err := yaml.Unmarshal([]byte(content), &op); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", field, err)
	}
	return op, nil
}

func buildDiffSummary(output diffOutput) string {
	if output.TotalChanges == 0 {
		return "No differences detected."
	}
	return formatCount(output.TotalChanges, "field-level change") + " found: " +
		formatCount(output.AddedCount, "addition") + ", " +
		formatCount(output.RemovedCount, "removal") + ", " +
		formatCount(output.ChangedCount, "modification") + "."
}
