package reorganizer

import (
	"testing"

	"github.com/akhelij/apidog-sync-mcp-server/catalog"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()

	endpoints := []catalog.Endpoint{
		endpoint("get", "/api/v1/users", "Users"),
		endpoint("post", "/api/v1/users", "Users"),
		endpoint("get", "/api/v1/orders", "Orders"),
		endpoint("get", "/health", ""),
	}

	analysis := Analyze(endpoints)

	if analysis.TotalEndpoints != 4 {
		t.Errorf("TotalEndpoints = %d, want 4", analysis.TotalEndpoints)
	}
	if analysis.TotalFolders != 2 {
		t.Errorf("TotalFolders = %d, want 2", analysis.TotalFolders)
	}
	if analysis.UnfolderedCount != 1 {
		t.Errorf("UnfolderedCount = %d, want 1", analysis.UnfolderedCount)
	}
	if got := analysis.Folders["Users"]; len(got) != 2 {
		t.Errorf("Folders[Users] = %v, want 2 refs", got)
	}
	if got := analysis.Unfoldered; len(got) != 1 || got[0] != "get /health" {
		t.Errorf("Unfoldered = %v, want [get /health]", got)
	}

	// Partition: every endpoint lands on exactly one side.
	inFolders := 0
	for _, refs := range analysis.Folders {
		inFolders += len(refs)
	}
	if inFolders+len(analysis.Unfoldered) != analysis.TotalEndpoints {
		t.Errorf("partition mismatch: %d foldered + %d unfoldered != %d total",
			inFolders, len(analysis.Unfoldered), analysis.TotalEndpoints)
	}
}

func TestAnalyze_ExtensionFolder(t *testing.T) {
	t.Parallel()

	endpoints := []catalog.Endpoint{
		{
			Method:    "get",
			Path:      "/api/v1/users",
			Operation: map[string]any{catalog.ExtFolder: "Users"},
		},
	}

	analysis := Analyze(endpoints)

	if analysis.UnfolderedCount != 0 {
		t.Errorf("UnfolderedCount = %d, want 0", analysis.UnfolderedCount)
	}
	if _, ok := analysis.Folders["Users"]; !ok {
		t.Errorf("Folders = %v, want key %q from the vendor extension", analysis.Folders, "Users")
	}
}

func TestAnalyze_Empty(t *testing.T) {
	t.Parallel()

	analysis := Analyze(nil)

	if analysis.TotalEndpoints != 0 || analysis.TotalFolders != 0 || analysis.UnfolderedCount != 0 {
		t.Errorf("Analyze(nil) = %+v, want all-zero counts", analysis)
	}
	if analysis.Unfoldered == nil {
		t.Error("Unfoldered is nil, want empty slice for stable JSON output")
	}
}
