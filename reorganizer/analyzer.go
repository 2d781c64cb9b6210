package reorganizer

import "github.com/akhelij/apidog-sync-mcp-server/catalog"

// Analysis is a partition of a catalog's endpoints by their current folder
// assignment. Every endpoint appears in exactly one of Folders or
// Unfoldered; TotalEndpoints is the sum of both sides.
type Analysis struct {
	TotalEndpoints  int                 `json:"totalEndpoints"`
	TotalFolders    int                 `json:"totalFolders"`
	UnfolderedCount int                 `json:"unfolderedCount"`
	Folders         map[string][]string `json:"folders"`
	Unfoldered      []string            `json:"unfoldered"`
}

// Analyze groups endpoints by their current folder assignment. The current
// folder is the endpoint's Folder field, falling back to the
// x-apidog-folder extension on the operation payload; endpoints with
// neither are collected into Unfoldered. This is purely a partition — no
// inference happens here.
func Analyze(endpoints []catalog.Endpoint) *Analysis {
	analysis := &Analysis{
		TotalEndpoints: len(endpoints),
		Folders:        make(map[string][]string),
		Unfoldered:     []string{},
	}

	for _, ep := range endpoints {
		folder := ep.CurrentFolder()
		if folder == "" {
			analysis.Unfoldered = append(analysis.Unfoldered, ep.Ref())
			continue
		}
		analysis.Folders[folder] = append(analysis.Folders[folder], ep.Ref())
	}

	analysis.TotalFolders = len(analysis.Folders)
	analysis.UnfolderedCount = len(analysis.Unfoldered)
	return analysis
}
