package reorganizer

import (
	"strings"

	"github.com/akhelij/apidog-sync-mcp-server/catalog"
	"github.com/akhelij/apidog-sync-mcp-server/internal/naming"
)

// Strategy names an algorithm for deriving a proposed folder from an
// endpoint's URL path and its current folder.
type Strategy string

const (
	// StrategyPathBased infers the folder from the URL path alone.
	StrategyPathBased Strategy = "path-based"
	// StrategyPreserveTopLevel keeps the existing top-level folder segment
	// and re-infers the sub-path beneath it.
	StrategyPreserveTopLevel Strategy = "preserve-top-level"
	// StrategyFlat groups everything under a single-level folder derived
	// from the first meaningful path segment.
	StrategyFlat Strategy = "flat"
)

const (
	// NoFolder is the display sentinel for an absent current folder.
	NoFolder = "(none)"
	// OtherFolder is the fallback folder when inference yields nothing usable.
	OtherFolder = "Other"
)

// Mapping is an explicit path-prefix override consulted before any
// strategy. Mappings are ordered; the first matching prefix wins.
type Mapping struct {
	Prefix string `json:"prefix"`
	Folder string `json:"folder"`
}

// PlanOptions configures Plan.
type PlanOptions struct {
	Strategy Strategy
	// GroupByVersion keeps version segments (v1, v2) as folder levels
	// instead of stripping them.
	GroupByVersion bool
	StripAPIPrefix bool
	MaxDepth       int
	CustomMappings []Mapping
}

// DefaultPlanOptions returns the standard planning options.
func DefaultPlanOptions() PlanOptions {
	return PlanOptions{
		Strategy:       StrategyPathBased,
		StripAPIPrefix: true,
		MaxDepth:       3,
	}
}

// Change records a single endpoint's transition from its current folder to
// a proposed folder, pending external approval. OldFolder is NoFolder when
// the endpoint had no assignment; OldFolder and NewFolder are never equal.
type Change struct {
	Method    string `json:"method"`
	Path      string `json:"path"`
	Summary   string `json:"summary"`
	OldFolder string `json:"oldFolder"`
	NewFolder string `json:"newFolder"`
}

// PlanResult is the result of a planning call: a proposed folder for every
// endpoint and the classification of each endpoint as changed or unchanged.
// Plans are immutable once returned.
type PlanResult struct {
	Strategy        Strategy            `json:"strategy"`
	TotalEndpoints  int                 `json:"totalEndpoints"`
	ChangesCount    int                 `json:"changesCount"`
	UnchangedCount  int                 `json:"unchangedCount"`
	CurrentFolders  map[string][]string `json:"currentFolders"`
	ProposedFolders map[string][]string `json:"proposedFolders"`
	Changes         []Change            `json:"changes"`
	Unchanged       []string            `json:"unchanged"`
}

// strategyFunc computes the proposed folder for one endpoint.
type strategyFunc func(ep catalog.Endpoint, opts PlanOptions) string

// strategyFuncs is the closed set of named strategies. Dispatching through
// this table keeps each strategy independently testable.
var strategyFuncs = map[Strategy]strategyFunc{
	StrategyPathBased:        proposePathBased,
	StrategyPreserveTopLevel: proposePreserveTopLevel,
	StrategyFlat:             proposeFlat,
}

// Plan computes a proposed folder for every endpoint. Custom mappings take
// precedence over the strategy; blank results coerce to OtherFolder.
// An unrecognized strategy silently degrades to path-based — callers that
// want strict validation must check the strategy value themselves.
func Plan(endpoints []catalog.Endpoint, opts PlanOptions) *PlanResult {
	strategy := opts.Strategy
	fn, ok := strategyFuncs[strategy]
	if !ok {
		strategy = StrategyPathBased
		fn = proposePathBased
	}

	plan := &PlanResult{
		Strategy:        strategy,
		TotalEndpoints:  len(endpoints),
		CurrentFolders:  make(map[string][]string),
		ProposedFolders: make(map[string][]string),
		Changes:         []Change{},
		Unchanged:       []string{},
	}

	for _, ep := range endpoints {
		current := ep.CurrentFolder()
		currentKey := current
		if currentKey == "" {
			currentKey = NoFolder
		}
		plan.CurrentFolders[currentKey] = append(plan.CurrentFolders[currentKey], endpointLabel(ep))

		newFolder := applyCustomMappings(ep.Path, opts.CustomMappings)
		if newFolder == "" {
			newFolder = fn(ep, opts)
		}
		if strings.TrimSpace(newFolder) == "" {
			newFolder = OtherFolder
		}
		plan.ProposedFolders[newFolder] = append(plan.ProposedFolders[newFolder], endpointLabel(ep))

		if newFolder == current {
			plan.Unchanged = append(plan.Unchanged, ep.Ref())
			continue
		}
		oldFolder := current
		if oldFolder == "" {
			oldFolder = NoFolder
		}
		plan.Changes = append(plan.Changes, Change{
			Method:    ep.Method,
			Path:      ep.Path,
			Summary:   ep.Summary,
			OldFolder: oldFolder,
			NewFolder: newFolder,
		})
	}

	plan.ChangesCount = len(plan.Changes)
	plan.UnchangedCount = len(plan.Unchanged)
	return plan
}

// applyCustomMappings returns the folder of the first mapping whose prefix
// matches the path, or "" when none match.
func applyCustomMappings(path string, mappings []Mapping) string {
	for _, m := range mappings {
		if strings.HasPrefix(path, m.Prefix) {
			return m.Folder
		}
	}
	return ""
}

func proposePathBased(ep catalog.Endpoint, opts PlanOptions) string {
	return InferFolder(ep.Path, InferOptions{
		StripAPIPrefix:     opts.StripAPIPrefix,
		StripVersion:       !opts.GroupByVersion,
		MaxDepth:           opts.MaxDepth,
		CapitalizeSegments: true,
	})
}

// proposePreserveTopLevel keeps the endpoint's existing top-level folder
// segment and nests a freshly inferred sub-path beneath it. Endpoints with
// no current folder fall back to path-based behavior.
func proposePreserveTopLevel(ep catalog.Endpoint, opts PlanOptions) string {
	current := ep.CurrentFolder()
	if current == "" {
		return proposePathBased(ep, opts)
	}

	topLevel := current
	if idx := strings.Index(current, "/"); idx >= 0 {
		topLevel = current[:idx]
	}

	sub := InferFolder(ep.Path, InferOptions{
		StripAPIPrefix:     opts.StripAPIPrefix,
		StripVersion:       true,
		MaxDepth:           opts.MaxDepth - 1,
		CapitalizeSegments: true,
	})
	if sub == "" {
		return topLevel
	}
	return topLevel + "/" + sub
}

// proposeFlat folds everything into a single folder level: the first path
// segment that is not a parameter, the literal "api", or a version segment,
// title-cased as one word (not hyphen-split).
func proposeFlat(ep catalog.Endpoint, _ PlanOptions) string {
	for _, seg := range splitPath(ep.Path) {
		if strings.HasPrefix(seg, "{") {
			continue
		}
		if strings.EqualFold(seg, "api") {
			continue
		}
		if versionSegment.MatchString(seg) {
			continue
		}
		return naming.Capitalize(seg)
	}
	return OtherFolder
}

// endpointLabel renders an endpoint for folder listings: the identity ref,
// with the summary appended when one exists.
func endpointLabel(ep catalog.Endpoint) string {
	if ep.Summary == "" {
		return ep.Ref()
	}
	return ep.Ref() + " - " + ep.Summary
}
