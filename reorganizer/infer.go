package reorganizer

import (
	"regexp"
	"strings"

	"github.com/akhelij/apidog-sync-mcp-server/internal/naming"
)

// InferOptions configures InferFolder.
type InferOptions struct {
	// StripAPIPrefix drops a leading segment equal to "api" (case-insensitive).
	StripAPIPrefix bool
	// StripVersion drops a leading version segment (v1, V2, ...) after the
	// API prefix strip.
	StripVersion bool
	// MaxDepth caps the number of retained segments. Negative means no cap.
	MaxDepth int
	// CapitalizeSegments title-cases each retained segment.
	CapitalizeSegments bool
}

// DefaultInferOptions returns the standard inference options.
func DefaultInferOptions() InferOptions {
	return InferOptions{
		StripAPIPrefix:     true,
		StripVersion:       false,
		MaxDepth:           3,
		CapitalizeSegments: true,
	}
}

var versionSegment = regexp.MustCompile(`(?i)^v\d+$`)

// InferFolder derives a folder path from a URL path. Path parameters
// ({id} style segments) never become folder names, and a hyphenated last
// segment is treated as a verb-style action (validate-peppol-id,
// reset-password) rather than a resource name and dropped when other
// segments remain. A single-word last segment is kept even when it is
// semantically an action (login); the asymmetry is intentional.
//
// The empty result is the caller's to handle; Plan substitutes "Other".
func InferFolder(path string, opts InferOptions) string {
	segments := splitPath(path)

	if opts.StripAPIPrefix && len(segments) > 0 && strings.EqualFold(segments[0], "api") {
		segments = segments[1:]
	}
	if opts.StripVersion && len(segments) > 0 && versionSegment.MatchString(segments[0]) {
		segments = segments[1:]
	}

	kept := make([]string, 0, len(segments))
	for _, seg := range segments {
		if strings.HasPrefix(seg, "{") {
			continue
		}
		kept = append(kept, seg)
	}

	// Hyphenated last segments are actions, not resources.
	if len(kept) > 1 && strings.Contains(kept[len(kept)-1], "-") {
		kept = kept[:len(kept)-1]
	}

	if opts.MaxDepth >= 0 && len(kept) > opts.MaxDepth {
		kept = kept[:opts.MaxDepth]
	}

	if opts.CapitalizeSegments {
		for i, seg := range kept {
			kept[i] = naming.FolderSegment(seg)
		}
	}

	return strings.Join(kept, "/")
}

// splitPath splits a URL path on "/", discarding empty segments so leading,
// trailing, and doubled slashes are handled uniformly.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
