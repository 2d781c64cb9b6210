package structdiff

import (
	"encoding/json"
	"fmt"
	"strings"
)

// maxValueDisplay is the display length cap for serialized values.
// Truncation is display-only; the underlying Change data is never altered.
const maxValueDisplay = 150

// noDifferences is the fixed sentence rendered for an empty change list.
const noDifferences = "No differences found."

// Format renders a change list as grouped, human-readable text. Changes
// are grouped by the first path segment in order of first appearance;
// added and removed entries render on one line, changed entries as a
// two-line old/new block.
func Format(changes []Change) string {
	if len(changes) == 0 {
		return noDifferences
	}

	var order []string
	groups := make(map[string][]Change)
	for _, c := range changes {
		top := c.Path
		if idx := strings.Index(top, "."); idx >= 0 {
			top = top[:idx]
		}
		if _, seen := groups[top]; !seen {
			order = append(order, top)
		}
		groups[top] = append(groups[top], c)
	}

	var b strings.Builder
	for i, top := range order {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:\n", top)
		for _, c := range groups[top] {
			switch c.Kind {
			case KindAdded:
				fmt.Fprintf(&b, "  + %s: %s\n", c.Path, displayValue(c.Value))
			case KindRemoved:
				fmt.Fprintf(&b, "  - %s: %s\n", c.Path, displayValue(c.Value))
			case KindChanged:
				fmt.Fprintf(&b, "  ~ %s:\n", c.Path)
				fmt.Fprintf(&b, "      old: %s\n", displayValue(c.OldValue))
				fmt.Fprintf(&b, "      new: %s\n", displayValue(c.NewValue))
			}
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// displayValue serializes a value for display, truncated to
// maxValueDisplay characters with an ellipsis marker.
func displayValue(v any) string {
	data, err := json.Marshal(v)
	s := string(data)
	if err != nil {
		s = fmt.Sprintf("%v", v)
	}
	if len(s) > maxValueDisplay {
		s = s[:maxValueDisplay] + "..."
	}
	return s
}
