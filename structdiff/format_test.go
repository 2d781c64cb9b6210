package structdiff

import (
	"strings"
	"testing"
)

func TestFormat_Empty(t *testing.T) {
	t.Parallel()

	if got := Format(nil); got != "No differences found." {
		t.Errorf("Format(nil) = %q, want %q", got, "No differences found.")
	}
}

func TestFormat_Grouping(t *testing.T) {
	t.Parallel()

	changes := []Change{
		{Kind: KindChanged, Path: "responses.200.description", OldValue: "OK", NewValue: "Success"},
		{Kind: KindAdded, Path: "summary", Value: "List users"},
		{Kind: KindRemoved, Path: "responses.404", Value: map[string]any{"description": "missing"}},
	}

	got := Format(changes)

	want := `responses:
  ~ responses.200.description:
      old: "OK"
      new: "Success"
  - responses.404: {"description":"missing"}

summary:
  + summary: "List users"`
	if got != want {
		t.Errorf("Format =\n%s\nwant:\n%s", got, want)
	}
}

func TestFormat_GroupsInFirstSeenOrder(t *testing.T) {
	t.Parallel()

	changes := []Change{
		{Kind: KindAdded, Path: "zeta.a", Value: float64(1)},
		{Kind: KindAdded, Path: "alpha.b", Value: float64(2)},
		{Kind: KindAdded, Path: "zeta.c", Value: float64(3)},
	}

	got := Format(changes)

	zeta := strings.Index(got, "zeta:")
	alpha := strings.Index(got, "alpha:")
	if zeta < 0 || alpha < 0 || zeta > alpha {
		t.Errorf("groups out of first-seen order:\n%s", got)
	}
	if strings.Count(got, "zeta:") != 1 {
		t.Errorf("zeta group split:\n%s", got)
	}
}

func TestFormat_TruncatesLongValues(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 500)
	got := Format([]Change{{Kind: KindAdded, Path: "description", Value: long}})

	if !strings.Contains(got, "...") {
		t.Errorf("long value not truncated:\n%s", got)
	}
	// Cap applies to the serialized value, not the whole line.
	line := strings.SplitN(got, "\n", 2)[1]
	if len(line) > len("  + description: ")+150+len("...") {
		t.Errorf("truncated line too long (%d chars):\n%s", len(line), line)
	}
}

func TestFormat_TruncationDoesNotAlterChanges(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 500)
	changes := []Change{{Kind: KindAdded, Path: "description", Value: long}}

	Format(changes)

	if got := changes[0].Value.(string); len(got) != 500 {
		t.Errorf("Change.Value length = %d after formatting, want 500", len(got))
	}
}
