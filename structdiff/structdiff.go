package structdiff

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Kind indicates whether a change is an addition, removal, or modification.
type Kind string

const (
	// KindAdded indicates a field present only in the new value.
	KindAdded Kind = "added"
	// KindRemoved indicates a field present only in the old value.
	KindRemoved Kind = "removed"
	// KindChanged indicates a field present on both sides with different values.
	KindChanged Kind = "changed"
)

// reservedRefsKey is the catalog's cross-link bookkeeping annotation.
// It is maintained by the remote catalog, not by editors, so it is skipped
// on both sides regardless of value.
const reservedRefsKey = "x-apidog-refs"

// Change is a single field-level difference. Path is a dot-delimited
// address into the compared structures. Added and removed changes carry
// Value; changed changes carry OldValue and NewValue.
type Change struct {
	Kind     Kind   `json:"type"`
	Path     string `json:"path"`
	Value    any    `json:"value,omitempty"`
	OldValue any    `json:"oldValue,omitempty"`
	NewValue any    `json:"newValue,omitempty"`
}

// Diff recursively compares two JSON-like objects and returns the ordered
// list of field-level differences. Keys are visited in a deterministic
// discovery order: the old object's keys sorted, then keys present only in
// the new object, sorted. The list is consumed for display and approval,
// not replayed as an ordered patch.
func Diff(oldValue, newValue map[string]any) []Change {
	return diffObjects(oldValue, newValue, "")
}

func diffObjects(oldObj, newObj map[string]any, basePath string) []Change {
	changes := []Change{}

	for _, key := range unionKeys(oldObj, newObj) {
		if key == reservedRefsKey {
			continue
		}
		path := joinPath(basePath, key)
		oldVal, inOld := oldObj[key]
		newVal, inNew := newObj[key]

		switch {
		case !inOld:
			changes = append(changes, Change{Kind: KindAdded, Path: path, Value: newVal})
		case !inNew:
			changes = append(changes, Change{Kind: KindRemoved, Path: path, Value: oldVal})
		default:
			changes = append(changes, diffValues(oldVal, newVal, path)...)
		}
	}

	return changes
}

// diffValues compares two values both present at path. Lists are compared
// whole by canonical serialization; objects recurse; everything else
// (scalars, or a list against a non-list) compares by value.
func diffValues(oldVal, newVal any, path string) []Change {
	oldList, oldIsList := oldVal.([]any)
	newList, newIsList := newVal.([]any)
	if oldIsList && newIsList {
		if !canonicalEqual(oldList, newList) {
			return []Change{{Kind: KindChanged, Path: path, OldValue: oldVal, NewValue: newVal}}
		}
		return nil
	}

	oldObj, oldIsObj := oldVal.(map[string]any)
	newObj, newIsObj := newVal.(map[string]any)
	if oldIsObj && newIsObj {
		return diffObjects(oldObj, newObj, path)
	}

	if !canonicalEqual(oldVal, newVal) {
		return []Change{{Kind: KindChanged, Path: path, OldValue: oldVal, NewValue: newVal}}
	}
	return nil
}

// unionKeys returns the old object's keys sorted, followed by keys present
// only in the new object, sorted.
func unionKeys(oldObj, newObj map[string]any) []string {
	keys := make([]string, 0, len(oldObj)+len(newObj))
	for k := range oldObj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	added := make([]string, 0, len(newObj))
	for k := range newObj {
		if _, ok := oldObj[k]; !ok {
			added = append(added, k)
		}
	}
	sort.Strings(added)

	return append(keys, added...)
}

// canonicalEqual reports whether two values serialize to identical
// canonical JSON. encoding/json writes object keys in sorted order, so the
// comparison is structural and order-sensitive for lists.
func canonicalEqual(a, b any) bool {
	aj, errA := json.Marshal(a)
	bj, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(aj, bj)
}

func joinPath(basePath, key string) string {
	if basePath == "" {
		return key
	}
	return basePath + "." + key
}
