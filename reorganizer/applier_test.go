package reorganizer

import (
	"testing"

	"github.com/akhelij/apidog-sync-mcp-server/catalog"
)

const applierDoc = `{
  "openapi": "3.0.1",
  "paths": {
    "/api/v1/users": {
      "get": {"summary": "List users", "x-apidog-folder": "Old"},
      "post": {"summary": "Create user"}
    },
    "/api/v1/orders": {
      "get": {"summary": "List orders", "x-apidog-folder": "Orders"}
    }
  }
}`

func decodeDoc(t *testing.T) *catalog.Document {
	t.Helper()
	doc, err := catalog.Decode([]byte(applierDoc))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestApply(t *testing.T) {
	t.Parallel()

	doc := decodeDoc(t)
	changes := []Change{
		{Method: "get", Path: "/api/v1/users", OldFolder: "Old", NewFolder: "Users"},
		{Method: "post", Path: "/api/v1/users", OldFolder: NoFolder, NewFolder: "Users"},
	}

	updated, applied := Apply(*doc, changes)

	if applied != 2 {
		t.Fatalf("applied = %d, want 2", applied)
	}
	for _, c := range changes {
		ep := updated.FindEndpoint(c.Method, c.Path)
		if ep == nil {
			t.Fatalf("endpoint %s %s missing after apply", c.Method, c.Path)
		}
		if ep.Folder != "Users" {
			t.Errorf("%s %s: Folder = %q, want %q", c.Method, c.Path, ep.Folder, "Users")
		}
		if got := ep.Operation[catalog.ExtFolder]; got != "Users" {
			t.Errorf("%s %s: operation extension = %v, want %q", c.Method, c.Path, got, "Users")
		}
	}

	// Untouched endpoints keep their assignment.
	if ep := updated.FindEndpoint("get", "/api/v1/orders"); ep.Folder != "Orders" {
		t.Errorf("untouched endpoint folder = %q, want %q", ep.Folder, "Orders")
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	doc := decodeDoc(t)
	changes := []Change{
		{Method: "get", Path: "/api/v1/users", OldFolder: "Old", NewFolder: "Users"},
	}

	Apply(*doc, changes)

	if ep := doc.FindEndpoint("get", "/api/v1/users"); ep.Folder != "Old" {
		t.Errorf("input endpoint Folder = %q, want untouched %q", ep.Folder, "Old")
	}
	op := doc.Raw["paths"].(map[string]any)["/api/v1/users"].(map[string]any)["get"].(map[string]any)
	if got := op[catalog.ExtFolder]; got != "Old" {
		t.Errorf("input raw extension = %v, want untouched %q", got, "Old")
	}
}

func TestApply_SkipsVanishedEndpoints(t *testing.T) {
	t.Parallel()

	doc := decodeDoc(t)
	changes := []Change{
		{Method: "get", Path: "/api/v1/users", NewFolder: "Users"},
		{Method: "delete", Path: "/api/v1/gone", NewFolder: "Gone"},
	}

	_, applied := Apply(*doc, changes)

	if applied != 1 {
		t.Errorf("applied = %d, want 1 (vanished endpoint silently skipped)", applied)
	}
}

func TestApply_ChangesReachSerializedOutput(t *testing.T) {
	t.Parallel()

	doc := decodeDoc(t)
	updated, _ := Apply(*doc, []Change{
		{Method: "get", Path: "/api/v1/users", NewFolder: "Users"},
	})

	data, err := updated.Marshal(catalog.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	redecoded, err := catalog.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if got := redecoded.FindEndpoint("get", "/api/v1/users").Folder; got != "Users" {
		t.Errorf("round-tripped folder = %q, want %q", got, "Users")
	}
}

func TestPlanApply_Converges(t *testing.T) {
	t.Parallel()

	doc := decodeDoc(t)
	opts := DefaultPlanOptions()

	first := Plan(doc.Endpoints, opts)
	updated, applied := Apply(*doc, first.Changes)
	if applied != first.ChangesCount {
		t.Fatalf("applied = %d, want %d", applied, first.ChangesCount)
	}

	second := Plan(updated.Endpoints, opts)
	if second.ChangesCount != 0 {
		t.Errorf("replanning after apply proposed %d changes, want 0: %+v",
			second.ChangesCount, second.Changes)
	}
}
