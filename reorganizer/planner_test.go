package reorganizer

import (
	"encoding/json"
	"testing"

	"github.com/akhelij/apidog-sync-mcp-server/catalog"
)

func endpoint(method, path, folder string) catalog.Endpoint {
	return catalog.Endpoint{Method: method, Path: path, Folder: folder}
}

func TestPlan_PathBased(t *testing.T) {
	t.Parallel()

	endpoints := []catalog.Endpoint{
		endpoint("get", "/api/v1/users", ""),
		endpoint("post", "/api/v1/users", "Users"),
		endpoint("get", "/api/v1/admin/billing/validate-peppol-id", "Misc"),
	}

	plan := Plan(endpoints, DefaultPlanOptions())

	if plan.Strategy != StrategyPathBased {
		t.Errorf("Strategy = %q, want %q", plan.Strategy, StrategyPathBased)
	}
	if plan.TotalEndpoints != 3 {
		t.Errorf("TotalEndpoints = %d, want 3", plan.TotalEndpoints)
	}
	if plan.ChangesCount != 2 {
		t.Fatalf("ChangesCount = %d, want 2 (changes: %+v)", plan.ChangesCount, plan.Changes)
	}
	if plan.UnchangedCount != 1 {
		t.Errorf("UnchangedCount = %d, want 1", plan.UnchangedCount)
	}

	first := plan.Changes[0]
	if first.OldFolder != NoFolder {
		t.Errorf("OldFolder = %q, want %q for unfoldered endpoint", first.OldFolder, NoFolder)
	}
	if first.NewFolder != "Users" {
		t.Errorf("NewFolder = %q, want %q", first.NewFolder, "Users")
	}

	second := plan.Changes[1]
	if second.OldFolder != "Misc" || second.NewFolder != "Admin/Billing" {
		t.Errorf("change = %q -> %q, want Misc -> Admin/Billing", second.OldFolder, second.NewFolder)
	}
}

func TestPlan_GroupByVersion(t *testing.T) {
	t.Parallel()

	endpoints := []catalog.Endpoint{endpoint("get", "/api/v1/users", "")}

	opts := DefaultPlanOptions()
	opts.GroupByVersion = true
	plan := Plan(endpoints, opts)

	if got := plan.Changes[0].NewFolder; got != "V1/Users" {
		t.Errorf("NewFolder = %q, want %q", got, "V1/Users")
	}
}

func TestPlan_PreserveTopLevel(t *testing.T) {
	t.Parallel()

	endpoints := []catalog.Endpoint{
		endpoint("get", "/api/v1/users/{id}", "Internal/Legacy"),
		endpoint("get", "/api/v1/orders", ""),
	}

	opts := DefaultPlanOptions()
	opts.Strategy = StrategyPreserveTopLevel
	plan := Plan(endpoints, opts)

	if got := plan.Changes[0].NewFolder; got != "Internal/Users" {
		t.Errorf("foldered endpoint: NewFolder = %q, want %q", got, "Internal/Users")
	}
	// No current folder falls back to path-based behavior.
	if got := plan.Changes[1].NewFolder; got != "Orders" {
		t.Errorf("unfoldered endpoint: NewFolder = %q, want %q", got, "Orders")
	}
}

func TestPlan_Flat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want string
	}{
		{"plain resource", "/api/v1/users/{id}", "Users"},
		{"hyphenated segment is not split", "/api/v1/user-profiles/{id}", "User-profiles"},
		{"nothing left", "/api/v1/{id}", OtherFolder},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			opts := DefaultPlanOptions()
			opts.Strategy = StrategyFlat
			plan := Plan([]catalog.Endpoint{endpoint("get", tc.path, "")}, opts)
			if got := plan.Changes[0].NewFolder; got != tc.want {
				t.Errorf("NewFolder = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPlan_CustomMappings(t *testing.T) {
	t.Parallel()

	endpoints := []catalog.Endpoint{
		endpoint("get", "/api/v1/admin/billing", ""),
		endpoint("get", "/api/v1/users", ""),
	}

	opts := DefaultPlanOptions()
	opts.CustomMappings = []Mapping{
		{Prefix: "/api/v1/admin", Folder: "Administration"},
		{Prefix: "/api/v1", Folder: "Everything Else"},
	}
	plan := Plan(endpoints, opts)

	// First-declared mapping wins even though both prefixes match.
	if got := plan.Changes[0].NewFolder; got != "Administration" {
		t.Errorf("NewFolder = %q, want %q", got, "Administration")
	}
	if got := plan.Changes[1].NewFolder; got != "Everything Else" {
		t.Errorf("NewFolder = %q, want %q", got, "Everything Else")
	}
}

func TestPlan_UnknownStrategyFallsBack(t *testing.T) {
	t.Parallel()

	endpoints := []catalog.Endpoint{endpoint("get", "/api/v1/users", "")}

	opts := DefaultPlanOptions()
	opts.Strategy = Strategy("alphabetical")
	plan := Plan(endpoints, opts)

	if plan.Strategy != StrategyPathBased {
		t.Errorf("Strategy = %q, want silent fallback to %q", plan.Strategy, StrategyPathBased)
	}
	if got := plan.Changes[0].NewFolder; got != "Users" {
		t.Errorf("NewFolder = %q, want %q", got, "Users")
	}
}

func TestPlan_BlankFolderCoercesToOther(t *testing.T) {
	t.Parallel()

	plan := Plan([]catalog.Endpoint{endpoint("get", "/api", "")}, DefaultPlanOptions())

	if got := plan.Changes[0].NewFolder; got != OtherFolder {
		t.Errorf("NewFolder = %q, want %q", got, OtherFolder)
	}
}

func TestPlan_Deterministic(t *testing.T) {
	t.Parallel()

	endpoints := []catalog.Endpoint{
		endpoint("get", "/api/v1/users", "Users"),
		endpoint("post", "/api/v1/users", ""),
		endpoint("get", "/api/v1/admin/billing", "Old"),
		endpoint("get", "/auth/login", ""),
	}

	a, err := json.Marshal(Plan(endpoints, DefaultPlanOptions()))
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(Plan(endpoints, DefaultPlanOptions()))
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Errorf("identical inputs produced different plans:\n%s\n%s", a, b)
	}
}

func TestPlan_VendorExtensionFolderFallback(t *testing.T) {
	t.Parallel()

	ep := catalog.Endpoint{
		Method:    "get",
		Path:      "/api/v1/users",
		Operation: map[string]any{catalog.ExtFolder: "Users"},
	}
	plan := Plan([]catalog.Endpoint{ep}, DefaultPlanOptions())

	if plan.UnchangedCount != 1 {
		t.Errorf("UnchangedCount = %d, want 1 (extension folder should count as current)", plan.UnchangedCount)
	}
}
