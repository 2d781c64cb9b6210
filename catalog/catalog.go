package catalog

import (
	"fmt"
	"sort"
)

// Vendor extension keys carried on operation objects in Apidog exports.
const (
	// ExtFolder is the folder assignment of an endpoint.
	ExtFolder = "x-apidog-folder"
	// ExtStatus is the lifecycle status of an endpoint (designing, released, ...).
	ExtStatus = "x-apidog-status"
	// ExtMaintainer is the endpoint maintainer.
	ExtMaintainer = "x-apidog-maintainer"
	// ExtRefs is the cross-link annotation Apidog maintains between
	// endpoints and schemas. It is bookkeeping, not content.
	ExtRefs = "x-apidog-refs"
)

// httpMethods is the fixed set of HTTP verbs recognized as operations,
// in canonical extraction order.
var httpMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// Endpoint is a read-only view of a single operation in a catalog snapshot.
// (Method, Path) uniquely identifies an endpoint within a snapshot.
type Endpoint struct {
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	Summary     string   `json:"summary,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	// Folder is the current taxonomy path, empty when unassigned.
	Folder     string `json:"folder,omitempty"`
	Status     string `json:"status,omitempty"`
	Maintainer string `json:"maintainer,omitempty"`
	// Operation is the full underlying operation object, passed through
	// unexamined beyond the named fields above.
	Operation map[string]any `json:"-"`
}

// Ref returns the "METHOD /path" identity string used in plans and reports.
func (e Endpoint) Ref() string {
	return fmt.Sprintf("%s %s", e.Method, e.Path)
}

// CurrentFolder returns the endpoint's folder assignment: the typed Folder
// field when set, otherwise the x-apidog-folder extension on the operation
// payload. Empty means unassigned.
func (e Endpoint) CurrentFolder() string {
	if e.Folder != "" {
		return e.Folder
	}
	if f, ok := e.Operation[ExtFolder].(string); ok {
		return f
	}
	return ""
}

// Document is a decoded catalog export. Raw holds the full document as
// decoded; Endpoints is the typed view extracted from it. Endpoint.Operation
// maps alias the operation objects inside Raw, so a mutation through one is
// visible through the other.
type Document struct {
	Raw       map[string]any
	Endpoints []Endpoint
	// Format is the serialization format the document arrived in.
	Format Format
}

// FindEndpoint returns a pointer to the endpoint with the given identity,
// or nil when no such endpoint exists in the document.
func (d *Document) FindEndpoint(method, path string) *Endpoint {
	for i := range d.Endpoints {
		if d.Endpoints[i].Method == method && d.Endpoints[i].Path == path {
			return &d.Endpoints[i]
		}
	}
	return nil
}

// DeepCopy returns an independent copy of the document. The copy shares no
// mutable structure with the receiver: Raw is copied recursively and the
// endpoint view is re-extracted from the copied map.
func (d *Document) DeepCopy() Document {
	raw, _ := deepCopyValue(d.Raw).(map[string]any)
	return Document{
		Raw:       raw,
		Endpoints: extractEndpoints(raw),
		Format:    d.Format,
	}
}

// deepCopyValue recursively copies JSON-derived values (maps, slices,
// scalars). Scalars are returned as-is since they are immutable.
func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		copied := make(map[string]any, len(val))
		for k, item := range val {
			copied[k] = deepCopyValue(item)
		}
		return copied
	case []any:
		copied := make([]any, len(val))
		for i, item := range val {
			copied[i] = deepCopyValue(item)
		}
		return copied
	default:
		return v
	}
}

// extractEndpoints builds the typed endpoint view from a decoded document.
// Paths are visited in sorted order and methods in canonical order so the
// view, and everything computed from it, is deterministic.
func extractEndpoints(raw map[string]any) []Endpoint {
	paths, ok := raw["paths"].(map[string]any)
	if !ok {
		return nil
	}

	pathKeys := make([]string, 0, len(paths))
	for p := range paths {
		pathKeys = append(pathKeys, p)
	}
	sort.Strings(pathKeys)

	var endpoints []Endpoint
	for _, p := range pathKeys {
		item, ok := paths[p].(map[string]any)
		if !ok {
			continue
		}
		for _, method := range httpMethods {
			op, ok := item[method].(map[string]any)
			if !ok {
				continue
			}
			endpoints = append(endpoints, endpointFromOperation(method, p, op))
		}
	}
	return endpoints
}

func endpointFromOperation(method, path string, op map[string]any) Endpoint {
	ep := Endpoint{
		Method:    method,
		Path:      path,
		Operation: op,
	}
	ep.Summary, _ = op["summary"].(string)
	ep.Description, _ = op["description"].(string)
	ep.Folder, _ = op[ExtFolder].(string)
	ep.Status, _ = op[ExtStatus].(string)
	ep.Maintainer, _ = op[ExtMaintainer].(string)
	if tags, ok := op["tags"].([]any); ok {
		for _, t := range tags {
			if s, ok := t.(string); ok {
				ep.Tags = append(ep.Tags, s)
			}
		}
	}
	return ep
}
