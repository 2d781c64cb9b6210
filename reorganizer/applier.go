package reorganizer

import "github.com/akhelij/apidog-sync-mcp-server/catalog"

// Apply produces a new document with the folder assignments from changes
// applied. The input document is never mutated: Apply operates on a deep
// copy and returns it, together with the number of changes that resolved.
//
// Changes whose (method, path) no longer exists in the document are
// silently skipped — partial application is the intended semantics, and
// the applied count is the only feedback. Applying the same changes to a
// document already in the proposed shape is a no-op beyond rewriting the
// same folder values, so the operation is safe to retry.
func Apply(doc catalog.Document, changes []Change) (catalog.Document, int) {
	updated := doc.DeepCopy()

	applied := 0
	for _, c := range changes {
		ep := updated.FindEndpoint(c.Method, c.Path)
		if ep == nil {
			// Endpoint vanished between planning and applying.
			continue
		}
		ep.Folder = c.NewFolder
		if ep.Operation != nil {
			ep.Operation[catalog.ExtFolder] = c.NewFolder
		}
		applied++
	}

	return updated, applied
}
