// Package apidogsync provides tools for keeping an Apidog API catalog
// organized and for previewing structural changes to endpoint definitions
// before they are committed.
//
// The repository consists of three primary packages plus the glue that
// connects them to an Apidog project:
//
//   - catalog: decode and model exported catalog documents (OpenAPI-shaped)
//   - reorganizer: infer folder taxonomies and plan/apply folder reorganizations
//   - structdiff: compute and render field-level diffs of operation definitions
//
// The apidog package is the HTTP client for the remote catalog
// (export/import), and internal/mcpserver exposes everything as MCP tools
// over stdio for use from AI agents.
//
// # Quick Start
//
// Plan a reorganization from an exported catalog:
//
//	import (
//	    "github.com/akhelij/apidog-sync-mcp-server/catalog"
//	    "github.com/akhelij/apidog-sync-mcp-server/reorganizer"
//	)
//
//	doc, err := catalog.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	plan := reorganizer.Plan(doc.Endpoints, reorganizer.DefaultPlanOptions())
//	fmt.Printf("%d endpoints would move\n", len(plan.Changes))
//
// Preview an edit to a single operation:
//
//	import "github.com/akhelij/apidog-sync-mcp-server/structdiff"
//
//	changes := structdiff.Diff(oldOperation, newOperation)
//	fmt.Println(structdiff.Format(changes))
//
// All engine operations are pure (or copy-in/copy-out), perform no I/O, and
// are safe for concurrent use from multiple goroutines.
package apidogsync
