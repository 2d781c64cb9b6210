// Package reorganizer plans and applies folder reorganizations for an API
// catalog whose endpoints have accumulated inconsistent or missing folder
// assignments.
//
// The package is built from four pieces:
//
//   - InferFolder: a pure function deriving a folder path from a URL path
//   - Analyze: a partition of endpoints by their current folder assignment
//   - Plan: a proposed folder for every endpoint under a named strategy,
//     classified into changed and unchanged sets
//   - Apply: produce a new document with an approved set of changes applied
//
// Plans are produced fresh on every call and are immutable once returned.
// Apply never mutates its input document; it operates on a deep copy, so a
// rejected or partially-applied plan cannot corrupt the caller's state.
// Nothing in this package holds shared mutable state, so all operations are
// safe to invoke concurrently with different arguments.
//
// # Quick Start
//
//	plan := reorganizer.Plan(doc.Endpoints, reorganizer.PlanOptions{
//	    Strategy: reorganizer.StrategyPathBased,
//	    StripAPIPrefix: true,
//	    MaxDepth: 3,
//	})
//	// ... human approves plan.Changes ...
//	updated, applied := reorganizer.Apply(*doc, plan.Changes)
package reorganizer
