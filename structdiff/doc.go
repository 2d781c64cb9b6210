// Package structdiff computes field-level differences between two nested
// JSON-like values and renders them for human review.
//
// Diff walks the union of both objects' keys: keys present on one side only
// become added/removed entries, nested objects are compared recursively,
// and lists are compared whole by canonical serialization (order-sensitive,
// never element-by-element). The catalog's cross-link bookkeeping
// annotation is always skipped. Format turns the resulting change list into
// grouped, display-truncated text — the typical use is showing an operator
// exactly what a proposed endpoint edit would change before it is committed.
//
// Both functions are pure: no I/O, no shared state, safe for concurrent
// use. Inputs are assumed acyclic (JSON-derived); there is no recursion
// depth guard.
package structdiff
