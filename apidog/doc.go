// Package apidog is the HTTP client for the remote Apidog catalog.
//
// It covers the two project-level calls the sync workflow needs: exporting
// the project as an OpenAPI document and importing an updated document
// back. The client performs no retries — retry policy belongs to the
// caller, and every engine operation downstream of an export is pure, so
// re-running a failed call is always safe.
package apidog
