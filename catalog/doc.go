// Package catalog models an exported Apidog catalog document and the
// endpoint records the rest of the repository operates on.
//
// An export is OpenAPI-shaped JSON or YAML. The package keeps the full
// decoded document as an opaque map (Document.Raw) and extracts a typed,
// read-only view of every operation (Document.Endpoints). Apidog-specific
// metadata travels in x-apidog-* vendor extensions on each operation; those
// are surfaced as named Endpoint fields, everything else passes through
// unexamined.
package catalog
