// Package naming provides the string casing utilities used when turning
// URL path segments into human-readable folder names.
package naming
