// Package failures defines the error markers shared by the gifmaker pipeline.
//
// Stage code wraps underlying errors with one of the exported sentinels via
// Wrap so the CLI boundary can classify a failure (user-correctable usage
// problem versus environment failure) and map it to a stable exit code
// without string matching.
package failures
