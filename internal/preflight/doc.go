// Package preflight provides readiness checks for the filesystem paths a
// gifmaker run depends on.
//
// The CLI "gifmaker plan" command runs RunAll next to its frame listing so a
// user can see, before encoding, whether the input directory is readable,
// the output directory is writable, and the optional log directory is usable.
// Checks never modify the filesystem.
package preflight
