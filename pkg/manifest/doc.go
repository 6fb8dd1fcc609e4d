// Package manifest reads and rewrites npm-shrinkwrap.json, package.json and
// bower.json documents.
//
// Documents are decoded into [Object], an insertion-ordered JSON object, so
// a rewritten manifest keeps the key order of its input and diffs cleanly.
// [Dependencies] extracts the declared dependency tree for the pinning
// walker and [Apply] writes the walker's result back. [Sanitizer] strips
// metadata that must not reach the build.
package manifest
