// Package whitelist loads the trusted dependency whitelist.
//
// The whitelist maps every vetted dependency name to the repository its
// source must come from, the highest version that has been reviewed and the
// commits that were approved (most recent first). The reserved key "ignore"
// lists names exempt from verification, and the optional key "retain" lists
// the exempt names that are kept unpinned in rewritten manifests:
//
//	{
//	  "ignore": ["grunt", "angular"],
//	  "lib": {"repo": "org/lib", "version": "1.2.0", "commits": ["abc123"]}
//	}
//
// Files ending in .toml are read as TOML with the same structure. Both forms
// are validated against an embedded JSON Schema before use.
//
// A [Whitelist] is immutable once loaded and safe for concurrent reads.
package whitelist
