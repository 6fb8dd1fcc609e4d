// Package pin verifies declared dependencies against a whitelist and pins
// each one to an approved commit.
//
// # Overview
//
// A [Walker] takes a tree of [Dependency] values (the "dependencies" member
// of a manifest) and returns a fresh tree of [Entry] values. For every
// dependency, in declaration order and depth-first:
//
//  1. Ignored names are dropped, unless retained, in which case they are
//     kept as declared. Their nested dependencies are not visited.
//  2. Names without a whitelist entry abort the walk.
//  3. The effective version is the part after the last '#'.
//  4. Versions must start with '~' or a digit.
//  5. The version must not exceed the whitelisted floor.
//  6. The first tag, in API order, that matches the version is selected.
//  7. A matched tag must point at an approved commit. This check is never
//     relaxed.
//  8. Without a matching tag, the most recently approved commit is looked up
//     in the commit listing. If it is there the dependency is pinned to it,
//     otherwise it is skipped. Both cases produce a [Warning].
//  9. In [Nested] form, declared nested dependencies are walked recursively.
//
// # Errors
//
// Steps 2, 4, 5 and 7 fail with a coded [errors.Error]
// (UNWHITELISTED_DEPENDENCY, INVALID_FORMAT, FLOOR_VERSION,
// UNAPPROVED_COMMIT). Remote failures are returned as-is with the dependency
// path prepended. The walk stops at the first failure and returns no
// partial tree.
//
// # Concurrency
//
// Siblings are resolved by at most [Options].Concurrency goroutines (default
// 1, a plain sequential walk). The output is assembled in declaration order,
// so it does not depend on the concurrency setting.
//
// [errors.Error]: github.com/matzehuels/commitpin/pkg/errors.Error
package pin
