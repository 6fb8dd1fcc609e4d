package pin

import (
	"context"

	"github.com/matzehuels/commitpin/pkg/integrations/github"
)

// Form selects how a dependency tree is walked.
type Form int

const (
	// Nested walks declared nested dependencies (npm-shrinkwrap.json).
	Nested Form = iota
	// Flat ignores nested dependencies even when present (bower.json).
	Flat
)

func (f Form) String() string {
	if f == Flat {
		return "flat"
	}
	return "nested"
}

// Dependency is one declared dependency of a manifest.
type Dependency struct {
	Name      string       // Dependency name
	Requested string       // Requested version, possibly "owner/repo#1.2.3"
	Nested    []Dependency // Declared nested dependencies
	HasNested bool         // Whether the declaration had a nested container at all
}

// Action records what happened to a dependency that made it into the output.
type Action int

const (
	// Pinned dependencies reference an approved commit.
	Pinned Action = iota
	// Retained dependencies are exempt and kept as declared.
	Retained
)

func (a Action) String() string {
	if a == Retained {
		return "retained"
	}
	return "pinned"
}

// Entry is one dependency of the rewritten manifest. Dropped and skipped
// dependencies have no Entry.
type Entry struct {
	Name      string
	Action    Action
	Reference string  // "owner/repo#sha", empty for retained entries
	Nested    []Entry // Resolved nested dependencies
	HasNested bool    // Whether a nested container must be written
}

// WarningKind classifies non-fatal resolution problems.
type WarningKind string

const (
	// NoTag means no tag matched and the commit listing was scanned instead.
	NoTag WarningKind = "no-tag"
	// NoCommit means the latest approved commit was not found either and the
	// dependency was left out.
	NoCommit WarningKind = "no-commit"
)

// Warning is a non-fatal resolution problem.
type Warning struct {
	Dependency string // Dependency path, "parent > child"
	Kind       WarningKind
	Repository string
	Message    string
}

func (w Warning) String() string {
	return w.Dependency + ": " + w.Message
}

// Result is the outcome of a successful walk.
type Result struct {
	Entries  []Entry
	Warnings []Warning
}

// Count returns the number of pinned and retained entries at every depth.
func (r *Result) Count() (pinned, retained int) {
	var visit func([]Entry)
	visit = func(entries []Entry) {
		for _, e := range entries {
			if e.Action == Retained {
				retained++
			} else {
				pinned++
			}
			visit(e.Nested)
		}
	}
	visit(r.Entries)
	return pinned, retained
}

// Source lists the tags and commits of a repository in API order.
// [github.Client] is the production implementation.
//
// Implementations must be safe for concurrent use when the walker runs with
// Concurrency > 1.
type Source interface {
	ListTags(ctx context.Context, repository string) ([]github.Tag, error)
	ListCommits(ctx context.Context, repository string) ([]github.Commit, error)
}
