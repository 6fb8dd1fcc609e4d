package pin

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/commitpin/pkg/errors"
	"github.com/matzehuels/commitpin/pkg/integrations/github"
	"github.com/matzehuels/commitpin/pkg/observability"
	"github.com/matzehuels/commitpin/pkg/version"
	"github.com/matzehuels/commitpin/pkg/whitelist"
)

// pathSep joins dependency names in error messages and warnings.
const pathSep = " > "

// Options configures a [Walker].
type Options struct {
	// Concurrency bounds the number of siblings resolved at once.
	// Values below 1 mean 1.
	Concurrency int
}

// Walker resolves dependency trees against a whitelist.
// A Walker holds no per-walk state and may be reused.
type Walker struct {
	whitelist *whitelist.Whitelist
	source    Source
	logger    *log.Logger
	opts      Options
}

// NewWalker creates a Walker. A nil logger discards output.
func NewWalker(wl *whitelist.Whitelist, src Source, logger *log.Logger, opts Options) *Walker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Walker{whitelist: wl, source: src, logger: logger, opts: opts}
}

// Walk verifies deps and returns the pinned tree. On error no result is
// returned.
func (w *Walker) Walk(ctx context.Context, form Form, deps []Dependency) (*Result, error) {
	entries, warnings, err := w.walk(ctx, form, deps, nil)
	if err != nil {
		return nil, err
	}
	return &Result{Entries: entries, Warnings: warnings}, nil
}

// outcome is the result of one sibling; entry is nil when it was dropped
// or skipped.
type outcome struct {
	entry    *Entry
	warnings []Warning
}

func (w *Walker) walk(ctx context.Context, form Form, deps []Dependency, parent []string) ([]Entry, []Warning, error) {
	outcomes := make([]outcome, len(deps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.opts.Concurrency)
	for i, dep := range deps {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entry, warnings, err := w.resolve(gctx, form, dep, parent)
			if err != nil {
				return err
			}
			outcomes[i] = outcome{entry: entry, warnings: warnings}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	entries := make([]Entry, 0, len(deps))
	var warnings []Warning
	for _, o := range outcomes {
		if o.entry != nil {
			entries = append(entries, *o.entry)
		}
		warnings = append(warnings, o.warnings...)
	}
	return entries, warnings, nil
}

func (w *Walker) resolve(ctx context.Context, form Form, dep Dependency, parent []string) (*Entry, []Warning, error) {
	path := append(slices.Clip(parent), dep.Name)
	label := strings.Join(path, pathSep)
	hooks := observability.Pin()

	if w.whitelist.Ignored(dep.Name) {
		if w.whitelist.Retained(dep.Name) {
			w.logger.Debug("retained", "dependency", label)
			hooks.OnRetained(ctx, label)
			return &Entry{Name: dep.Name, Action: Retained}, nil, nil
		}
		w.logger.Debug("dropped", "dependency", label)
		hooks.OnDropped(ctx, label)
		return nil, nil, nil
	}

	entry, ok := w.whitelist.Lookup(dep.Name)
	if !ok {
		return nil, nil, w.fail(ctx, label,
			errors.New(errors.ErrCodeUnwhitelisted, "%s: not whitelisted", label))
	}

	requested := version.Effective(dep.Requested)
	if err := version.Validate(requested); err != nil {
		return nil, nil, w.fail(ctx, label,
			errors.New(errors.ErrCodeFormat, "%s: %s", label, errors.UserMessage(err)))
	}
	if !version.Satisfies(requested, entry.Floor) {
		return nil, nil, w.fail(ctx, label, errors.New(errors.ErrCodeFloorVersion,
			"%s: requested version %s exceeds whitelisted version %s", label, requested, entry.Floor))
	}

	sha, via, warnings, err := w.commitFor(ctx, label, requested, entry)
	if err != nil {
		return nil, nil, w.fail(ctx, label, err)
	}
	if sha == "" {
		return nil, warnings, nil
	}

	ref := entry.Repository + "#" + sha
	w.logger.Debug("pinned", "dependency", label, "ref", ref, "via", via)
	hooks.OnPinned(ctx, label, ref, via)
	pinned := &Entry{Name: dep.Name, Action: Pinned, Reference: ref}

	if form == Nested && dep.HasNested {
		nested, nestedWarnings, err := w.walk(ctx, form, dep.Nested, path)
		if err != nil {
			return nil, nil, err
		}
		pinned.Nested = nested
		pinned.HasNested = true
		warnings = append(warnings, nestedWarnings...)
	}
	return pinned, warnings, nil
}

// commitFor selects the commit a verified dependency is pinned to. An empty
// sha with a nil error means the dependency is skipped.
func (w *Walker) commitFor(ctx context.Context, label, requested string, entry whitelist.Entry) (sha, via string, warnings []Warning, err error) {
	tags, err := w.source.ListTags(ctx, entry.Repository)
	if err != nil {
		return "", "", nil, fmt.Errorf("%s: %w", label, err)
	}
	for _, tag := range tags {
		if !version.MatchesTag(requested, tag.Name) {
			continue
		}
		if !entry.Approved(tag.Commit.SHA) {
			return "", "", nil, errors.New(errors.ErrCodeUnapprovedCommit,
				"%s: tag %s points to commit %s, which is not whitelisted", label, tag.Name, tag.Commit.SHA)
		}
		return tag.Commit.SHA, "tag", nil, nil
	}

	latest := entry.Latest()
	warnings = append(warnings, w.warn(ctx, Warning{
		Dependency: label,
		Kind:       NoTag,
		Repository: entry.Repository,
		Message:    fmt.Sprintf("no tag found for version %s in %s, looking for commit %s", requested, entry.Repository, latest),
	}))

	commits, err := w.source.ListCommits(ctx, entry.Repository)
	if err != nil {
		return "", "", nil, fmt.Errorf("%s: %w", label, err)
	}
	if slices.ContainsFunc(commits, func(c github.Commit) bool { return c.SHA == latest }) {
		return latest, "commit", warnings, nil
	}

	warnings = append(warnings, w.warn(ctx, Warning{
		Dependency: label,
		Kind:       NoCommit,
		Repository: entry.Repository,
		Message:    fmt.Sprintf("commit %s not found in %s, skipping", latest, entry.Repository),
	}))
	return "", "", warnings, nil
}

func (w *Walker) warn(ctx context.Context, warning Warning) Warning {
	w.logger.Warn(warning.Message, "dependency", warning.Dependency)
	observability.Pin().OnWarning(ctx, warning.Dependency, string(warning.Kind))
	return warning
}

// fail reports err to the hooks unless it only reflects a cancellation
// caused by a failing sibling.
func (w *Walker) fail(ctx context.Context, label string, err error) error {
	if ctx.Err() == nil {
		observability.Pin().OnFailed(ctx, label, err)
	}
	return err
}
