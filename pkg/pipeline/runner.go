package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/commitpin/pkg/errors"
	"github.com/matzehuels/commitpin/pkg/manifest"
	"github.com/matzehuels/commitpin/pkg/pin"
	"github.com/matzehuels/commitpin/pkg/whitelist"
)

// Runner verifies and rewrites manifests against a whitelist.
//
// The Runner holds no per-run state. Multiple goroutines can use the same
// Runner for different jobs.
type Runner struct {
	Whitelist *whitelist.Whitelist
	Source    pin.Source
	Logger    *log.Logger
	Options   Options
}

// NewRunner creates a runner. A nil logger uses the default logger.
func NewRunner(wl *whitelist.Whitelist, src pin.Source, logger *log.Logger, opts Options) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Whitelist: wl,
		Source:    src,
		Logger:    logger,
		Options:   opts,
	}
}

// Run verifies one manifest and writes its rewritten form.
func (r *Runner) Run(ctx context.Context, job Job) (*Report, error) {
	opts := r.Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	data, err := os.ReadFile(job.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", job.Input)
		}
		return nil, fmt.Errorf("read %s: %w", job.Input, err)
	}
	doc, err := manifest.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", job.Input, err)
	}

	if err := manifest.NewSanitizer(opts.Profiles).Sanitize(doc, job.Kind); err != nil {
		return nil, fmt.Errorf("sanitize %s: %w", job.Input, err)
	}

	report := &Report{Job: job}
	if job.Kind.Pinned() {
		if err := r.pinDependencies(ctx, doc, job, opts, report); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode %s: %w", job.Output, err)
	}
	if !opts.DryRun {
		if err := writeFile(job.Output, buf.Bytes()); err != nil {
			return nil, err
		}
		report.Written = true
	}
	report.Duration = time.Since(start)

	r.Logger.Info("verified manifest",
		"manifest", job.Kind,
		"pinned", report.Pinned,
		"retained", report.Retained,
		"warnings", len(report.Warnings),
		"written", report.Written,
		"duration", report.Duration.Round(time.Millisecond))
	return report, nil
}

func (r *Runner) pinDependencies(ctx context.Context, doc *manifest.Object, job Job, opts Options, report *Report) error {
	deps, err := manifest.Dependencies(doc, job.Kind)
	if err != nil {
		return fmt.Errorf("%s: %w", job.Input, err)
	}
	r.Logger.Debug("walking dependencies", "manifest", job.Kind, "count", len(deps), "form", job.Kind.Form())

	walker := pin.NewWalker(r.Whitelist, r.Source, r.Logger, pin.Options{Concurrency: opts.Concurrency})
	res, err := walker.Walk(ctx, job.Kind.Form(), deps)
	if err != nil {
		return err
	}
	if err := manifest.Apply(doc, job.Kind, res.Entries); err != nil {
		return err
	}
	report.Pinned, report.Retained = res.Count()
	report.Warnings = res.Warnings
	return nil
}

// RunAll runs jobs in order. The first failure stops the remaining jobs
// unless Options.KeepGoing is set, in which case every job runs and the
// failures are joined. Reports are returned for the jobs that succeeded.
func (r *Runner) RunAll(ctx context.Context, jobs []Job) ([]*Report, error) {
	var (
		reports []*Report
		errs    []error
	)
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		report, err := r.Run(ctx, job)
		if err != nil {
			err = fmt.Errorf("%s: %w", job.Kind, err)
			if !r.Options.KeepGoing || ctx.Err() != nil {
				return reports, err
			}
			r.Logger.Error("manifest failed", "manifest", job.Kind, "err", errors.UserMessage(err))
			errs = append(errs, err)
			continue
		}
		reports = append(reports, report)
	}
	return reports, stderrors.Join(errs...)
}
