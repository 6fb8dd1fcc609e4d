// Package pipeline verifies and rewrites the manifests of a project.
//
// Each manifest is an independent all-or-nothing run:
//
//  1. Read and decode the input file
//  2. Sanitize metadata ([manifest.Sanitizer])
//  3. Verify and pin dependencies ([pin.Walker]), unless the manifest is
//     package.json
//  4. Encode and write the output file
//
// The output file is only written after every step succeeded, and is
// replaced atomically, so a failed run never leaves a partial manifest
// behind.
//
// # Usage
//
//	runner := pipeline.NewRunner(wl, githubClient, logger, pipeline.Options{})
//	reports, err := runner.RunAll(ctx, pipeline.DefaultJobs(".", "build"))
//	if err != nil {
//	    return err
//	}
//	for _, r := range reports {
//	    fmt.Println(r.Job.Output, r.Pinned, len(r.Warnings))
//	}
package pipeline

import (
	"path/filepath"
	"time"

	"github.com/matzehuels/commitpin/pkg/errors"
	"github.com/matzehuels/commitpin/pkg/manifest"
	"github.com/matzehuels/commitpin/pkg/pin"
)

const (
	// DefaultConcurrency resolves one dependency at a time.
	DefaultConcurrency = 1

	// MaxConcurrency bounds Options.Concurrency to stay well within the
	// GitHub API's secondary rate limits.
	MaxConcurrency = 32

	// DefaultOutputDir is where rewritten manifests are written.
	DefaultOutputDir = "build"
)

// Options configures a [Runner].
type Options struct {
	Concurrency int                // Siblings resolved at once (default 1)
	DryRun      bool               // Verify without writing output files
	KeepGoing   bool               // Continue with the next manifest after a failure
	Profiles    []manifest.Profile // package.json profiles (nil = manifest.DefaultProfiles)
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Concurrency == 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Concurrency < 0 || o.Concurrency > MaxConcurrency {
		return errors.New(errors.ErrCodeInvalidInput, "concurrency must be between 1 and %d", MaxConcurrency)
	}
	return nil
}

// Job is one manifest to verify and rewrite.
type Job struct {
	Kind   manifest.Kind
	Input  string // Path of the manifest to read
	Output string // Path of the rewritten manifest
}

// Validate checks that the job names an input and an output file.
func (j Job) Validate() error {
	if j.Input == "" || j.Output == "" {
		return errors.New(errors.ErrCodeInvalidInput, "%s: input and output paths are required", j.Kind)
	}
	if filepath.Clean(j.Input) == filepath.Clean(j.Output) {
		return errors.New(errors.ErrCodeInvalidPath, "%s: output would overwrite input %s", j.Kind, j.Input)
	}
	return errors.ValidateManifestFilename(filepath.Base(j.Output))
}

// DefaultJobs returns one job per manifest kind, reading from dir and
// writing to outDir under the conventional file names.
func DefaultJobs(dir, outDir string) []Job {
	jobs := make([]Job, 0, len(manifest.Kinds))
	for _, k := range manifest.Kinds {
		jobs = append(jobs, Job{
			Kind:   k,
			Input:  filepath.Join(dir, k.Filename()),
			Output: filepath.Join(outDir, k.Filename()),
		})
	}
	return jobs
}

// Report summarizes a successful run.
type Report struct {
	Job      Job
	Pinned   int           // Dependencies pinned to a commit, at every depth
	Retained int           // Exempt dependencies kept as declared
	Warnings []pin.Warning // Non-fatal resolution problems
	Written  bool          // False for dry runs
	Duration time.Duration
}
