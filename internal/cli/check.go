package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/commitpin/pkg/manifest"
	"github.com/matzehuels/commitpin/pkg/observability"
	"github.com/matzehuels/commitpin/pkg/pipeline"
	"github.com/matzehuels/commitpin/pkg/whitelist"
)

const defaultWhitelist = "dependency-whitelist.json"

// Flags of the check command. Each is also a config key.
const (
	flagWhitelist   = "whitelist"
	flagDir         = "dir"
	flagOut         = "out"
	flagConcurrency = "concurrency"
	flagKeepGoing   = "keep-going"
	flagDryRun      = "dry-run"
)

// checkCommand creates the check command, the main workflow.
func (c *CLI) checkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify dependencies and write pinned manifests",
		Long: `Verify every dependency of npm-shrinkwrap.json and bower.json against the
whitelist and write copies pinned to approved commits. package.json is
stripped of metadata and copied without pinning.

Each manifest is written only if all of its dependencies pass. A dependency
that is not whitelisted, requests a version above the whitelisted one or
resolves to an unapproved commit stops the run.

Examples:
  commitpin check
  commitpin check --dir app --out app/build
  commitpin check --bower "" --dry-run
  GITHUB_TOKEN=... commitpin check --concurrency 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.String(flagWhitelist, "", "whitelist file, JSON or TOML (default <dir>/"+defaultWhitelist+")")
	f.String(flagDir, ".", "directory containing the manifests")
	f.String(flagOut, pipeline.DefaultOutputDir, "directory for the pinned manifests")
	f.Int(flagConcurrency, pipeline.DefaultConcurrency, "dependencies resolved in parallel")
	f.Bool(flagKeepGoing, false, "continue with the next manifest after a failure")
	f.Bool(flagDryRun, false, "verify without writing output files")
	for _, k := range manifest.Kinds {
		f.String(kindFlag(k), k.Filename(), "file name of "+k.Filename()+" (empty to skip)")
	}

	f.VisitAll(func(flag *pflag.Flag) {
		_ = c.config.BindPFlag(flag.Name, flag)
	})
	return cmd
}

// kindFlag returns the flag naming the file of kind k.
func kindFlag(k manifest.Kind) string {
	switch k {
	case manifest.Shrinkwrap:
		return "shrinkwrap"
	case manifest.Package:
		return "package"
	default:
		return "bower"
	}
}

func (c *CLI) runCheck(ctx context.Context) error {
	v := c.config
	dir := v.GetString(flagDir)

	wlPath := v.GetString(flagWhitelist)
	if wlPath == "" {
		wlPath = filepath.Join(dir, defaultWhitelist)
	}
	wl, err := whitelist.Load(wlPath)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded whitelist", "file", wlPath, "dependencies", wl.Len())

	profiles, err := c.profiles()
	if err != nil {
		return err
	}

	requests := &requestCounter{}
	observability.SetHTTPHooks(requests)
	defer observability.SetHTTPHooks(observability.NoopHTTPHooks{})

	runner := pipeline.NewRunner(wl, c.githubClient(), c.Logger, pipeline.Options{
		Concurrency: v.GetInt(flagConcurrency),
		DryRun:      v.GetBool(flagDryRun),
		KeepGoing:   v.GetBool(flagKeepGoing),
		Profiles:    profiles,
	})

	jobs := c.checkJobs(dir, v.GetString(flagOut))
	if len(jobs) == 0 {
		printWarning("No manifests selected")
		return nil
	}

	prog := newProgress(c.Logger)
	reports, err := runner.RunAll(ctx, jobs)
	printReports(reports)
	printDetail("%d GitHub API requests", requests.count.Load())
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Verified %d manifests", len(reports)))
	return nil
}

// checkJobs builds one job per manifest with a non-empty file name.
func (c *CLI) checkJobs(dir, out string) []pipeline.Job {
	var jobs []pipeline.Job
	for _, k := range manifest.Kinds {
		name := c.config.GetString(kindFlag(k))
		if name == "" {
			continue
		}
		jobs = append(jobs, pipeline.Job{
			Kind:   k,
			Input:  filepath.Join(dir, name),
			Output: filepath.Join(out, name),
		})
	}
	return jobs
}

func printReports(reports []*pipeline.Report) {
	for _, r := range reports {
		if r.Job.Kind.Pinned() {
			printSuccess("%s: %d pinned, %d retained", r.Job.Kind, r.Pinned, r.Retained)
		} else {
			printSuccess("%s: sanitized", r.Job.Kind)
		}
		for _, w := range r.Warnings {
			printWarning("%s", w)
		}
		if r.Written {
			printFile(r.Job.Output)
		}
	}
}

// requestCounter counts GitHub API requests for the summary line.
type requestCounter struct {
	observability.NoopHTTPHooks
	count atomic.Int64
}

func (r *requestCounter) OnRequest(context.Context, string, string, string) {
	r.count.Add(1)
}
