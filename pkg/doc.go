// Package pkg provides the libraries behind commitpin, a dependency
// whitelist verifier and commit pinner for npm-shrinkwrap.json, package.json
// and bower.json.
//
// # Overview
//
// commitpin makes sure every third-party dependency of a JavaScript project
// builds from source that has been reviewed. Each dependency must appear in a
// whitelist that records its GitHub repository, the highest reviewed version
// and the reviewed commits. The rewritten manifests reference those commits
// directly (owner/repo#sha) instead of mutable version ranges.
//
// # Architecture
//
// The data flow of a check:
//
//	dependency-whitelist.json         npm-shrinkwrap.json / bower.json
//	         ↓                                   ↓
//	    [whitelist] (load + schema)         [manifest] (ordered JSON, sanitize)
//	         ↓                                   ↓
//	         └──────────→ [pin] walker ←─────────┘
//	                         ↕
//	               [integrations/github] (tags, commits)
//	                         ↓
//	    [manifest] Apply → [pipeline] atomic write → build/
//
// Supporting packages:
//
//   - [version]: exact and range ("~") version comparison
//   - [errors]: coded errors shared by every package
//   - [httputil]: opt-in retries for transient API failures
//   - [observability]: hooks for HTTP requests and pinning decisions
//   - [buildinfo]: version information set at build time
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/commitpin/pkg/integrations"
//	    "github.com/matzehuels/commitpin/pkg/integrations/github"
//	    "github.com/matzehuels/commitpin/pkg/pipeline"
//	    "github.com/matzehuels/commitpin/pkg/whitelist"
//	)
//
//	wl, err := whitelist.Load("dependency-whitelist.json")
//	if err != nil {
//	    return err
//	}
//	client := github.NewClient(integrations.Credentials{Token: token}, 0)
//	runner := pipeline.NewRunner(wl, client, logger, pipeline.Options{})
//	reports, err := runner.RunAll(ctx, pipeline.DefaultJobs(".", "build"))
//
// [whitelist]: https://pkg.go.dev/github.com/matzehuels/commitpin/pkg/whitelist
// [manifest]: https://pkg.go.dev/github.com/matzehuels/commitpin/pkg/manifest
// [pin]: https://pkg.go.dev/github.com/matzehuels/commitpin/pkg/pin
// [integrations/github]: https://pkg.go.dev/github.com/matzehuels/commitpin/pkg/integrations/github
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/commitpin/pkg/pipeline
// [version]: https://pkg.go.dev/github.com/matzehuels/commitpin/pkg/version
// [errors]: https://pkg.go.dev/github.com/matzehuels/commitpin/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/commitpin/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/commitpin/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/commitpin/pkg/buildinfo
package pkg
