// Package cli implements the commitpin command-line interface.
//
// The CLI is built with cobra. Settings come from flags, COMMITPIN_*
// environment variables and an optional .commitpin.yaml file, merged by
// viper (flags win). Logging uses charmbracelet/log at info level, or debug
// with --verbose.
//
// # Commands
//
//   - check: verify all manifests and write pinned copies
//   - tags, commits: show what the GitHub API returns for a repository
//   - whitelist validate, whitelist list: inspect a whitelist file
//   - completion: shell completion scripts
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/commitpin/pkg/buildinfo"
)

const (
	// appName is the application name used for directories and display.
	appName = "commitpin"

	// envPrefix prefixes environment variables read as configuration.
	envPrefix = "COMMITPIN"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	config     *viper.Viper
	configFile string
}

// New creates a new CLI instance writing logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: viper.New(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Verify dependencies against a whitelist and pin them to approved commits",
		Long: `commitpin checks every dependency declared in npm-shrinkwrap.json and bower.json
against a whitelist of reviewed versions and commits, resolves each one through
the GitHub API and writes copies of the manifests that pin every dependency to
an approved commit (owner/repo#sha).`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default .commitpin.yaml)")
	root.PersistentFlags().Int("retries", 0, "retry failed GitHub requests this many times")
	_ = c.config.BindPFlag("retries", root.PersistentFlags().Lookup("retries"))

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.tagsCommand())
	root.AddCommand(c.commitsCommand())
	root.AddCommand(c.whitelistCommand())
	root.AddCommand(c.completionCommand())

	return root
}
