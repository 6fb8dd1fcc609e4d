package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/commitpin/pkg/whitelist"
)

// whitelistCommand creates the whitelist command and its subcommands.
func (c *CLI) whitelistCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whitelist",
		Short: "Inspect whitelist files",
	}
	cmd.AddCommand(c.whitelistValidateCommand())
	cmd.AddCommand(c.whitelistListCommand())
	return cmd
}

func (c *CLI) whitelistValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a whitelist against the schema",
		Long: `Check a whitelist file (JSON, or TOML by extension) against the whitelist
schema. Every entry needs a repository in owner/name form, a version and at
least one approved commit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := whitelistArg(args)
			wl, err := whitelist.Load(path)
			if err != nil {
				printError("%s is invalid", path)
				return err
			}
			printSuccess("%s: %d dependencies", path, wl.Len())
			return nil
		},
	}
}

func (c *CLI) whitelistListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [file]",
		Short: "List whitelisted dependencies",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wl, err := whitelist.Load(whitelistArg(args))
			if err != nil {
				return err
			}
			for _, name := range wl.Names() {
				e, _ := wl.Lookup(name)
				printKeyValue(name, fmt.Sprintf("%s %s", e.Repository, StyleDim.Render(e.Floor)))
				printDetail("latest approved commit %s", e.Latest())
			}
			return nil
		},
	}
}

func whitelistArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return defaultWhitelist
}
