package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/commitpin/pkg/integrations/github"
)

// tagsCommand creates the tags command.
func (c *CLI) tagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tags <owner/repo>",
		Short: "List the tags of a repository in API order",
		Long: `List the tags of a GitHub repository with the commit each one points to.

Tags are printed in the order the API returns them, which is the order check
scans them in: the first tag matching a requested version wins.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTags(cmd.Context(), args[0])
		},
	}
}

// commitsCommand creates the commits command.
func (c *CLI) commitsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "commits <owner/repo>",
		Short: "List recent commits of a repository",
		Long: `List the recent commits of a GitHub repository's default branch.

check falls back to this listing when no tag matches a requested version: the
dependency is pinned to the most recently approved commit if it is listed here.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCommits(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runTags(ctx context.Context, repo string) error {
	if _, _, err := github.ParseRepoRef(repo); err != nil {
		return err
	}
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching tags of %s...", repo))
	spinner.Start()
	tags, err := c.githubClient().ListTags(ctx, repo)
	if err != nil {
		spinner.StopWithError("Failed to fetch tags")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("%d tags in %s", len(tags), StyleHighlight.Render(repo)))

	for _, t := range tags {
		printKeyValue(t.Name, t.Commit.SHA)
	}
	return nil
}

func (c *CLI) runCommits(ctx context.Context, repo string) error {
	if _, _, err := github.ParseRepoRef(repo); err != nil {
		return err
	}
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching commits of %s...", repo))
	spinner.Start()
	commits, err := c.githubClient().ListCommits(ctx, repo)
	if err != nil {
		spinner.StopWithError("Failed to fetch commits")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("%d commits in %s", len(commits), StyleHighlight.Render(repo)))

	for _, cm := range commits {
		printDetail("%s", cm.SHA)
	}
	return nil
}
