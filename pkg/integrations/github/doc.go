// Package github provides the GitHub API client used to resolve whitelisted
// dependencies to concrete commits.
//
// # Overview
//
// Two endpoints are consumed:
//
//   - GET /repos/{owner}/{repo}/tags: tag names with the commit they point at
//   - GET /repos/{owner}/{repo}/commits: recent commits of the default branch
//
// Only the first page is read and the API order is preserved. Callers scan
// the listings first-match-wins, so the order matters.
//
// # Usage
//
//	client := github.NewClient(integrations.Credentials{User: user, Password: pw}, 0)
//	tags, err := client.ListTags(ctx, "angular/angular.js")
//	if err != nil {
//	    return err
//	}
//	for _, t := range tags {
//	    fmt.Println(t.Name, t.Commit.SHA)
//	}
//
// # Authentication
//
// Unauthenticated clients are limited to 60 requests/hour, which a single
// verification run of a medium-sized project easily exceeds. Basic
// credentials or a personal access token raise the limit to 5000/hour.
package github
