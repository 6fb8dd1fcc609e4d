package github

// Tag is one entry of GET /repos/{owner}/{repo}/tags.
type Tag struct {
	Name   string    `json:"name"`
	Commit CommitRef `json:"commit"`
}

// CommitRef is the commit a tag points at.
type CommitRef struct {
	SHA string `json:"sha"`
}

// Commit is one entry of GET /repos/{owner}/{repo}/commits.
type Commit struct {
	SHA string `json:"sha"`
}
