package proto

// PullRequest is the slice of pull request metadata that webhook
// messages carry.
type PullRequest struct {
	ID          int64
	Title       string
	Body        string
	Contributor string
	FromBranch  string
	ToBranch    string
}
