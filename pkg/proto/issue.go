package proto

// IssueState is the lifecycle state of an issue.
type IssueState string

const (
	// IssueStateOpen is an open issue.
	IssueStateOpen IssueState = "open"
	// IssueStateClosed is a closed issue.
	IssueStateClosed IssueState = "closed"
)

// Issue is the slice of issue metadata that webhook messages carry.
type Issue struct {
	ID       int64
	Title    string
	Body     string
	Assignee string
	State    IssueState
}
