package proto

import "time"

// Signature identifies the author or committer of a commit.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// Commit is the slice of commit metadata that webhook payloads carry.
type Commit struct {
	ID      string
	Message string

	Author    Signature
	Committer Signature
}
