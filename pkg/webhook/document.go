package webhook

// The documents below are the wire bodies posted to payload URLs. Field
// names and shapes are contractual; receivers parse them.

// PushDocument is the body of a push delivery.
type PushDocument struct {
	// Ref is the list of updated ref names.
	Ref []string `json:"ref"`
	// Commits is the list of pushed commits.
	Commits []CommitDocument `json:"commits"`
	// HeadCommit is the first commit of the list.
	HeadCommit CommitDocument `json:"head_commit"`
	// Sender is the user who pushed.
	Sender SenderDocument `json:"sender"`
	// Pusher is the pusher identity.
	Pusher PusherDocument `json:"pusher"`
	// Repository is the project the push went to.
	Repository RepositoryDocument `json:"repository"`
}

// CommitDocument is one commit of a push delivery.
type CommitDocument struct {
	// ID is the full commit hash.
	ID string `json:"id"`
	// Message is the commit message.
	Message string `json:"message"`
	// Timestamp is the commit time in UTC.
	Timestamp string `json:"timestamp"`
	// URL is the commit's site URL.
	URL string `json:"url"`
	// Author is the commit author.
	Author SignatureDocument `json:"author"`
	// Committer is the commit committer.
	Committer SignatureDocument `json:"committer"`
}

// SignatureDocument is a commit author or committer.
type SignatureDocument struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SenderDocument is the user who triggered an event.
type SenderDocument struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	AvatarURL string `json:"avatar_url"`
	Type      string `json:"type"`
	SiteAdmin bool   `json:"site_admin"`
}

// PusherDocument is the pusher identity of a push delivery.
type PusherDocument struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RepositoryDocument is the project an event happened in.
type RepositoryDocument struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Owner    string `json:"owner"`
	HTMLURL  string `json:"html_url"`
	Overview string `json:"overview"`
	Private  bool   `json:"private"`
}

// MessageDocument is the body of an issue or pull request delivery. The
// shape follows the incoming-message format chat services accept.
type MessageDocument struct {
	// Text is the one-line notification message.
	Text string `json:"text"`
	// Attachments carry the event details.
	Attachments []Attachment `json:"attachments"`
}

// Attachment is a detail block of a MessageDocument.
type Attachment struct {
	// Text is the issue or pull request body.
	Text string `json:"text"`
	// Fields are the detail fields.
	Fields []Field `json:"fields"`
}

// Field is one detail of an attachment.
type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
}
