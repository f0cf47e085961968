package proto

// User is an interface representing a site user.
type User interface {
	// ID returns the user's ID.
	ID() int64
	// Login returns the user's login name.
	Login() string
	// Name returns the user's display name.
	Name() string
	// Email returns the user's email address.
	Email() string
	// AvatarURL returns the URL of the user's avatar image.
	AvatarURL() string
	// IsAdmin returns whether the user is a site admin.
	IsAdmin() bool
}
