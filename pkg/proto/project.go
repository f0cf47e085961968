package proto

// Project is an interface representing a hosted project.
type Project interface {
	// ID returns the project's ID.
	ID() int64
	// Name returns the project's name.
	Name() string
	// Owner returns the login of the user who owns the project.
	Owner() string
	// Overview returns the project's overview text.
	Overview() string
	// IsPrivate returns whether the project is private.
	IsPrivate() bool
	// URL returns the project's canonical site URL.
	URL() string
}
