package webhook

import (
	"encoding"
	"errors"
)

// Scope selects which events a subscription receives.
type Scope int8

const (
	// ScopeAllEvents receives every event type.
	ScopeAllEvents Scope = iota
	// ScopePushOnly receives push events only.
	ScopePushOnly
)

var scopeStrings = map[Scope]string{
	ScopeAllEvents: "all_events",
	ScopePushOnly:  "push_only",
}

// String returns the string representation of the scope.
func (s Scope) String() string {
	return scopeStrings[s]
}

var stringScope = map[string]Scope{
	"all_events": ScopeAllEvents,
	"push_only":  ScopePushOnly,
}

// ErrInvalidScope is returned when the scope is invalid.
var ErrInvalidScope = errors.New("invalid scope")

// ParseScope parses a scope string and returns the scope.
func ParseScope(str string) (Scope, error) {
	s, ok := stringScope[str]
	if !ok {
		return -1, ErrInvalidScope
	}

	return s, nil
}

var (
	_ encoding.TextMarshaler   = Scope(0)
	_ encoding.TextUnmarshaler = (*Scope)(nil)
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scope) UnmarshalText(text []byte) error {
	sc, err := ParseScope(string(text))
	if err != nil {
		return err
	}

	*s = sc
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Scope) MarshalText() (text []byte, err error) {
	sc := s.String()
	if sc == "" {
		return nil, ErrInvalidScope
	}

	return []byte(sc), nil
}
