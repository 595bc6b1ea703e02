// Package dictionary supplies the acronym dictionary used for expansion:
// either a static mapping from configuration or a Redis-hash-backed provider
// that refreshes on an interval.
package dictionary

// Provider yields the current acronym dictionary. Implementations must
// return a map the caller can read without synchronization; refreshing
// providers swap in a fresh map rather than mutating the returned one.
type Provider interface {
	Dict() map[string]string
}

// Static is a fixed dictionary, typically loaded from configuration.
type Static map[string]string

// Dict returns the mapping itself.
func (s Static) Dict() map[string]string {
	return s
}
