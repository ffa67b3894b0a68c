// Package normalize canonicalizes user-supplied strings before they are
// compared or stored.
package normalize

import "strings"

// Email trims surrounding space and lower-cases the address so lookups are
// case-insensitive.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding space and preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// ID trims an identifier pasted by a client.
func ID(s string) string {
	return strings.TrimSpace(s)
}
