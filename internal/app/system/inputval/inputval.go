// Package inputval holds small predicates for validating client input.
package inputval

import (
	"net/mail"
	"strings"
)

// IsValidEmail reports whether s is a bare addr-spec ("user@host").
// Display-name forms, surrounding space and malformed dots are rejected.
func IsValidEmail(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return wellDotted(s[:at]) && wellDotted(s[at+1:])
}

func wellDotted(part string) bool {
	return !strings.HasPrefix(part, ".") &&
		!strings.HasSuffix(part, ".") &&
		!strings.Contains(part, "..") &&
		!strings.ContainsAny(part, " \t")
}
