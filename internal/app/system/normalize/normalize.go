// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address. Uniqueness checks always run
// against the normalized form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}
