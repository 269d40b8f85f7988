// Package sanitize strips markup from user-supplied chat text. Message
// content, group names, and descriptions are plain text; anything that
// looks like HTML is removed rather than escaped so stored content is safe
// to render in any client.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
