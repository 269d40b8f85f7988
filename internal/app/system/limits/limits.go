// internal/app/system/limits/limits.go
package limits

// Input size limits for chat content.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxMessageContent is the maximum byte length of one message body.
	MaxMessageContent = 8 << 10 // 8 KB

	// MaxGroupName caps group display names.
	MaxGroupName = 200

	// MaxGroupDescription caps group descriptions.
	MaxGroupDescription = 2 << 10 // 2 KB

	// SendsPerMinute is the per-user ceiling on message sends.
	SendsPerMinute = 30
)
