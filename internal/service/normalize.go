package service

// NormalizeValue maps the external API's literal boolean tokens onto the
// decimal strings the alarm engine understands. Total and idempotent: every
// other value passes through unchanged, no other coercion is performed.
func NormalizeValue(value string) string {
	switch value {
	case "true":
		return "1"
	case "false":
		return "0"
	default:
		return value
	}
}
