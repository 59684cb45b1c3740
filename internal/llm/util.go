package llm

import "strings"

// cleanJSONBlock removes markdown code fence wrappers some models put
// around JSON output even when a JSON response format was requested.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
