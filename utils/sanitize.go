package utils

import "github.com/microcosm-cc/bluemonday"

var (
	contentPolicy = bluemonday.UGCPolicy()
	strictPolicy  = bluemonday.StrictPolicy()
)

// Sanitize cleans user-generated markdown/HTML content to prevent stored XSS.
func Sanitize(input string) string {
	return contentPolicy.Sanitize(input)
}

// SanitizeStrict strips all markup; used for titles, excerpts and other
// plain-text fields that must never carry HTML.
func SanitizeStrict(input string) string {
	return strictPolicy.Sanitize(input)
}
