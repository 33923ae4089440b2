package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	ugcPolicy    = bluemonday.UGCPolicy()
)

// StripHTML removes every tag from user supplied plain text.
func StripHTML(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// SanitizeRichText keeps safe formatting markup and drops scripts, handlers and the like.
func SanitizeRichText(s string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(s))
}
