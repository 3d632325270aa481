package uftp

import (
	"regexp"
	"strings"
)

var snakeBoundary = regexp.MustCompile(`(.)([A-Z][a-z])`)

// SnakeCase converts a CamelCase name to snake_case. Runs of capitals
// collapse into one word, so HTTPRequest becomes http_request.
func SnakeCase(text string) string {
	return strings.ToLower(snakeBoundary.ReplaceAllString(text, "${1}_${2}"))
}
