package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
)

// bluemonday policies are safe for concurrent use; cases.Caser is not.
var strictPolicy = bluemonday.StrictPolicy()

// NormalizeEmail trims and case-folds an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}

// CleanDisplayName strips any markup and surrounding whitespace from a user-supplied name.
func CleanDisplayName(name string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(name))
}
