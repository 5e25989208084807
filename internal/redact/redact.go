// Package redact scrubs sensitive material out of strings before they
// are logged or attached to error responses: connection strings,
// passwords, tokens, email addresses, file paths, and SQL fragments.
package redact

import "regexp"

// Redaction placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
)

// replacements are applied in order; credential patterns run before the
// broader path and host patterns so the more specific placeholder wins.
var replacements = []struct {
	pattern     *regexp.Regexp
	placeholder string
}{
	{
		// Connection strings with embedded credentials
		regexp.MustCompile(`(?i)(postgres|postgresql|mysql|mongodb|amqp|redis)://[^@\s]+@`),
		RedactedCredentialPlaceholder,
	},
	{
		// password=..., pwd: ..., passwd "..."
		regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?|['"]?[=:])[^'"&\s]{3,}`),
		RedactedCredentialPlaceholder,
	},
	{
		// Three-part base64url JWTs, before the broader key pattern so
		// "token eyJ..." keeps the JWT placeholder
		regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		RedactedJWTPlaceholder,
	},
	{
		// API keys, secrets, bearer material
		regexp.MustCompile(`(?i)(api[_-]?key|secret|token|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`),
		RedactedKeyPlaceholder,
	},
	{
		// Email addresses
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		RedactedEmailPlaceholder,
	},
	{
		// SQL statements leaking schema details through driver errors
		regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(FROM|INTO|SET|TABLE|WHERE)[\s\w,*()='"$]*`),
		RedactedSQLPlaceholder,
	},
	{
		// Absolute unix paths
		regexp.MustCompile(`(/[\w.-]+){2,}`),
		RedactedPathPlaceholder,
	},
	{
		// Windows paths
		regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`),
		RedactedPathPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range replacements {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
// Returns the empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
