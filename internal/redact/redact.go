// Package redact provides utilities for redacting sensitive information from
// strings before they are logged. Database errors in particular can embed the
// connection string, including credentials, so anything derived from them is
// scrubbed before it reaches a log line.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
)

// Precompiled regex patterns
var (
	// Database connection strings
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|db|database|connection)://[^@\s]+@`)

	// Password values in keyword/value connection strings
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)

	// Unix socket and file paths, as seen in driver connection errors
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)

	// host:port pairs
	hostPortRegex = regexp.MustCompile(
		`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`,
	)

	// SQL queries and fragments
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP|GRANT)[\s\w,*()]+(?:FROM|INTO|SET|TABLE|DATABASE|SCHEMA|VIEW)(?:[\s\w,*()='"]+)?`,
	)

	patterns = []*regexp.Regexp{
		dbConnRegex, passwordRegex, unixPathRegex, hostPortRegex, sqlRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		dbConnRegex:   RedactedCredentialPlaceholder,
		passwordRegex: RedactedCredentialPlaceholder,
		unixPathRegex: RedactedPathPlaceholder,
		hostPortRegex: "[REDACTED_HOST]",
		sqlRegex:      "[REDACTED_SQL]",
	}
)

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, pattern := range patterns {
		placeholder := RedactionPlaceholder
		if ph, ok := patternPlaceholders[pattern]; ok {
			placeholder = ph
		}
		result = pattern.ReplaceAllString(result, placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
