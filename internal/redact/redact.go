// Package redact strips credentials from strings before they reach the
// diagnostic logs. Error messages can embed whatever a caller sent,
// including Authorization headers and login bodies, so everything logged
// through the error path goes through here first.
package redact

import "regexp"

// Placeholders substituted for matched secrets.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
)

var (
	bearerRegex   = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]+`)
	jwtRegex      = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)
	passwordRegex = regexp.MustCompile(`(?i)(password|contrasena)(['"\s:=]+)[^'"&\s]{3,}`)
	emailRegex    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// String redacts credentials and emails from the input.
func String(input string) string {
	if input == "" {
		return input
	}
	result := bearerRegex.ReplaceAllString(input, CredentialPlaceholder)
	result = jwtRegex.ReplaceAllString(result, CredentialPlaceholder)
	result = passwordRegex.ReplaceAllString(result, "$1$2"+CredentialPlaceholder)
	result = emailRegex.ReplaceAllString(result, EmailPlaceholder)
	return result
}

// Error redacts an error's message. Returns "" for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
