package templating

import (
	"os"
	"regexp"
	"strings"
)

const (
	NamePlaceholder = "{name}"
	ExtPlaceholder  = "{ext}"
)

var (
	// PlaceholderRegex matches placeholder patterns like {word}
	PlaceholderRegex = regexp.MustCompile(`\{([A-Za-z0-9_\-]+)\}`)

	// EnvVarRegex matches environment variable naming pattern (uppercase letters, numbers, underscores)
	EnvVarRegex = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
)

// replaceEnvVars replaces environment variable placeholders in a string.
// Placeholders matching the pattern {VAR_NAME} where VAR_NAME is all uppercase
// with underscores are replaced with the value of the environment variable.
// If the environment variable is not set or empty, the placeholder is left as-is.
func replaceEnvVars(pattern string) string {
	return PlaceholderRegex.ReplaceAllStringFunc(pattern, func(m string) string {
		name := m[1 : len(m)-1]
		if !EnvVarRegex.MatchString(name) {
			return m
		}
		if val := os.Getenv(name); val != "" {
			return val
		}
		return m
	})
}

// ResolveOutputPath expands {ENV_VAR} placeholders, then replaces the first {name}
// with tag and the first {ext} with ext. Further {name} or {ext} tokens are left literal.
func ResolveOutputPath(pathTemplate, tag, ext string) string {
	p := replaceEnvVars(pathTemplate)
	p = strings.Replace(p, NamePlaceholder, tag, 1)
	return strings.Replace(p, ExtPlaceholder, ext, 1)
}
