package httpmetrics

import "strings"

// NormalizePath collapses variable path segments (numeric ids, usernames
// under known prefixes) so metric label cardinality stays bounded.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}

	parts := strings.Split(path, "/")
	for i, part := range parts {
		if isNumeric(part) {
			parts[i] = "{id}"
			continue
		}
		if i > 0 && (parts[i-1] == "username" || parts[i-1] == "user") && part != "" {
			parts[i] = "{username}"
		}
	}

	result := strings.Join(parts, "/")
	if result == "" {
		return "/"
	}

	return result
}

func isNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
