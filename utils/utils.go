package utils

import "strings"

// SplitCommaSeparated splits "a, b,,c" into ["a" "b" "c"].
func SplitCommaSeparated(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
