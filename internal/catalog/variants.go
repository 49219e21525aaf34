package catalog

import (
	"regexp"
	"strings"
)

var driveLetterPrefix = regexp.MustCompile(`^[A-Za-z]:\\`)

// uncSharePrefix strips the \\server\ segment of a UNC path
var uncSharePrefix = regexp.MustCompile(`^\\\\[^\\]+\\`)

// GenerateVariants derives the ordered, deduplicated list of candidate path
// patterns for one user-supplied path. Backup catalogs index paths
// inconsistently (with or without drive letters, UNC prefixes, trailing
// separators), so a single literal pattern routinely misses entries that a
// derived form finds.
func GenerateVariants(rawPath string) []string {
	if rawPath == "" {
		return []string{"*"}
	}

	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if strings.TrimSpace(p) == "" || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	add(rawPath)
	if !hasWildcard(rawPath) {
		add(rawPath + "*")
		add("*" + rawPath + "*")
	}

	// Drive-less form: "D:\toBackup" -> "toBackup"
	if stripped := driveLetterPrefix.ReplaceAllString(rawPath, ""); stripped != rawPath {
		add(stripped)
		if stripped != "" && !hasWildcard(stripped) {
			add(stripped + "*")
		}
	}

	// UNC form: \\server\share\folder -> share\folder
	if strings.HasPrefix(rawPath, `\\`) {
		if stripped := uncSharePrefix.ReplaceAllString(rawPath, ""); stripped != "" && stripped != rawPath {
			add(stripped)
			if !hasWildcard(stripped) {
				add(stripped + "*")
			}
		}
	}

	if leaf := leafSegment(rawPath); leaf != "" && !hasWildcard(leaf) {
		add(leaf + "*")
	}

	return out
}

func hasWildcard(s string) bool {
	return strings.ContainsAny(s, "*?")
}

// leafSegment returns the last meaningful path segment. Trailing wildcards
// and separators are trimmed first so "C:\Data\Projects\*" yields "Projects".
func leafSegment(p string) string {
	trimmed := strings.TrimRight(p, "*?")
	trimmed = strings.TrimRight(trimmed, `\/`)
	if trimmed == "" {
		return ""
	}
	if i := strings.LastIndexAny(trimmed, `\/`); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
