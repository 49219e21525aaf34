package api

import (
	"net/http"
	"strconv"
	"strings"

	"becat/internal/catalog"
)

// ParseSearchRequest extracts search parameters from the request query.
// The path parameter is required; ok reports whether it was present.
func ParseSearchRequest(r *http.Request) (catalog.SearchRequest, bool) {
	query := r.URL.Query()

	path := query.Get("path")
	if path == "" {
		return catalog.SearchRequest{}, false
	}

	return catalog.SearchRequest{
		Path:            path,
		AgentName:       query.Get("agent"),
		Recurse:         FlagValue(query.Get("recurse")),
		PathIsDirectory: FlagValue(query.Get("isdir")),
	}, true
}

// FlagValue interprets a query flag the permissive way: 1, true, yes and on
// all count as set, case-insensitively.
func FlagValue(val string) bool {
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// GetPathParam extracts a path parameter from the URL
// For example, with pattern "/history/{id}", GetPathParam(r, "/history/") returns the ID
func GetPathParam(r *http.Request, prefix string) string {
	path := r.URL.Path
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	return strings.TrimPrefix(path, prefix)
}

// QueryParamInt extracts an integer query parameter with a default value
func QueryParamInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
