package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns lists dynamic routes, most specific first.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/news/[^/]+$`), Template: "/api/news/:id"},
}

// NormalizePath collapses dynamic URL paths into route templates so metrics
// labels and span names keep a bounded cardinality.
//
// Examples:
//
//	NormalizePath("/api/news/3f1e2a9c-5b7d-4e0f-9a8b-1c2d3e4f5a6b") // "/api/news/:id"
//	NormalizePath("/api/news")                                      // "/api/news"
//	NormalizePath("/api/health")                                    // "/api/health"
//	NormalizePath("/api/news/abc/?x=1")                             // "/api/news/:id"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}
