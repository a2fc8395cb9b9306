package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "uuid", path: "/api/news/3f1e2a9c-5b7d-4e0f-9a8b-1c2d3e4f5a6b", want: "/api/news/:id"},
		{name: "garbage id", path: "/api/news/not-a-uuid", want: "/api/news/:id"},
		{name: "trailing slash", path: "/api/news/abc/", want: "/api/news/:id"},
		{name: "query", path: "/api/news/abc?x=1", want: "/api/news/:id"},
		{name: "collection", path: "/api/news", want: "/api/news"},
		{name: "health", path: "/api/health", want: "/api/health"},
		{name: "root", path: "/", want: "/"},
		{name: "nested below id", path: "/api/news/abc/extra", want: "/api/news/abc/extra"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.path))
		})
	}
}
