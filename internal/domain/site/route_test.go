package site

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"contentkit/internal/domain/content"
)

func TestCanonical(t *testing.T) {
	assert.Equal(t, "/blog/hello", CanonicalPath(content.CategoryBlog, "hello"))
	assert.Equal(t, "/content/guides/setup", CanonicalPath(content.CategoryGuide, "setup"))
	assert.Equal(t, "/content/podcast", Prefix("podcast"))

	assert.Equal(t, "https://testero.ai/content/hub/gcp", CanonicalURL("https://testero.ai/", content.CategoryHub, "gcp"))
	assert.Equal(t, "https://example.com/docs/content/faq/q", CanonicalURL("https://example.com/docs", content.CategoryFAQ, "q"))
	assert.Equal(t, "/local/blog/a", CanonicalURL("/local", content.CategoryBlog, "a"))
}

func TestRoutePath(t *testing.T) {
	tests := []struct {
		route Route
		want  string
	}{
		{Route{Kind: RouteItem, Category: content.CategorySpoke, Slug: "s-1"}, "/content/spoke/s-1"},
		{Route{Kind: RouteCategory, Category: content.CategoryBlog}, "/blog"},
		{Route{Kind: RouteCategory, Category: content.CategoryBlog, Page: 1}, "/blog"},
		{Route{Kind: RouteCategory, Category: content.CategoryBlog, Page: 3}, "/blog/page/3"},
		{Route{Kind: RouteTag, Category: content.CategoryBlog, Key: "google cloud"}, "/blog/tags/google%20cloud"},
		{Route{Kind: RouteSeries, Key: "gcp"}, "/content/hub/gcp"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.route.Path())
		})
	}
}

func TestRouteString(t *testing.T) {
	r := Route{Kind: RouteTag, Category: content.CategoryBlog, Key: "go", Page: 2}
	assert.Equal(t, "tag category=blog key=go page=2", r.String())
}
