package site

import (
	"contentkit/internal/domain/content"
	"fmt"
	"net/url"
	"strings"
)

type RouteKind string

const (
	RouteItem     RouteKind = "item"
	RouteCategory RouteKind = "category"
	RouteTag      RouteKind = "tag"
	RouteSeries   RouteKind = "series"
)

// prefixes are the public URL prefixes of each category.
var prefixes = map[content.Category]string{
	content.CategoryBlog:          "/blog",
	content.CategoryHub:           "/content/hub",
	content.CategorySpoke:         "/content/spoke",
	content.CategoryGuide:         "/content/guides",
	content.CategoryDocumentation: "/content/docs",
	content.CategoryFAQ:           "/content/faq",
}

type Route struct {
	Kind     RouteKind
	Category content.Category
	Slug     string
	Key      string
	Page     int
}

// Prefix returns the URL prefix for c, or "/content/<c>" for tags without
// a dedicated section.
func Prefix(c content.Category) string {
	if p, ok := prefixes[c]; ok {
		return p
	}
	return "/content/" + string(c)
}

// CanonicalPath is the site-relative path of one item.
func CanonicalPath(c content.Category, slug string) string {
	return Prefix(c) + "/" + url.PathEscape(slug)
}

// CanonicalURL joins base and the item path. A malformed base is returned
// as a plain concatenation.
func CanonicalURL(base string, c content.Category, slug string) string {
	p := CanonicalPath(c, slug)
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil || u.Scheme == "" {
		return strings.TrimRight(base, "/") + p
	}
	return u.JoinPath(p).String()
}

// Path renders r as a site-relative path.
func (r Route) Path() string {
	var p string
	switch r.Kind {
	case RouteItem:
		p = CanonicalPath(r.Category, r.Slug)
	case RouteCategory:
		p = Prefix(r.Category)
	case RouteTag:
		p = Prefix(r.Category) + "/tags/" + url.PathEscape(r.Key)
	case RouteSeries:
		p = CanonicalPath(content.CategoryHub, r.Key)
	}
	if r.Page > 1 {
		p += fmt.Sprintf("/page/%d", r.Page)
	}
	return p
}

func (r Route) String() string {
	var parts []string
	parts = append(parts, string(r.Kind))
	if r.Category != "" {
		parts = append(parts, "category="+string(r.Category))
	}
	if r.Slug != "" {
		parts = append(parts, "slug="+r.Slug)
	}
	if r.Key != "" {
		parts = append(parts, "key="+r.Key)
	}
	if r.Page > 0 {
		parts = append(parts, fmt.Sprintf("page=%d", r.Page))
	}
	return strings.Join(parts, " ")
}
