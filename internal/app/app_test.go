package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentkit/internal/domain/content"
	"contentkit/internal/domain/site"
	"contentkit/internal/index"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func rec(cat content.Category, slug string, published time.Time, tags ...string) index.Record {
	return index.Record{ListItem: content.ListItem{
		Slug:        slug,
		Title:       "Title " + slug,
		Description: "About " + slug,
		Type:        cat,
		PublishedAt: published,
		Tags:        tags,
	}}
}

func spoke(slug string, order int, published time.Time, tags ...string) index.Record {
	r := rec(content.CategorySpoke, slug, published, tags...)
	r.HubSlug = "gcp"
	r.SpokeOrder = &order
	return r
}

func seeded(t *testing.T) *index.Store {
	t.Helper()
	s, err := index.Open(index.OpenOptions{Path: filepath.Join(t.TempDir(), "index.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Rebuild([]index.Record{
		rec(content.CategoryBlog, "jan", day(1), "go", "cli"),
		rec(content.CategoryBlog, "feb", day(2), "go"),
		rec(content.CategoryBlog, "mar", day(3), "go", "cli", "yaml"),
		rec(content.CategoryGuide, "setup", day(4), "Go", "go", "cli"),
		rec(content.CategoryHub, "gcp", day(5), "cloud"),
		spoke("intro", 1, day(9), "cloud"),
		spoke("deep-dive", 2, day(6), "cloud"),
	}))
	return s
}

func TestNavigationCategory(t *testing.T) {
	nav := &Navigator{Index: seeded(t)}

	got, err := nav.Navigation(index.Ref{Category: content.CategoryBlog, Slug: "feb"}, 0)
	require.NoError(t, err)
	require.NotNil(t, got.Previous)
	require.NotNil(t, got.Next)
	assert.Equal(t, "jan", got.Previous.Slug)
	assert.Equal(t, "mar", got.Next.Slug)
	assert.Nil(t, got.Parent)

	got, err = nav.Navigation(index.Ref{Category: content.CategoryBlog, Slug: "jan"}, 0)
	require.NoError(t, err)
	assert.Nil(t, got.Previous)
	assert.Equal(t, "feb", got.Next.Slug)
}

func TestNavigationSeries(t *testing.T) {
	nav := &Navigator{Index: seeded(t)}

	got, err := nav.Navigation(index.Ref{Category: content.CategorySpoke, Slug: "intro"}, 0)
	require.NoError(t, err)
	require.NotNil(t, got.Parent)
	assert.Equal(t, content.NavLink{Title: "Title gcp", Slug: "gcp", Type: content.CategoryHub}, *got.Parent)
	assert.Nil(t, got.Previous)
	require.NotNil(t, got.Next)
	assert.Equal(t, "deep-dive", got.Next.Slug)
}

func TestRelated(t *testing.T) {
	nav := &Navigator{Index: seeded(t)}

	got, err := nav.Navigation(index.Ref{Category: content.CategoryBlog, Slug: "mar"}, 2)
	require.NoError(t, err)
	require.Len(t, got.Related, 2)
	// setup shares go and cli and is newest among those
	assert.Equal(t, "setup", got.Related[0].Slug)
	assert.Equal(t, "jan", got.Related[1].Slug)
	assert.Equal(t, "About setup", got.Related[0].Description)

	got, err = nav.Navigation(index.Ref{Category: content.CategoryBlog, Slug: "mar"}, 0)
	require.NoError(t, err)
	assert.Len(t, got.Related, DefaultRelated)
}

func TestNavigationMissing(t *testing.T) {
	nav := &Navigator{Index: seeded(t)}
	_, err := nav.Navigation(index.Ref{Category: content.CategoryBlog, Slug: "nope"}, 0)
	assert.ErrorIs(t, err, index.ErrNotFound)
}

func TestBuildAll(t *testing.T) {
	rb := &RouteBuilder{Index: seeded(t)}
	routes, err := rb.BuildAll()
	require.NoError(t, err)

	paths := make(map[string]site.RouteKind, len(routes))
	for _, r := range routes {
		paths[r.Path()] = r.Kind
	}
	assert.Equal(t, site.RouteCategory, paths["/blog"])
	assert.Equal(t, site.RouteItem, paths["/blog/feb"])
	assert.Equal(t, site.RouteItem, paths["/content/spoke/intro"])
	assert.Equal(t, site.RouteSeries, paths["/content/hub/gcp"])
	assert.Equal(t, site.RouteTag, paths["/blog/tags/yaml"])
	assert.Equal(t, site.RouteTag, paths["/content/guides/tags/cli"])
	assert.NotContains(t, paths, "/content/faq")

	var series int
	for _, r := range routes {
		if r.Kind == site.RouteSeries {
			series++
		}
	}
	assert.Equal(t, 1, series)
}
