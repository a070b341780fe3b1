package index

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentkit/internal/domain/content"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(OpenOptions{Path: filepath.Join(t.TempDir(), "nested", "index.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func rec(cat content.Category, slug string, published time.Time, tags ...string) Record {
	return Record{ListItem: content.ListItem{
		Slug:        slug,
		Title:       "Title " + slug,
		Type:        cat,
		PublishedAt: published,
		Tags:        tags,
	}}
}

func spoke(slug, hub string, order *int, published time.Time) Record {
	r := rec(content.CategorySpoke, slug, published)
	r.HubSlug = hub
	r.SpokeOrder = order
	return r
}

func intp(n int) *int { return &n }

func slugs(rs []Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Slug
	}
	return out
}

func TestOpen(t *testing.T) {
	_, err := Open(OpenOptions{})
	assert.Error(t, err)

	s := openTemp(t)
	assert.FileExists(t, s.Path())

	_, err = s.Get(Ref{Category: content.CategoryBlog, Slug: "none"})
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := s.List(ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRebuildAndList(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.Rebuild([]Record{
		rec(content.CategoryBlog, "old", day(1), "Go", "tools"),
		rec(content.CategoryBlog, "new", day(5), "go"),
		rec(content.CategoryGuide, "mid", day(3), " GO "),
		rec(content.CategoryBlog, "", day(9)),
	}))

	all, err := s.List(ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old"}, slugs(all))

	blog, err := s.ListByCategory(content.CategoryBlog, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, slugs(blog))

	tagged, err := s.ListByTag("GO", ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old"}, slugs(tagged))

	tags, err := s.ListAllTags()
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "tools"}, tags)

	page2, err := s.List(ListOptions{Page: 2, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, slugs(page2))

	counts, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, map[content.Category]int{content.CategoryBlog: 2, content.CategoryGuide: 1}, counts)

	got, err := s.Get(Ref{Category: content.CategoryGuide, Slug: "mid"})
	require.NoError(t, err)
	assert.Equal(t, "Title mid", got.Title)
	assert.Equal(t, day(3), got.PublishedAt)

	// same slug in another category is a different record
	_, err = s.Get(Ref{Category: content.CategoryBlog, Slug: "mid"})
	assert.ErrorIs(t, err, ErrNotFound)

	t.Run("rebuild replaces everything", func(t *testing.T) {
		require.NoError(t, s.Rebuild([]Record{rec(content.CategoryFAQ, "only", day(2), "faq")}))
		all, err := s.List(ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"only"}, slugs(all))
		tags, err := s.ListAllTags()
		require.NoError(t, err)
		assert.Equal(t, []string{"faq"}, tags)
	})
}

func TestUpsertAndDelete(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.Upsert(rec(content.CategoryBlog, "a", day(1), "x")))
	require.NoError(t, s.Upsert(rec(content.CategoryBlog, "b", day(2), "x")))

	// moving a record in time and across tags leaves no stale entries
	require.NoError(t, s.Upsert(rec(content.CategoryBlog, "a", day(3), "y")))

	all, err := s.List(ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, slugs(all))

	x, err := s.ListByTag("x", ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, slugs(x))

	require.NoError(t, s.Delete(Ref{Category: content.CategoryBlog, Slug: "b"}))
	err = s.Delete(Ref{Category: content.CategoryBlog, Slug: "b"})
	assert.True(t, errors.Is(err, ErrNotFound))

	all, err = s.List(ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, slugs(all))
}

func TestSeries(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.Rebuild([]Record{
		rec(content.CategoryHub, "gcp", day(1)),
		spoke("unordered-late", "gcp", nil, day(9)),
		spoke("second", "gcp", intp(2), day(2)),
		spoke("first", "gcp", intp(1), day(8)),
		spoke("unordered-early", "gcp", nil, day(4)),
		spoke("other", "aws", intp(1), day(3)),
		spoke("loose", "", intp(1), day(3)),
	}))

	series, err := s.ListSeries("gcp", ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "unordered-early", "unordered-late"}, slugs(series))

	names, err := s.ListAllSeriesNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"aws", "gcp"}, names)

	sum, err := s.GetSeriesSummary("gcp")
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Count)
	assert.Equal(t, "first", sum.FirstSlug)
	assert.Equal(t, day(9), sum.LatestPublished)

	_, err = s.GetSeriesSummary("none")
	assert.ErrorIs(t, err, ErrNotFound)

	ov, err := s.Overview(2)
	require.NoError(t, err)
	assert.Equal(t, 7, ov.Total)
	require.Len(t, ov.Series, 2)
	assert.Equal(t, "gcp", ov.Series[0].Hub)
	assert.Equal(t, []string{"unordered-late", "first"}, slugs(ov.Latest))
}

func TestCache(t *testing.T) {
	s := openTemp(t)

	type entry struct {
		Valid bool
		N     int
	}
	require.NoError(t, s.PutCache("k1", entry{Valid: true, N: 1}))
	require.NoError(t, s.PutCache("k2", entry{N: 2}))

	var got entry
	found, err := s.GetCache("k1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, entry{Valid: true, N: 1}, got)

	found, err = s.GetCache("missing", &got)
	require.NoError(t, err)
	assert.False(t, found)

	// cache survives a rebuild
	require.NoError(t, s.Rebuild(nil))
	found, err = s.GetCache("k2", &got)
	require.NoError(t, err)
	assert.True(t, found)

	n, err := s.PruneCache(map[string]struct{}{"k1": {}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	found, _ = s.GetCache("k2", &got)
	assert.False(t, found)
	found, _ = s.GetCache("k1", &got)
	assert.True(t, found)
}

func TestRuns(t *testing.T) {
	s := openTemp(t)

	first := &Run{Mode: "validate", StartedAt: day(1), Files: 3}
	require.NoError(t, s.RecordRun(first))
	assert.NotEmpty(t, first.ID)

	require.NoError(t, s.RecordRun(&Run{ID: "fixed", Mode: "legacy", StartedAt: day(2)}))

	runs, err := s.Runs(0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "fixed", runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
	assert.Equal(t, 3, runs[1].Files)

	runs, err = s.Runs(1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestKeys(t *testing.T) {
	ref := Ref{Category: content.CategoryBlog, Slug: "a-b"}

	got, ok := refFromTimeKey(makeTimeKey(day(1).UnixNano(), ref))
	require.True(t, ok)
	assert.Equal(t, ref, got)

	got, ok = refFromSeriesKey(makeSeriesKey(intp(3), day(1).UnixNano(), ref))
	require.True(t, ok)
	assert.Equal(t, ref, got)

	_, ok = refFromKey([]byte("noseparator"))
	assert.False(t, ok)

	// newer sorts first
	older := makeTimeKey(day(1).UnixNano(), ref)
	newer := makeTimeKey(day(2).UnixNano(), ref)
	assert.Less(t, string(newer), string(older))

	// before the epoch clamps to zero
	assert.Equal(t, makeTimeKey(-5, ref), makeTimeKey(0, ref))
}
