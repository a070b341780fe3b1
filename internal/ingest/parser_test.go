package ingest

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentkit/internal/domain/content"
)

func TestParseFrontMatter(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantFM   content.Frontmatter
		wantBody string
		wantErr  error
	}{
		{
			name:     "header and body",
			raw:      "---\ntitle: Hello\ntags:\n  - a\n  - b\n---\n\n# Body\n",
			wantFM:   content.Frontmatter{"title": "Hello", "tags": []any{"a", "b"}},
			wantBody: "# Body",
		},
		{
			name:     "crlf line endings",
			raw:      "---\r\ntitle: Hello\r\n---\r\nBody\r\n",
			wantFM:   content.Frontmatter{"title": "Hello"},
			wantBody: "Body",
		},
		{
			name:     "empty header",
			raw:      "---\n---\nBody",
			wantFM:   content.Frontmatter{},
			wantBody: "Body",
		},
		{
			name:     "header only",
			raw:      "---\ntitle: Hello\n---",
			wantFM:   content.Frontmatter{"title": "Hello"},
			wantBody: "",
		},
		{
			name:     "no header",
			raw:      "# Just markdown\n",
			wantFM:   content.Frontmatter{},
			wantBody: "# Just markdown",
			wantErr:  ErrNoFrontMatter,
		},
		{
			name:    "unterminated header",
			raw:     "---\ntitle: Hello\nbody without closing",
			wantErr: ErrInvalidFrontMatter,
		},
		{
			name:    "bad yaml",
			raw:     "---\ntitle: [unclosed\n---\nBody",
			wantErr: ErrInvalidFrontMatter,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, err := ParseFrontMatter([]byte(tt.raw))
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			} else {
				require.NoError(t, err)
			}
			if tt.wantFM != nil {
				assert.Equal(t, tt.wantFM, fm)
				assert.Equal(t, tt.wantBody, string(body))
			}
		})
	}
}

func TestDatesStayStrings(t *testing.T) {
	fm, _, err := ParseFrontMatter([]byte("---\npublishedAt: 2024-01-01\n---\n"))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", fm["publishedAt"])
}

func TestResolveSlug(t *testing.T) {
	assert.Equal(t, "explicit", ResolveSlug(content.Frontmatter{"slug": "explicit"}, "dir/other.md"))
	assert.Equal(t, "my-post", ResolveSlug(content.Frontmatter{}, "dir/my-post.md"))
	assert.Equal(t, "my-post", ResolveSlug(content.Frontmatter{"slug": "  "}, "dir/My-Post.mdx"))
	assert.Equal(t, "hello-world-", ResolveSlug(nil, "dir/Hello World!.md"))
}

func TestPrepare(t *testing.T) {
	f := content.ContentFile{
		Slug: "from-file",
		Type: content.CategoryHub,
		Frontmatter: content.Frontmatter{
			"date":      "2025-05-03",
			"updatedAt": "2025-06-01T10:00:00Z",
			"title":     "Kept",
		},
	}
	fm := Prepare(f)

	assert.Equal(t, "from-file", fm["slug"])
	assert.Equal(t, "hub", fm["category"])
	assert.Equal(t, time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC), fm["publishedAt"])
	assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), fm["updatedAt"])
	assert.Equal(t, "2025-05-03", fm["date"])
	assert.NotContains(t, f.Frontmatter, "slug")

	t.Run("blank values are filled", func(t *testing.T) {
		f := content.ContentFile{Slug: "from-file", Type: content.CategoryBlog,
			Frontmatter: content.Frontmatter{"slug": "", "category": nil}}
		fm := Prepare(f)
		assert.Equal(t, "from-file", fm["slug"])
		assert.Equal(t, "blog", fm["category"])
	})

	t.Run("mistyped values are kept for validation", func(t *testing.T) {
		f := content.ContentFile{Slug: "from-file", Type: content.CategoryBlog,
			Frontmatter: content.Frontmatter{"slug": 123, "category": []any{"blog"}}}
		fm := Prepare(f)
		assert.Equal(t, 123, fm["slug"])
		assert.Equal(t, []any{"blog"}, fm["category"])
	})

	t.Run("unparseable dates are left alone", func(t *testing.T) {
		fm := CoerceDates(content.Frontmatter{"publishedAt": "someday"})
		assert.Equal(t, "someday", fm["publishedAt"])
	})
}

func TestHashBytes(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		HashBytes(nil))
	assert.NotEqual(t, HashBytes([]byte("a")), HashBytes([]byte("b")))
}
