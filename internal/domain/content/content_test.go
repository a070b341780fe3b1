package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeref(t *testing.T) {
	faq := FAQContent{
		BaseContent: BaseContent{Category: CategoryFAQ, Slug: "pmle-faq"},
		Question:    "What is the PMLE exam?",
	}
	assert.Equal(t, AnyContent(faq), Deref(&faq))
	assert.Equal(t, AnyContent(faq), Deref(faq))
	assert.Nil(t, Deref((*HubContent)(nil)))
	assert.Nil(t, Deref(nil))
}

func TestToFrontmatter(t *testing.T) {
	published := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g := GuideContent{
		BaseContent: BaseContent{
			Category:    CategoryGuide,
			Slug:        "test-guide",
			PublishedAt: published,
			Tags:        []string{"go"},
		},
		Prerequisites: []string{},
	}

	fm := ToFrontmatter(&g)
	require.NotNil(t, fm)
	assert.Equal(t, []string{}, fm["prerequisites"])
	assert.NotNil(t, fm["prerequisites"])
	assert.NotContains(t, fm, "objectives")
	assert.Equal(t, published, fm["publishedAt"])

	fm["tags"].([]string)[0] = "changed"
	assert.Equal(t, "go", g.Tags[0])

	assert.Nil(t, ToFrontmatter((*GuideContent)(nil)))
}
