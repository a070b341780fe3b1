package schema

import (
	"contentkit/internal/domain/content"
	"time"
)

// Decode builds the typed record for c from a map that already passed the
// category schema. The result shares no slices or maps with m.
func Decode(c content.Category, m map[string]any) content.AnyContent {
	base := decodeBase(m)
	switch c {
	case content.CategoryBlog:
		return content.BlogPost{
			BaseContent:  base,
			Featured:     boolPtr(m, "featured"),
			Excerpt:      str(m, "excerpt"),
			BlogCategory: str(m, "blogCategory"),
		}
	case content.CategoryHub:
		return content.HubContent{
			BaseContent:  base,
			Type:         content.Category(str(m, "type")),
			CoverImage:   str(m, "coverImage"),
			LastModified: strPtr(m, "lastModified"),
			Date:         str(m, "date"),
		}
	case content.CategorySpoke:
		return content.SpokeContent{
			BaseContent:  base,
			Type:         content.Category(str(m, "type")),
			HubSlug:      str(m, "hubSlug"),
			SpokeOrder:   intPtr(m, "spokeOrder"),
			CoverImage:   str(m, "coverImage"),
			LastModified: strPtr(m, "lastModified"),
			Date:         str(m, "date"),
		}
	case content.CategoryGuide:
		return content.GuideContent{
			BaseContent:    base,
			Difficulty:     content.Difficulty(str(m, "difficulty")),
			CompletionTime: str(m, "completionTime"),
			Prerequisites:  strs(m, "prerequisites"),
			Objectives:     strs(m, "objectives"),
		}
	case content.CategoryDocumentation:
		return content.DocumentationContent{
			BaseContent: base,
			Section:     str(m, "section"),
			APIVersion:  str(m, "apiVersion"),
			Deprecated:  boolPtr(m, "deprecated"),
		}
	case content.CategoryFAQ:
		return content.FAQContent{
			BaseContent: base,
			Question:    str(m, "question"),
			Answer:      str(m, "answer"),
			FAQCategory: str(m, "faqCategory"),
			Priority:    intPtr(m, "priority"),
		}
	}
	return nil
}

func decodeBase(m map[string]any) content.BaseContent {
	b := content.BaseContent{
		Category:    content.Category(str(m, "category")),
		Slug:        str(m, "slug"),
		Title:       str(m, "title"),
		Description: str(m, "description"),
		PublishedAt: date(m, "publishedAt"),
		UpdatedAt:   datePtr(m, "updatedAt"),
		Tags:        strs(m, "tags"),
		Author:      str(m, "author"),
		ReadingTime: str(m, "readingTime"),
	}
	if seo, ok := AsMap(m["seo"]); ok {
		b.SEO = &content.SEO{
			MetaTitle:       str(seo, "metaTitle"),
			MetaDescription: str(seo, "metaDescription"),
			CanonicalURL:    str(seo, "canonicalUrl"),
			OGImage:         str(seo, "ogImage"),
			TwitterCard:     content.TwitterCard(str(seo, "twitterCard")),
		}
	}
	return b
}

func DecodeContentFile(m map[string]any) content.ContentFile {
	fm, _ := AsMap(m["frontmatter"])
	return content.ContentFile{
		FilePath:     str(m, "filePath"),
		Slug:         str(m, "slug"),
		Type:         content.Category(str(m, "type")),
		Frontmatter:  content.Frontmatter(fm).Clone(),
		Content:      str(m, "content"),
		LastModified: date(m, "lastModified"),
	}
}

func DecodeListItem(m map[string]any) content.ListItem {
	return content.ListItem{
		Slug:        str(m, "slug"),
		Title:       str(m, "title"),
		Description: str(m, "description"),
		Type:        content.Category(str(m, "type")),
		PublishedAt: date(m, "publishedAt"),
		Tags:        strs(m, "tags"),
		Author:      str(m, "author"),
		ReadingTime: str(m, "readingTime"),
		CoverImage:  str(m, "coverImage"),
		Featured:    boolPtr(m, "featured"),
	}
}

func DecodeProcessedContent(m map[string]any) content.ProcessedContent {
	meta, _ := AsMap(m["meta"])
	cat := content.Category(str(meta, "category"))
	return content.ProcessedContent{
		Slug:    str(m, "slug"),
		Content: str(m, "content"),
		Meta:    Decode(cat, meta),
		Type:    content.Category(str(m, "type")),
	}
}

func DecodeNavigation(m map[string]any) content.Navigation {
	nav := content.Navigation{
		Previous: navLinkPtr(m, "previous"),
		Next:     navLinkPtr(m, "next"),
		Parent:   navLinkPtr(m, "parent"),
		Related:  []content.RelatedLink{},
	}
	items, _ := asSlice(m["related"])
	for _, item := range items {
		rm, _ := AsMap(item)
		nav.Related = append(nav.Related, content.RelatedLink{
			NavLink:     decodeNavLink(rm),
			Description: str(rm, "description"),
			Tags:        strs(rm, "tags"),
		})
	}
	return nav
}

func DecodeStats(m map[string]any) content.Stats {
	return content.Stats{
		WordCount:      int(num(m, "wordCount")),
		ReadingMinutes: num(m, "readingMinutes"),
		CodeBlocks:     int(num(m, "codeBlocks")),
		Images:         int(num(m, "images")),
		ExternalLinks:  int(num(m, "externalLinks")),
		FreshnessScore: num(m, "freshnessScore"),
	}
}

func navLinkPtr(m map[string]any, key string) *content.NavLink {
	lm, ok := AsMap(m[key])
	if !ok {
		return nil
	}
	l := decodeNavLink(lm)
	return &l
}

func decodeNavLink(m map[string]any) content.NavLink {
	return content.NavLink{
		Title: str(m, "title"),
		Slug:  str(m, "slug"),
		Type:  content.Category(str(m, "type")),
	}
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func strPtr(m map[string]any, key string) *string {
	s, ok := m[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func strs(m map[string]any, key string) []string {
	items, ok := asSlice(m[key])
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, _ := item.(string)
		out = append(out, s)
	}
	return out
}

func date(m map[string]any, key string) time.Time {
	switch t := m[key].(type) {
	case time.Time:
		return t
	case *time.Time:
		if t != nil {
			return *t
		}
	}
	return time.Time{}
}

func datePtr(m map[string]any, key string) *time.Time {
	if _, ok := m[key]; !ok {
		return nil
	}
	t := date(m, key)
	return &t
}

func boolPtr(m map[string]any, key string) *bool {
	b, ok := m[key].(bool)
	if !ok {
		return nil
	}
	return &b
}

func intPtr(m map[string]any, key string) *int {
	f, ok := AsNumber(m[key])
	if !ok {
		return nil
	}
	n := int(f)
	return &n
}

func num(m map[string]any, key string) float64 {
	f, _ := AsNumber(m[key])
	return f
}
