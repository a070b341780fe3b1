package content

import (
	"time"
)

type SEO struct {
	MetaTitle       string      `json:"metaTitle,omitempty" yaml:"metaTitle,omitempty"`
	MetaDescription string      `json:"metaDescription,omitempty" yaml:"metaDescription,omitempty"`
	CanonicalURL    string      `json:"canonicalUrl,omitempty" yaml:"canonicalUrl,omitempty"`
	OGImage         string      `json:"ogImage,omitempty" yaml:"ogImage,omitempty"`
	TwitterCard     TwitterCard `json:"twitterCard,omitempty" yaml:"twitterCard,omitempty"`
}

// BaseContent holds the fields every category shares. Category and Slug
// live here too so that callers can read them without a type switch.
type BaseContent struct {
	Category    Category   `json:"category"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	PublishedAt time.Time  `json:"publishedAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	Tags        []string   `json:"tags"`
	Author      string     `json:"author"`
	ReadingTime string     `json:"readingTime"`
	SEO         *SEO       `json:"seo,omitempty"`
}

// AnyContent is implemented by the six category records only.
type AnyContent interface {
	ContentCategory() Category
	Base() BaseContent
	isContent()
}

type BlogPost struct {
	BaseContent
	Featured     *bool  `json:"featured,omitempty"`
	Excerpt      string `json:"excerpt,omitempty"`
	BlogCategory string `json:"blogCategory,omitempty"`
}

type HubContent struct {
	BaseContent
	Type         Category `json:"type"`
	CoverImage   string   `json:"coverImage,omitempty"`
	LastModified *string  `json:"lastModified,omitempty"`
	Date         string   `json:"date"`
}

type SpokeContent struct {
	BaseContent
	Type         Category `json:"type"`
	HubSlug      string   `json:"hubSlug,omitempty"`
	SpokeOrder   *int     `json:"spokeOrder,omitempty"`
	CoverImage   string   `json:"coverImage,omitempty"`
	LastModified *string  `json:"lastModified,omitempty"`
	Date         string   `json:"date"`
}

type GuideContent struct {
	BaseContent
	Difficulty     Difficulty `json:"difficulty,omitempty"`
	CompletionTime string     `json:"completionTime,omitempty"`
	Prerequisites  []string   `json:"prerequisites,omitempty"`
	Objectives     []string   `json:"objectives,omitempty"`
}

type DocumentationContent struct {
	BaseContent
	Section    string `json:"section,omitempty"`
	APIVersion string `json:"apiVersion,omitempty"`
	Deprecated *bool  `json:"deprecated,omitempty"`
}

type FAQContent struct {
	BaseContent
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	FAQCategory string `json:"faqCategory,omitempty"`
	Priority    *int   `json:"priority,omitempty"`
}

func (BlogPost) ContentCategory() Category             { return CategoryBlog }
func (HubContent) ContentCategory() Category           { return CategoryHub }
func (SpokeContent) ContentCategory() Category         { return CategorySpoke }
func (GuideContent) ContentCategory() Category         { return CategoryGuide }
func (DocumentationContent) ContentCategory() Category { return CategoryDocumentation }
func (FAQContent) ContentCategory() Category           { return CategoryFAQ }

func (b BaseContent) Base() BaseContent { return b }

func (BlogPost) isContent()             {}
func (HubContent) isContent()           {}
func (SpokeContent) isContent()         {}
func (GuideContent) isContent()         {}
func (DocumentationContent) isContent() {}
func (FAQContent) isContent()           {}

// LastTouched is the update time when present, else the publish time.
func (b BaseContent) LastTouched() time.Time {
	if b.UpdatedAt != nil && !b.UpdatedAt.IsZero() {
		return *b.UpdatedAt
	}
	return b.PublishedAt
}

// ToFrontmatter turns a validated record back into the open key-value
// shape accepted by the validators. Absent optional fields stay absent.
func ToFrontmatter(c AnyContent) Frontmatter {
	if c = Deref(c); c == nil {
		return nil
	}
	b := c.Base()
	fm := baseFrontmatter(b)

	switch v := c.(type) {
	case BlogPost:
		putBool(fm, "featured", v.Featured)
		putString(fm, "excerpt", v.Excerpt)
		putString(fm, "blogCategory", v.BlogCategory)
	case HubContent:
		fm["type"] = string(v.Type)
		putString(fm, "coverImage", v.CoverImage)
		if v.LastModified != nil {
			fm["lastModified"] = *v.LastModified
		}
		fm["date"] = v.Date
	case SpokeContent:
		fm["type"] = string(v.Type)
		putString(fm, "hubSlug", v.HubSlug)
		if v.SpokeOrder != nil {
			fm["spokeOrder"] = *v.SpokeOrder
		}
		putString(fm, "coverImage", v.CoverImage)
		if v.LastModified != nil {
			fm["lastModified"] = *v.LastModified
		}
		fm["date"] = v.Date
	case GuideContent:
		putString(fm, "difficulty", string(v.Difficulty))
		putString(fm, "completionTime", v.CompletionTime)
		if v.Prerequisites != nil {
			fm["prerequisites"] = cloneStrings(v.Prerequisites)
		}
		if v.Objectives != nil {
			fm["objectives"] = cloneStrings(v.Objectives)
		}
	case DocumentationContent:
		putString(fm, "section", v.Section)
		putString(fm, "apiVersion", v.APIVersion)
		putBool(fm, "deprecated", v.Deprecated)
	case FAQContent:
		fm["question"] = v.Question
		fm["answer"] = v.Answer
		putString(fm, "faqCategory", v.FAQCategory)
		if v.Priority != nil {
			fm["priority"] = *v.Priority
		}
	}
	return fm
}

// Deref returns the record a pointer variant points to, or nil for a nil
// pointer. Value variants are returned as they are.
func Deref(c AnyContent) AnyContent {
	switch v := c.(type) {
	case *BlogPost:
		return deref(v)
	case *HubContent:
		return deref(v)
	case *SpokeContent:
		return deref(v)
	case *GuideContent:
		return deref(v)
	case *DocumentationContent:
		return deref(v)
	case *FAQContent:
		return deref(v)
	}
	return c
}

func deref[T AnyContent](p *T) AnyContent {
	if p == nil {
		return nil
	}
	return *p
}

// cloneStrings keeps an empty list empty rather than nil.
func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func baseFrontmatter(b BaseContent) Frontmatter {
	fm := Frontmatter{
		"category":    string(b.Category),
		"slug":        b.Slug,
		"title":       b.Title,
		"description": b.Description,
		"publishedAt": b.PublishedAt,
		"tags":        cloneStrings(b.Tags),
		"author":      b.Author,
		"readingTime": b.ReadingTime,
	}
	if b.UpdatedAt != nil {
		fm["updatedAt"] = *b.UpdatedAt
	}
	if b.SEO != nil {
		seo := map[string]any{}
		putString(seo, "metaTitle", b.SEO.MetaTitle)
		putString(seo, "metaDescription", b.SEO.MetaDescription)
		putString(seo, "canonicalUrl", b.SEO.CanonicalURL)
		putString(seo, "ogImage", b.SEO.OGImage)
		putString(seo, "twitterCard", string(b.SEO.TwitterCard))
		fm["seo"] = seo
	}
	return fm
}

func putString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func putBool(m map[string]any, key string, v *bool) {
	if v != nil {
		m[key] = *v
	}
}
