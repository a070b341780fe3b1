package content

import (
	"time"
)

// Frontmatter is the raw, pre-validation metadata of a content item.
type Frontmatter map[string]any

func (f Frontmatter) Clone() Frontmatter {
	out := make(Frontmatter, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

func (f Frontmatter) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// String returns the value under key when it is a string.
func (f Frontmatter) String(key string) (string, bool) {
	s, ok := f[key].(string)
	return s, ok
}

type ContentFile struct {
	FilePath     string      `json:"filePath"`
	Slug         string      `json:"slug"`
	Type         Category    `json:"type"`
	Frontmatter  Frontmatter `json:"frontmatter"`
	Content      string      `json:"content"`
	LastModified time.Time   `json:"lastModified"`
	ContentHash  string      `json:"contentHash,omitempty"`
}

// ListItem is the projection used by index views.
type ListItem struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        Category  `json:"type"`
	PublishedAt time.Time `json:"publishedAt"`
	Tags        []string  `json:"tags"`
	Author      string    `json:"author"`
	ReadingTime string    `json:"readingTime"`
	CoverImage  string    `json:"coverImage,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
}

func NewListItem(c AnyContent) ListItem {
	b := c.Base()
	item := ListItem{
		Slug:        b.Slug,
		Title:       b.Title,
		Description: b.Description,
		Type:        c.ContentCategory(),
		PublishedAt: b.PublishedAt,
		Tags:        append([]string(nil), b.Tags...),
		Author:      b.Author,
		ReadingTime: b.ReadingTime,
	}
	switch v := c.(type) {
	case BlogPost:
		item.Featured = v.Featured
	case HubContent:
		item.CoverImage = v.CoverImage
	case SpokeContent:
		item.CoverImage = v.CoverImage
	}
	return item
}

type Heading struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Text  string `json:"text"`
}

type ProcessedContent struct {
	Slug    string     `json:"slug"`
	Content string     `json:"content"`
	Meta    AnyContent `json:"meta"`
	Type    Category   `json:"type"`
	TOC     []Heading  `json:"toc,omitempty"`
}

type NavLink struct {
	Title string   `json:"title"`
	Slug  string   `json:"slug"`
	Type  Category `json:"type"`
}

type RelatedLink struct {
	NavLink
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type Navigation struct {
	Previous *NavLink      `json:"previous,omitempty"`
	Next     *NavLink      `json:"next,omitempty"`
	Parent   *NavLink      `json:"parent,omitempty"`
	Related  []RelatedLink `json:"related"`
}

type Stats struct {
	WordCount      int     `json:"wordCount"`
	ReadingMinutes float64 `json:"readingMinutes"`
	CodeBlocks     int     `json:"codeBlocks"`
	Images         int     `json:"images"`
	ExternalLinks  int     `json:"externalLinks"`
	FreshnessScore float64 `json:"freshnessScore"`
}
