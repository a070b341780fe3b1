package schema

import (
	"contentkit/internal/domain/content"
	"regexp"
)

// Version changes whenever a rule below changes. Cached processing results
// are keyed on it.
const Version = "2"

var (
	slugRe           = regexp.MustCompile(`^[a-z0-9-]+$`)
	readingTimeRe    = regexp.MustCompile(`^\d+ min read$`)
	completionTimeRe = regexp.MustCompile(`^\d+\s+(minutes?|hours?|days?)$`)
	apiVersionRe     = regexp.MustCompile(`^v?\d+(\.\d+)*(-[a-z0-9-]+)?$`)
)

const slugMsg = "Slug must contain only lowercase letters, numbers, and hyphens"

var TwitterCard = Enum{Values: []string{
	string(content.TwitterSummary),
	string(content.TwitterSummaryLarge),
	string(content.TwitterApp),
	string(content.TwitterPlayer),
}}

var Difficulty = Enum{Values: []string{
	string(content.DifficultyBeginner),
	string(content.DifficultyIntermediate),
	string(content.DifficultyAdvanced),
}}

var ContentType = Enum{Values: content.CategoryStrings()}

var SEO = Object{Fields: []Field{
	{Name: "metaTitle", Type: String{Min: 10, Max: 60}, Optional: true},
	{Name: "metaDescription", Type: String{Min: 50, Max: 160}, Optional: true},
	{Name: "canonicalUrl", Type: String{URL: true}, Optional: true},
	{Name: "ogImage", Type: String{URL: true}, Optional: true},
	{Name: "twitterCard", Type: TwitterCard, Optional: true},
}}

var Base = Object{Fields: []Field{
	{Name: "title", Type: String{
		Min: 5, MinMsg: "Title must be at least 5 characters",
		Max: 100, MaxMsg: "Title must be less than 100 characters",
	}},
	{Name: "description", Type: String{
		Min: 20, MinMsg: "Description must be at least 20 characters",
		Max: 200, MaxMsg: "Description must be less than 200 characters",
	}},
	{
		Name:     "publishedAt",
		Type:     Date{InvalidMsg: "Published date must be a valid date"},
		Required: "Published date is required",
	},
	{Name: "updatedAt", Type: Date{}, Optional: true},
	{Name: "tags", Type: Array{
		Elem: String{},
		Min:  1, MinMsg: "At least one tag is required",
		Max: 10, MaxMsg: "Maximum 10 tags allowed",
	}},
	{Name: "author", Type: String{
		Min: 2, MinMsg: "Author name must be at least 2 characters",
		Max: 50, MaxMsg: "Author name must be less than 50 characters",
	}},
	{Name: "readingTime", Type: String{Patterns: []Pattern{
		{Re: readingTimeRe, Msg: "Reading time must be in format '5 min read'"},
	}}},
	{Name: "seo", Type: SEO, Optional: true},
}}

var slug = String{
	Min: 3, MinMsg: "Slug must be at least 3 characters",
	Max: 100, MaxMsg: "Slug must be less than 100 characters",
	Patterns: []Pattern{{Re: slugRe, Msg: slugMsg}},
}

var coverImage = String{URL: true, URLMsg: "Cover image must be a valid URL", AllowRootPath: true}

func tagged(c content.Category) Field {
	return Field{Name: "category", Type: Literal{Value: string(c)}}
}

var BlogPost = Base.Extend(
	tagged(content.CategoryBlog),
	Field{Name: "slug", Type: slug},
	Field{Name: "featured", Type: Bool{}, Optional: true},
	Field{Name: "excerpt", Type: String{
		Min: 50, MinMsg: "Excerpt must be at least 50 characters",
		Max: 300, MaxMsg: "Excerpt must be less than 300 characters",
	}, Optional: true},
	Field{Name: "blogCategory", Type: String{Min: 2, MinMsg: "Blog category must be at least 2 characters"}, Optional: true},
)

var Hub = Base.Extend(
	tagged(content.CategoryHub),
	Field{Name: "type", Type: Literal{Value: string(content.CategoryHub)}},
	Field{Name: "slug", Type: slug},
	Field{Name: "coverImage", Type: coverImage, Optional: true},
	Field{Name: "lastModified", Type: String{}, Optional: true},
	Field{Name: "date", Type: String{}},
)

var Spoke = Base.Extend(
	tagged(content.CategorySpoke),
	Field{Name: "type", Type: Literal{Value: string(content.CategorySpoke)}},
	Field{Name: "slug", Type: slug},
	Field{Name: "hubSlug", Type: String{Patterns: []Pattern{
		{Re: slugRe, Msg: "Hub slug must contain only lowercase letters, numbers, and hyphens"},
	}}, Optional: true},
	Field{Name: "spokeOrder", Type: Number{
		Int: true, IntMsg: "Spoke order must be an integer",
		Min: floatPtr(0), MinMsg: "Spoke order must be 0 or greater",
	}, Optional: true},
	Field{Name: "coverImage", Type: coverImage, Optional: true},
	Field{Name: "lastModified", Type: String{}, Optional: true},
	Field{Name: "date", Type: String{}},
)

var Guide = Base.Extend(
	tagged(content.CategoryGuide),
	Field{Name: "slug", Type: slug},
	Field{Name: "difficulty", Type: Difficulty, Optional: true},
	Field{Name: "completionTime", Type: String{Patterns: []Pattern{
		{Re: completionTimeRe, Msg: "Completion time must be in format '30 minutes' or '2 hours'"},
	}}, Optional: true},
	Field{Name: "prerequisites", Type: Array{
		Elem: String{},
		Max:  10, MaxMsg: "Maximum 10 prerequisites allowed",
	}, Optional: true},
	Field{Name: "objectives", Type: Array{
		Elem: String{},
		Min:  1, MinMsg: "At least one learning objective is required when objectives are provided",
		Max: 15, MaxMsg: "Maximum 15 learning objectives allowed",
	}, Optional: true},
)

var Documentation = Base.Extend(
	tagged(content.CategoryDocumentation),
	Field{Name: "slug", Type: slug},
	Field{Name: "section", Type: String{Min: 2, MinMsg: "Documentation section must be at least 2 characters"}, Optional: true},
	Field{Name: "apiVersion", Type: String{Patterns: []Pattern{
		{Re: apiVersionRe, Msg: "API version must be in format 'v1.2.3' or '1.2.3-beta'"},
	}}, Optional: true},
	Field{Name: "deprecated", Type: Bool{}, Optional: true},
)

var FAQ = Base.Extend(
	tagged(content.CategoryFAQ),
	Field{Name: "slug", Type: slug},
	Field{Name: "question", Type: String{
		Min: 10, MinMsg: "Question must be at least 10 characters",
		Max: 200, MaxMsg: "Question must be less than 200 characters",
	}},
	Field{Name: "answer", Type: String{
		Min: 20, MinMsg: "Answer must be at least 20 characters",
		Max: 2000, MaxMsg: "Answer must be less than 2000 characters",
	}},
	Field{Name: "faqCategory", Type: String{Min: 2, MinMsg: "FAQ category must be at least 2 characters"}, Optional: true},
	Field{Name: "priority", Type: Number{
		Int: true, IntMsg: "Priority must be an integer",
		Min: floatPtr(0), MinMsg: "Priority must be 0 or greater",
		Max: floatPtr(100), MaxMsg: "Priority must be 100 or less",
	}, Optional: true},
)

// AnyContent is the union over all categories, keyed on "category".
var AnyContent = Discriminated{
	Key: "category",
	Options: []Option{
		{Tag: string(content.CategoryBlog), Schema: BlogPost},
		{Tag: string(content.CategoryHub), Schema: Hub},
		{Tag: string(content.CategorySpoke), Schema: Spoke},
		{Tag: string(content.CategoryGuide), Schema: Guide},
		{Tag: string(content.CategoryDocumentation), Schema: Documentation},
		{Tag: string(content.CategoryFAQ), Schema: FAQ},
	},
}

func ForCategory(c content.Category) (Object, bool) {
	return AnyContent.Option(string(c))
}

// Required lists the keys every category record carries at minimum.
var Required = []string{"title", "description", "publishedAt", "tags", "author", "readingTime", "category", "slug"}
