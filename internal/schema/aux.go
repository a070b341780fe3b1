package schema

var Frontmatter = Record{}

var ContentFile = Object{Fields: []Field{
	{Name: "filePath", Type: String{}},
	{Name: "slug", Type: String{Patterns: []Pattern{{Re: slugRe, Msg: slugMsg}}}},
	{Name: "type", Type: ContentType},
	{Name: "frontmatter", Type: Frontmatter},
	{Name: "content", Type: String{}},
	{Name: "lastModified", Type: Date{}},
}}

var ListItem = Object{Fields: []Field{
	{Name: "slug", Type: String{}},
	{Name: "title", Type: String{}},
	{Name: "description", Type: String{}},
	{Name: "type", Type: ContentType},
	{Name: "publishedAt", Type: Date{}},
	{Name: "tags", Type: Array{Elem: String{}}},
	{Name: "author", Type: String{}},
	{Name: "readingTime", Type: String{}},
	{Name: "coverImage", Type: String{URL: true}, Optional: true},
	{Name: "featured", Type: Bool{}, Optional: true},
}}

var ProcessedContent = Object{Fields: []Field{
	{Name: "slug", Type: String{}},
	{Name: "content", Type: String{}},
	{Name: "meta", Type: AnyContent},
	{Name: "type", Type: ContentType},
}}

var navLink = Object{Fields: []Field{
	{Name: "title", Type: String{}},
	{Name: "slug", Type: String{}},
	{Name: "type", Type: ContentType},
}}

var Navigation = Object{Fields: []Field{
	{Name: "previous", Type: navLink, Optional: true},
	{Name: "next", Type: navLink, Optional: true},
	{Name: "parent", Type: navLink, Optional: true},
	{Name: "related", Type: Array{Elem: navLink.Extend(
		Field{Name: "description", Type: String{}},
		Field{Name: "tags", Type: Array{Elem: String{}}},
	)}},
}}

var count = Number{Int: true, Min: floatPtr(0)}

var Stats = Object{Fields: []Field{
	{Name: "wordCount", Type: count},
	{Name: "readingMinutes", Type: Number{Min: floatPtr(0)}},
	{Name: "codeBlocks", Type: count},
	{Name: "images", Type: count},
	{Name: "externalLinks", Type: count},
	{Name: "freshnessScore", Type: Number{Min: floatPtr(0), Max: floatPtr(1)}},
}}

// TransformOptions is strict: unknown keys are reported.
var TransformOptions = Object{Strict: true, Fields: []Field{
	{Name: "enableGFM", Type: Bool{}, Optional: true},
	{Name: "enableRawHTML", Type: Bool{}, Optional: true},
	{Name: "generateTOC", Type: Bool{}, Optional: true},
	{Name: "enableSyntaxHighlighting", Type: Bool{}, Optional: true},
	{Name: "generateReadingTime", Type: Bool{}, Optional: true},
	{Name: "generateWordCount", Type: Bool{}, Optional: true},
	{Name: "optimizeImages", Type: Bool{}, Optional: true},
	{Name: "strictValidation", Type: Bool{}, Optional: true},
	{Name: "validateLinks", Type: Bool{}, Optional: true},
	{Name: "validateImages", Type: Bool{}, Optional: true},
}}
