package transform

import (
	"contentkit/internal/domain/content"
	domainerr "contentkit/internal/domain/errors"
	"contentkit/internal/markdown"
	"contentkit/internal/validate"
	"fmt"
	"time"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type Warning struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// LegacyWarning marks a record that needed synthesis to validate.
var LegacyWarning = Warning{
	Field:    "schema",
	Message:  "Content was transformed from legacy format",
	Severity: SeverityMedium,
}

type Metadata struct {
	ProcessingTime     time.Duration `json:"processingTime"`
	WordCount          int           `json:"wordCount"`
	ReadingTimeMinutes int           `json:"readingTimeMinutes"`
	ImageCount         int           `json:"imageCount"`
	LinkCount          int           `json:"linkCount"`
}

type ProcessingResult struct {
	Success  bool                      `json:"success"`
	Content  *content.ProcessedContent `json:"content,omitempty"`
	Errors   []domainerr.FieldError    `json:"errors"`
	Warnings []Warning                 `json:"warnings"`
	Metadata Metadata                  `json:"metadata"`
	// Transformed lists the fields that were synthesized or converted.
	Transformed []string `json:"transformed,omitempty"`
}

// ProcessContent uses the system clock.
func ProcessContent(raw any, category, slug string, opts ...PartialOptions) ProcessingResult {
	return std.ProcessContent(raw, category, slug, opts...)
}

// ProcessContent merges opts over DefaultOptions in order; options a caller
// leaves unset keep their defaults.
func (t *Transformer) ProcessContent(raw any, category, slug string, opts ...PartialOptions) ProcessingResult {
	o := DefaultOptions()
	for _, p := range opts {
		o = o.Merge(p)
	}
	return t.process(raw, category, slug, o)
}

func (t *Transformer) process(raw any, category, slug string, o Options) (out ProcessingResult) {
	start := time.Now()
	out = ProcessingResult{Errors: []domainerr.FieldError{}, Warnings: []Warning{}}
	defer func() {
		if rec := recover(); rec != nil {
			out = ProcessingResult{
				Errors:   []domainerr.FieldError{domainerr.Unknown(fmt.Sprintf("Unexpected processing error: %v", rec), raw)},
				Warnings: []Warning{},
			}
		}
		out.Metadata.ProcessingTime = time.Since(start)
	}()

	body := bodyOf(raw)
	analysis := t.analyzer(o.EnableGFM).Analyze([]byte(body))

	out.Metadata.ReadingTimeMinutes = markdown.ReadingMinutes(analysis.Words)
	out.Metadata.ImageCount = len(analysis.Images)
	out.Metadata.LinkCount = len(analysis.Links)
	if o.GenerateWordCount {
		out.Metadata.WordCount = analysis.Words
	}

	var res validate.ContentResult
	var notes []string
	if o.StrictValidation {
		res = validate.ValidateContentByType(raw, category)
	} else {
		res, notes = t.upgrade(raw, category, slug, o.GenerateReadingTime, analysis)
	}
	if !res.Valid {
		out.Errors = res.Errors
		return out
	}

	out.Success = true
	out.Transformed = notes
	if len(notes) > 0 {
		out.Warnings = append(out.Warnings, LegacyWarning)
	}
	if o.ValidateLinks {
		for _, l := range analysis.Links {
			if l.Href == "" || l.Href == "#" {
				out.Warnings = append(out.Warnings, Warning{
					Field:    BodyKey,
					Message:  "Link has an empty destination: " + l.Text,
					Severity: SeverityLow,
				})
			}
		}
	}
	if o.ValidateImages {
		for _, img := range analysis.Images {
			if img.Alt == "" {
				out.Warnings = append(out.Warnings, Warning{
					Field:    BodyKey,
					Message:  "Image is missing alt text: " + img.Src,
					Severity: SeverityLow,
				})
			}
		}
	}

	pc := &content.ProcessedContent{
		Slug:    res.Data.Base().Slug,
		Content: body,
		Meta:    res.Data,
		Type:    res.Data.ContentCategory(),
	}
	if o.GenerateTOC {
		pc.TOC = analysis.TOC()
	}
	out.Content = pc
	return out
}

// ProcessFile processes an ingested file with fully resolved options. Slug
// and category come from the file's location when its front matter omits
// them; that alone does not count as legacy input.
func (t *Transformer) ProcessFile(f content.ContentFile, o Options) ProcessingResult {
	fm := f.Frontmatter.Clone()
	if !fm.Has("slug") {
		fm["slug"] = f.Slug
	}
	if !fm.Has("category") {
		fm["category"] = string(f.Type)
	}
	fm[BodyKey] = f.Content
	return t.process(fm, string(f.Type), f.Slug, o)
}
