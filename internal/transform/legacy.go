package transform

import (
	"contentkit/internal/domain/content"
	domainerr "contentkit/internal/domain/errors"
	"contentkit/internal/markdown"
	"contentkit/internal/schema"
	"contentkit/internal/validate"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// BodyKey is the raw-record key holding the markdown body, when supplied.
const BodyKey = "content"

type Transformer struct {
	clock Clock
	gfm   *markdown.Analyzer
	plain *markdown.Analyzer
}

type Option func(*Transformer)

func WithClock(c Clock) Option {
	return func(t *Transformer) {
		if c != nil {
			t.clock = c
		}
	}
}

func New(opts ...Option) *Transformer {
	t := &Transformer{
		clock: SystemClock(),
		gfm:   markdown.NewAnalyzer(true),
		plain: markdown.NewAnalyzer(false),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

var std = New()

// TransformLegacyContent uses the system clock.
func TransformLegacyContent(raw any, category, slug string) validate.ContentResult {
	return std.TransformLegacyContent(raw, category, slug)
}

func (t *Transformer) analyzer(gfm bool) *markdown.Analyzer {
	if gfm {
		return t.gfm
	}
	return t.plain
}

// Analyze runs the body analysis ProcessContent uses.
func (t *Transformer) Analyze(src []byte, gfm bool) markdown.Analysis {
	return t.analyzer(gfm).Analyze(src)
}

// TransformLegacyContent fills what older records leave out and validates
// the result against category. The record itself is never modified.
func (t *Transformer) TransformLegacyContent(raw any, category, slug string) (res validate.ContentResult) {
	defer func() {
		if rec := recover(); rec != nil {
			res = validate.ContentResult{Errors: []domainerr.FieldError{
				domainerr.Unknown(fmt.Sprintf("Unexpected transformation error: %v", rec), raw),
			}}
		}
	}()

	body := bodyOf(raw)
	analysis := t.gfm.Analyze([]byte(body))
	res, _ = t.upgrade(raw, category, slug, true, analysis)
	return res
}

// upgrade returns the validation result together with the list of fields it
// had to synthesize or convert. An empty list means the record was modern.
func (t *Transformer) upgrade(raw any, category, slug string, readingTime bool, analysis markdown.Analysis) (validate.ContentResult, []string) {
	m, isMap := schema.AsMap(schema.Normalize(raw))
	cat, known := content.ParseCategory(category)
	if !isMap || !known {
		return validate.ValidateContentByType(raw, category), nil
	}

	rec := content.Frontmatter(m).Clone()
	delete(rec, BodyKey)
	var notes []string
	note := func(field string) { notes = append(notes, field) }

	// discriminant and slug
	if cur, has := rec["category"]; !has {
		rec["category"] = string(cat)
		note("category")
	} else if s, isStr := cur.(string); isStr && s != string(cat) {
		if _, isTag := content.ParseCategory(s); !isTag {
			switch cat {
			case content.CategoryBlog:
				moveLegacyCategory(rec, "blogCategory", s)
			case content.CategoryFAQ:
				moveLegacyCategory(rec, "faqCategory", s)
			}
			rec["category"] = string(cat)
			note("category")
		}
	}
	if !rec.Has("slug") && slug != "" {
		rec["slug"] = slug
		note("slug")
	}
	if (cat == content.CategoryHub || cat == content.CategorySpoke) && !rec.Has("type") {
		rec["type"] = string(cat)
		note("type")
	}

	// string dates
	for _, key := range []string{"publishedAt", "updatedAt"} {
		if s, isStr := rec[key].(string); isStr {
			if ts, parsed := content.ParseDate(s); parsed {
				rec[key] = ts
				note(key)
			}
		}
	}
	if !rec.Has("updatedAt") {
		if s, isStr := rec["lastModified"].(string); isStr {
			if ts, parsed := content.ParseDate(s); parsed {
				rec["updatedAt"] = ts
				note("updatedAt")
			}
		}
	}

	// publish date
	if !rec.Has("publishedAt") {
		if s, isStr := rec["date"].(string); isStr {
			if ts, parsed := content.ParseDate(s); parsed {
				rec["publishedAt"] = ts
			} else {
				rec["publishedAt"] = s
			}
		} else {
			rec["publishedAt"] = t.clock.Now()
		}
		note("publishedAt")
	}
	if (cat == content.CategoryHub || cat == content.CategorySpoke) && !rec.Has("date") {
		if ts, isTime := rec["publishedAt"].(time.Time); isTime {
			rec["date"] = ts.Format(time.DateOnly)
			note("date")
		}
	}

	if s, isStr := rec["tags"].(string); isStr {
		rec["tags"] = splitTags(s)
		note("tags")
	}
	for _, key := range []string{"spokeOrder", "priority"} {
		if s, isStr := rec[key].(string); isStr {
			if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				rec[key] = n
				note(key)
			}
		}
	}

	// reading time
	if !rec.Has("readingTime") {
		if readingTime {
			rec["readingTime"] = formatReadingTime(markdown.ReadingMinutes(analysis.Words))
			note("readingTime")
		}
	} else if n, isNum := schema.AsNumber(rec["readingTime"]); isNum {
		rec["readingTime"] = formatReadingTime(int(math.Ceil(n)))
		note("readingTime")
	}

	return validate.ValidateContentByType(rec, category), notes
}

func moveLegacyCategory(rec content.Frontmatter, key, value string) {
	if !rec.Has(key) {
		rec[key] = value
	}
}

func splitTags(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// formatReadingTime never reports less than one minute.
func formatReadingTime(minutes int) string {
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

func bodyOf(raw any) string {
	m, isMap := schema.AsMap(raw)
	if !isMap {
		return ""
	}
	s, _ := m[BodyKey].(string)
	return s
}
