package markdown

import (
	"contentkit/internal/domain/content"
	"math"
	"time"
)

const WordsPerMinute = 200

// ReadingMinutes rounds up; an empty body reads in zero minutes.
func ReadingMinutes(words int) int {
	if words <= 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / WordsPerMinute))
}

// TOC keeps h2 through h4.
func (a Analysis) TOC() []content.Heading {
	var out []content.Heading
	for _, h := range a.Headings {
		if h.Level >= 2 && h.Level <= 4 {
			out = append(out, h)
		}
	}
	return out
}

func (a Analysis) ExternalLinks() int {
	n := 0
	for _, l := range a.Links {
		if l.External {
			n++
		}
	}
	return n
}

const (
	freshFor   = 30 * 24 * time.Hour
	staleAfter = 365 * 24 * time.Hour
)

// Freshness is 1 up to 30 days after the last update and decays linearly
// to 0 at one year.
func Freshness(lastTouched, now time.Time) float64 {
	if lastTouched.IsZero() {
		return 0
	}
	age := now.Sub(lastTouched)
	switch {
	case age <= freshFor:
		return 1
	case age >= staleAfter:
		return 0
	}
	return 1 - float64(age-freshFor)/float64(staleAfter-freshFor)
}

func (a Analysis) Stats(lastTouched, now time.Time) content.Stats {
	return content.Stats{
		WordCount:      a.Words,
		ReadingMinutes: float64(ReadingMinutes(a.Words)),
		CodeBlocks:     len(a.CodeBlocks),
		Images:         len(a.Images),
		ExternalLinks:  a.ExternalLinks(),
		FreshnessScore: Freshness(lastTouched, now),
	}
}
