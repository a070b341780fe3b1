package content

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339,
	time.DateOnly,
	"2006-01-02 15:04",
	time.DateTime,
}

// ParseDate reads the date formats found in front matter. Values without a
// zone are taken as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
