package report

import (
	"bufio"
	"fmt"
	"github.com/mattn/go-runewidth"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

type PrintOptions struct {
	Verbose bool
	Fix     bool
}

// FixHints are printed with --fix. Nothing is rewritten.
var FixHints = []string{
	"Add missing required fields (title, description, publishedAt, etc.)",
	"Fix slug format (lowercase, hyphens only)",
	"Ensure tags array is not empty",
	`Add proper reading time format ("X min read")`,
	"Validate date formats",
}

const rule = 50

// Print writes the human summary of r to w.
func Print(w io.Writer, r Report, opt PrintOptions) error {
	bw := bufio.NewWriter(w)
	p := func(format string, args ...any) { fmt.Fprintf(bw, format+"\n", args...) }

	p("Content Validation")
	p("%s", strings.Repeat("=", rule))

	for _, t := range r.UnknownTypes {
		p("Unknown content type: %s", t)
	}

	for _, c := range r.Categories {
		p("")
		p("Validating %s content...", strings.ToUpper(string(c.Type)))
		for _, n := range r.Notices {
			if n.Category == c.Type && n.Path == c.Dir {
				p("  ! %s: %s", n.Path, n.Message)
			}
		}
		if c.TotalFiles == 0 {
			continue
		}
		p("  Found %d files to validate", c.TotalFiles)
		for _, f := range c.Files {
			name := filepath.Base(f.File)
			switch {
			case f.Valid && opt.Verbose:
				p("  ok   %s", name)
			case !f.Valid:
				p("  FAIL %s", name)
				if opt.Verbose {
					p("       %s", indent(f.Summary, "       "))
				}
			}
		}
	}

	total, valid, invalid := r.Totals()
	p("")
	p("%s", strings.Repeat("=", rule))
	p("VALIDATION SUMMARY")
	p("%s", strings.Repeat("=", rule))
	p("Total files processed: %d", total)
	p("Valid files: %d (%d%%)", valid, Percent(valid, total))
	p("Invalid files: %d (%d%%)", invalid, Percent(invalid, total))
	if r.CacheHits > 0 {
		p("Reused from cache: %d", r.CacheHits)
	}
	p("")
	writeTable(bw, r)

	if invalid > 0 {
		p("")
		p("VALIDATION ERRORS:")
		p("%s", strings.Repeat("-", 30))
		for _, c := range r.Categories {
			for _, f := range c.Errors {
				p("")
				p("%s", f.File)
				p("   %s", indent(f.Summary, "   "))
			}
		}
		if opt.Fix {
			p("")
			p("FIX SUGGESTIONS:")
			p("%s", strings.Repeat("-", 30))
			p("Automatic fixing is not available. Common fixes:")
			for _, h := range FixHints {
				p("- %s", h)
			}
		}
		p("")
		p("Content validation failed. Please fix the errors above.")
	} else {
		p("")
		p("All content files are valid!")
	}
	return bw.Flush()
}

// writeTable prints one aligned row per category.
func writeTable(w io.Writer, r Report) {
	header := []string{"TYPE", "TOTAL", "VALID", "INVALID"}
	rows := [][]string{header}
	for _, c := range r.Categories {
		rows = append(rows, []string{
			string(c.Type),
			strconv.Itoa(c.TotalFiles),
			strconv.Itoa(c.ValidFiles),
			strconv.Itoa(c.InvalidFiles),
		})
	}
	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == 0 {
				cells[i] = runewidth.FillRight(cell, widths[i])
			} else {
				cells[i] = runewidth.FillLeft(cell, widths[i])
			}
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

func indent(s, pad string) string {
	return strings.ReplaceAll(s, "\n", "\n"+pad)
}
