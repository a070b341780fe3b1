// Package report aggregates per-file validation outcomes into per-category
// counts and renders them for people.
package report

import (
	"contentkit/internal/domain/content"
	domainerr "contentkit/internal/domain/errors"
	"contentkit/internal/validate"
	"fmt"
	"time"
)

type FileResult struct {
	File     string                 `json:"file"`
	Type     content.Category       `json:"type"`
	Valid    bool                   `json:"valid"`
	Summary  string                 `json:"summary,omitempty"`
	Errors   []domainerr.FieldError `json:"errors"`
	Warnings []string               `json:"warnings,omitempty"`
	Cached   bool                   `json:"cached,omitempty"`
}

// Notice is a non-fatal message about a directory or file.
type Notice struct {
	Path     string           `json:"path"`
	Category content.Category `json:"category,omitempty"`
	Message  string           `json:"message"`
}

type CategoryResult struct {
	Type         content.Category `json:"type"`
	Dir          string           `json:"dir,omitempty"`
	TotalFiles   int              `json:"totalFiles"`
	ValidFiles   int              `json:"validFiles"`
	InvalidFiles int              `json:"invalidFiles"`
	Errors       []FileResult     `json:"errors"`
	Files        []FileResult     `json:"-"`
}

type Report struct {
	RunID        string           `json:"runId,omitempty"`
	Mode         string           `json:"mode"`
	StartedAt    time.Time        `json:"startedAt"`
	Duration     time.Duration    `json:"duration"`
	Categories   []CategoryResult `json:"categories"`
	Notices      []Notice         `json:"notices"`
	UnknownTypes []string         `json:"unknownTypes,omitempty"`
	CacheHits    int              `json:"cacheHits"`
}

func New(mode string, startedAt time.Time) *Report {
	return &Report{
		Mode:       mode,
		StartedAt:  startedAt,
		Categories: []CategoryResult{},
		Notices:    []Notice{},
	}
}

// Section returns the entry for c, creating it after the existing ones.
func (r *Report) Section(c content.Category, dir string) *CategoryResult {
	for i := range r.Categories {
		if r.Categories[i].Type == c {
			return &r.Categories[i]
		}
	}
	r.Categories = append(r.Categories, CategoryResult{Type: c, Dir: dir, Errors: []FileResult{}})
	return &r.Categories[len(r.Categories)-1]
}

// Add counts f against its category. Invalid results get a summary when
// they have none.
func (r *Report) Add(f FileResult) {
	if f.Errors == nil {
		f.Errors = []domainerr.FieldError{}
	}
	sec := r.Section(f.Type, "")
	sec.TotalFiles++
	if f.Valid {
		sec.ValidFiles++
	} else {
		if f.Summary == "" {
			f.Summary = validate.GenerateErrorSummary(f.Errors)
		}
		sec.InvalidFiles++
		sec.Errors = append(sec.Errors, f)
	}
	if f.Cached {
		r.CacheHits++
	}
	sec.Files = append(sec.Files, f)
}

// AddFailure records a file that could not be read or parsed.
func (r *Report) AddFailure(path string, c content.Category, err error) {
	msg := fmt.Sprintf("Failed to process file: %v", err)
	r.Add(FileResult{
		File:    path,
		Type:    c,
		Summary: msg,
		Errors: []domainerr.FieldError{{
			Field:   "file",
			Message: msg,
			Code:    domainerr.CodeFile,
		}},
	})
}

func (r *Report) Notice(path string, c content.Category, msg string) {
	r.Notices = append(r.Notices, Notice{Path: path, Category: c, Message: msg})
}

func (r Report) Totals() (total, valid, invalid int) {
	for _, c := range r.Categories {
		total += c.TotalFiles
		valid += c.ValidFiles
		invalid += c.InvalidFiles
	}
	return total, valid, invalid
}

// ExitCode is 1 when any category has an invalid file.
func (r Report) ExitCode() int {
	for _, c := range r.Categories {
		if c.InvalidFiles > 0 {
			return 1
		}
	}
	return 0
}

// Percent rounds part/total to a whole percentage; an empty total is 0.
func Percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return (part*200 + total) / (2 * total)
}
