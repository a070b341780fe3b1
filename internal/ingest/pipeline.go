package ingest

import (
	"cmp"
	"contentkit/internal/domain/content"
	"context"
	"errors"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"
)

type Warning struct {
	Path     string           `json:"path"`
	Category content.Category `json:"category"`
	Msg      string           `json:"message"`
}

// Failure is a file that could not be read or whose front matter could not
// be parsed. It still counts as an invalid file in reports.
type Failure struct {
	Path     string           `json:"path"`
	Category content.Category `json:"category"`
	Err      error            `json:"-"`
}

type Result struct {
	File    content.ContentFile
	Failure *Failure
	Warns   []Warning
}

type Batch struct {
	Files    []content.ContentFile
	Failures []Failure
	Warnings []Warning
}

// Ingest discovers, reads and parses every content file under dirs. Only
// context cancellation and directory read errors abort the run.
func Ingest(ctx context.Context, dirs []Dir) (Batch, error) {
	files, warns, err := Discover(dirs)
	if err != nil {
		return Batch{}, err
	}
	batch := ReadAll(ctx, files)
	batch.Warnings = append(warns, batch.Warnings...)
	return batch, ctx.Err()
}

// ReadAll parses files with one worker per CPU. Output is sorted by category
// order, then path, so runs are reproducible.
func ReadAll(ctx context.Context, files []SourceFile) Batch {
	workers := runtime.GOMAXPROCS(0)
	jobs := make(chan SourceFile)
	results := make(chan Result)

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sf := range jobs {
				results <- readOne(sf)
			}
		}()
	}

	go func() {
		defer func() {
			close(jobs)
			wg.Wait()
			close(results)
		}()
		for _, f := range files {
			select {
			case jobs <- f:
			case <-ctx.Done():
				return
			}
		}
	}()

	var out Batch
	for r := range results {
		out.Warnings = append(out.Warnings, r.Warns...)
		if r.Failure != nil {
			out.Failures = append(out.Failures, *r.Failure)
			continue
		}
		out.Files = append(out.Files, r.File)
	}

	slices.SortFunc(out.Files, func(a, b content.ContentFile) int {
		return cmp.Or(
			cmp.Compare(categoryRank(a.Type), categoryRank(b.Type)),
			strings.Compare(a.FilePath, b.FilePath),
		)
	})
	slices.SortFunc(out.Failures, func(a, b Failure) int {
		return strings.Compare(a.Path, b.Path)
	})
	slices.SortFunc(out.Warnings, func(a, b Warning) int {
		return strings.Compare(a.Path, b.Path)
	})
	return out
}

func readOne(sf SourceFile) Result {
	fail := func(err error) Result {
		return Result{Failure: &Failure{Path: sf.Path, Category: sf.Category, Err: err}}
	}
	st, err := os.Stat(sf.Path)
	if err != nil {
		return fail(err)
	}
	raw, err := os.ReadFile(sf.Path)
	if err != nil {
		return fail(err)
	}

	fm, body, err := ParseFrontMatter(raw)
	var warns []Warning
	switch {
	case errors.Is(err, ErrNoFrontMatter):
		warns = append(warns, Warning{Path: sf.Path, Category: sf.Category, Msg: "no front matter found"})
	case err != nil:
		return fail(err)
	}

	return Result{
		File: content.ContentFile{
			FilePath:     sf.Path,
			Slug:         ResolveSlug(fm, sf.Path),
			Type:         sf.Category,
			Frontmatter:  fm,
			Content:      string(body),
			LastModified: st.ModTime().UTC().Truncate(time.Second),
			ContentHash:  HashBytes(raw),
		},
		Warns: warns,
	}
}

// Dedupe keeps the first file per category and slug. Every file is still
// validated; only the index needs unique keys.
func Dedupe(files []content.ContentFile) ([]content.ContentFile, []Warning) {
	var warns []Warning
	type key struct {
		cat  content.Category
		slug string
	}
	seen := make(map[key]struct{}, len(files))
	filtered := make([]content.ContentFile, 0, len(files))
	for _, f := range files {
		k := key{f.Type, f.Slug}
		if _, ok := seen[k]; ok {
			warns = append(warns, Warning{Path: f.FilePath, Category: f.Type, Msg: "duplicate slug, skipped: " + f.Slug})
			continue
		}
		seen[k] = struct{}{}
		filtered = append(filtered, f)
	}
	return filtered, warns
}

func categoryRank(c content.Category) int {
	if i := slices.Index(content.Categories, c); i >= 0 {
		return i
	}
	return len(content.Categories)
}
