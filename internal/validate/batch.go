package validate

import (
	"contentkit/internal/domain/content"
	domainerr "contentkit/internal/domain/errors"
	"golang.org/x/sync/errgroup"
	"runtime"
)

type IndexedErrors struct {
	Index  int                    `json:"index"`
	Errors []domainerr.FieldError `json:"errors"`
}

type BatchResult struct {
	Valid      int                  `json:"valid"`
	Invalid    int                  `json:"invalid"`
	Results    []ContentResult      `json:"results"`
	ValidItems []content.AnyContent `json:"validItems"`
	Errors     []IndexedErrors      `json:"errors"`
}

// ValidateContentBatch validates every item independently. Items are
// checked in parallel; every slice in the result follows input order.
func ValidateContentBatch(items []any) BatchResult {
	results := make([]ContentResult, len(items))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, item := range items {
		g.Go(func() error {
			results[i] = ValidateContent(item)
			return nil
		})
	}
	_ = g.Wait()

	return collect(results)
}

func collect(results []ContentResult) BatchResult {
	out := BatchResult{
		Results:    results,
		ValidItems: []content.AnyContent{},
		Errors:     []IndexedErrors{},
	}
	for i, r := range results {
		if r.Valid {
			out.Valid++
			out.ValidItems = append(out.ValidItems, r.Data)
			continue
		}
		out.Invalid++
		out.Errors = append(out.Errors, IndexedErrors{Index: i, Errors: r.Errors})
	}
	return out
}
