package app

import (
	"contentkit/internal/domain/content"
	"contentkit/internal/domain/site"
	"contentkit/internal/index"
)

type RouteBuilder struct {
	Index *index.Store
}

func (rb *RouteBuilder) BuildItemRoutes(records []index.Record) []site.Route {
	routes := make([]site.Route, 0, len(records))
	for _, r := range records {
		routes = append(routes, site.Route{
			Kind:     site.RouteItem,
			Category: r.Type,
			Slug:     r.Slug,
		})
	}
	return routes
}

func (rb *RouteBuilder) BuildSeriesRoutes() ([]site.Route, error) {
	hubs, err := rb.Index.ListAllSeriesNames()
	if err != nil {
		return nil, err
	}
	var routes []site.Route
	for _, hub := range hubs {
		routes = append(routes, site.Route{Kind: site.RouteSeries, Key: hub})
	}
	return routes, nil
}

// BuildTagRoutes emits one tag page per category that has tagged items.
func (rb *RouteBuilder) BuildTagRoutes() ([]site.Route, error) {
	tags, err := rb.Index.ListAllTags()
	if err != nil {
		return nil, err
	}
	var routes []site.Route
	for _, tag := range tags {
		records, err := rb.Index.ListByTag(tag, index.ListOptions{Size: 100})
		if err != nil {
			return nil, err
		}
		seen := make(map[content.Category]struct{})
		for _, r := range records {
			if _, ok := seen[r.Type]; ok {
				continue
			}
			seen[r.Type] = struct{}{}
			routes = append(routes, site.Route{Kind: site.RouteTag, Category: r.Type, Key: tag})
		}
	}
	return routes, nil
}

// BuildAll lists every route the index can serve.
func (rb *RouteBuilder) BuildAll() ([]site.Route, error) {
	var routes []site.Route
	for _, cat := range content.Categories {
		records, err := all(func(opt index.ListOptions) ([]index.Record, error) {
			return rb.Index.ListByCategory(cat, opt)
		})
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			continue
		}
		routes = append(routes, site.Route{Kind: site.RouteCategory, Category: cat})
		routes = append(routes, rb.BuildItemRoutes(records)...)
	}
	series, err := rb.BuildSeriesRoutes()
	if err != nil {
		return nil, err
	}
	tags, err := rb.BuildTagRoutes()
	if err != nil {
		return nil, err
	}
	return append(append(routes, series...), tags...), nil
}

// all pages through list until it comes back short.
func all(list func(index.ListOptions) ([]index.Record, error)) ([]index.Record, error) {
	const size = 100
	var out []index.Record
	for page := 1; ; page++ {
		batch, err := list(index.ListOptions{Page: page, Size: size})
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
		if len(batch) < size {
			return out, nil
		}
	}
}
