package app

import (
	"cmp"
	"contentkit/internal/domain/content"
	"contentkit/internal/index"
	"errors"
	"slices"
	"strings"
)

// DefaultRelated caps the related list when the caller passes zero.
const DefaultRelated = 3

type Navigator struct {
	Index *index.Store
}

// Navigation links ref to its neighbours. Spokes of a hub move through the
// hub's series and link the hub as parent. Everything else moves through its
// category with previous pointing at the older item.
func (n *Navigator) Navigation(ref index.Ref, related int) (content.Navigation, error) {
	self, err := n.Index.Get(ref)
	if err != nil {
		return content.Navigation{}, err
	}
	nav := content.Navigation{Related: []content.RelatedLink{}}

	var siblings []index.Record
	if self.Type == content.CategorySpoke && self.HubSlug != "" {
		siblings, err = all(func(opt index.ListOptions) ([]index.Record, error) {
			return n.Index.ListSeries(self.HubSlug, opt)
		})
		if err != nil {
			return nav, err
		}
		hub, err := n.Index.Get(index.Ref{Category: content.CategoryHub, Slug: self.HubSlug})
		switch {
		case err == nil:
			nav.Parent = link(hub)
		case !errors.Is(err, index.ErrNotFound):
			return nav, err
		}
		nav.Previous, nav.Next = neighbours(siblings, ref, false)
	} else {
		siblings, err = all(func(opt index.ListOptions) ([]index.Record, error) {
			return n.Index.ListByCategory(self.Type, opt)
		})
		if err != nil {
			return nav, err
		}
		nav.Previous, nav.Next = neighbours(siblings, ref, true)
	}

	if related <= 0 {
		related = DefaultRelated
	}
	nav.Related, err = n.related(self, related)
	return nav, err
}

// neighbours finds ref in list. With newestFirst the list runs backwards in
// time, so previous is the following entry.
func neighbours(list []index.Record, ref index.Ref, newestFirst bool) (prev, next *content.NavLink) {
	i := slices.IndexFunc(list, func(r index.Record) bool { return r.Ref() == ref })
	if i < 0 {
		return nil, nil
	}
	before, after := i-1, i+1
	if newestFirst {
		before, after = after, before
	}
	if before >= 0 && before < len(list) {
		prev = link(list[before])
	}
	if after >= 0 && after < len(list) {
		next = link(list[after])
	}
	return prev, next
}

type candidate struct {
	rec    index.Record
	shared int
}

// related ranks other records by the number of tags shared with self, then
// by recency.
func (n *Navigator) related(self index.Record, limit int) ([]content.RelatedLink, error) {
	byRef := make(map[index.Ref]*candidate)
	seenTag := make(map[string]struct{}, len(self.Tags))
	for _, tag := range self.Tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if _, dup := seenTag[tag]; dup || tag == "" {
			continue
		}
		seenTag[tag] = struct{}{}
		records, err := all(func(opt index.ListOptions) ([]index.Record, error) {
			return n.Index.ListByTag(tag, opt)
		})
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			if r.Ref() == self.Ref() {
				continue
			}
			c, ok := byRef[r.Ref()]
			if !ok {
				c = &candidate{rec: r}
				byRef[r.Ref()] = c
			}
			c.shared++
		}
	}

	cands := make([]*candidate, 0, len(byRef))
	for _, c := range byRef {
		cands = append(cands, c)
	}
	slices.SortFunc(cands, func(a, b *candidate) int {
		return cmp.Or(
			cmp.Compare(b.shared, a.shared),
			b.rec.PublishedAt.Compare(a.rec.PublishedAt),
			cmp.Compare(a.rec.Slug, b.rec.Slug),
		)
	})

	out := []content.RelatedLink{}
	for _, c := range cands {
		if len(out) == limit {
			break
		}
		out = append(out, content.RelatedLink{
			NavLink:     *link(c.rec),
			Description: c.rec.Description,
			Tags:        append([]string(nil), c.rec.Tags...),
		})
	}
	return out, nil
}

func link(r index.Record) *content.NavLink {
	return &content.NavLink{Title: r.Title, Slug: r.Slug, Type: r.Type}
}
