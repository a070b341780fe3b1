package index

import (
	"strings"
	"time"
)

type SeriesSummary struct {
	Hub             string
	Count           int
	LatestPublished time.Time
	FirstSlug       string
}

func (s *Store) GetSeriesSummary(hub string) (*SeriesSummary, error) {
	hub = strings.TrimSpace(hub)
	if hub == "" {
		return nil, ErrNotFound
	}
	spokes, err := s.ListSeries(hub, ListOptions{Size: 100})
	if err != nil {
		return nil, err
	}
	if len(spokes) == 0 {
		return nil, ErrNotFound
	}
	sum := &SeriesSummary{Hub: hub, Count: len(spokes), FirstSlug: spokes[0].Slug}
	for _, r := range spokes {
		if r.PublishedAt.After(sum.LatestPublished) {
			sum.LatestPublished = r.PublishedAt
		}
	}
	return sum, nil
}
