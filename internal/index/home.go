package index

import (
	"contentkit/internal/domain/content"
	"sort"
)

// Overview summarizes the index for status pages.
type Overview struct {
	Counts map[content.Category]int `json:"counts"`
	Total  int                      `json:"total"`
	Series []SeriesSummary          `json:"series"`
	Latest []Record                 `json:"latest"`
}

func (s *Store) Overview(latest int) (Overview, error) {
	counts, err := s.Count()
	if err != nil {
		return Overview{}, err
	}
	ov := Overview{Counts: counts, Series: []SeriesSummary{}}
	for _, n := range counts {
		ov.Total += n
	}

	hubs, err := s.ListAllSeriesNames()
	if err != nil {
		return Overview{}, err
	}
	for _, hub := range hubs {
		sum, err := s.GetSeriesSummary(hub)
		if err != nil {
			continue
		}
		ov.Series = append(ov.Series, *sum)
	}
	sort.SliceStable(ov.Series, func(i, j int) bool {
		return ov.Series[i].LatestPublished.After(ov.Series[j].LatestPublished)
	})

	if latest > 0 {
		ov.Latest, err = s.List(ListOptions{Size: latest})
		if err != nil {
			return Overview{}, err
		}
	}
	return ov, nil
}
