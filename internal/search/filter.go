// Package search filters and orders the in-memory center directory.
package search

import (
	"net/url"
	"sort"
	"strings"

	"inscovia/internal/data/entity"
	"inscovia/pkg/utils"
)

const (
	SortNone   = ""
	SortRating = "rating"
	SortName   = "name"
)

// Query holds the directory filters. Empty fields are inactive.
type Query struct {
	Category     string
	State        string
	City         string
	TeachingMode string
	MinRating    *float64
	PriceRange   string
	Search       string
	Sort         string
}

// ParseQuery reads the listing query string. Malformed values never fail the request:
// an unparseable rating drops that filter, unknown enum values are kept and match nothing.
func ParseQuery(values url.Values) Query {
	q := Query{
		Category:     strings.TrimSpace(values.Get("category")),
		State:        values.Get("state"),
		City:         values.Get("city"),
		TeachingMode: strings.TrimSpace(values.Get("teachingMode")),
		MinRating:    utils.ParseFloat(values.Get("rating")),
		PriceRange:   strings.TrimSpace(values.Get("priceRange")),
		Search:       values.Get("q"),
	}

	switch s := strings.ToLower(values.Get("sort")); s {
	case SortRating, SortName:
		q.Sort = s
	}

	return q
}

// IsEmpty reports whether no filter is active
func (q Query) IsEmpty() bool {
	return q.Category == "" && q.State == "" && q.City == "" && q.TeachingMode == "" &&
		q.MinRating == nil && q.PriceRange == "" && strings.TrimSpace(q.Search) == ""
}

type predicate func(c *entity.Center) bool

func never(*entity.Center) bool { return false }

// stages builds the active predicates in their fixed order:
// category, state, city, teaching mode, rating, price range, search
func (q Query) stages() []predicate {
	var stages []predicate

	if q.Category != "" {
		cat, ok := entity.ParseCategory(q.Category)
		if !ok {
			stages = append(stages, never)
		} else {
			stages = append(stages, func(c *entity.Center) bool { return c.HasCategory(cat) })
		}
	}

	if q.State != "" {
		state := q.State
		stages = append(stages, func(c *entity.Center) bool { return c.State == state })
	}

	if q.City != "" {
		city := q.City
		stages = append(stages, func(c *entity.Center) bool { return c.City == city })
	}

	if q.TeachingMode != "" {
		mode, ok := entity.ParseTeachingMode(q.TeachingMode)
		if !ok {
			stages = append(stages, never)
		} else {
			stages = append(stages, func(c *entity.Center) bool { return c.TeachingMode == mode })
		}
	}

	if q.MinRating != nil {
		minRating := *q.MinRating
		stages = append(stages, func(c *entity.Center) bool { return c.Rating >= minRating })
	}

	if q.PriceRange != "" {
		bucket, ok := ParsePriceRange(q.PriceRange)
		if !ok {
			stages = append(stages, never)
		} else {
			stages = append(stages, func(c *entity.Center) bool {
				fee, hasFee := c.MinFee()
				return hasFee && bucket.Contains(fee)
			})
		}
	}

	if strings.TrimSpace(q.Search) != "" {
		query := q.Search
		stages = append(stages, func(c *entity.Center) bool {
			return MatchText(SearchableText(c), query)
		})
	}

	return stages
}

// Filter returns the centers matching every active filter, in their original order
// unless q.Sort asks otherwise. The input slice is not modified.
func Filter(centers []*entity.Center, q Query) []*entity.Center {
	result := make([]*entity.Center, 0, len(centers))
	result = append(result, centers...)

	for _, keep := range q.stages() {
		kept := result[:0:0]
		for _, c := range result {
			if keep(c) {
				kept = append(kept, c)
			}
		}
		result = kept
	}

	Sort(result, q.Sort)
	return result
}

// Sort orders centers in place. Ties keep their relative order.
func Sort(centers []*entity.Center, by string) {
	switch by {
	case SortRating:
		sort.SliceStable(centers, func(i, j int) bool {
			return centers[i].Rating > centers[j].Rating
		})
	case SortName:
		sort.SliceStable(centers, func(i, j int) bool {
			return strings.ToLower(centers[i].Name) < strings.ToLower(centers[j].Name)
		})
	}
}
