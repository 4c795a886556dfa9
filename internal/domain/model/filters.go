package model

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Sort keys accepted by the advanced search path. Sorting is always applied
// in-process after the payload is obtained; only genre, year and the adult
// flag are pushed into the upstream query.
const (
	SortByPopularity  = "popularity"
	SortByRating      = "rating"
	SortByReleaseDate = "release_date"
	SortByTitle       = "title"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// SearchFilters captures the client-supplied filter set for advanced search.
// The zero value means "no filtering".
type SearchFilters struct {
	GenreIDs     []int64
	MinRating    float64
	MinVotes     int64
	Year         int
	IncludeAdult bool
	SortBy       string
	SortOrder    string
}

// CanonicalQuery serializes the filter set deterministically for cache key
// derivation: sorted parameter names, query-escaped values. Two filter sets
// with identical contents always produce byte-identical output regardless
// of how they were assembled.
func (f SearchFilters) CanonicalQuery() string {
	params := map[string]string{}

	if len(f.GenreIDs) > 0 {
		ids := make([]int64, len(f.GenreIDs))
		copy(ids, f.GenreIDs)
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = strconv.FormatInt(id, 10)
		}
		params["genres"] = strings.Join(parts, ",")
	}
	if f.MinRating > 0 {
		params["min_rating"] = strconv.FormatFloat(f.MinRating, 'f', -1, 64)
	}
	if f.MinVotes > 0 {
		params["min_votes"] = strconv.FormatInt(f.MinVotes, 10)
	}
	if f.Year > 0 {
		params["year"] = strconv.Itoa(f.Year)
	}
	if f.IncludeAdult {
		params["include_adult"] = "true"
	}
	if f.SortBy != "" {
		params["sort_by"] = f.SortBy
	}
	if f.SortOrder != "" {
		params["sort_order"] = f.SortOrder
	}

	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}

// Apply filters and sorts results in place according to the client-side
// portion of the filter set (rating and vote thresholds, composite sort).
func (f SearchFilters) Apply(results []Content) []Content {
	filtered := results[:0]
	for _, c := range results {
		if f.MinRating > 0 && c.VoteAverage < f.MinRating {
			continue
		}
		if f.MinVotes > 0 && c.VoteCount < f.MinVotes {
			continue
		}
		filtered = append(filtered, c)
	}

	if f.SortBy != "" {
		desc := f.SortOrder != SortOrderAsc
		sort.SliceStable(filtered, func(i, j int) bool {
			a, b := &filtered[i], &filtered[j]
			if desc {
				a, b = b, a
			}
			return a.lessBy(f.SortBy, b)
		})
	}

	return filtered
}

func (c *Content) lessBy(key string, other *Content) bool {
	switch key {
	case SortByRating:
		return c.VoteAverage < other.VoteAverage
	case SortByReleaseDate:
		return c.ReleaseDate < other.ReleaseDate
	case SortByTitle:
		return strings.ToLower(c.Title) < strings.ToLower(other.Title)
	default:
		return c.Popularity < other.Popularity
	}
}

// IsValidSortBy reports whether the key is one of the accepted sort keys.
func IsValidSortBy(key string) bool {
	switch key {
	case "", SortByPopularity, SortByRating, SortByReleaseDate, SortByTitle:
		return true
	default:
		return false
	}
}
