package cache

import "time"

// Category tags a cache entry with the kind of data it holds. Each
// category owns a TTL: the more semantically stable the data, the longer
// it lives (genre lists change rarely, search results constantly).
type Category string

const (
	CategoryTrending          Category = "trending"
	CategoryPopular           Category = "popular"
	CategoryTopRated          Category = "top_rated"
	CategoryContentDetails    Category = "content_details"
	CategoryCredits           Category = "credits"
	CategorySimilar           Category = "similar"
	CategoryRecommendations   Category = "recommendations"
	CategorySearchResults     Category = "search_results"
	CategorySearchSuggestions Category = "search_suggestions"
	CategoryGenres            Category = "genres"
	CategoryStreamSources     Category = "stream_sources"
)

// Policy maps categories to TTLs. It is built once at startup and never
// mutated afterwards.
type Policy struct {
	Trending          time.Duration
	Popular           time.Duration
	TopRated          time.Duration
	ContentDetails    time.Duration
	Credits           time.Duration
	Similar           time.Duration
	Recommendations   time.Duration
	SearchResults     time.Duration
	SearchSuggestions time.Duration
	Genres            time.Duration
	StreamSources     time.Duration
}

// DefaultPolicy returns the canonical TTL table.
func DefaultPolicy() Policy {
	return Policy{
		Trending:          time.Hour,
		Popular:           2 * time.Hour,
		TopRated:          4 * time.Hour,
		ContentDetails:    24 * time.Hour,
		Credits:           24 * time.Hour,
		Similar:           12 * time.Hour,
		Recommendations:   12 * time.Hour,
		SearchResults:     30 * time.Minute,
		SearchSuggestions: 30 * time.Minute,
		Genres:            7 * 24 * time.Hour,
		StreamSources:     5 * time.Minute,
	}
}

// TTL returns the configured lifetime for a category.
func (p Policy) TTL(c Category) time.Duration {
	switch c {
	case CategoryTrending:
		return p.Trending
	case CategoryPopular:
		return p.Popular
	case CategoryTopRated:
		return p.TopRated
	case CategoryContentDetails:
		return p.ContentDetails
	case CategoryCredits:
		return p.Credits
	case CategorySimilar:
		return p.Similar
	case CategoryRecommendations:
		return p.Recommendations
	case CategorySearchResults:
		return p.SearchResults
	case CategorySearchSuggestions:
		return p.SearchSuggestions
	case CategoryGenres:
		return p.Genres
	case CategoryStreamSources:
		return p.StreamSources
	default:
		return 30 * time.Minute
	}
}
