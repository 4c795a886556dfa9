package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"github.com/reelworks/reelgate/internal/domain/model"
	"github.com/reelworks/reelgate/internal/domain/repository"
	"github.com/reelworks/reelgate/internal/infrastructure/cache"
)

// minSuggestionQueryLen short-circuits suggestion lookups for prefix
// keystrokes: below this length the cache and upstream are not touched.
const minSuggestionQueryLen = 2

// maxSuggestions caps the suggestion list size.
const maxSuggestions = 10

// SearchService exposes the search operations of the catalog.
type SearchService interface {
	// Search runs a multi search across movies and TV shows.
	Search(ctx context.Context, query string, page int) (*model.ContentPage, error)

	// SearchMovies searches movies only.
	SearchMovies(ctx context.Context, query string, page int) (*model.ContentPage, error)

	// SearchTV searches TV shows only.
	SearchTV(ctx context.Context, query string, page int) (*model.ContentPage, error)

	// Suggestions returns up to 10 title suggestions for a query prefix.
	// Queries shorter than 2 characters return an empty list immediately.
	Suggestions(ctx context.Context, query string) ([]string, error)

	// Advanced runs a filtered discover query. Genre, year and the adult
	// flag go to the upstream; rating and vote thresholds and sorting are
	// applied in-process after the payload is obtained.
	Advanced(ctx context.Context, mediaType model.MediaType, filters model.SearchFilters, page int) (*model.ContentPage, error)
}

type searchService struct {
	fetcher   *Fetcher
	upstream  Upstream
	ttl       cache.Policy
	analytics repository.SearchAnalyticsRepository // nil disables recording
}

// NewSearchService creates a SearchService. analytics may be nil, in which
// case search analytics recording is disabled.
func NewSearchService(fetcher *Fetcher, upstream Upstream, ttl cache.Policy, analytics repository.SearchAnalyticsRepository) SearchService {
	return &searchService{
		fetcher:   fetcher,
		upstream:  upstream,
		ttl:       ttl,
		analytics: analytics,
	}
}

func (s *searchService) Search(ctx context.Context, query string, page int) (*model.ContentPage, error) {
	key := cache.Key(cache.CategorySearchResults, "multi", query, strconv.Itoa(page))

	result, err := FetchJSON(ctx, s.fetcher, key, s.ttl.TTL(cache.CategorySearchResults), func(ctx context.Context) (*model.ContentPage, error) {
		return s.fetchSearchPage(ctx, "/search/multi", query, page, "")
	})
	if err != nil {
		return nil, err
	}

	s.recordAnalytics(ctx, query, "", len(result.Results))
	return result, nil
}

func (s *searchService) SearchMovies(ctx context.Context, query string, page int) (*model.ContentPage, error) {
	return s.searchTyped(ctx, model.MediaTypeMovie, query, page)
}

func (s *searchService) SearchTV(ctx context.Context, query string, page int) (*model.ContentPage, error) {
	return s.searchTyped(ctx, model.MediaTypeTV, query, page)
}

func (s *searchService) searchTyped(ctx context.Context, mediaType model.MediaType, query string, page int) (*model.ContentPage, error) {
	key := cache.Key(cache.CategorySearchResults, mediaType.String(), query, strconv.Itoa(page))

	result, err := FetchJSON(ctx, s.fetcher, key, s.ttl.TTL(cache.CategorySearchResults), func(ctx context.Context) (*model.ContentPage, error) {
		return s.fetchSearchPage(ctx, "/search/"+mediaType.String(), query, page, mediaType)
	})
	if err != nil {
		return nil, err
	}

	s.recordAnalytics(ctx, query, "", len(result.Results))
	return result, nil
}

func (s *searchService) Suggestions(ctx context.Context, query string) ([]string, error) {
	if utf8.RuneCountInString(query) < minSuggestionQueryLen {
		return []string{}, nil
	}

	key := cache.Key(cache.CategorySearchSuggestions, query)

	return FetchJSON(ctx, s.fetcher, key, s.ttl.TTL(cache.CategorySearchSuggestions), func(ctx context.Context) ([]string, error) {
		page, err := s.fetchSearchPage(ctx, "/search/multi", query, 1, "")
		if err != nil {
			return nil, err
		}

		suggestions := make([]string, 0, maxSuggestions)
		for _, c := range page.Results {
			if c.Title == "" {
				continue
			}
			suggestions = append(suggestions, c.Title)
			if len(suggestions) == maxSuggestions {
				break
			}
		}
		return suggestions, nil
	})
}

func (s *searchService) Advanced(ctx context.Context, mediaType model.MediaType, filters model.SearchFilters, page int) (*model.ContentPage, error) {
	canonical := filters.CanonicalQuery()
	key := cache.Key(cache.CategorySearchResults, "discover", mediaType.String(), canonical, strconv.Itoa(page))

	result, err := FetchJSON(ctx, s.fetcher, key, s.ttl.TTL(cache.CategorySearchResults), func(ctx context.Context) (*model.ContentPage, error) {
		params := pageParams(page)
		params.Set("include_adult", strconv.FormatBool(filters.IncludeAdult))
		if len(filters.GenreIDs) > 0 {
			var genres string
			for i, id := range filters.GenreIDs {
				if i > 0 {
					genres += ","
				}
				genres += strconv.FormatInt(id, 10)
			}
			params.Set("with_genres", genres)
		}
		if filters.Year > 0 {
			// The upstream names the year filter per media type.
			if mediaType == model.MediaTypeTV {
				params.Set("first_air_date_year", strconv.Itoa(filters.Year))
			} else {
				params.Set("primary_release_year", strconv.Itoa(filters.Year))
			}
		}

		raw, err := s.upstream.Get(ctx, "/discover/"+mediaType.String(), params)
		if err != nil {
			return nil, err
		}

		var result model.ContentPage
		if err := json.Unmarshal(raw, &result); err != nil {
			return nil, fmt.Errorf("decode discover response: %w", err)
		}

		normalizePage(&result, mediaType)
		result.Results = filters.Apply(result.Results)
		return &result, nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAnalytics(ctx, "", canonical, len(result.Results))
	return result, nil
}

// fetchSearchPage fetches and normalizes a search endpoint. An empty
// mediaType means multi search: person results are dropped and the media
// type of the rest is inferred from the payload shape.
func (s *searchService) fetchSearchPage(ctx context.Context, path, query string, page int, mediaType model.MediaType) (*model.ContentPage, error) {
	params := pageParams(page)
	params.Set("query", query)
	params.Set("include_adult", "false")

	raw, err := s.upstream.Get(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var result model.ContentPage
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	result.ApplyDefaults()

	results := result.Results[:0]
	for _, c := range result.Results {
		if c.IsPerson() || c.Adult {
			continue
		}
		if c.MediaType == "" {
			c.MediaType = mediaType
		}
		results = append(results, c)
	}
	result.Results = results

	return &result, nil
}

// recordAnalytics persists a search analytics record. Best-effort: a
// failed write is logged and never surfaces to the caller.
func (s *searchService) recordAnalytics(ctx context.Context, query, filters string, resultCount int) {
	if s.analytics == nil {
		return
	}

	rec := model.NewSearchAnalyticsRecord(query, filters, resultCount)
	if err := s.analytics.Insert(ctx, rec); err != nil {
		slog.Warn("failed to record search analytics",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
	}
}
