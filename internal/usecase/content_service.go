package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/reelworks/reelgate/internal/domain/model"
	"github.com/reelworks/reelgate/internal/infrastructure/cache"
)

// Upstream is the catalog API surface the services depend on.
type Upstream interface {
	Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error)
}

// detailsAppend is the append_to_response value for detail fetches; the
// whole detail payload is one upstream call cached as a single unit.
const detailsAppend = "credits,similar,recommendations,videos,images"

// ContentService exposes the browsing operations of the catalog.
type ContentService interface {
	// Trending returns trending content for a time window ("day" or "week").
	// mediaType may be MediaTypeAll for the mixed movie+TV feed; items in
	// that feed keep their own per-item media type.
	Trending(ctx context.Context, mediaType model.MediaType, window string, page int) (*model.ContentPage, error)

	// Popular returns content ordered by popularity.
	Popular(ctx context.Context, mediaType model.MediaType, page int) (*model.ContentPage, error)

	// TopRated returns content ordered by rating.
	TopRated(ctx context.Context, mediaType model.MediaType, page int) (*model.ContentPage, error)

	// Details returns the full detail payload for one item, including
	// credits, similar titles, recommendations, videos and images.
	Details(ctx context.Context, mediaType model.MediaType, id int64) (*model.ContentDetails, error)

	// Similar returns titles similar to the given item.
	Similar(ctx context.Context, mediaType model.MediaType, id int64, page int) (*model.ContentPage, error)

	// Recommendations returns recommendations for the given item.
	Recommendations(ctx context.Context, mediaType model.MediaType, id int64, page int) (*model.ContentPage, error)

	// Credits returns the cast and crew for the given item.
	Credits(ctx context.Context, mediaType model.MediaType, id int64) (*model.Credits, error)

	// Genres returns the genre list for a media type.
	Genres(ctx context.Context, mediaType model.MediaType) ([]model.Genre, error)
}

type contentService struct {
	fetcher  *Fetcher
	upstream Upstream
	ttl      cache.Policy
}

// NewContentService creates a ContentService backed by the cache-first
// fetcher and the upstream catalog client.
func NewContentService(fetcher *Fetcher, upstream Upstream, ttl cache.Policy) ContentService {
	return &contentService{
		fetcher:  fetcher,
		upstream: upstream,
		ttl:      ttl,
	}
}

func (s *contentService) Trending(ctx context.Context, mediaType model.MediaType, window string, page int) (*model.ContentPage, error) {
	key := cache.Key(cache.CategoryTrending, mediaType.String(), window, strconv.Itoa(page))

	// The mixed feed has no single type to stamp; each item arrives with
	// its own media_type (or an inferable shape) and keeps it.
	backfill := mediaType
	if mediaType == model.MediaTypeAll {
		backfill = ""
	}

	return FetchJSON(ctx, s.fetcher, key, s.ttl.TTL(cache.CategoryTrending), func(ctx context.Context) (*model.ContentPage, error) {
		path := fmt.Sprintf("/trending/%s/%s", mediaType, window)
		return s.fetchPage(ctx, path, pageParams(page), backfill)
	})
}

func (s *contentService) Popular(ctx context.Context, mediaType model.MediaType, page int) (*model.ContentPage, error) {
	key := cache.Key(cache.CategoryPopular, mediaType.String(), strconv.Itoa(page))

	return FetchJSON(ctx, s.fetcher, key, s.ttl.TTL(cache.CategoryPopular), func(ctx context.Context) (*model.ContentPage, error) {
		path := fmt.Sprintf("/%s/popular", mediaType)
		return s.fetchPage(ctx, path, pageParams(page), mediaType)
	})
}

func (s *contentService) TopRated(ctx context.Context, mediaType model.MediaType, page int) (*model.ContentPage, error) {
	key := cache.Key(cache.CategoryTopRated, mediaType.String(), strconv.Itoa(page))

	return FetchJSON(ctx, s.fetcher, key, s.ttl.TTL(cache.CategoryTopRated), func(ctx context.Context) (*model.ContentPage, error) {
		path := fmt.Sprintf("/%s/top_rated", mediaType)
		return s.fetchPage(ctx, path, pageParams(page), mediaType)
	})
}

func (s *contentService) Details(ctx context.Context, mediaType model.MediaType, id int64) (*model.ContentDetails, error) {
	key := cache.Key(cache.CategoryContentDetails, mediaType.String(), strconv.FormatInt(id, 10))

	return FetchJSON(ctx, s.fetcher, key, s.ttl.TTL(cache.CategoryContentDetails), func(ctx context.Context) (*model.ContentDetails, error) {
		path := fmt.Sprintf("/%s/%d", mediaType, id)
		raw, err := s.upstream.Get(ctx, path, url.Values{"append_to_response": {detailsAppend}})
		if err != nil {
			return nil, err
		}

		var details model.ContentDetails
		if err := json.Unmarshal(raw, &details); err != nil {
			return nil, fmt.Errorf("decode details response: %w", err)
		}

		details.MediaType = mediaType
		if details.Similar != nil {
			normalizePage(details.Similar, mediaType)
		}
		if details.Recommendations != nil {
			normalizePage(details.Recommendations, mediaType)
		}

		return &details, nil
	})
}

func (s *contentService) Similar(ctx context.Context, mediaType model.MediaType, id int64, page int) (*model.ContentPage, error) {
	key := cache.Key(cache.CategorySimilar, mediaType.String(), strconv.FormatInt(id, 10), strconv.Itoa(page))

	return FetchJSON(ctx, s.fetcher, key, s.ttl.TTL(cache.CategorySimilar), func(ctx context.Context) (*model.ContentPage, error) {
		path := fmt.Sprintf("/%s/%d/similar", mediaType, id)
		return s.fetchPage(ctx, path, pageParams(page), mediaType)
	})
}

func (s *contentService) Recommendations(ctx context.Context, mediaType model.MediaType, id int64, page int) (*model.ContentPage, error) {
	key := cache.Key(cache.CategoryRecommendations, mediaType.String(), strconv.FormatInt(id, 10), strconv.Itoa(page))

	return FetchJSON(ctx, s.fetcher, key, s.ttl.TTL(cache.CategoryRecommendations), func(ctx context.Context) (*model.ContentPage, error) {
		path := fmt.Sprintf("/%s/%d/recommendations", mediaType, id)
		return s.fetchPage(ctx, path, pageParams(page), mediaType)
	})
}

func (s *contentService) Credits(ctx context.Context, mediaType model.MediaType, id int64) (*model.Credits, error) {
	key := cache.Key(cache.CategoryCredits, mediaType.String(), strconv.FormatInt(id, 10))

	return FetchJSON(ctx, s.fetcher, key, s.ttl.TTL(cache.CategoryCredits), func(ctx context.Context) (*model.Credits, error) {
		path := fmt.Sprintf("/%s/%d/credits", mediaType, id)
		raw, err := s.upstream.Get(ctx, path, nil)
		if err != nil {
			return nil, err
		}

		var credits model.Credits
		if err := json.Unmarshal(raw, &credits); err != nil {
			return nil, fmt.Errorf("decode credits response: %w", err)
		}
		return &credits, nil
	})
}

func (s *contentService) Genres(ctx context.Context, mediaType model.MediaType) ([]model.Genre, error) {
	key := cache.Key(cache.CategoryGenres, mediaType.String())

	return FetchJSON(ctx, s.fetcher, key, s.ttl.TTL(cache.CategoryGenres), func(ctx context.Context) ([]model.Genre, error) {
		path := fmt.Sprintf("/genre/%s/list", mediaType)
		raw, err := s.upstream.Get(ctx, path, nil)
		if err != nil {
			return nil, err
		}

		var list model.GenreList
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("decode genre list response: %w", err)
		}
		return list.Genres, nil
	})
}

// fetchPage fetches and normalizes a paginated list endpoint.
func (s *contentService) fetchPage(ctx context.Context, path string, params url.Values, mediaType model.MediaType) (*model.ContentPage, error) {
	raw, err := s.upstream.Get(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var page model.ContentPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("decode page response: %w", err)
	}

	normalizePage(&page, mediaType)
	return &page, nil
}

// normalizePage applies pagination defaults, backfills the media type on
// items that lack one (an existing value is preserved) and drops adult
// content and person entries (the mixed trending feed includes people).
func normalizePage(page *model.ContentPage, mediaType model.MediaType) {
	page.ApplyDefaults()

	results := page.Results[:0]
	for _, c := range page.Results {
		if c.Adult || c.IsPerson() {
			continue
		}
		if c.MediaType == "" {
			c.MediaType = mediaType
		}
		results = append(results, c)
	}
	page.Results = results
}

func pageParams(page int) url.Values {
	return url.Values{"page": {strconv.Itoa(page)}}
}
