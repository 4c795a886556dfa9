package handler

import (
	"context"

	"github.com/reelworks/reelgate/internal/domain/model"
)

// mockContentService provides a configurable mock for ContentService.
type mockContentService struct {
	trendingFn        func(ctx context.Context, mediaType model.MediaType, window string, page int) (*model.ContentPage, error)
	popularFn         func(ctx context.Context, mediaType model.MediaType, page int) (*model.ContentPage, error)
	topRatedFn        func(ctx context.Context, mediaType model.MediaType, page int) (*model.ContentPage, error)
	detailsFn         func(ctx context.Context, mediaType model.MediaType, id int64) (*model.ContentDetails, error)
	similarFn         func(ctx context.Context, mediaType model.MediaType, id int64, page int) (*model.ContentPage, error)
	recommendationsFn func(ctx context.Context, mediaType model.MediaType, id int64, page int) (*model.ContentPage, error)
	creditsFn         func(ctx context.Context, mediaType model.MediaType, id int64) (*model.Credits, error)
	genresFn          func(ctx context.Context, mediaType model.MediaType) ([]model.Genre, error)
}

func emptyPage() *model.ContentPage {
	return &model.ContentPage{Page: 1, Results: []model.Content{}, TotalPages: 1}
}

func (m *mockContentService) Trending(ctx context.Context, mediaType model.MediaType, window string, page int) (*model.ContentPage, error) {
	if m.trendingFn != nil {
		return m.trendingFn(ctx, mediaType, window, page)
	}
	return emptyPage(), nil
}

func (m *mockContentService) Popular(ctx context.Context, mediaType model.MediaType, page int) (*model.ContentPage, error) {
	if m.popularFn != nil {
		return m.popularFn(ctx, mediaType, page)
	}
	return emptyPage(), nil
}

func (m *mockContentService) TopRated(ctx context.Context, mediaType model.MediaType, page int) (*model.ContentPage, error) {
	if m.topRatedFn != nil {
		return m.topRatedFn(ctx, mediaType, page)
	}
	return emptyPage(), nil
}

func (m *mockContentService) Details(ctx context.Context, mediaType model.MediaType, id int64) (*model.ContentDetails, error) {
	if m.detailsFn != nil {
		return m.detailsFn(ctx, mediaType, id)
	}
	return &model.ContentDetails{}, nil
}

func (m *mockContentService) Similar(ctx context.Context, mediaType model.MediaType, id int64, page int) (*model.ContentPage, error) {
	if m.similarFn != nil {
		return m.similarFn(ctx, mediaType, id, page)
	}
	return emptyPage(), nil
}

func (m *mockContentService) Recommendations(ctx context.Context, mediaType model.MediaType, id int64, page int) (*model.ContentPage, error) {
	if m.recommendationsFn != nil {
		return m.recommendationsFn(ctx, mediaType, id, page)
	}
	return emptyPage(), nil
}

func (m *mockContentService) Credits(ctx context.Context, mediaType model.MediaType, id int64) (*model.Credits, error) {
	if m.creditsFn != nil {
		return m.creditsFn(ctx, mediaType, id)
	}
	return &model.Credits{}, nil
}

func (m *mockContentService) Genres(ctx context.Context, mediaType model.MediaType) ([]model.Genre, error) {
	if m.genresFn != nil {
		return m.genresFn(ctx, mediaType)
	}
	return []model.Genre{}, nil
}

// mockSearchService provides a configurable mock for SearchService.
type mockSearchService struct {
	searchFn       func(ctx context.Context, query string, page int) (*model.ContentPage, error)
	searchMoviesFn func(ctx context.Context, query string, page int) (*model.ContentPage, error)
	searchTVFn     func(ctx context.Context, query string, page int) (*model.ContentPage, error)
	suggestionsFn  func(ctx context.Context, query string) ([]string, error)
	advancedFn     func(ctx context.Context, mediaType model.MediaType, filters model.SearchFilters, page int) (*model.ContentPage, error)
}

func (m *mockSearchService) Search(ctx context.Context, query string, page int) (*model.ContentPage, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, page)
	}
	return emptyPage(), nil
}

func (m *mockSearchService) SearchMovies(ctx context.Context, query string, page int) (*model.ContentPage, error) {
	if m.searchMoviesFn != nil {
		return m.searchMoviesFn(ctx, query, page)
	}
	return emptyPage(), nil
}

func (m *mockSearchService) SearchTV(ctx context.Context, query string, page int) (*model.ContentPage, error) {
	if m.searchTVFn != nil {
		return m.searchTVFn(ctx, query, page)
	}
	return emptyPage(), nil
}

func (m *mockSearchService) Suggestions(ctx context.Context, query string) ([]string, error) {
	if m.suggestionsFn != nil {
		return m.suggestionsFn(ctx, query)
	}
	return []string{}, nil
}

func (m *mockSearchService) Advanced(ctx context.Context, mediaType model.MediaType, filters model.SearchFilters, page int) (*model.ContentPage, error) {
	if m.advancedFn != nil {
		return m.advancedFn(ctx, mediaType, filters, page)
	}
	return emptyPage(), nil
}
