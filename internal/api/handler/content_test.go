package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/reelworks/reelgate/internal/domain/model"
	"github.com/reelworks/reelgate/internal/infrastructure/tmdb"
)

func newContentRouter(mock *mockContentService) *chi.Mux {
	h := NewContentHandler(mock)
	r := chi.NewRouter()
	r.Get("/api/content/trending", h.Trending)
	r.Get("/api/content/{type}/popular", h.Popular)
	r.Get("/api/content/{type}/top-rated", h.TopRated)
	r.Get("/api/content/{type}/genres", h.Genres)
	r.Get("/api/content/{type}/{id}", h.Details)
	r.Get("/api/content/{type}/{id}/similar", h.Similar)
	r.Get("/api/content/{type}/{id}/credits", h.Credits)
	return r
}

func decodeEnvelope(t *testing.T, body []byte) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("failed to unmarshal envelope: %v", err)
	}
	return env
}

func TestContentHandler_Trending(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		setupMock      func(m *mockContentService)
		wantStatusCode int
		wantErrType    string
	}{
		{
			name: "successful request with defaults",
			url:  "/api/content/trending?type=movie",
			setupMock: func(m *mockContentService) {
				m.trendingFn = func(ctx context.Context, mediaType model.MediaType, window string, page int) (*model.ContentPage, error) {
					if window != "day" {
						t.Errorf("window = %q, want default day", window)
					}
					if page != 1 {
						t.Errorf("page = %d, want default 1", page)
					}
					return &model.ContentPage{
						Page:         1,
						Results:      []model.Content{{ID: 603, Title: "The Matrix", MediaType: model.MediaTypeMovie}},
						TotalPages:   3,
						TotalResults: 60,
					}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "mixed feed via type=all",
			url:  "/api/content/trending?type=all&window=week",
			setupMock: func(m *mockContentService) {
				m.trendingFn = func(ctx context.Context, mediaType model.MediaType, window string, page int) (*model.ContentPage, error) {
					if mediaType != model.MediaTypeAll {
						t.Errorf("mediaType = %q, want all", mediaType)
					}
					if window != "week" {
						t.Errorf("window = %q, want week", window)
					}
					return &model.ContentPage{
						Page: 1,
						Results: []model.Content{
							{ID: 603, Title: "The Matrix", MediaType: model.MediaTypeMovie},
							{ID: 1396, Title: "Breaking Bad", MediaType: model.MediaTypeTV},
						},
						TotalPages:   1,
						TotalResults: 2,
					}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing media type",
			url:            "/api/content/trending",
			setupMock:      func(m *mockContentService) {},
			wantStatusCode: http.StatusBadRequest,
			wantErrType:    ErrTypeValidation,
		},
		{
			name:           "invalid window",
			url:            "/api/content/trending?type=movie&window=month",
			setupMock:      func(m *mockContentService) {},
			wantStatusCode: http.StatusBadRequest,
			wantErrType:    ErrTypeValidation,
		},
		{
			name:           "invalid page",
			url:            "/api/content/trending?type=movie&page=0",
			setupMock:      func(m *mockContentService) {},
			wantStatusCode: http.StatusBadRequest,
			wantErrType:    ErrTypeValidation,
		},
		{
			name: "upstream http error maps to bad gateway",
			url:  "/api/content/trending?type=movie",
			setupMock: func(m *mockContentService) {
				m.trendingFn = func(ctx context.Context, mediaType model.MediaType, window string, page int) (*model.ContentPage, error) {
					return nil, &tmdb.HTTPError{Status: http.StatusInternalServerError}
				}
			},
			wantStatusCode: http.StatusBadGateway,
			wantErrType:    ErrTypeUpstream,
		},
		{
			name: "upstream rate limit maps to 429",
			url:  "/api/content/trending?type=movie",
			setupMock: func(m *mockContentService) {
				m.trendingFn = func(ctx context.Context, mediaType model.MediaType, window string, page int) (*model.ContentPage, error) {
					return nil, &tmdb.HTTPError{Status: http.StatusTooManyRequests}
				}
			},
			wantStatusCode: http.StatusTooManyRequests,
			wantErrType:    ErrTypeRateLimited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockContentService{}
			tt.setupMock(mock)
			r := newContentRouter(mock)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatusCode)
			}

			env := decodeEnvelope(t, rec.Body.Bytes())
			if tt.wantErrType != "" {
				if env.Success {
					t.Error("success = true on error response")
				}
				if env.Error == nil || env.Error.Type != tt.wantErrType {
					t.Errorf("error = %+v, want type %s", env.Error, tt.wantErrType)
				}
			} else {
				if !env.Success {
					t.Error("success = false on ok response")
				}
				if env.Meta == nil {
					t.Error("expected pagination meta on list response")
				}
			}
		})
	}
}

func TestContentHandler_Popular_InvalidType(t *testing.T) {
	r := newContentRouter(&mockContentService{})

	// "all" is a trending-only value; typed routes reject it like any
	// other unknown type.
	for _, typ := range []string{"person", "all"} {
		req := httptest.NewRequest(http.MethodGet, "/api/content/"+typ+"/popular", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("type %q: status = %d, want 400", typ, rec.Code)
		}
	}
}

func TestContentHandler_Details(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		setupMock      func(m *mockContentService)
		wantStatusCode int
	}{
		{
			name: "successful details",
			url:  "/api/content/movie/603",
			setupMock: func(m *mockContentService) {
				m.detailsFn = func(ctx context.Context, mediaType model.MediaType, id int64) (*model.ContentDetails, error) {
					if id != 603 {
						t.Errorf("id = %d, want 603", id)
					}
					d := &model.ContentDetails{}
					d.ID = id
					d.Title = "The Matrix"
					d.MediaType = mediaType
					return d, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "non-numeric id",
			url:            "/api/content/movie/abc",
			setupMock:      func(m *mockContentService) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "negative id",
			url:            "/api/content/movie/-1",
			setupMock:      func(m *mockContentService) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "unknown id maps to not found",
			url:  "/api/content/movie/999999",
			setupMock: func(m *mockContentService) {
				m.detailsFn = func(ctx context.Context, mediaType model.MediaType, id int64) (*model.ContentDetails, error) {
					return nil, &tmdb.HTTPError{Status: http.StatusNotFound}
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockContentService{}
			tt.setupMock(mock)
			r := newContentRouter(mock)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatusCode)
			}
		})
	}
}

func TestContentHandler_Similar_PassesPage(t *testing.T) {
	mock := &mockContentService{
		similarFn: func(ctx context.Context, mediaType model.MediaType, id int64, page int) (*model.ContentPage, error) {
			if mediaType != model.MediaTypeTV || id != 1396 || page != 3 {
				t.Errorf("got (%s, %d, %d), want (tv, 1396, 3)", mediaType, id, page)
			}
			return emptyPage(), nil
		},
	}
	r := newContentRouter(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/content/tv/1396/similar?page=3", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestContentHandler_NetworkErrorMapsToBadGateway(t *testing.T) {
	mock := &mockContentService{
		creditsFn: func(ctx context.Context, mediaType model.MediaType, id int64) (*model.Credits, error) {
			return nil, &tmdb.NetworkError{Err: context.DeadlineExceeded}
		},
	}
	r := newContentRouter(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/content/movie/603/credits", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
	env := decodeEnvelope(t, rec.Body.Bytes())
	if env.Error == nil || env.Error.Type != ErrTypeUpstream {
		t.Errorf("error = %+v, want UPSTREAM_ERROR", env.Error)
	}
}
