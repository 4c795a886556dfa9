package handler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/reelworks/reelgate/internal/domain/model"
	"github.com/reelworks/reelgate/internal/usecase"
)

// SearchHandler handles /api/search requests.
type SearchHandler struct {
	svc usecase.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(svc usecase.SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// Search handles GET /api/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, h.svc.Search)
}

// SearchMovies handles GET /api/search/movies
func (h *SearchHandler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, h.svc.SearchMovies)
}

// SearchTV handles GET /api/search/tv
func (h *SearchHandler) SearchTV(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, h.svc.SearchTV)
}

func (h *SearchHandler) search(w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context, query string, page int) (*model.ContentPage, error)) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		Error(w, r, http.StatusBadRequest, ErrTypeValidation, model.ErrEmptyQuery.Error())
		return
	}

	page, err := parsePage(r.URL.Query().Get("page"))
	if err != nil {
		Error(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error())
		return
	}

	result, err := fetch(r.Context(), query, page)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	JSON(w, r, http.StatusOK, result.Results, pageMeta(result))
}

// Suggestions handles GET /api/search/suggestions
func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))

	suggestions, err := h.svc.Suggestions(r.Context(), query)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	JSON(w, r, http.StatusOK, suggestions, nil)
}

// Advanced handles GET /api/search/advanced
func (h *SearchHandler) Advanced(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	mediaType, err := parseMediaType(q.Get("type"))
	if err != nil {
		Error(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error())
		return
	}

	page, err := parsePage(q.Get("page"))
	if err != nil {
		Error(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error())
		return
	}

	filters, err := parseFilters(q)
	if err != nil {
		Error(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error())
		return
	}

	result, err := h.svc.Advanced(r.Context(), mediaType, filters, page)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	JSON(w, r, http.StatusOK, result.Results, pageMeta(result))
}

// parseFilters reads the advanced-search filter set from query parameters.
func parseFilters(q url.Values) (model.SearchFilters, error) {
	var filters model.SearchFilters

	if raw := q.Get("genres"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil || id <= 0 {
				return filters, model.ErrInvalidGenreFilter
			}
			filters.GenreIDs = append(filters.GenreIDs, id)
		}
	}

	if raw := q.Get("min_rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil || rating < 0 || rating > 10 {
			return filters, model.ErrInvalidRatingFilter
		}
		filters.MinRating = rating
	}

	if raw := q.Get("min_votes"); raw != "" {
		votes, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || votes < 0 {
			return filters, model.ErrInvalidVotesFilter
		}
		filters.MinVotes = votes
	}

	if raw := q.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1870 || year > 2100 {
			return filters, model.ErrInvalidYearFilter
		}
		filters.Year = year
	}

	filters.IncludeAdult = q.Get("include_adult") == "true"

	sortBy := q.Get("sort_by")
	if !model.IsValidSortBy(sortBy) {
		return filters, model.ErrInvalidSortFilter
	}
	filters.SortBy = sortBy

	switch q.Get("sort_order") {
	case "", model.SortOrderDesc:
		filters.SortOrder = model.SortOrderDesc
	case model.SortOrderAsc:
		filters.SortOrder = model.SortOrderAsc
	default:
		return filters, model.ErrInvalidSortFilter
	}

	return filters, nil
}
