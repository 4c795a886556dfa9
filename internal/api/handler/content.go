package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/reelworks/reelgate/internal/domain/model"
	"github.com/reelworks/reelgate/internal/infrastructure/tmdb"
	"github.com/reelworks/reelgate/internal/usecase"
)

// ContentHandler handles /api/content requests.
type ContentHandler struct {
	svc usecase.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(svc usecase.ContentService) *ContentHandler {
	return &ContentHandler{svc: svc}
}

// Trending handles GET /api/content/trending
func (h *ContentHandler) Trending(w http.ResponseWriter, r *http.Request) {
	mediaType, err := parseTrendingType(r.URL.Query().Get("type"))
	if err != nil {
		Error(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error())
		return
	}

	window := r.URL.Query().Get("window")
	if window == "" {
		window = "day"
	}
	if window != "day" && window != "week" {
		Error(w, r, http.StatusBadRequest, ErrTypeValidation, model.ErrInvalidWindow.Error())
		return
	}

	page, err := parsePage(r.URL.Query().Get("page"))
	if err != nil {
		Error(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error())
		return
	}

	result, err := h.svc.Trending(r.Context(), mediaType, window, page)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	JSON(w, r, http.StatusOK, result.Results, pageMeta(result))
}

// Popular handles GET /api/content/{type}/popular
func (h *ContentHandler) Popular(w http.ResponseWriter, r *http.Request) {
	h.listByType(w, r, h.svc.Popular)
}

// TopRated handles GET /api/content/{type}/top-rated
func (h *ContentHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	h.listByType(w, r, h.svc.TopRated)
}

func (h *ContentHandler) listByType(w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context, mediaType model.MediaType, page int) (*model.ContentPage, error)) {
	mediaType, err := parseMediaType(chi.URLParam(r, "type"))
	if err != nil {
		Error(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error())
		return
	}

	page, err := parsePage(r.URL.Query().Get("page"))
	if err != nil {
		Error(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error())
		return
	}

	result, err := fetch(r.Context(), mediaType, page)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	JSON(w, r, http.StatusOK, result.Results, pageMeta(result))
}

// Details handles GET /api/content/{type}/{id}
func (h *ContentHandler) Details(w http.ResponseWriter, r *http.Request) {
	mediaType, id, ok := h.pathParams(w, r)
	if !ok {
		return
	}

	details, err := h.svc.Details(r.Context(), mediaType, id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	JSON(w, r, http.StatusOK, details, nil)
}

// Similar handles GET /api/content/{type}/{id}/similar
func (h *ContentHandler) Similar(w http.ResponseWriter, r *http.Request) {
	mediaType, id, ok := h.pathParams(w, r)
	if !ok {
		return
	}

	page, err := parsePage(r.URL.Query().Get("page"))
	if err != nil {
		Error(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error())
		return
	}

	result, err := h.svc.Similar(r.Context(), mediaType, id, page)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	JSON(w, r, http.StatusOK, result.Results, pageMeta(result))
}

// Recommendations handles GET /api/content/{type}/{id}/recommendations
func (h *ContentHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	mediaType, id, ok := h.pathParams(w, r)
	if !ok {
		return
	}

	page, err := parsePage(r.URL.Query().Get("page"))
	if err != nil {
		Error(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error())
		return
	}

	result, err := h.svc.Recommendations(r.Context(), mediaType, id, page)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	JSON(w, r, http.StatusOK, result.Results, pageMeta(result))
}

// Credits handles GET /api/content/{type}/{id}/credits
func (h *ContentHandler) Credits(w http.ResponseWriter, r *http.Request) {
	mediaType, id, ok := h.pathParams(w, r)
	if !ok {
		return
	}

	credits, err := h.svc.Credits(r.Context(), mediaType, id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	JSON(w, r, http.StatusOK, credits, nil)
}

// Genres handles GET /api/content/{type}/genres
func (h *ContentHandler) Genres(w http.ResponseWriter, r *http.Request) {
	mediaType, err := parseMediaType(chi.URLParam(r, "type"))
	if err != nil {
		Error(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error())
		return
	}

	genres, err := h.svc.Genres(r.Context(), mediaType)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	JSON(w, r, http.StatusOK, genres, nil)
}

// pathParams validates the {type} and {id} URL parameters. On failure it
// writes the error envelope and returns ok=false.
func (h *ContentHandler) pathParams(w http.ResponseWriter, r *http.Request) (model.MediaType, int64, bool) {
	mediaType, err := parseMediaType(chi.URLParam(r, "type"))
	if err != nil {
		Error(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error())
		return "", 0, false
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		Error(w, r, http.StatusBadRequest, ErrTypeValidation, model.ErrInvalidContentID.Error())
		return "", 0, false
	}

	return mediaType, id, true
}

func parseMediaType(raw string) (model.MediaType, error) {
	mt := model.MediaType(raw)
	if !mt.IsValid() {
		return "", model.ErrInvalidMediaType
	}
	return mt, nil
}

// parseTrendingType additionally admits "all", the mixed movie+TV feed.
// Only the trending endpoint offers it.
func parseTrendingType(raw string) (model.MediaType, error) {
	mt := model.MediaType(raw)
	if mt != model.MediaTypeAll && !mt.IsValid() {
		return "", model.ErrInvalidTrendingType
	}
	return mt, nil
}

func parsePage(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, model.ErrInvalidPage
	}
	return page, nil
}

func pageMeta(p *model.ContentPage) *Meta {
	return &Meta{
		Page:         p.Page,
		TotalPages:   p.TotalPages,
		TotalResults: p.TotalResults,
	}
}

// handleServiceError maps service errors to API envelopes.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *tmdb.HTTPError
	switch {
	case errors.As(err, &httpErr) && httpErr.IsNotFound():
		Error(w, r, http.StatusNotFound, ErrTypeNotFound, "Content not found")
	case errors.As(err, &httpErr) && httpErr.Status == http.StatusTooManyRequests:
		Error(w, r, http.StatusTooManyRequests, ErrTypeRateLimited, "Upstream rate limit exceeded, try again later")
	case errors.As(err, &httpErr):
		Error(w, r, http.StatusBadGateway, ErrTypeUpstream, "Upstream catalog request failed")
	case isUpstreamTransport(err):
		Error(w, r, http.StatusBadGateway, ErrTypeUpstream, "Upstream catalog unreachable")
	default:
		Error(w, r, http.StatusInternalServerError, ErrTypeInternal, "An unexpected error occurred")
	}
}

func isUpstreamTransport(err error) bool {
	var netErr *tmdb.NetworkError
	var reqErr *tmdb.RequestError
	return errors.As(err, &netErr) || errors.As(err, &reqErr)
}
