package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/reelbase/reelbase/internal/catalog"
	"github.com/reelbase/reelbase/internal/config"
)

// ListMovies handles GET / and returns one page of catalog summaries
// in natural row order
func (h *Handlers) ListMovies(w http.ResponseWriter, r *http.Request) {
	page, pageSize, ok := h.pagination(w, r)
	if !ok {
		return
	}

	movies, err := h.db.ListMovies(page, pageSize)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list movies")
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, catalog.Summaries(movies))
}

// GetMovie handles GET /{id} and returns the detail object for one
// movie by its external id, including the average rating from the
// ratings database
func (h *Handlers) GetMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	movie, err := h.db.GetMovieByIMDBID(id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to get movie")
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if movie == nil {
		h.jsonNotFound(w, "Movie not found")
		return
	}

	h.writeJSON(w, catalog.DetailFromRow(movie))
}

// ListMoviesByYear handles GET /year/{year} and returns summaries
// filtered to one release year, ordered by release date (ascending
// unless sort=desc)
func (h *Handlers) ListMoviesByYear(w http.ResponseWriter, r *http.Request) {
	year := chi.URLParam(r, "year")

	page, pageSize, ok := h.pagination(w, r)
	if !ok {
		return
	}
	sort, ok := h.sortOrder(w, r)
	if !ok {
		return
	}

	movies, err := h.db.ListMoviesByYear(year, page, sort, pageSize)
	if err != nil {
		log.Error().Err(err).Str("year", year).Msg("Failed to list movies by year")
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, catalog.Summaries(movies))
}

// ListMoviesByGenre handles GET /genre/{genre} and returns summaries
// whose stored genre text contains the given genre as a substring
func (h *Handlers) ListMoviesByGenre(w http.ResponseWriter, r *http.Request) {
	genre := chi.URLParam(r, "genre")

	page, pageSize, ok := h.pagination(w, r)
	if !ok {
		return
	}

	movies, err := h.db.ListMoviesByGenre(genre, page, pageSize)
	if err != nil {
		log.Error().Err(err).Str("genre", genre).Msg("Failed to list movies by genre")
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, catalog.Summaries(movies))
}

// pagination parses and validates the page and pageSize query params.
// On violation it writes a 400 response and returns ok=false.
func (h *Handlers) pagination(w http.ResponseWriter, r *http.Request) (page, pageSize int, ok bool) {
	page = 1
	pageSize = config.DefaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			h.jsonError(w, "page must be an integer greater than or equal to 1", http.StatusBadRequest)
			return 0, 0, false
		}
		page = v
	}

	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			h.jsonError(w, "pageSize must be an integer greater than or equal to 1", http.StatusBadRequest)
			return 0, 0, false
		}
		pageSize = v
	}

	return page, pageSize, true
}

// sortOrder parses and validates the sort query param (asc or desc,
// case-insensitive; absent defaults to asc). On violation it writes a
// 400 response and returns ok=false.
func (h *Handlers) sortOrder(w http.ResponseWriter, r *http.Request) (string, bool) {
	sort := r.URL.Query().Get("sort")
	if sort == "" {
		return "asc", true
	}
	if !strings.EqualFold(sort, "asc") && !strings.EqualFold(sort, "desc") {
		h.jsonError(w, `sort must be "asc" or "desc"`, http.StatusBadRequest)
		return "", false
	}
	return sort, true
}
