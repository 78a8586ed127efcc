package database

import (
	"database/sql"
	"fmt"
	"strings"
)

// MovieSummary is a raw catalog list row. Genres are carried as the
// stored encoded text; decoding happens in the catalog package.
type MovieSummary struct {
	IMDBID      string
	Title       string
	GenresRaw   string
	ReleaseDate string
	Budget      int64
}

// MovieDetail is a raw catalog detail row, including the correlated
// average rating from the attached ratings database.
type MovieDetail struct {
	IMDBID        string
	Title         string
	Overview      string
	ReleaseDate   string
	Runtime       int64
	Language      string
	GenresRaw     string
	CompaniesRaw  string
	Budget        int64
	AverageRating *float64
}

const summaryColumns = `imdbId, title, genres, releaseDate, budget`

// ListMovies returns one page of catalog rows in natural row order.
// page and pageSize must already be validated (both >= 1).
func (db *DB) ListMovies(page, pageSize int) ([]*MovieSummary, error) {
	rows, err := db.Query(`
		SELECT `+summaryColumns+`
		FROM movies
		LIMIT ? OFFSET ?
	`, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// ListMoviesByYear returns one page of catalog rows whose release date
// falls in the given 4-digit year, ordered by release date. sort equal
// to "desc" (case-insensitive) yields descending order; any other value
// yields ascending.
func (db *DB) ListMoviesByYear(year string, page int, sort string, pageSize int) ([]*MovieSummary, error) {
	// Direction comes from a fixed two-value switch, never from input
	direction := "ASC"
	if strings.EqualFold(sort, "desc") {
		direction = "DESC"
	}

	rows, err := db.Query(`
		SELECT `+summaryColumns+`
		FROM movies
		WHERE strftime('%Y', releaseDate) = ?
		ORDER BY releaseDate `+direction+`
		LIMIT ? OFFSET ?
	`, year, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies by year: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// ListMoviesByGenre returns one page of catalog rows whose stored genre
// text contains genre as a raw substring. This is deliberately a
// case-sensitive substring match against the encoded text, not
// structured membership; "Dram" matches "Drama" but "drama" does not.
// instr rather than LIKE, which is case-insensitive for ASCII.
func (db *DB) ListMoviesByGenre(genre string, page, pageSize int) ([]*MovieSummary, error) {
	rows, err := db.Query(`
		SELECT `+summaryColumns+`
		FROM movies
		WHERE instr(genres, ?) > 0
		LIMIT ? OFFSET ?
	`, genre, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies by genre: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// GetMovieByIMDBID returns the detail row for one movie, or (nil, nil)
// when no movie matches the id. The ratings database is attached first
// so the correlated average can be computed; an attach failure is
// returned as an error.
func (db *DB) GetMovieByIMDBID(imdbID string) (*MovieDetail, error) {
	if err := db.AttachRatings(); err != nil {
		return nil, err
	}

	movie := &MovieDetail{}
	var overview, releaseDate, language, genres, companies sql.NullString
	var runtime, budget sql.NullInt64
	var avgRating sql.NullFloat64

	err := db.QueryRow(`
		SELECT m.imdbId, m.title, m.overview, m.releaseDate, m.runtime,
		       m.language, m.genres, m.productionCompanies, m.budget,
		       (SELECT AVG(rating) FROM `+RatingsAlias+`.ratings r WHERE r.movieId = m.movieId)
		FROM movies m
		WHERE m.imdbId = ?
	`, imdbID).Scan(&movie.IMDBID, &movie.Title, &overview, &releaseDate, &runtime,
		&language, &genres, &companies, &budget, &avgRating)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	movie.Overview = nullStringValue(overview)
	movie.ReleaseDate = nullStringValue(releaseDate)
	movie.Runtime = nullInt64Value(runtime)
	movie.Language = nullStringValue(language)
	movie.GenresRaw = nullStringValue(genres)
	movie.CompaniesRaw = nullStringValue(companies)
	movie.Budget = nullInt64Value(budget)
	movie.AverageRating = nullFloat64ToPtr(avgRating)

	return movie, nil
}

// CountMovies returns the total number of catalog rows
func (db *DB) CountMovies() (int64, error) {
	var count int64
	if err := db.QueryRow(`SELECT COUNT(*) FROM movies`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return count, nil
}

// CountReleaseYears returns the number of distinct release years in the catalog
func (db *DB) CountReleaseYears() (int64, error) {
	var count int64
	err := db.QueryRow(`
		SELECT COUNT(DISTINCT strftime('%Y', releaseDate)) FROM movies
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count release years: %w", err)
	}
	return count, nil
}

func scanSummaries(rows *sql.Rows) ([]*MovieSummary, error) {
	var movies []*MovieSummary
	for rows.Next() {
		movie := &MovieSummary{}
		var genres, releaseDate sql.NullString
		var budget sql.NullInt64

		if err := rows.Scan(&movie.IMDBID, &movie.Title, &genres, &releaseDate, &budget); err != nil {
			return nil, fmt.Errorf("failed to scan movie row: %w", err)
		}

		movie.GenresRaw = nullStringValue(genres)
		movie.ReleaseDate = nullStringValue(releaseDate)
		movie.Budget = nullInt64Value(budget)
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movie rows: %w", err)
	}
	return movies, nil
}
