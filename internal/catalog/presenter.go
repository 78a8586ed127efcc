// Package catalog shapes raw database rows into the API-facing movie
// objects, decoding the encoded-text columns and applying display
// defaults.
package catalog

import (
	"encoding/json"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/reelbase/reelbase/internal/database"
)

// UnknownLanguage is the display default when a movie has no recorded
// original language. Applied on the detail object only.
const UnknownLanguage = "Unknown"

// Summary is the list-endpoint movie object
type Summary struct {
	IMDBID      string   `json:"imdbId"`
	Title       string   `json:"title"`
	Genres      []string `json:"genres"`
	ReleaseDate string   `json:"releaseDate"`
	Budget      string   `json:"budget"`
}

// Detail is the single-movie endpoint object
type Detail struct {
	IMDBID              string   `json:"imdb_id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	ReleaseDate         string   `json:"release_date"`
	Runtime             int64    `json:"runtime"`
	Genres              []string `json:"genres"`
	OriginalLanguage    string   `json:"original_language"`
	ProductionCompanies []string `json:"production_companies"`
	AverageRating       *float64 `json:"average_rating"`
	Budget              string   `json:"budget"`
}

// SummaryFromRow shapes a raw list row into a Summary
func SummaryFromRow(row *database.MovieSummary) Summary {
	return Summary{
		IMDBID:      row.IMDBID,
		Title:       row.Title,
		Genres:      DecodeStringList(row.GenresRaw),
		ReleaseDate: row.ReleaseDate,
		Budget:      FormatBudget(row.Budget),
	}
}

// DetailFromRow shapes a raw detail row into a Detail
func DetailFromRow(row *database.MovieDetail) Detail {
	language := row.Language
	if language == "" {
		language = UnknownLanguage
	}

	return Detail{
		IMDBID:              row.IMDBID,
		Title:               row.Title,
		Description:         row.Overview,
		ReleaseDate:         row.ReleaseDate,
		Runtime:             row.Runtime,
		Genres:              DecodeStringList(row.GenresRaw),
		OriginalLanguage:    language,
		ProductionCompanies: DecodeStringList(row.CompaniesRaw),
		AverageRating:       row.AverageRating,
		Budget:              FormatBudget(row.Budget),
	}
}

// Summaries shapes a slice of raw list rows, always returning a non-nil
// slice so list endpoints encode as [] rather than null
func Summaries(rows []*database.MovieSummary) []Summary {
	out := make([]Summary, 0, len(rows))
	for _, row := range rows {
		out = append(out, SummaryFromRow(row))
	}
	return out
}

// DecodeStringList decodes an encoded-array text column into a string
// list. Text that does not look structured (trimmed, starting with '['
// or '{') degrades to the empty list, as does structured-looking text
// that fails to parse. Decoding never fails.
func DecodeStringList(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "{") {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
		return []string{}
	}
	return list
}

// FormatBudget renders a monetary budget as a dollar amount with
// thousands grouping, e.g. 1000000 -> "$1,000,000"
func FormatBudget(budget int64) string {
	return "$" + humanize.Comma(budget)
}
