package catalog

import (
	"reflect"
	"testing"

	"github.com/reelbase/reelbase/internal/database"
)

func TestDecodeStringList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"valid array", `["Action"]`, []string{"Action"}},
		{"multiple elements", `["Crime","Drama"]`, []string{"Crime", "Drama"}},
		{"leading whitespace", ` ["Drama"]`, []string{"Drama"}},
		{"plain text", "not json", []string{}},
		{"empty", "", []string{}},
		{"structured-looking but malformed", `["Drama"`, []string{}},
		{"object instead of array", `{"name":"Drama"}`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeStringList(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("DecodeStringList(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatBudget(t *testing.T) {
	tests := []struct {
		budget int64
		want   string
	}{
		{1000000, "$1,000,000"},
		{0, "$0"},
		{999, "$999"},
		{25000000, "$25,000,000"},
	}

	for _, tt := range tests {
		if got := FormatBudget(tt.budget); got != tt.want {
			t.Fatalf("FormatBudget(%d) = %q, want %q", tt.budget, got, tt.want)
		}
	}
}

func TestDetailFromRow_DefaultsLanguageToUnknown(t *testing.T) {
	row := &database.MovieDetail{
		IMDBID:   "tt0109830",
		Title:    "Forrest Gump",
		Language: "",
	}

	detail := DetailFromRow(row)
	if detail.OriginalLanguage != UnknownLanguage {
		t.Fatalf("expected original_language %q, got %q", UnknownLanguage, detail.OriginalLanguage)
	}
}

func TestDetailFromRow_KeepsRecordedLanguage(t *testing.T) {
	row := &database.MovieDetail{
		IMDBID:   "tt0111161",
		Language: "en",
	}

	if got := DetailFromRow(row).OriginalLanguage; got != "en" {
		t.Fatalf("expected original_language en, got %q", got)
	}
}

func TestDetailFromRow_MapsOverviewToDescription(t *testing.T) {
	rating := 4.0
	row := &database.MovieDetail{
		IMDBID:        "tt0111161",
		Title:         "The Shawshank Redemption",
		Overview:      "Two imprisoned men bond over a number of years.",
		ReleaseDate:   "1994-09-23",
		Runtime:       142,
		Language:      "en",
		GenresRaw:     `["Drama"]`,
		CompaniesRaw:  `["Castle Rock Entertainment"]`,
		Budget:        25000000,
		AverageRating: &rating,
	}

	detail := DetailFromRow(row)
	if detail.Description != row.Overview {
		t.Fatalf("expected description %q, got %q", row.Overview, detail.Description)
	}
	if detail.Budget != "$25,000,000" {
		t.Fatalf("expected formatted budget, got %q", detail.Budget)
	}
	if !reflect.DeepEqual(detail.Genres, []string{"Drama"}) {
		t.Fatalf("expected decoded genres, got %v", detail.Genres)
	}
	if !reflect.DeepEqual(detail.ProductionCompanies, []string{"Castle Rock Entertainment"}) {
		t.Fatalf("expected decoded companies, got %v", detail.ProductionCompanies)
	}
	if detail.AverageRating == nil || *detail.AverageRating != 4.0 {
		t.Fatalf("expected average rating 4.0, got %v", detail.AverageRating)
	}
}

func TestSummaries_EmptyInputEncodesAsEmptySlice(t *testing.T) {
	out := Summaries(nil)
	if out == nil {
		t.Fatal("expected non-nil slice so JSON encodes as []")
	}
	if len(out) != 0 {
		t.Fatalf("expected empty slice, got %d entries", len(out))
	}
}

func TestSummaryFromRow(t *testing.T) {
	row := &database.MovieSummary{
		IMDBID:      "tt0120737",
		Title:       "The Fellowship of the Ring",
		GenresRaw:   `["Adventure","Fantasy"]`,
		ReleaseDate: "2001-12-19",
		Budget:      1000000,
	}

	summary := SummaryFromRow(row)
	if summary.Budget != "$1,000,000" {
		t.Fatalf("expected budget $1,000,000, got %q", summary.Budget)
	}
	if !reflect.DeepEqual(summary.Genres, []string{"Adventure", "Fantasy"}) {
		t.Fatalf("expected decoded genres, got %v", summary.Genres)
	}
}
