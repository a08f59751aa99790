package metadata

import "testing"

func TestNormalizeLanguage(t *testing.T) {
	tests := map[string]string{
		"":      "en-US",
		"en":    "en-US",
		"en_US": "en-US",
		"pt-br": "pt-BR",
		"fr-FR": "fr-FR",
		"es":    "es-US",
	}
	for input, expect := range tests {
		if got := normalizeLanguage(input); got != expect {
			t.Fatalf("normalizeLanguage(%q) = %q, want %q", input, got, expect)
		}
	}
}

func TestBuildImageURL(t *testing.T) {
	if got := buildImageURL("", tmdbPosterSize); got != "" {
		t.Fatalf("expected empty string for empty path, got %q", got)
	}
	if got := buildImageURL("/poster.png", tmdbPosterSize); got != "https://image.tmdb.org/t/p/w500/poster.png" {
		t.Fatalf("unexpected image url: %s", got)
	}
}

func TestCanonicalIMDBID(t *testing.T) {
	if got := canonicalIMDBID(tmdbTitle{IMDBID: "tt0111161"}); got != "tt0111161" {
		t.Fatalf("expected top-level id, got %q", got)
	}
	if got := canonicalIMDBID(tmdbTitle{ExternalIDs: &tmdbExternalIDs{IMDBID: "tt0903747"}}); got != "tt0903747" {
		t.Fatalf("expected nested id, got %q", got)
	}
	// Top-level id wins over the nested block.
	withBoth := tmdbTitle{IMDBID: "tt0111161", ExternalIDs: &tmdbExternalIDs{IMDBID: "tt0903747"}}
	if got := canonicalIMDBID(withBoth); got != "tt0111161" {
		t.Fatalf("expected top-level id to win, got %q", got)
	}
	if got := canonicalIMDBID(tmdbTitle{}); got != "" {
		t.Fatalf("expected absence, got %q", got)
	}
}

func TestMapTitleDropsSpecialsSeason(t *testing.T) {
	raw := tmdbTitle{
		ID:   100,
		Name: "Some Show",
		Seasons: []tmdbSeason{
			{ID: 1, Name: "Specials", SeasonNumber: 0},
			{ID: 2, Name: "Season 1", SeasonNumber: 1},
			{ID: 3, Name: "Season 2", SeasonNumber: 2},
		},
	}

	title := mapTitle(raw, "series")
	if len(title.Seasons) != 2 {
		t.Fatalf("expected 2 seasons, got %d", len(title.Seasons))
	}
	for _, s := range title.Seasons {
		if s.SeasonNumber == 0 {
			t.Fatal("season 0 should be filtered out")
		}
	}
}

func TestMapTitleNameAndReleaseFallbacks(t *testing.T) {
	series := mapTitle(tmdbTitle{Name: "Show", FirstAirDate: "2020-01-01"}, "series")
	if series.Title != "Show" {
		t.Fatalf("expected name fallback, got %q", series.Title)
	}
	if series.ReleaseDate != "2020-01-01" {
		t.Fatalf("expected first_air_date fallback, got %q", series.ReleaseDate)
	}

	movie := mapTitle(tmdbTitle{Title: "Film", ReleaseDate: "1999-03-31"}, "movie")
	if movie.Title != "Film" || movie.ReleaseDate != "1999-03-31" {
		t.Fatalf("unexpected movie mapping: %+v", movie)
	}
}

func TestMapTitleMissingImagesAreEmptyStrings(t *testing.T) {
	title := mapTitle(tmdbTitle{ID: 5, Title: "Bare"}, "movie")
	if title.PosterPath != "" || title.BackdropPath != "" {
		t.Fatalf("expected empty image paths, got %q / %q", title.PosterPath, title.BackdropPath)
	}
	if title.IMDBID != "" {
		t.Fatalf("expected absent imdb id, got %q", title.IMDBID)
	}
	if title.Genres == nil {
		t.Fatal("genres should default to an empty slice")
	}
}

func TestNormalizeMediaType(t *testing.T) {
	tests := map[string]string{
		"tv":     "series",
		"series": "series",
		"show":   "series",
		"movie":  "movie",
		"film":   "movie",
		"":       "movie",
		"other":  "movie",
	}
	for input, expect := range tests {
		if got := normalizeMediaType(input); got != expect {
			t.Fatalf("normalizeMediaType(%q) = %q, want %q", input, got, expect)
		}
	}
}

func TestTMDBKindPath(t *testing.T) {
	if got := tmdbKindPath("series"); got != "tv" {
		t.Fatalf("expected tv, got %q", got)
	}
	if got := tmdbKindPath("movie"); got != "movie" {
		t.Fatalf("expected movie, got %q", got)
	}
}
