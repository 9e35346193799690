package bot

import (
	"strings"
	"testing"
	"unicode/utf8"

	"moviebot/pkg/models"
)

func TestStars(t *testing.T) {
	tests := []struct {
		rating float64
		want   int
	}{
		{9.3, 9},
		{8.0, 8},
		{0.5, 0},
		{0, 0},
		{-1, 0},
		{12, 10},
	}

	for _, tc := range tests {
		got := strings.Count(Stars(tc.rating), "⭐")
		if got != tc.want {
			t.Errorf("Stars(%.1f) has %d stars, want %d", tc.rating, got, tc.want)
		}
	}
}

func TestPreviewOverview(t *testing.T) {
	long := strings.Repeat("a", 150)
	accented := strings.Repeat("a", 99) + "élan vital"

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"short kept whole", "a short plot", "a short plot"},
		{"long truncated", long, long[:100] + "..."},
		{"whitespace trimmed", "  plot  ", "plot"},
		{"multi-byte char at the limit", accented, strings.Repeat("a", 99) + "é..."},
		{"counts runes not bytes", strings.Repeat("é", 100), strings.Repeat("é", 100)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := previewOverview(tc.in)
			if got != tc.want {
				t.Errorf("previewOverview = %q, want %q", got, tc.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("preview is invalid UTF-8: %q", got)
			}
		})
	}
}

func TestFormatMovieCard(t *testing.T) {
	m := models.Movie{
		ID:       1,
		Title:    "Dumb & Dumber",
		Year:     1994,
		Genre:    "Comedy",
		Rating:   7.3,
		Overview: "Two good-hearted but incredibly stupid friends.",
	}

	card := FormatMovieCard(m)

	for _, want := range []string{
		"Dumb &amp; Dumber", // HTML-escaped
		"<b>Year:</b> 1994",
		"<b>Genre:</b> Comedy",
		"7.3/10",
		"Two good-hearted",
	} {
		if !strings.Contains(card, want) {
			t.Errorf("card missing %q:\n%s", want, card)
		}
	}
}

func TestFormatMovieCardUnknownGenre(t *testing.T) {
	card := FormatMovieCard(models.Movie{Title: "X", Year: 2000})
	if !strings.Contains(card, "<b>Genre:</b> Unknown") {
		t.Errorf("empty genre should render as Unknown:\n%s", card)
	}
}

func TestFormatTopList(t *testing.T) {
	movies := []models.Movie{
		{Title: "First", Year: 2001, Genre: "Drama", Rating: 9.0, Overview: strings.Repeat("x", 150)},
		{Title: "Second", Year: 1999, Genre: "Action", Rating: 8.5},
	}

	withOverview := FormatTopList("🏆 <b>TOP</b>", movies, true)
	for _, want := range []string{
		"<b>1. First</b> (2001)",
		"<b>2. Second</b> (1999)",
		"9.0/10",
		"📝 " + strings.Repeat("x", 100) + "...",
	} {
		if !strings.Contains(withOverview, want) {
			t.Errorf("list missing %q", want)
		}
	}

	bare := FormatTopList("header", movies, false)
	if strings.Contains(bare, "📝") {
		t.Error("overview rendered even though withOverview=false")
	}
}
