package catalog

import "strings"

// Genres is the fixed set of genre labels present in the catalog.
var Genres = []string{
	"Action", "Adventure", "Animation", "Biography", "Comedy",
	"Crime", "Drama", "Family", "Fantasy", "Film-Noir",
	"History", "Horror", "Music", "Musical", "Mystery",
	"Romance", "Sci-Fi", "Sport", "Thriller", "War", "Western",
}

// CanonicalGenre maps user input onto one of the known labels,
// case-insensitively. Unknown labels are rejected before any SQL is built.
func CanonicalGenre(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, g := range Genres {
		if strings.EqualFold(g, s) {
			return g, true
		}
	}
	return "", false
}
