package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"moviebot/internal/catalog"
	"moviebot/pkg/models"
)

// Responder answers the same commands inside chat rooms, where replies are
// plain text lines instead of Telegram messages.
type Responder struct {
	Catalog *catalog.Repo
}

func NewResponder(repo *catalog.Repo) *Responder {
	return &Responder{Catalog: repo}
}

func (r *Responder) Reply(ctx context.Context, text string) []string {
	text = strings.TrimSpace(text)
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	cmd := fields[0]
	arg := strings.TrimSpace(strings.TrimPrefix(text, cmd))

	switch cmd {
	case "/help":
		return []string{
			"Commands: /random, /top_movies, /top_movies_genre <genre>, /top_movies_year <year>, or type a movie title.",
		}
	case "/random":
		m, err := r.Catalog.Random(ctx)
		if err != nil || m == nil {
			return []string{"No movies found."}
		}
		return []string{movieLine(*m), previewOverview(m.Overview)}
	case "/top_movies":
		return r.topLines(ctx, catalog.TopQuery{Limit: 10}, "No movies found.")
	case "/top_movies_genre":
		genre, ok := catalog.CanonicalGenre(arg)
		if !ok {
			return []string{"Pick one of: " + strings.Join(catalog.Genres, ", ")}
		}
		return r.topLines(ctx, catalog.TopQuery{Genre: genre, Limit: 10},
			fmt.Sprintf("No movies found in genre '%s'.", genre))
	case "/top_movies_year":
		year, err := strconv.Atoi(arg)
		if err != nil || year < 1920 || year > 2020 {
			return []string{"Usage: /top_movies_year <1920-2020>"}
		}
		return r.topLines(ctx, catalog.TopQuery{Year: year, Limit: 10},
			fmt.Sprintf("No movies found for year %d.", year))
	default:
		if strings.HasPrefix(cmd, "/") {
			return []string{"Unknown command, try /help."}
		}
		m, err := r.Catalog.ByTitle(ctx, text)
		if err != nil || m == nil {
			return []string{fmt.Sprintf("Couldn't find '%s' in the catalog.", strings.TrimSpace(text))}
		}
		return []string{movieLine(*m), previewOverview(m.Overview)}
	}
}

func (r *Responder) topLines(ctx context.Context, q catalog.TopQuery, emptyText string) []string {
	movies, err := r.Catalog.Top(ctx, q)
	if err != nil || len(movies) == 0 {
		return []string{emptyText}
	}
	lines := make([]string, 0, len(movies))
	for i, m := range movies {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, movieLine(m)))
	}
	return lines
}

func movieLine(m models.Movie) string {
	return fmt.Sprintf("%s (%d) ⭐ %.1f/10 · %s", m.Title, m.Year, m.Rating, genreOrUnknown(m.Genre))
}
