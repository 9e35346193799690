package bot

import (
	"fmt"
	"html"
	"strings"

	"moviebot/pkg/models"
)

const (
	overviewPreviewLen = 100
	listDivider        = "   ━━━━━━━━━━━━━━━━━━━\n"
)

// FormatMovieCard renders the single-movie block sent after /random and
// title searches. HTML parse mode; user-supplied text is escaped.
func FormatMovieCard(m models.Movie) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📍 <b>Title:</b> %s\n", html.EscapeString(m.Title))
	fmt.Fprintf(&b, "📍 <b>Year:</b> %d\n", m.Year)
	fmt.Fprintf(&b, "📍 <b>Genre:</b> %s\n", html.EscapeString(genreOrUnknown(m.Genre)))
	fmt.Fprintf(&b, "📍 <b>IMDB Rating:</b> ⭐ %.1f/10\n\n", m.Rating)
	b.WriteString("🔻🔻🔻🔻🔻🔻🔻🔻🔻🔻🔻\n")
	b.WriteString(html.EscapeString(m.Overview))
	return b.String()
}

// FormatTopList renders a ranked list under the given header.
func FormatTopList(header string, movies []models.Movie, withOverview bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", header)

	for i, m := range movies {
		fmt.Fprintf(&b, "<b>%d. %s</b> (%d)\n", i+1, html.EscapeString(m.Title), m.Year)
		fmt.Fprintf(&b, "   ⭐ <b>Rating:</b> %.1f/10 %s\n", m.Rating, Stars(m.Rating))
		fmt.Fprintf(&b, "   🎭 <b>Genre:</b> %s\n", html.EscapeString(genreOrUnknown(m.Genre)))
		if withOverview {
			if short := previewOverview(m.Overview); short != "" {
				fmt.Fprintf(&b, "   📝 %s\n", html.EscapeString(short))
			}
		}
		b.WriteString(listDivider)
	}

	return b.String()
}

// Stars renders one star per whole rating point, capped at ten.
func Stars(rating float64) string {
	n := int(rating)
	if n < 0 {
		n = 0
	}
	if n > 10 {
		n = 10
	}
	return strings.Repeat("⭐", n)
}

// previewOverview cuts on a rune boundary; a byte slice could split a
// multi-byte character and produce invalid UTF-8, which Telegram rejects.
func previewOverview(overview string) string {
	overview = strings.TrimSpace(overview)
	runes := []rune(overview)
	if len(runes) <= overviewPreviewLen {
		return overview
	}
	return string(runes[:overviewPreviewLen]) + "..."
}

func genreOrUnknown(genre string) string {
	if strings.TrimSpace(genre) == "" {
		return "Unknown"
	}
	return genre
}

func WelcomeText() string {
	return `🎬 <b>Welcome to the Ultimate Movie Bot!</b> 🎥

Explore our collection of 1,000+ amazing movies!

<b>Quick Actions:</b>
• Click buttons below for quick access
• Type a movie title to search
• Use /help to see all commands

Enjoy your movie journey! 🍿`
}

func HelpText() string {
	return `ℹ️ <b>AVAILABLE COMMANDS</b>

📋 <b>Main Commands:</b>
• /start - Start the bot
• /help - Show this help menu
• /random - Get a random movie
• /top_movies - Top 10 by rating
• /top_movies_genre - Top by genre
• /top_movies_year - Top by year

🔍 <b>Search:</b>
Just type any movie title to search!

Choose an option below or use the keyboard buttons:`
}

// NotFoundText is sent without a parse mode, so the title stays literal.
func NotFoundText(title string) string {
	return fmt.Sprintf("❌ Sorry, I couldn't find '%s' in the database.\n\n"+
		"Try:\n• Checking the spelling\n• Using /random for a random movie\n"+
		"• Browsing by /top_movies_genre", title)
}
