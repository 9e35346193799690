package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"moviebot/internal/catalog"
	"moviebot/internal/favorites"
	"moviebot/internal/telegram"
	"moviebot/pkg/models"
)

// Sender is the outbound half of the Telegram client. Tests swap in a
// recorder.
type Sender interface {
	SendMessage(ctx context.Context, req telegram.SendMessageRequest) (*telegram.Message, error)
	SendPhoto(ctx context.Context, req telegram.SendPhotoRequest) error
	EditMessageText(ctx context.Context, req telegram.EditMessageTextRequest) error
	AnswerCallbackQuery(ctx context.Context, req telegram.AnswerCallbackQueryRequest) error
}

// UpdateSource is the inbound half (long polling).
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeout int) ([]telegram.Update, error)
}

type Bot struct {
	API       Sender
	Catalog   *catalog.Repo
	Favorites *favorites.Repo
	Logger    *log.Logger
}

func New(api Sender, catalogRepo *catalog.Repo, favRepo *favorites.Repo, logger *log.Logger) *Bot {
	if logger == nil {
		logger = log.Default()
	}
	return &Bot{API: api, Catalog: catalogRepo, Favorites: favRepo, Logger: logger}
}

// Run polls for updates until the context is canceled. Every update is
// independent, so each one is handled in its own goroutine.
func (b *Bot) Run(ctx context.Context, src UpdateSource, pollTimeout time.Duration) error {
	b.Logger.Println("bot polling for updates")

	var offset int64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		updates, err := src.GetUpdates(ctx, offset, int(pollTimeout.Seconds()))
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b.Logger.Printf("get updates: %v", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(3 * time.Second):
			}
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			go b.HandleUpdate(ctx, u)
		}
	}
}

func (b *Bot) HandleUpdate(ctx context.Context, u telegram.Update) {
	switch {
	case u.CallbackQuery != nil:
		b.handleCallback(ctx, u.CallbackQuery)
	case u.Message != nil:
		b.handleMessage(ctx, u.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *telegram.Message) {
	text := strings.TrimSpace(msg.Text)
	chatID := msg.Chat.ID

	switch text {
	case "/start":
		b.sendWelcome(ctx, chatID)
	case "/help", buttonHelp:
		b.sendHelp(ctx, chatID)
	case "/random", buttonRandom:
		b.sendRandom(ctx, chatID)
	case "/top_movies", buttonTop:
		b.sendTopMovies(ctx, chatID)
	case "/top_movies_genre", buttonGenre:
		b.sendGenreMenu(ctx, chatID)
	case "/top_movies_year", buttonYear:
		b.sendYearMenu(ctx, chatID)
	case "":
		// non-text update, nothing to do
	default:
		b.searchByTitle(ctx, chatID, text)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) {
	data := cb.Data
	var chatID, messageID int64
	if cb.Message != nil {
		chatID = cb.Message.Chat.ID
		messageID = cb.Message.MessageID
	}

	switch {
	case strings.HasPrefix(data, "favorite_"):
		b.saveFavorite(ctx, cb)
	case data == "top_year_classic":
		b.answerTopList(ctx, cb, chatID, messageID,
			"🎞️ <b>TOP 10 CLASSIC MOVIES (1920-1999)</b> 🎬",
			catalog.TopQuery{MaxYear: 2000, Limit: 10},
			"❌ No classic movies found")
	case strings.HasPrefix(data, "top_genre_"):
		genre, ok := catalog.CanonicalGenre(strings.TrimPrefix(data, "top_genre_"))
		if !ok {
			b.answerCallback(ctx, cb.ID, "❌ Unknown genre", true)
			return
		}
		b.answerTopList(ctx, cb, chatID, messageID,
			fmt.Sprintf("🎭 <b>TOP 10 MOVIES - %s</b> 🎬", strings.ToUpper(genre)),
			catalog.TopQuery{Genre: genre, Limit: 10},
			fmt.Sprintf("❌ No movies found in genre '%s'", genre))
	case strings.HasPrefix(data, "top_year_"):
		year, err := strconv.Atoi(strings.TrimPrefix(data, "top_year_"))
		if err != nil || year < 1920 || year > 2020 {
			b.answerCallback(ctx, cb.ID, "❌ Unknown year", true)
			return
		}
		b.answerTopList(ctx, cb, chatID, messageID,
			fmt.Sprintf("📅 <b>TOP 10 MOVIES - %d</b> 🎬", year),
			catalog.TopQuery{Year: year, Limit: 10},
			fmt.Sprintf("❌ No movies found for year %d", year))
	case strings.HasPrefix(data, "help_"):
		b.handleHelpShortcut(ctx, cb)
	default:
		b.answerCallback(ctx, cb.ID, "", false)
	}
}

func (b *Bot) handleHelpShortcut(ctx context.Context, cb *telegram.CallbackQuery) {
	if cb.Message == nil {
		b.answerCallback(ctx, cb.ID, "", false)
		return
	}
	chatID := cb.Message.Chat.ID

	switch strings.TrimPrefix(cb.Data, "help_") {
	case "random":
		b.sendRandom(ctx, chatID)
	case "top_rated":
		b.sendTopMovies(ctx, chatID)
	case "genre":
		b.sendGenreMenu(ctx, chatID)
	case "year":
		b.sendYearMenu(ctx, chatID)
	}
	b.answerCallback(ctx, cb.ID, "", false)
}

func (b *Bot) sendWelcome(ctx context.Context, chatID int64) {
	b.send(ctx, telegram.SendMessageRequest{
		ChatID:      chatID,
		Text:        WelcomeText(),
		ParseMode:   "HTML",
		ReplyMarkup: mainKeyboard(),
	})
}

func (b *Bot) sendHelp(ctx context.Context, chatID int64) {
	b.send(ctx, telegram.SendMessageRequest{
		ChatID:      chatID,
		Text:        HelpText(),
		ParseMode:   "HTML",
		ReplyMarkup: helpKeyboard(),
	})
}

func (b *Bot) sendRandom(ctx context.Context, chatID int64) {
	m, err := b.Catalog.Random(ctx)
	if err != nil {
		b.Logger.Printf("random query: %v", err)
		b.sendPlain(ctx, chatID, "❌ Something went wrong, try again later")
		return
	}
	if m == nil {
		b.sendPlain(ctx, chatID, "❌ No movies found in database")
		return
	}
	b.sendMovieCard(ctx, chatID, *m)
}

func (b *Bot) sendTopMovies(ctx context.Context, chatID int64) {
	movies, err := b.Catalog.Top(ctx, catalog.TopQuery{Limit: 10})
	if err != nil {
		b.Logger.Printf("top query: %v", err)
		b.sendPlain(ctx, chatID, "❌ Something went wrong, try again later")
		return
	}
	if len(movies) == 0 {
		b.sendPlain(ctx, chatID, "🎬 No movies found in database")
		return
	}

	b.send(ctx, telegram.SendMessageRequest{
		ChatID:                chatID,
		Text:                  FormatTopList("🏆 <b>TOP 10 MOVIES BY RATING</b> 🎬", movies, true),
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
}

func (b *Bot) sendGenreMenu(ctx context.Context, chatID int64) {
	b.send(ctx, telegram.SendMessageRequest{
		ChatID:      chatID,
		Text:        "🎭 <b>Select a genre to view top movies:</b>",
		ParseMode:   "HTML",
		ReplyMarkup: genreKeyboard(),
	})
}

func (b *Bot) sendYearMenu(ctx context.Context, chatID int64) {
	b.send(ctx, telegram.SendMessageRequest{
		ChatID:      chatID,
		Text:        "📅 <b>Select a year to view top movies:</b>",
		ParseMode:   "HTML",
		ReplyMarkup: yearKeyboard(),
	})
}

func (b *Bot) searchByTitle(ctx context.Context, chatID int64, title string) {
	m, err := b.Catalog.ByTitle(ctx, title)
	if err != nil {
		b.Logger.Printf("title search: %v", err)
		b.sendPlain(ctx, chatID, "❌ An error occurred during search")
		return
	}
	if m == nil {
		b.sendPlain(ctx, chatID, NotFoundText(title))
		return
	}

	b.sendPlain(ctx, chatID, "✅ Found it! Here's the movie:")
	b.sendMovieCard(ctx, chatID, *m)
}

// sendMovieCard sends the poster first when one exists; a poster failure
// degrades to text only.
func (b *Bot) sendMovieCard(ctx context.Context, chatID int64, m models.Movie) {
	if m.ImgURL != "" {
		if err := b.API.SendPhoto(ctx, telegram.SendPhotoRequest{ChatID: chatID, Photo: m.ImgURL}); err != nil {
			b.Logger.Printf("send poster for %q: %v", m.Title, err)
		}
	}

	b.send(ctx, telegram.SendMessageRequest{
		ChatID:      chatID,
		Text:        FormatMovieCard(m),
		ParseMode:   "HTML",
		ReplyMarkup: favoriteKeyboard(m.ID),
	})
}

// answerTopList answers an inline-keyboard selection by editing the menu
// message in place.
func (b *Bot) answerTopList(ctx context.Context, cb *telegram.CallbackQuery, chatID, messageID int64, header string, q catalog.TopQuery, emptyText string) {
	movies, err := b.Catalog.Top(ctx, q)
	if err != nil {
		b.Logger.Printf("top query for %q: %v", header, err)
		b.answerCallback(ctx, cb.ID, "❌ Something went wrong", true)
		return
	}
	if len(movies) == 0 {
		b.answerCallback(ctx, cb.ID, emptyText, true)
		return
	}

	if err := b.API.EditMessageText(ctx, telegram.EditMessageTextRequest{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      FormatTopList(header, movies, false),
		ParseMode: "HTML",
	}); err != nil {
		b.Logger.Printf("edit message: %v", err)
	}
	b.answerCallback(ctx, cb.ID, "", false)
}

func (b *Bot) saveFavorite(ctx context.Context, cb *telegram.CallbackQuery) {
	movieID, err := strconv.ParseInt(strings.TrimPrefix(cb.Data, "favorite_"), 10, 64)
	if err != nil || cb.From == nil {
		b.answerCallback(ctx, cb.ID, "❌ Error adding to favorites", false)
		return
	}

	userID := fmt.Sprintf("tg:%d", cb.From.ID)
	added, err := b.Favorites.Add(ctx, userID, movieID)
	if err != nil {
		b.Logger.Printf("save favorite %d for %s: %v", movieID, userID, err)
		b.answerCallback(ctx, cb.ID, "❌ Error adding to favorites", false)
		return
	}

	if added {
		b.answerCallback(ctx, cb.ID, "⭐ Added to favorites!", true)
	} else {
		b.answerCallback(ctx, cb.ID, "⭐ Already in your favorites", true)
	}
}

func (b *Bot) send(ctx context.Context, req telegram.SendMessageRequest) {
	if _, err := b.API.SendMessage(ctx, req); err != nil {
		b.Logger.Printf("send message to %d: %v", req.ChatID, err)
	}
}

func (b *Bot) sendPlain(ctx context.Context, chatID int64, text string) {
	b.send(ctx, telegram.SendMessageRequest{ChatID: chatID, Text: text})
}

func (b *Bot) answerCallback(ctx context.Context, id, text string, alert bool) {
	if err := b.API.AnswerCallbackQuery(ctx, telegram.AnswerCallbackQueryRequest{
		CallbackQueryID: id,
		Text:            text,
		ShowAlert:       alert,
	}); err != nil {
		b.Logger.Printf("answer callback: %v", err)
	}
}
