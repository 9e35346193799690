package bot

import (
	"fmt"

	"moviebot/internal/catalog"
	"moviebot/internal/telegram"
)

const (
	buttonRandom = "🎲 Random Movie"
	buttonTop    = "🏆 Top Movies"
	buttonGenre  = "🎭 By Genre"
	buttonYear   = "📅 By Year"
	buttonHelp   = "ℹ️ Help"
)

func mainKeyboard() telegram.ReplyKeyboardMarkup {
	return telegram.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]telegram.KeyboardButton{
			{{Text: buttonRandom}, {Text: buttonTop}},
			{{Text: buttonGenre}, {Text: buttonYear}},
			{{Text: buttonHelp}},
		},
	}
}

// genreKeyboard lays the 21 genre labels out two per row.
func genreKeyboard() telegram.InlineKeyboardMarkup {
	var rows [][]telegram.InlineKeyboardButton
	var row []telegram.InlineKeyboardButton
	for _, g := range catalog.Genres {
		row = append(row, telegram.InlineKeyboardButton{
			Text:         g,
			CallbackData: "top_genre_" + g,
		})
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// yearKeyboard shows recent years (2020 down to 2000) three per row,
// with one extra button for the 1920-1999 classics bucket.
func yearKeyboard() telegram.InlineKeyboardMarkup {
	var rows [][]telegram.InlineKeyboardButton
	var row []telegram.InlineKeyboardButton
	for year := 2020; year >= 2000; year-- {
		row = append(row, telegram.InlineKeyboardButton{
			Text:         fmt.Sprintf("%d", year),
			CallbackData: fmt.Sprintf("top_year_%d", year),
		})
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []telegram.InlineKeyboardButton{
		{Text: "🎞️ Classic Movies (1920-1999)", CallbackData: "top_year_classic"},
	})
	return telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func favoriteKeyboard(movieID int64) telegram.InlineKeyboardMarkup {
	return telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: "⭐ Add to Favorites", CallbackData: fmt.Sprintf("favorite_%d", movieID)}},
		},
	}
}

func helpKeyboard() telegram.InlineKeyboardMarkup {
	return telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{
				{Text: "🏆 Top Rated", CallbackData: "help_top_rated"},
				{Text: "🎭 By Genre", CallbackData: "help_genre"},
			},
			{
				{Text: "📅 By Year", CallbackData: "help_year"},
				{Text: "🎲 Random", CallbackData: "help_random"},
			},
		},
	}
}
