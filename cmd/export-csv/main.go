package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"moviebot/pkg/database"
)

// Exports the movies table back to CSV in the same column layout the
// importer reads.
func main() {
	var (
		out = flag.String("out", "data/movies_export.csv", "output CSV path")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	n, err := exportMovies(ctx, db, *out)
	if err != nil {
		log.Fatalf("export movies failed: %v", err)
	}

	log.Printf("✅ exported %d movies to %s", n, *out)
}

func exportMovies(ctx context.Context, db *sql.DB, path string) (int, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, img, title, year, genre, rating, overview
		FROM movies
		ORDER BY id ASC
	`)
	if err != nil {
		return 0, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "img", "title", "year", "genre", "rating", "overview"}); err != nil {
		return 0, err
	}

	count := 0
	for rows.Next() {
		var (
			id       int64
			img      sql.NullString
			title    string
			year     sql.NullInt64
			genre    sql.NullString
			rating   sql.NullFloat64
			overview sql.NullString
		)
		if err := rows.Scan(&id, &img, &title, &year, &genre, &rating, &overview); err != nil {
			return count, fmt.Errorf("scan movie: %w", err)
		}

		record := []string{
			strconv.FormatInt(id, 10),
			img.String,
			title,
			formatNullInt(year),
			genre.String,
			formatNullFloat(rating),
			overview.String,
		}
		if err := w.Write(record); err != nil {
			return count, err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return count, fmt.Errorf("rows err: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return count, err
	}
	return count, nil
}

func formatNullInt(v sql.NullInt64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatInt(v.Int64, 10)
}

func formatNullFloat(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', 1, 64)
}
