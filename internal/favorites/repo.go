package favorites

import (
	"context"
	"database/sql"
	"fmt"

	"moviebot/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Add saves a movie for a user. Saving the same movie twice is a no-op;
// the returned bool reports whether a new row was written.
func (r *Repo) Add(ctx context.Context, userID string, movieID int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO favorites (user_id, movie_id)
		VALUES (?, ?)
		ON CONFLICT(user_id, movie_id) DO NOTHING
	`, userID, movieID)
	if err != nil {
		return false, fmt.Errorf("add favorite: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add favorite rows: %w", err)
	}
	return affected > 0, nil
}

func (r *Repo) Remove(ctx context.Context, userID string, movieID int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM favorites
		WHERE user_id = ? AND movie_id = ?
	`, userID, movieID)
	if err != nil {
		return false, fmt.Errorf("remove favorite: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove favorite rows: %w", err)
	}
	return affected > 0, nil
}

func (r *Repo) List(ctx context.Context, userID string, limit, offset int) ([]models.FavoriteItem, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	row := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM favorites WHERE user_id = ?
	`, userID)
	if err := row.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count favorites: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT f.movie_id, m.title, m.year, m.rating, f.created_at
		FROM favorites f
		JOIN movies m ON m.id = f.movie_id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC, f.movie_id DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	out := make([]models.FavoriteItem, 0, limit)
	for rows.Next() {
		var (
			it     models.FavoriteItem
			year   sql.NullInt64
			rating sql.NullFloat64
		)
		if err := rows.Scan(&it.MovieID, &it.Title, &year, &rating, &it.SavedAt); err != nil {
			return nil, 0, fmt.Errorf("scan favorite: %w", err)
		}
		if year.Valid {
			it.Year = int(year.Int64)
		}
		it.Rating = rating.Float64
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows err: %w", err)
	}
	return out, total, nil
}
