package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"moviebot/pkg/models"
)

const defaultTopLimit = 10

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// TopQuery selects ranked movies. Zero values mean "no filter".
type TopQuery struct {
	Genre   string // must be one of Genres (callers validate via CanonicalGenre)
	Year    int    // exact year
	MaxYear int    // exclusive upper bound, used for the classics bucket
	OrderBy string // rating, year or title; anything else falls back to rating
	Limit   int
}

// ListQuery is the paginated browse used by the HTTP API.
type ListQuery struct {
	Q      string   // keyword search in title
	Genres []string // any-match
	Year   int
	Limit  int
	Offset int
}

const movieColumns = `id, img, title, year, genre, rating, overview`

// Random returns one uniformly chosen catalog row, or nil on an empty catalog.
func (r *Repo) Random(ctx context.Context) (*models.Movie, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+movieColumns+`
		FROM movies
		ORDER BY RANDOM()
		LIMIT 1
	`)
	m, err := scanMovie(row)
	if err != nil {
		return nil, fmt.Errorf("random: %w", err)
	}
	return m, nil
}

// ByTitle is the case-insensitive exact lookup. The title is always a bound
// parameter, so SQL syntax inside it matches nothing instead of executing.
func (r *Repo) ByTitle(ctx context.Context, title string) (*models.Movie, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+movieColumns+`
		FROM movies
		WHERE LOWER(title) = LOWER(?)
		LIMIT 1
	`, strings.TrimSpace(title))
	m, err := scanMovie(row)
	if err != nil {
		return nil, fmt.Errorf("by title: %w", err)
	}
	return m, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+movieColumns+`
		FROM movies
		WHERE id = ?
	`, id)
	m, err := scanMovie(row)
	if err != nil {
		return nil, fmt.Errorf("get by id: %w", err)
	}
	return m, nil
}

// Top returns up to q.Limit movies ordered by the requested column
// descending. Rows without a rating are excluded.
func (r *Repo) Top(ctx context.Context, q TopQuery) ([]models.Movie, error) {
	sqlStr, args := buildTopSQL(q)

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("top query: %w", err)
	}
	defer rows.Close()

	return collectMovies(rows, q.Limit)
}

func (r *Repo) Count(ctx context.Context, q ListQuery) (int, error) {
	sqlStr, args := buildListSQL(q, true)
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	var total int
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return total, nil
}

func (r *Repo) List(ctx context.Context, q ListQuery) ([]models.Movie, error) {
	sqlStr, args := buildListSQL(q, false)

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	return collectMovies(rows, q.Limit)
}

// orderColumn checks a requested sort column against the fixed allow-list.
// This is the only place a free-standing identifier reaches SQL text.
func orderColumn(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rating", "year", "title":
		return strings.ToLower(strings.TrimSpace(s))
	default:
		return "rating"
	}
}

func buildTopSQL(q TopQuery) (string, []any) {
	var where []string
	var args []any

	where = append(where, "rating IS NOT NULL")

	if q.Genre != "" {
		where = append(where, "genre LIKE ?")
		args = append(args, "%"+q.Genre+"%")
	}
	if q.Year != 0 {
		where = append(where, "year = ?")
		args = append(args, q.Year)
	}
	if q.MaxYear != 0 {
		where = append(where, "year < ?")
		args = append(args, q.MaxYear)
	}

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = defaultTopLimit
	}
	args = append(args, limit)

	sqlStr := `SELECT ` + movieColumns + `
		FROM movies
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY ` + orderColumn(q.OrderBy) + ` DESC
		LIMIT ?`
	return sqlStr, args
}

func buildListSQL(q ListQuery, countOnly bool) (string, []any) {
	baseSelect := `SELECT ` + movieColumns + ` FROM movies`
	if countOnly {
		baseSelect = `SELECT COUNT(*) FROM movies`
	}

	var where []string
	var args []any

	if strings.TrimSpace(q.Q) != "" {
		where = append(where, "LOWER(title) LIKE ?")
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(q.Q))+"%")
	}

	if q.Year != 0 {
		where = append(where, "year = ?")
		args = append(args, q.Year)
	}

	// any-match genre filter; unknown labels were rejected by the caller
	if len(q.Genres) > 0 {
		var genreOr []string
		for _, g := range q.Genres {
			g = strings.TrimSpace(g)
			if g == "" {
				continue
			}
			genreOr = append(genreOr, "LOWER(genre) LIKE ?")
			args = append(args, "%"+strings.ToLower(g)+"%")
		}
		if len(genreOr) > 0 {
			where = append(where, "("+strings.Join(genreOr, " OR ")+")")
		}
	}

	sqlStr := baseSelect
	if len(where) > 0 {
		sqlStr += " WHERE " + strings.Join(where, " AND ")
	}

	if !countOnly {
		sqlStr += " ORDER BY title ASC"
		sqlStr += " LIMIT ? OFFSET ?"
		limit := q.Limit
		if limit <= 0 || limit > 100 {
			limit = 20
		}
		offset := q.Offset
		if offset < 0 {
			offset = 0
		}
		args = append(args, limit, offset)
	}

	return sqlStr, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (*models.Movie, error) {
	var (
		m        models.Movie
		img      sql.NullString
		year     sql.NullInt64
		genre    sql.NullString
		rating   sql.NullFloat64
		overview sql.NullString
	)

	if err := row.Scan(&m.ID, &img, &m.Title, &year, &genre, &rating, &overview); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	m.ImgURL = img.String
	if year.Valid {
		m.Year = int(year.Int64)
	}
	m.Genre = genre.String
	m.Rating = rating.Float64
	m.Overview = overview.String
	return &m, nil
}

func collectMovies(rows *sql.Rows, capHint int) ([]models.Movie, error) {
	if capHint <= 0 {
		capHint = defaultTopLimit
	}
	out := make([]models.Movie, 0, capHint)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
