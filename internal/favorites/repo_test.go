package favorites

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func testRepo(t *testing.T) *Repo {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE movies (
			id INTEGER PRIMARY KEY, img TEXT, title TEXT NOT NULL,
			year INTEGER, genre TEXT, rating REAL, overview TEXT
		);
		CREATE TABLE favorites (
			user_id TEXT NOT NULL, movie_id INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, movie_id)
		);
		INSERT INTO movies (id, title, year, rating) VALUES
			(1, 'The Godfather', 1972, 9.2),
			(2, 'Parasite', 2019, 8.6);
	`)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	return NewRepo(db)
}

func TestAddIsIdempotent(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	added, err := repo.Add(ctx, "tg:1", 1)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !added {
		t.Fatal("first add should report a new row")
	}

	added, err = repo.Add(ctx, "tg:1", 1)
	if err != nil {
		t.Fatalf("second Add: %v", err)
	}
	if added {
		t.Fatal("second add should be a no-op")
	}

	_, total, err := repo.List(ctx, "tg:1", 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 {
		t.Fatalf("total = %d, want 1", total)
	}
}

func TestListJoinsMovies(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if _, err := repo.Add(ctx, "u1", 1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := repo.Add(ctx, "u1", 2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := repo.Add(ctx, "u2", 1); err != nil {
		t.Fatalf("Add: %v", err)
	}

	items, total, err := repo.List(ctx, "u1", 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("got %d/%d, want 2/2", len(items), total)
	}

	titles := map[string]bool{}
	for _, it := range items {
		titles[it.Title] = true
		if it.SavedAt.IsZero() {
			t.Errorf("saved_at not populated for %q", it.Title)
		}
	}
	if !titles["The Godfather"] || !titles["Parasite"] {
		t.Errorf("unexpected titles: %v", titles)
	}
}

func TestRemove(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if _, err := repo.Add(ctx, "u1", 1); err != nil {
		t.Fatalf("Add: %v", err)
	}

	ok, err := repo.Remove(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !ok {
		t.Fatal("existing favorite should be removed")
	}

	ok, err = repo.Remove(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	if ok {
		t.Fatal("second remove should report not found")
	}
}
