package auth

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

func testHandler(t *testing.T) (*gin.Engine, *Repo, TokenService) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			token_version INTEGER NOT NULL DEFAULT 0,
			created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}

	repo := NewRepo(db)
	tokens := TokenService{Secret: []byte("test-secret"), Issuer: "moviebot", Duration: time.Hour}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(repo, tokens).RegisterRoutes(router.Group("/auth"))
	return router, repo, tokens
}

func seedUser(t *testing.T, repo *Repo, password string) *User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := User{
		ID:           "u1",
		Username:     "moviefan",
		Email:        "fan@example.com",
		PasswordHash: string(hash),
	}
	if err := repo.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &u
}

func doPost(t *testing.T, router *gin.Engine, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	router, repo, _ := testHandler(t)
	seedUser(t, repo, "correct-horse")

	w := doPost(t, router, "/auth/login", "", map[string]string{
		"email": "fan@example.com", "password": "correct-horse",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login response has no token")
	}

	w = doPost(t, router, "/auth/login", "", map[string]string{
		"email": "fan@example.com", "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: status = %d, want 401", w.Code)
	}
}

func TestChangePassword(t *testing.T) {
	router, repo, tokens := testHandler(t)
	u := seedUser(t, repo, "old-password")

	token, _, err := tokens.Sign(u)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	w := doPost(t, router, "/auth/change-password", token, map[string]string{
		"old_password": "old-password", "new_password": "new-password-1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	// new hash stored
	updated, err := repo.GetByID(context.Background(), u.ID)
	if err != nil || updated == nil {
		t.Fatalf("reload user: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("new-password-1")) != nil {
		t.Error("stored hash does not match the new password")
	}

	// token version bumped, so the old token no longer works
	if updated.TokenVersion != u.TokenVersion+1 {
		t.Errorf("token version = %d, want %d", updated.TokenVersion, u.TokenVersion+1)
	}
	w = doPost(t, router, "/auth/change-password", token, map[string]string{
		"old_password": "new-password-1", "new_password": "another-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("stale token: status = %d, want 401", w.Code)
	}
}

func TestChangePasswordRejectsWrongOldPassword(t *testing.T) {
	router, repo, tokens := testHandler(t)
	u := seedUser(t, repo, "old-password")

	token, _, err := tokens.Sign(u)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	w := doPost(t, router, "/auth/change-password", token, map[string]string{
		"old_password": "not-the-password", "new_password": "new-password-1",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	// hash unchanged
	updated, err := repo.GetByID(context.Background(), u.ID)
	if err != nil || updated == nil {
		t.Fatalf("reload user: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("old-password")) != nil {
		t.Error("stored hash changed despite the rejected request")
	}
}

func TestChangePasswordValidatesNewPassword(t *testing.T) {
	router, repo, tokens := testHandler(t)
	u := seedUser(t, repo, "old-password")

	token, _, err := tokens.Sign(u)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	w := doPost(t, router, "/auth/change-password", token, map[string]string{
		"old_password": "old-password", "new_password": "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
