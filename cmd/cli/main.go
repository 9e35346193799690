package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"moviebot/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type authResponse struct {
	Token string `json:"token"`
}

type movieListResponse struct {
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Items  []models.Movie `json:"items"`
}

func main() {
	global := flag.NewFlagSet("moviebot", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	tokenPath := global.String("token", defaultTokenPath(), "token file path")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}

	client := &http.Client{Timeout: 15 * time.Second}

	switch cmd {
	case "auth":
		handleAuth(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "movies":
		handleMovies(ctx, client, *baseURL, sub, args[2:])
	case "favorites":
		handleFavorites(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "chat":
		handleChat(*baseURL, args[1:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "login":
		fs := flag.NewFlagSet("auth login", flag.ExitOnError)
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *email == "" || *password == "" {
			log.Fatal("email and password are required")
		}

		payload := map[string]string{"email": *email, "password": *password}
		var resp authResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/login", "", payload, &resp); err != nil {
			log.Fatalf("login failed: %v", err)
		}
		if err := saveToken(tokenPath, resp.Token); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Println("✅ logged in")
	case "register":
		fs := flag.NewFlagSet("auth register", flag.ExitOnError)
		username := fs.String("username", "", "username")
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *username == "" || *email == "" || *password == "" {
			log.Fatal("username, email, and password are required")
		}

		payload := map[string]string{"username": *username, "email": *email, "password": *password}
		var resp authResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/register", "", payload, &resp); err != nil {
			log.Fatalf("register failed: %v", err)
		}
		if err := saveToken(tokenPath, resp.Token); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Println("✅ registered and logged in")
	case "logout":
		token := mustToken(tokenPath)
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/logout", token, nil, nil); err != nil {
			log.Printf("server logout failed: %v", err)
		}
		if err := clearToken(tokenPath); err != nil {
			log.Fatalf("logout failed: %v", err)
		}
		fmt.Println("✅ logged out")
	default:
		log.Fatal("usage: moviebot auth <login|register|logout>")
	}
}

func handleMovies(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	switch sub {
	case "search":
		fs := flag.NewFlagSet("movies search", flag.ExitOnError)
		query := fs.String("q", "", "title keyword")
		genres := fs.String("genres", "", "comma-separated genres")
		year := fs.Int("year", 0, "release year")
		limit := fs.Int("limit", 20, "page size")
		offset := fs.Int("offset", 0, "offset")
		_ = fs.Parse(args)

		u, err := url.Parse(baseURL + "/movies")
		if err != nil {
			log.Fatalf("invalid base url: %v", err)
		}
		qv := u.Query()
		if *query != "" {
			qv.Set("q", *query)
		}
		if *genres != "" {
			qv.Set("genres", *genres)
		}
		if *year != 0 {
			qv.Set("year", fmt.Sprintf("%d", *year))
		}
		qv.Set("limit", fmt.Sprintf("%d", *limit))
		qv.Set("offset", fmt.Sprintf("%d", *offset))
		u.RawQuery = qv.Encode()

		var resp movieListResponse
		if err := doJSON(ctx, client, http.MethodGet, u.String(), "", nil, &resp); err != nil {
			log.Fatalf("search failed: %v", err)
		}
		printJSON(resp)
	case "top":
		fs := flag.NewFlagSet("movies top", flag.ExitOnError)
		genre := fs.String("genre", "", "genre filter")
		year := fs.Int("year", 0, "year filter")
		classic := fs.Bool("classic", false, "pre-2000 movies only")
		limit := fs.Int("limit", 10, "list size")
		_ = fs.Parse(args)

		u, err := url.Parse(baseURL + "/top")
		if err != nil {
			log.Fatalf("invalid base url: %v", err)
		}
		qv := u.Query()
		if *genre != "" {
			qv.Set("genre", *genre)
		}
		if *year != 0 {
			qv.Set("year", fmt.Sprintf("%d", *year))
		}
		if *classic {
			qv.Set("classic", "true")
		}
		qv.Set("limit", fmt.Sprintf("%d", *limit))
		u.RawQuery = qv.Encode()

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, u.String(), "", nil, &resp); err != nil {
			log.Fatalf("top failed: %v", err)
		}
		printJSON(resp)
	case "random":
		var resp models.Movie
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/random", "", nil, &resp); err != nil {
			log.Fatalf("random failed: %v", err)
		}
		printJSON(resp)
	case "show":
		fs := flag.NewFlagSet("movies show", flag.ExitOnError)
		id := fs.String("id", "", "movie id")
		_ = fs.Parse(args)
		if *id == "" {
			log.Fatal("movie id is required")
		}

		var resp models.Movie
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/movies/"+url.PathEscape(*id), "", nil, &resp); err != nil {
			log.Fatalf("show failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: moviebot movies <search|top|random|show>")
	}
}

func handleFavorites(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	token := mustToken(tokenPath)
	switch sub {
	case "add":
		fs := flag.NewFlagSet("favorites add", flag.ExitOnError)
		movieID := fs.Int64("movie-id", 0, "movie id")
		_ = fs.Parse(args)
		if *movieID == 0 {
			log.Fatal("movie-id is required")
		}

		payload := map[string]any{"movie_id": *movieID}
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/users/favorites", token, payload, &resp); err != nil {
			log.Fatalf("add failed: %v", err)
		}
		printJSON(resp)
	case "remove":
		fs := flag.NewFlagSet("favorites remove", flag.ExitOnError)
		movieID := fs.Int64("movie-id", 0, "movie id")
		_ = fs.Parse(args)
		if *movieID == 0 {
			log.Fatal("movie-id is required")
		}

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodDelete, fmt.Sprintf("%s/users/favorites/%d", baseURL, *movieID), token, nil, &resp); err != nil {
			log.Fatalf("remove failed: %v", err)
		}
		printJSON(resp)
	case "list":
		fs := flag.NewFlagSet("favorites list", flag.ExitOnError)
		limit := fs.Int("limit", 20, "page size")
		offset := fs.Int("offset", 0, "offset")
		_ = fs.Parse(args)

		u, err := url.Parse(baseURL + "/users/favorites")
		if err != nil {
			log.Fatalf("invalid base url: %v", err)
		}
		qv := u.Query()
		qv.Set("limit", fmt.Sprintf("%d", *limit))
		qv.Set("offset", fmt.Sprintf("%d", *offset))
		u.RawQuery = qv.Encode()

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, u.String(), token, nil, &resp); err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: moviebot favorites <add|remove|list>")
	}
}

// handleChat joins a lounge room over websocket; lines typed on stdin are
// sent, everything broadcast to the room is printed.
func handleChat(baseURL string, args []string) {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	room := fs.String("room", "lounge", "room name")
	user := fs.String("user", "cli", "display name")
	_ = fs.Parse(args)

	wsURL, err := toWSURL(baseURL)
	if err != nil {
		log.Fatalf("invalid base url: %v", err)
	}
	wsURL += "/ws/chat?room=" + url.QueryEscape(*room) + "&user=" + url.QueryEscape(*user)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("connect chat: %v", err)
	}
	defer conn.Close()

	fmt.Printf("joined room %q as %q (type messages, Ctrl-D to leave)\n", *room, *user)

	go func() {
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				log.Printf("chat read: %v", err)
				os.Exit(1)
			}
			var msg struct {
				Type string `json:"type"`
				User string `json:"user"`
				Text string `json:"text"`
			}
			if err := json.Unmarshal(payload, &msg); err != nil {
				continue
			}
			switch msg.Type {
			case "message":
				fmt.Printf("[%s] %s\n", msg.User, msg.Text)
			case "user_join":
				fmt.Printf("* %s joined\n", msg.User)
			case "user_leave":
				fmt.Printf("* %s left\n", msg.User)
			}
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		payload, _ := json.Marshal(map[string]string{"text": line, "user": *user})
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Fatalf("chat write: %v", err)
		}
	}
}

func toWSURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return u.String(), nil
}

func doJSON(ctx context.Context, client *http.Client, method, rawURL, token string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", resp.Status, apiErr.Error)
		}
		return fmt.Errorf("%s", resp.Status)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, ".moviebot", "token")
}

func saveToken(path, token string) error {
	if token == "" {
		return errors.New("empty token in response")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

func mustToken(path string) string {
	b, err := os.ReadFile(path)
	if err != nil || len(bytes.TrimSpace(b)) == 0 {
		log.Fatal("not logged in (run: moviebot auth login)")
	}
	return string(bytes.TrimSpace(b))
}

func clearToken(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("encode output: %v", err)
	}
	fmt.Println(string(b))
}

func printUsage() {
	fmt.Println(`moviebot CLI

Usage:
  moviebot [-api URL] [-token PATH] <command> <subcommand> [flags]

Commands:
  auth       login | register | logout
  movies     search | top | random | show
  favorites  add | remove | list
  chat       [-room NAME] [-user NAME]`)
}
