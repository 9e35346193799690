package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"moviebot/pkg/models"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewHandler(testRepo(t))
	h.RegisterRoutes(router.Group("/movies"), router.Group(""))
	return router
}

func doGet(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRandomEndpoint(t *testing.T) {
	router := testRouter(t)

	w := doGet(t, router, "/random")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var m models.Movie
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if m.Title == "" {
		t.Fatal("random movie has no title")
	}
}

func TestGetByIDEndpoint(t *testing.T) {
	router := testRouter(t)

	w := doGet(t, router, "/movies/5")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var m models.Movie
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if m.Title != "Inception" {
		t.Errorf("movie 5 = %q, want Inception", m.Title)
	}

	if w := doGet(t, router, "/movies/9999"); w.Code != http.StatusNotFound {
		t.Errorf("missing id: status = %d, want 404", w.Code)
	}
	if w := doGet(t, router, "/movies/abc"); w.Code != http.StatusBadRequest {
		t.Errorf("bad id: status = %d, want 400", w.Code)
	}
}

func TestTopEndpoint(t *testing.T) {
	router := testRouter(t)

	w := doGet(t, router, "/top?genre=Crime&limit=3")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Items []models.Movie `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(resp.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(resp.Items))
	}
	for i := 1; i < len(resp.Items); i++ {
		if resp.Items[i].Rating > resp.Items[i-1].Rating {
			t.Errorf("ratings not descending at %d", i)
		}
	}
}

func TestTopRejectsUnknownGenre(t *testing.T) {
	router := testRouter(t)

	w := doGet(t, router, "/top?genre=NotAGenre")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestListEndpointPaginates(t *testing.T) {
	router := testRouter(t)

	w := doGet(t, router, "/movies?limit=4&offset=0")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Total int            `json:"total"`
		Items []models.Movie `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Total != len(seed) {
		t.Errorf("total = %d, want %d", resp.Total, len(seed))
	}
	if len(resp.Items) != 4 {
		t.Errorf("page size = %d, want 4", len(resp.Items))
	}
}
