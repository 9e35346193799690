package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes mounts the read-only catalog surface.
func (h *Handler) RegisterRoutes(movies, root *gin.RouterGroup) {
	movies.GET("", h.list)        // GET /movies
	movies.GET("/:id", h.getByID) // GET /movies/:id
	root.GET("/random", h.random) // GET /random
	root.GET("/top", h.top)       // GET /top
}

func (h *Handler) list(c *gin.Context) {
	q := ListQuery{
		Q:      c.Query("q"),
		Year:   parseInt(c.Query("year"), 0),
		Limit:  parseInt(c.Query("limit"), 20),
		Offset: parseInt(c.Query("offset"), 0),
	}

	// genres=Action,Drama OR genres=Action&genres=Drama
	genres := c.QueryArray("genres")
	if len(genres) == 0 {
		if s := c.Query("genres"); s != "" {
			genres = strings.Split(s, ",")
		}
	}
	for _, g := range genres {
		if strings.TrimSpace(g) == "" {
			continue
		}
		canonical, ok := CanonicalGenre(g)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown genre: " + g})
			return
		}
		q.Genres = append(q.Genres, canonical)
	}

	total, err := h.Repo.Count(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count failed"})
		return
	}

	items, err := h.Repo.List(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  q.Limit,
		"offset": q.Offset,
		"items":  items,
	})
}

func (h *Handler) getByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	m, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) random(c *gin.Context) {
	m, err := h.Repo.Random(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "random failed"})
		return
	}
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "catalog is empty"})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) top(c *gin.Context) {
	q := TopQuery{
		Year:    parseInt(c.Query("year"), 0),
		OrderBy: c.Query("order_by"),
		Limit:   parseInt(c.Query("limit"), defaultTopLimit),
	}

	if g := strings.TrimSpace(c.Query("genre")); g != "" {
		canonical, ok := CanonicalGenre(g)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown genre: " + g})
			return
		}
		q.Genre = canonical
	}

	if c.Query("classic") == "true" {
		q.MaxYear = 2000
	}

	items, err := h.Repo.Top(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "top failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"limit": q.Limit,
		"items": items,
	})
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
