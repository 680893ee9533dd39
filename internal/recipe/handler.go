package recipe

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"receptari/internal/category"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)                     // GET /recipes?q=&category=&limit=
	rg.GET("/all", h.all)                  // GET /recipes/all
	rg.GET("/category/:key", h.byCategory) // GET /recipes/category/mexic
}

// list is the main query surface. Without term and category it serves the
// mixed per-category sample instead of a flat alphabetical page.
func (h *Handler) list(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	cat := strings.TrimSpace(c.Query("category"))
	limit := parseInt(c.Query("limit"), 0)

	if term == "" && (cat == "" || cat == category.KeyAll) {
		items, err := h.Repo.Sample(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "browse failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": len(items), "items": items})
		return
	}

	items, err := h.Repo.Search(c.Request.Context(), Query{Term: term, Category: cat, Limit: limit})
	if err != nil {
		if errors.Is(err, ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + cat})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(items), "items": items})
}

func (h *Handler) all(c *gin.Context) {
	items, err := h.Repo.Search(c.Request.Context(), Query{Limit: parseInt(c.Query("limit"), DefaultBrowseLimit)})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) byCategory(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	items, err := h.Repo.Search(c.Request.Context(), Query{Category: key, Limit: parseInt(c.Query("limit"), DefaultCategoryLimit)})
	if err != nil {
		if errors.Is(err, ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + key})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// CategoriesHandler serves the taxonomy for the frontend selector.
func CategoriesHandler() gin.HandlerFunc {
	type entry struct {
		Key  string `json:"key"`
		Name string `json:"nom"`
	}
	return func(c *gin.Context) {
		keys := category.Keys()
		out := make([]entry, 0, len(keys))
		for _, k := range keys {
			out = append(out, entry{Key: k, Name: category.DisplayName(k)})
		}
		c.JSON(http.StatusOK, out)
	}
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
