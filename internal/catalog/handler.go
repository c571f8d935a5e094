package catalog

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Handler exposes the normalized catalog over HTTP.
type Handler struct {
	Cache *Cache
}

func NewHandler(cache *Cache) *Handler {
	return &Handler{Cache: cache}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)        // GET /cards?q=
	rg.GET("/:id", h.getByID) // GET /cards/:id
}

func (h *Handler) list(c *gin.Context) {
	cards, err := h.Cache.Ensure(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": "catalog unavailable"})
		return
	}

	matches := Filter(cards, c.Query("q"))
	limit := parseInt(c.Query("limit"), 20)
	offset := parseInt(c.Query("offset"), 0)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	start := min(offset, len(matches))
	end := min(start+limit, len(matches))

	c.JSON(http.StatusOK, gin.H{
		"total":  len(matches),
		"limit":  limit,
		"offset": offset,
		"items":  matches[start:end],
	})
}

func (h *Handler) getByID(c *gin.Context) {
	cards, err := h.Cache.Ensure(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": "catalog unavailable"})
		return
	}
	card, ok := FindByID(cards, c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, card)
}

// ServeFile serves the raw catalog file, refusing to pass on a file that is
// not a valid payload.
func ServeFile(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := os.ReadFile(path)
		if err != nil {
			c.String(http.StatusInternalServerError, "cannot read catalog: "+err.Error())
			return
		}
		if _, err := DecodePayload(b); err != nil {
			c.String(http.StatusInternalServerError, "catalog invalid: "+err.Error())
			return
		}
		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, "application/json", b)
	}
}

func statusFor(err error) int {
	if errors.Is(err, ErrMalformedCatalog) {
		return http.StatusBadGateway
	}
	return http.StatusServiceUnavailable
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
