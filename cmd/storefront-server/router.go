package main

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cxsxrrrr/PokeMart/internal/catalog"
	"github.com/cxsxrrrr/PokeMart/internal/health"
	"github.com/cxsxrrrr/PokeMart/internal/logging"
	"github.com/cxsxrrrr/PokeMart/pkg/utils"
)

// newRouter wires the dev host: the raw catalog file, the normalized card
// API, the health endpoint and static assets.
func newRouter(cfg utils.StoreConfig, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logging.RequestID(), logging.GinLogger(logger))
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	norm := catalog.NewNormalizer(cfg.ImageRoot, cfg.Placeholder)
	cache := catalog.NewCache(catalog.NewFileSource(cfg.CatalogFile), norm, logger)

	router.GET("/data/cards.json", catalog.ServeFile(cfg.CatalogFile))
	health.RegisterRoutes(router.Group(""))
	catalog.NewHandler(cache).RegisterRoutes(router.Group("/cards"))

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		cards, err := cache.Ensure(ctx)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":        "not_ready",
				"catalog_error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
			"cards":  len(cards),
		})
	})

	router.Static("/assets", filepath.Join(cfg.PublicDir, "assets"))
	return router
}
