package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saanj-studio/anthology-core/internal/middleware"
	"github.com/saanj-studio/anthology-core/internal/modules/content/catalog"
	"github.com/saanj-studio/anthology-core/internal/modules/content/search"
	"github.com/saanj-studio/anthology-core/internal/modules/share"
	"github.com/saanj-studio/anthology-core/internal/pkg/response"
)

func (a *App) registerRoutes(catalogService *catalog.Service, pipeline *share.Pipeline, objectStore *share.ObjectStore) {
	a.router.GET("/health", a.health)

	api := a.router.Group("/api/v1")

	if a.redis != nil {
		api.Use(middleware.HTTPCache(a.redis.Raw(), middleware.HTTPCacheOptions{
			TTL:       time.Minute,
			SkipPaths: []string{"/api/v1/cache/*"},
		}))
	}

	catalog.NewHandler(catalogService).RegisterRoutes(api)
	search.NewHandler(catalogService).RegisterRoutes(api)
	share.NewHandler(catalogService, pipeline, objectStore, a.cfg, a.logger).RegisterRoutes(api)

	api.POST("/cache/purge", a.purgeCache)

	a.router.NoRoute(func(c *gin.Context) { response.NotFound(c) })
	a.router.NoMethod(func(c *gin.Context) { response.MethodNotAllowed(c) })
}

func (a *App) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "env": a.cfg.Env})
}

// purgeCache drops the in-memory content cache and the Redis response
// cache, then rehydrates from the CMS. Guarded by a bearer token when one
// is configured.
func (a *App) purgeCache(c *gin.Context) {
	if a.cfg.PurgeToken != "" {
		if c.GetHeader("Authorization") != "Bearer "+a.cfg.PurgeToken {
			response.Unauthorized(c)
			return
		}
	}

	var purged int64
	if a.redis != nil {
		n, err := middleware.PurgeHTTPCache(c.Request.Context(), a.redis.Raw())
		if err != nil {
			a.logger.Warn("response cache purge failed", zap.Error(err))
		}
		purged = n
	}

	if err := a.catalog.Refresh(c.Request.Context()); err != nil {
		response.BadGateway(c, "rehydration failed")
		return
	}

	response.OK(c, gin.H{"purged_responses": purged})
}
